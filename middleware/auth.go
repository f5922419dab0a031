package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"stayr/response"
	"stayr/services"
)

// AuthMiddleware xác thực Bearer token và lưu identity vào context.
// Truyền roles để giới hạn quyền truy cập.
func AuthMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userInfo, err := services.GetUserFromToken(tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if len(roles) > 0 {
			hasRole := false
			for _, role := range roles {
				if role == userInfo.Role {
					hasRole = true
					break
				}
			}
			if !hasRole {
				response.Forbidden(c)
				c.Abort()
				return
			}
		}

		c.Set("userID", userInfo.UserID)
		c.Set("userEmail", userInfo.Email)
		c.Set("userRole", userInfo.Role)
		c.Next()
	}
}

// CurrentUserID lấy userID đã được AuthMiddleware lưu vào context
func CurrentUserID(c *gin.Context) uint {
	v, exists := c.Get("userID")
	if !exists {
		return 0
	}
	id, ok := v.(uint)
	if !ok {
		return 0
	}
	return id
}

// CurrentUserRole lấy role đã được AuthMiddleware lưu vào context
func CurrentUserRole(c *gin.Context) int {
	v, exists := c.Get("userRole")
	if !exists {
		return 0
	}
	role, ok := v.(int)
	if !ok {
		return 0
	}
	return role
}
