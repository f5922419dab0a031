package services

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"

	"stayr/errors"
)

type UserInfo struct {
	UserID uint   `json:"userid"`
	Email  string `json:"email"`
	Role   int    `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// GenerateToken phát hành JWT cho user đã xác thực
func GenerateToken(userID uint, email string, role int) (string, error) {
	claims := Claims{
		UserInfo: UserInfo{
			UserID: userID,
			Email:  email,
			Role:   role,
		},
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(72 * time.Hour).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// GetUserFromToken xác thực token và trích xuất identity của user
func GetUserFromToken(tokenString string) (*UserInfo, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Unexpected signing method", nil)
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Invalid token", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Invalid token claims", nil)
	}

	if claims.UserInfo.UserID == 0 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Missing user info in token", nil)
	}

	return &claims.UserInfo, nil
}

// GetUserIDFromToken lấy userID và role từ token, không verify chữ ký.
// Dùng cho các endpoint chỉ cần phân quyền thô từ token đã qua gateway.
func GetUserIDFromToken(tokenString string) (uint, int, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Invalid token", nil)
	}

	payload, err := jwt.DecodeSegment(parts[1])
	if err != nil {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Cannot decode token", err)
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Cannot parse token", err)
	}

	if claims.UserInfo.UserID == 0 {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Missing user info in token", nil)
	}

	return claims.UserInfo.UserID, claims.UserInfo.Role, nil
}
