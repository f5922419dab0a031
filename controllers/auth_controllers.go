package controllers

import (
	"github.com/gin-gonic/gin"

	"stayr/dto"
	"stayr/middleware"
	"stayr/models"
	"stayr/response"
	"stayr/services"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

func convertToUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Role:        user.Role,
		Avatar:      user.Avatar,
	}
}

// RegisterUser đăng ký tài khoản mới
func (ctl *AuthController) RegisterUser(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := ctl.authService.Register(req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, convertToUserResponse(user))
}

// Login đăng nhập, trả về JWT
func (ctl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	token, user, err := ctl.authService.Login(req)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	response.Success(c, dto.LoginResponse{
		Token: token,
		User:  convertToUserResponse(user),
	})
}

// GetProfile lấy profile của user hiện tại
func (ctl *AuthController) GetProfile(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		response.Unauthorized(c)
		return
	}

	user, err := ctl.authService.GetProfile(userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, convertToUserResponse(user))
}

// UpdateProfile cập nhật profile của user hiện tại
func (ctl *AuthController) UpdateProfile(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		response.Unauthorized(c)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := ctl.authService.UpdateProfile(userID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, convertToUserResponse(user))
}
