package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stayr/constants"
	"stayr/dto"
	apperrors "stayr/errors"
	"stayr/models"
	"stayr/services/logger"
	"stayr/validator"
)

// AuthService xử lý đăng ký, đăng nhập và profile
type AuthService struct {
	db     *gorm.DB
	logger logger.Logger
}

type AuthServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &AuthService{db: opts.DB, logger: l}
}

// Register tạo user mới với mật khẩu đã băm bcrypt
func (s *AuthService) Register(req dto.RegisterRequest) (*models.User, error) {
	if !validator.IsValidEmail(req.Email) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidEmail, "Invalid email address", nil)
	}
	if req.Role != constants.RoleUser && req.Role != constants.RoleHotelOwner {
		return nil, apperrors.NewAppError(apperrors.ErrCodeValidation, "Invalid role", nil)
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeUserExists, "Email is already registered", nil)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot check existing user", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot hash password", err)
	}

	user := models.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    string(hashed),
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot create user", err)
	}

	s.logger.Info("user %d registered", user.ID)
	return &user, nil
}

// Login xác thực credentials và phát hành JWT
func (s *AuthService) Login(req dto.LoginRequest) (string, *models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.NewAppError(apperrors.ErrCodeUserNotFound, "Invalid email or password", err)
		}
		return "", nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "Invalid email or password", err)
	}

	token, err := GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot generate token", err)
	}
	return token, &user, nil
}

// GetProfile lấy thông tin user theo id
func (s *AuthService) GetProfile(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeUserNotFound, "User not found", err)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot load user", err)
	}
	return &user, nil
}

// UpdateProfile cập nhật các trường profile mutable
func (s *AuthService) UpdateProfile(userID uint, req dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FirstName != "" {
		updates["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		updates["last_name"] = req.LastName
	}
	if req.PhoneNumber != "" {
		updates["phone_number"] = req.PhoneNumber
	}
	if req.Avatar != "" {
		updates["avatar"] = req.Avatar
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot update profile", err)
		}
	}
	return user, nil
}
