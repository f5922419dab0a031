package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayr/dto"
	apperrors "stayr/errors"
)

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := setupTestDB(t)
	svc := NewAuthService(AuthServiceOptions{DB: db})

	user, err := svc.Register(dto.RegisterRequest{
		FirstName: "An",
		LastName:  "Tran",
		Email:     "an@example.com",
		Password:  "s3cret-pass",
		Role:      0,
	})
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", user.Password)

	token, loggedIn, err := svc.Login(dto.LoginRequest{Email: "an@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	info, err := GetUserFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, info.UserID)
	assert.Equal(t, "an@example.com", info.Email)

	_, _, err = svc.Login(dto.LoginRequest{Email: "an@example.com", Password: "wrong"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUnauthorized))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(AuthServiceOptions{DB: db})

	req := dto.RegisterRequest{
		FirstName: "An",
		LastName:  "Tran",
		Email:     "an@example.com",
		Password:  "s3cret-pass",
		Role:      0,
	}
	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Register(req)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUserExists))
}

func TestRegisterValidatesEmailAndRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(AuthServiceOptions{DB: db})

	_, err := svc.Register(dto.RegisterRequest{Email: "bad-email", Password: "x", Role: 0})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidEmail))

	_, err = svc.Register(dto.RegisterRequest{Email: "ok@example.com", Password: "x", Role: 5})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
}

func TestUpdateProfilePartial(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "an@example.com", 0)

	svc := NewAuthService(AuthServiceOptions{DB: db})

	updated, err := svc.UpdateProfile(user.ID, dto.UpdateProfileRequest{PhoneNumber: "0901234567"})
	require.NoError(t, err)
	assert.Equal(t, "0901234567", updated.PhoneNumber)
	assert.Equal(t, user.FirstName, updated.FirstName)
}
