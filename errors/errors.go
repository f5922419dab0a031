package errors

import (
	"errors"
	"fmt"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken ErrorCode = "MISSING_TOKEN"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUserNotFound ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserExists   ErrorCode = "USER_EXISTS"
	ErrCodeInvalidEmail ErrorCode = "INVALID_EMAIL"

	// Booking errors
	ErrCodeNothingToBook         ErrorCode = "NOTHING_TO_BOOK"
	ErrCodeInvalidRange          ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeInvalidRelation       ErrorCode = "INVALID_RELATION"
	ErrCodeInsufficientInventory ErrorCode = "INSUFFICIENT_INVENTORY"
	ErrCodeAlreadyProcessed      ErrorCode = "ALREADY_PROCESSED"
	ErrCodeAlreadyCancelled      ErrorCode = "ALREADY_CANCELLED"
	ErrCodePartialBooking        ErrorCode = "PARTIAL_BOOKING_FAILURE"

	// Payment errors
	ErrCodeInvalidCard ErrorCode = "INVALID_CARD"
	ErrCodeExpiredCard ErrorCode = "EXPIRED_CARD"

	// Flight broker errors
	ErrCodeInvalidPassport       ErrorCode = "INVALID_PASSPORT"
	ErrCodeBrokerRejected        ErrorCode = "BROKER_REJECTED"
	ErrCodeBrokerUnavailable     ErrorCode = "BROKER_UNAVAILABLE"
	ErrCodeInvalidBrokerResponse ErrorCode = "INVALID_BROKER_RESPONSE"

	// Database errors
	ErrCodeDBError     ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound  ErrorCode = "DB_NOT_FOUND"
	ErrCodeDBDuplicate ErrorCode = "DB_DUPLICATE"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode kiểm tra error có đúng code không
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}
