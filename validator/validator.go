package validator

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	validatorv10 "github.com/go-playground/validator/v10"

	"stayr/errors"
)

var (
	cardNumberRegex = regexp.MustCompile(`^[0-9]{16}$`)
	expiryRegex     = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
	emailRegex      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// RegisterValidations đăng ký các validation tùy chỉnh vào gin binding
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validatorv10.Validate); ok {
		v.RegisterValidation("cardexpiry", func(fl validatorv10.FieldLevel) bool {
			return expiryRegex.MatchString(fl.Field().String())
		})
	}
}

// ValidateCardNumber kiểm tra số thẻ đúng 16 chữ số
func ValidateCardNumber(cardNumber string) error {
	if !cardNumberRegex.MatchString(cardNumber) {
		return errors.NewAppError(errors.ErrCodeInvalidCard, "Card number must be exactly 16 digits", nil)
	}
	return nil
}

// ValidateExpiry kiểm tra expiry dạng MM/YY và chưa hết hạn so với now
func ValidateExpiry(expiry string, now time.Time) error {
	m := expiryRegex.FindStringSubmatch(expiry)
	if m == nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Expiry date must be in MM/YY format", nil)
	}

	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	year += 2000

	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return errors.NewAppError(errors.ErrCodeExpiredCard, "Expired card", nil)
	}
	return nil
}

// ValidatePassport kiểm tra số hộ chiếu có ít nhất 9 ký tự
func ValidatePassport(passportNumber string) error {
	if len(strings.TrimSpace(passportNumber)) < 9 {
		return errors.NewAppError(errors.ErrCodeInvalidPassport, "Passport number must be at least 9 characters", nil)
	}
	return nil
}

// ParseDateRange parse checkIn/checkOut và kiểm tra checkIn < checkOut
func ParseDateRange(checkIn, checkOut string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidRange, "Invalid check-in date", err)
	}

	end, err := time.Parse("2006-01-02", checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidRange, "Invalid check-out date", err)
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidRange, "Check-in date must be before check-out date", nil)
	}
	return start, end, nil
}

// IsValidEmail kiểm tra email hợp lệ
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
