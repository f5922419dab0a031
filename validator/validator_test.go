package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stayr/errors"
)

func TestValidateCardNumber(t *testing.T) {
	assert.NoError(t, ValidateCardNumber("4111111111111111"))

	for _, bad := range []string{"", "411", "41111111111111111", "4111-1111-1111-1111", "411111111111111a"} {
		err := ValidateCardNumber(bad)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidCard), "card %q should be rejected", bad)
	}
}

func TestValidateExpiry(t *testing.T) {
	now := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateExpiry("12/26", now))
	assert.NoError(t, ValidateExpiry("08/26", now))
	assert.NoError(t, ValidateExpiry("01/30", now))

	err := ValidateExpiry("07/26", now)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeExpiredCard))
	assert.Equal(t, "Expired card", apperrors.GetAppError(err).Message)

	err = ValidateExpiry("01/20", now)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeExpiredCard))

	for _, bad := range []string{"13/26", "00/26", "1/26", "12-26", "12/2026", ""} {
		err := ValidateExpiry(bad, now)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidFormat), "expiry %q should be rejected", bad)
	}
}

func TestValidatePassport(t *testing.T) {
	assert.NoError(t, ValidatePassport("C12345678"))
	assert.NoError(t, ValidatePassport("  C12345678  "))

	err := ValidatePassport("C1234")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidPassport))

	err = ValidatePassport("  C1234   ")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidPassport))
}

func TestParseDateRange(t *testing.T) {
	start, end, err := ParseDateRange("2026-09-01", "2026-09-03")
	require.NoError(t, err)
	assert.Equal(t, 2026, start.Year())
	assert.True(t, start.Before(end))

	_, _, err = ParseDateRange("2026-09-03", "2026-09-01")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidRange))

	// Same-day stays are not bookable
	_, _, err = ParseDateRange("2026-09-01", "2026-09-01")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidRange))

	_, _, err = ParseDateRange("01-09-2026", "2026-09-03")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidRange))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.False(t, IsValidEmail("user@example"))
	assert.False(t, IsValidEmail("not-an-email"))
}
