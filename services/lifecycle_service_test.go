package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stayr/constants"
	"stayr/dto"
	apperrors "stayr/errors"
	"stayr/models"
)

func fixedNow() time.Time {
	return date("2026-08-15")
}

func newLifecycleService(db *gorm.DB, broker FlightBroker) *LifecycleService {
	return NewLifecycleService(LifecycleServiceOptions{
		DB:     db,
		Broker: broker,
		Now:    fixedNow,
	})
}

func TestCheckoutConfirmsPendingBooking(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", 1)
	guest := createTestUser(t, db, "guest@example.com", 0)
	hotel := createTestHotel(t, db, owner.ID)
	roomType := createTestRoomType(t, db, hotel.ID, 100, 3)
	booking := seedBooking(t, db, roomType, guest.ID, constants.BookingStatusPending, "2026-09-01", "2026-09-03", 1)

	svc := newLifecycleService(db, &fakeBroker{})

	payment, err := svc.Checkout(guest.ID, dto.CheckoutRequest{
		BookingID:      booking.ID,
		CardholderName: "TEST NGUYEN",
		CardNumber:     "4111111111111111",
		ExpiryDate:     "12/28",
	})
	require.NoError(t, err)

	assert.Equal(t, "1111", payment.CardLastFour)
	assert.Equal(t, "12/28", payment.ExpiryDate)

	var reloaded models.Booking
	require.NoError(t, db.First(&reloaded, booking.ID).Error)
	assert.Equal(t, constants.BookingStatusConfirmed, reloaded.Status)

	var stored models.PaymentInfo
	require.NoError(t, db.Where("booking_id = ?", booking.ID).First(&stored).Error)
	assert.Equal(t, "1111", stored.CardLastFour)
	assert.Equal(t, "TEST NGUYEN", stored.CardholderName)
}

func TestCheckoutRejectsExpiredCard(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", 1)
	guest := createTestUser(t, db, "guest@example.com", 0)
	hotel := createTestHotel(t, db, owner.ID)
	roomType := createTestRoomType(t, db, hotel.ID, 100, 3)
	booking := seedBooking(t, db, roomType, guest.ID, constants.BookingStatusPending, "2026-09-01", "2026-09-03", 1)

	svc := newLifecycleService(db, &fakeBroker{})

	_, err := svc.Checkout(guest.ID, dto.CheckoutRequest{
		BookingID:      booking.ID,
		CardholderName: "TEST NGUYEN",
		CardNumber:     "4111111111111111",
		ExpiryDate:     "01/20",
	})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeExpiredCard))

	// Rejection leaves the booking untouched
	var reloaded models.Booking
	require.NoError(t, db.First(&reloaded, booking.ID).Error)
	assert.Equal(t, constants.BookingStatusPending, reloaded.Status)
}

func TestCheckoutRejectsBadCardNumber(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", 1)
	guest := createTestUser(t, db, "guest@example.com", 0)
	hotel := createTestHotel(t, db, owner.ID)
	roomType := createTestRoomType(t, db, hotel.ID, 100, 3)
	booking := seedBooking(t, db, roomType, guest.ID, constants.BookingStatusPending, "2026-09-01", "2026-09-03", 1)

	svc := newLifecycleService(db, &fakeBroker{})

	_, err := svc.Checkout(guest.ID, dto.CheckoutRequest{
		BookingID:      booking.ID,
		CardholderName: "TEST NGUYEN",
		CardNumber:     "4111",
		ExpiryDate:     "12/28",
	})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidCard))
}

func TestCheckoutIsNotRepeatable(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", 1)
	guest := createTestUser(t, db, "guest@example.com", 0)
	hotel := createTestHotel(t, db, owner.ID)
	roomType := createTestRoomType(t, db, hotel.ID, 100, 3)
	booking := seedBooking(t, db, roomType, guest.ID, constants.BookingStatusConfirmed, "2026-09-01", "2026-09-03", 1)

	svc := newLifecycleService(db, &fakeBroker{})

	_, err := svc.Checkout(guest.ID, dto.CheckoutRequest{
		BookingID:      booking.ID,
		CardholderName: "TEST NGUYEN",
		CardNumber:     "4111111111111111",
		ExpiryDate:     "12/28",
	})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeAlreadyProcessed))
}

func TestCheckoutCancelledIsTerminal(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", 1)
	guest := createTestUser(t, db, "guest@example.com", 0)
	hotel := createTestHotel(t, db, owner.ID)
	roomType := createTestRoomType(t, db, hotel.ID, 100, 3)
	booking := seedBooking(t, db, roomType, guest.ID, constants.BookingStatusCancelled, "2026-09-01", "2026-09-03", 1)

	svc := newLifecycleService(db, &fakeBroker{})

	_, err := svc.Checkout(guest.ID, dto.CheckoutRequest{
		BookingID:      booking.ID,
		CardholderName: "TEST NGUYEN",
		CardNumber:     "4111111111111111",
		ExpiryDate:     "12/28",
	})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeAlreadyCancelled))
}

func TestCheckoutOwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", 1)
	guest := createTestUser(t, db, "guest@example.com", 0)
	stranger := createTestUser(t, db, "stranger@example.com", 0)
	hotel := createTestHotel(t, db, owner.ID)
	roomType := createTestRoomType(t, db, hotel.ID, 100, 3)
	booking := seedBooking(t, db, roomType, guest.ID, constants.BookingStatusPending, "2026-09-01", "2026-09-03", 1)

	svc := newLifecycleService(db, &fakeBroker{})

	_, err := svc.Checkout(stranger.ID, dto.CheckoutRequest{
		BookingID:      booking.ID,
		CardholderName: "STRANGER",
		CardNumber:     "4111111111111111",
		ExpiryDate:     "12/28",
	})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))
}

func TestCancelBookingByOwnerAndHotelOwner(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", 1)
	guest := createTestUser(t, db, "guest@example.com", 0)
	stranger := createTestUser(t, db, "stranger@example.com", 0)
	hotel := createTestHotel(t, db, owner.ID)
	roomType := createTestRoomType(t, db, hotel.ID, 100, 3)

	svc := newLifecycleService(db, &fakeBroker{})

	first := seedBooking(t, db, roomType, guest.ID, constants.BookingStatusPending, "2026-09-01", "2026-09-03", 1)
	second := seedBooking(t, db, roomType, guest.ID, constants.BookingStatusConfirmed, "2026-09-10", "2026-09-12", 1)

	_, err := svc.CancelBooking(stranger.ID, first.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))

	cancelled, err := svc.CancelBooking(guest.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.BookingStatusCancelled, cancelled.Status)

	// The hotel owner can cancel a confirmed booking touching their hotel
	cancelled, err = svc.CancelBooking(owner.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.BookingStatusCancelled, cancelled.Status)
}

func TestCancelBookingTwiceConflicts(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", 1)
	guest := createTestUser(t, db, "guest@example.com", 0)
	hotel := createTestHotel(t, db, owner.ID)
	roomType := createTestRoomType(t, db, hotel.ID, 100, 3)
	booking := seedBooking(t, db, roomType, guest.ID, constants.BookingStatusPending, "2026-09-01", "2026-09-03", 1)

	svc := newLifecycleService(db, &fakeBroker{})

	_, err := svc.CancelBooking(guest.ID, booking.ID)
	require.NoError(t, err)

	_, err = svc.CancelBooking(guest.ID, booking.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeAlreadyCancelled))
}

func TestCancelRoomBookingChecksRelationAndOwnership(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", 1)
	otherOwner := createTestUser(t, db, "other-owner@example.com", 1)
	guest := createTestUser(t, db, "guest@example.com", 0)
	hotel := createTestHotel(t, db, owner.ID)
	otherHotel := createTestHotel(t, db, otherOwner.ID)
	roomType := createTestRoomType(t, db, hotel.ID, 100, 3)
	booking := seedBooking(t, db, roomType, guest.ID, constants.BookingStatusPending, "2026-09-01", "2026-09-03", 1)

	var roomBooking models.RoomBooking
	require.NoError(t, db.Where("booking_id = ?", booking.ID).First(&roomBooking).Error)

	svc := newLifecycleService(db, &fakeBroker{})

	_, err := svc.CancelRoomBooking(owner.ID, roomBooking.ID, otherHotel.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidRelation))

	_, err = svc.CancelRoomBooking(otherOwner.ID, roomBooking.ID, hotel.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))

	cancelled, err := svc.CancelRoomBooking(owner.ID, roomBooking.ID, hotel.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.BookingStatusCancelled, cancelled.Status)
}

func TestCancelFlightLegVerifiesLastName(t *testing.T) {
	db := setupTestDB(t)
	guest := createTestUser(t, db, "guest@example.com", 0)
	stranger := createTestUser(t, db, "stranger@example.com", 0)

	booking := models.Booking{UserID: guest.ID, Status: constants.BookingStatusConfirmed, BookingDate: time.Now()}
	require.NoError(t, db.Create(&booking).Error)
	flightRef := models.FlightBookingReference{
		BookingID:      booking.ID,
		AfsBookingID:   "AFS-77",
		PassengerCount: 1,
	}
	require.NoError(t, db.Create(&flightRef).Error)

	svc := newLifecycleService(db, &fakeBroker{})

	_, err := svc.CancelFlightLeg(context.Background(), stranger.ID, dto.CancelFlightRequest{
		LastName:                 "Nguyen",
		FlightBookingReferenceID: flightRef.ID,
	})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))

	_, err = svc.CancelFlightLeg(context.Background(), guest.ID, dto.CancelFlightRequest{
		LastName:                 "Tran",
		FlightBookingReferenceID: flightRef.ID,
	})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))

	// Case-insensitive match against the profile last name
	result, err := svc.CancelFlightLeg(context.Background(), guest.ID, dto.CancelFlightRequest{
		LastName:                 "nguyen",
		FlightBookingReferenceID: flightRef.ID,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"CANCELLED"}`, string(result))
}

func TestExpireStalePending(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", 1)
	guest := createTestUser(t, db, "guest@example.com", 0)
	hotel := createTestHotel(t, db, owner.ID)
	roomType := createTestRoomType(t, db, hotel.ID, 100, 5)

	stale := seedBooking(t, db, roomType, guest.ID, constants.BookingStatusPending, "2026-09-01", "2026-09-03", 1)
	confirmed := seedBooking(t, db, roomType, guest.ID, constants.BookingStatusConfirmed, "2026-09-01", "2026-09-03", 1)

	// Backdate both so only the pending one qualifies
	old := fixedNow().Add(-48 * time.Hour)
	require.NoError(t, db.Model(&models.Booking{}).Where("id IN ?", []uint{stale.ID, confirmed.ID}).Update("created_at", old).Error)

	svc := newLifecycleService(db, &fakeBroker{})

	expired, err := svc.ExpireStalePending(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	var reloaded models.Booking
	require.NoError(t, db.First(&reloaded, stale.ID).Error)
	assert.Equal(t, constants.BookingStatusCancelled, reloaded.Status)

	reloaded = models.Booking{}
	require.NoError(t, db.First(&reloaded, confirmed.ID).Error)
	assert.Equal(t, constants.BookingStatusConfirmed, reloaded.Status)
}
