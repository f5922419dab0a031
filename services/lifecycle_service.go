package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"stayr/constants"
	"stayr/dto"
	apperrors "stayr/errors"
	"stayr/models"
	"stayr/services/logger"
	"stayr/services/notification"
	"stayr/validator"
)

// LifecycleService quản lý state machine của booking:
// PENDING -> CONFIRMED (checkout), PENDING/CONFIRMED -> CANCELLED.
// CANCELLED là terminal. Cả hai endpoint hủy đều đi qua CancelBooking
// để chính sách re-cancel thống nhất: luôn reject với conflict.
type LifecycleService struct {
	db     *gorm.DB
	broker FlightBroker
	sink   notification.Sink
	logger logger.Logger

	now func() time.Time
}

type LifecycleServiceOptions struct {
	DB     *gorm.DB
	Broker FlightBroker
	Sink   notification.Sink
	Logger logger.Logger

	// Now cho test kiểm soát thời gian khi validate expiry
	Now func() time.Time
}

func NewLifecycleService(opts LifecycleServiceOptions) *LifecycleService {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	sink := opts.Sink
	if sink == nil {
		sink = notification.NopSink{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &LifecycleService{
		db:     opts.DB,
		broker: opts.Broker,
		sink:   sink,
		logger: l,
		now:    now,
	}
}

// Checkout chuyển booking PENDING sang CONFIRMED sau khi validate thẻ.
// Chỉ lưu last four và tên chủ thẻ, không bao giờ lưu số thẻ đầy đủ.
func (s *LifecycleService) Checkout(userID uint, req dto.CheckoutRequest) (*dto.PaymentInfoResponse, error) {
	booking, err := s.loadBooking(req.BookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID {
		return nil, apperrors.NewAppError(apperrors.ErrCodeForbidden, "Only the booking owner can check out", nil)
	}

	switch booking.Status {
	case constants.BookingStatusConfirmed:
		return nil, apperrors.NewAppError(apperrors.ErrCodeAlreadyProcessed, "Booking has already been processed", nil)
	case constants.BookingStatusCancelled:
		return nil, apperrors.NewAppError(apperrors.ErrCodeAlreadyCancelled, "Booking has been cancelled", nil)
	}

	if err := validator.ValidateCardNumber(req.CardNumber); err != nil {
		return nil, err
	}
	if err := validator.ValidateExpiry(req.ExpiryDate, s.now()); err != nil {
		return nil, err
	}

	state := models.GetBookingState(booking.Status)
	if err := state.Confirm(booking); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeAlreadyProcessed, err.Error(), nil)
	}

	paymentInfo := models.PaymentInfo{
		BookingID:      booking.ID,
		CardholderName: req.CardholderName,
		CardLastFour:   req.CardNumber[len(req.CardNumber)-4:],
		ExpiryDate:     req.ExpiryDate,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&paymentInfo).Error; err != nil {
			return apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot save payment info", err)
		}

		if err := tx.Model(booking).Update("status", booking.Status).Error; err != nil {
			return apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot update booking status", err)
		}

		message := fmt.Sprintf("Payment received. Booking #%d is confirmed.", booking.ID)
		return s.sink.Create(tx, booking.UserID, &booking.ID, constants.NotificationBookingConfirmation, message)
	})
	if err != nil {
		return nil, err
	}

	s.sink.Broadcast(&models.Notification{
		UserID:    booking.UserID,
		BookingID: &booking.ID,
		Type:      constants.NotificationBookingConfirmation,
		Message:   fmt.Sprintf("Booking #%d confirmed", booking.ID),
	})

	return &dto.PaymentInfoResponse{
		BookingID:      booking.ID,
		CardholderName: paymentInfo.CardholderName,
		CardLastFour:   paymentInfo.CardLastFour,
		ExpiryDate:     paymentInfo.ExpiryDate,
	}, nil
}

// CancelBooking hủy booking. Caller phải là chủ booking hoặc chủ của một
// hotel trong các leg phòng. Không gọi AFS: hủy vé là thao tác riêng.
func (s *LifecycleService) CancelBooking(actorID, bookingID uint) (*models.Booking, error) {
	booking, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, err
	}

	if !s.canCancel(actorID, booking) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeForbidden, "You do not have permission to cancel this booking", nil)
	}

	return s.cancel(booking)
}

// CancelRoomBooking là đường hủy cho chủ hotel theo một leg phòng cụ thể.
// Kiểm tra leg thuộc đúng hotel và hotel thuộc actor, rồi hủy booking cha
// qua cùng một đường state machine.
func (s *LifecycleService) CancelRoomBooking(actorID, roomBookingID, hotelID uint) (*models.Booking, error) {
	var roomBooking models.RoomBooking
	if err := s.db.Preload("Hotel").First(&roomBooking, roomBookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBNotFound, "Room booking not found", err)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot load room booking", err)
	}

	if roomBooking.HotelID != hotelID {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidRelation, "Room booking does not belong to this hotel", nil)
	}
	if roomBooking.Hotel == nil || roomBooking.Hotel.OwnerID != actorID {
		return nil, apperrors.NewAppError(apperrors.ErrCodeForbidden, "Only the hotel owner can cancel this room booking", nil)
	}

	booking, err := s.loadBooking(roomBooking.BookingID)
	if err != nil {
		return nil, err
	}
	return s.cancel(booking)
}

// CancelFlightLeg hủy leg chuyến bay qua AFS. lastName là yếu tố xác
// nhận thứ hai: phải khớp last name lưu trong hồ sơ chủ booking.
func (s *LifecycleService) CancelFlightLeg(ctx context.Context, actorID uint, req dto.CancelFlightRequest) (json.RawMessage, error) {
	var flightRef models.FlightBookingReference
	if err := s.db.First(&flightRef, req.FlightBookingReferenceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBNotFound, "Flight booking reference not found", err)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot load flight booking reference", err)
	}

	booking, err := s.loadBooking(flightRef.BookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != actorID {
		return nil, apperrors.NewAppError(apperrors.ErrCodeForbidden, "Only the booking owner can cancel its flights", nil)
	}

	var owner models.User
	if err := s.db.First(&owner, booking.UserID).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot load booking owner", err)
	}

	if !strings.EqualFold(strings.TrimSpace(req.LastName), strings.TrimSpace(owner.LastName)) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeForbidden, "Last name does not match the booking owner", nil)
	}

	return s.broker.CancelFlight(ctx, owner.LastName, flightRef.AfsBookingID)
}

// ExpireStalePending hủy các booking PENDING quá hạn thanh toán. Chạy
// từ cron job hằng ngày.
func (s *LifecycleService) ExpireStalePending(window time.Duration) (int, error) {
	cutoff := s.now().Add(-window)

	var stale []models.Booking
	err := s.db.
		Preload("RoomBookings").
		Where("status = ? AND created_at < ?", constants.BookingStatusPending, cutoff).
		Find(&stale).Error
	if err != nil {
		return 0, apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot load stale bookings", err)
	}

	expired := 0
	for i := range stale {
		if _, err := s.cancel(&stale[i]); err != nil {
			s.logger.Error("cannot expire booking %d: %v", stale[i].ID, err)
			continue
		}
		expired++
	}
	return expired, nil
}

func (s *LifecycleService) loadBooking(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Preload("RoomBookings").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBNotFound, "Booking not found", err)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot load booking", err)
	}
	return &booking, nil
}

func (s *LifecycleService) canCancel(actorID uint, booking *models.Booking) bool {
	if booking.UserID == actorID {
		return true
	}

	if len(booking.RoomBookings) == 0 {
		return false
	}

	hotelIDs := make([]uint, 0, len(booking.RoomBookings))
	for _, rb := range booking.RoomBookings {
		hotelIDs = append(hotelIDs, rb.HotelID)
	}

	var count int64
	s.db.Model(&models.Hotel{}).
		Where("id IN ? AND owner_id = ?", hotelIDs, actorID).
		Count(&count)
	return count > 0
}

func (s *LifecycleService) cancel(booking *models.Booking) (*models.Booking, error) {
	state := models.GetBookingState(booking.Status)
	if err := state.Cancel(booking); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeAlreadyCancelled, err.Error(), nil)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(booking).Update("status", constants.BookingStatusCancelled).Error; err != nil {
			return apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot update booking status", err)
		}

		message := fmt.Sprintf("Booking #%d has been cancelled.", booking.ID)
		return s.sink.Create(tx, booking.UserID, &booking.ID, constants.NotificationBookingCancellation, message)
	})
	if err != nil {
		return nil, err
	}

	s.sink.Broadcast(&models.Notification{
		UserID:    booking.UserID,
		BookingID: &booking.ID,
		Type:      constants.NotificationBookingCancellation,
		Message:   fmt.Sprintf("Booking #%d cancelled", booking.ID),
	})

	return booking, nil
}
