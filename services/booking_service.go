package services

import (
	"context"
	"errors"
	"fmt"
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

// BookingService điều phối việc tạo một itinerary: giữ phòng, đặt vé
// qua AFS và ghi aggregate Booking trong một transaction duy nhất.
type BookingService struct {
	db        *gorm.DB
	inventory *InventoryService
	broker    FlightBroker
	sink      notification.Sink
	logger    logger.Logger
}

type BookingServiceOptions struct {
	DB        *gorm.DB
	Inventory *InventoryService
	Broker    FlightBroker
	Sink      notification.Sink
	Logger    logger.Logger
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	inventory := opts.Inventory
	if inventory == nil {
		inventory = NewInventoryService(InventoryServiceOptions{DB: opts.DB, Logger: l})
	}
	sink := opts.Sink
	if sink == nil {
		sink = notification.NopSink{}
	}
	return &BookingService{
		db:        opts.DB,
		inventory: inventory,
		broker:    opts.Broker,
		sink:      sink,
		logger:    l,
	}
}

// CreateItinerary tạo booking mới cho user. Thứ tự cố định: validate,
// quote phòng (read-only), gọi AFS, rồi mới mở transaction ghi
// Booking + RoomBooking + FlightBookingReference + Notification.
// AFS phải trả lời xong trước khi transaction bắt đầu để không giữ
// lock qua một external call chậm.
func (s *BookingService) CreateItinerary(ctx context.Context, userID uint, req dto.CreateItineraryRequest) (*dto.CreateItineraryResponse, error) {
	if userID == 0 {
		return nil, apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "Authentication required", nil)
	}

	if req.Room == nil && req.Flight == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeNothingToBook, "At least one of room or flight must be requested", nil)
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeUserNotFound, "User not found", err)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot load user", err)
	}

	// Passport trước quote phòng: lỗi input rẻ nhất phải thắng lỗi tồn kho
	if req.Flight != nil {
		if err := validator.ValidatePassport(req.Flight.PassportNumber); err != nil {
			return nil, err
		}
	}

	var quote *RoomQuote
	if req.Room != nil {
		q, err := s.quoteRoomLeg(req.Room)
		if err != nil {
			return nil, err
		}
		quote = q
	}

	var flightResult *FlightBookingResult
	if req.Flight != nil {
		result, err := s.broker.BookFlights(ctx, req.Flight.FlightIDs, Passenger{
			FirstName:      user.FirstName,
			LastName:       user.LastName,
			Email:          user.Email,
			PassportNumber: req.Flight.PassportNumber,
		})
		if err != nil {
			// Chưa có gì được ghi: một flight leg fail không bao giờ
			// để lại room reservation mồ côi
			return nil, err
		}
		flightResult = result
	}

	totalPrice := 0.0
	if quote != nil {
		totalPrice += quote.TotalPrice
	}
	if flightResult != nil {
		totalPrice += flightResult.Price
	}

	booking := models.Booking{
		UserID:             userID,
		Status:             constants.BookingStatusPending,
		TotalPrice:         totalPrice,
		BookingDate:        time.Now(),
		FlightSearchParams: req.FlightSearchParams,
	}

	var roomBooking *models.RoomBooking
	var flightRef *models.FlightBookingReference

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&booking).Error; err != nil {
			return apperrors.NewAppError(apperrors.ErrCodePartialBooking, "Cannot create booking", err)
		}

		if quote != nil {
			rb, err := s.inventory.Reserve(tx, booking.ID, quote, req.Room.GuestCount)
			if err != nil {
				return err
			}
			roomBooking = rb
		}

		if flightResult != nil {
			ref := models.FlightBookingReference{
				BookingID:      booking.ID,
				AfsBookingID:   flightResult.BookingReference,
				TicketNumber:   flightResult.TicketNumber,
				PassengerCount: passengerCount(req.Flight),
				TotalPrice:     flightResult.Price,
				IsRoundTrip:    isRoundTrip(req.Flight),
			}
			if err := tx.Create(&ref).Error; err != nil {
				return apperrors.NewAppError(apperrors.ErrCodePartialBooking, "Cannot create flight booking reference", err)
			}
			flightRef = &ref
		}

		message := fmt.Sprintf("Your booking #%d has been created. Total price: %.2f", booking.ID, totalPrice)
		if err := s.sink.Create(tx, userID, &booking.ID, constants.NotificationBookingCreated, message); err != nil {
			return apperrors.NewAppError(apperrors.ErrCodePartialBooking, "Cannot create notification", err)
		}

		if roomBooking != nil {
			ownerMessage := fmt.Sprintf("New booking #%d: %d room(s) of %q from %s to %s",
				booking.ID, roomBooking.NumberOfRooms, quote.RoomType.Name,
				quote.CheckIn.Format(constants.DateLayout), quote.CheckOut.Format(constants.DateLayout))
			if err := s.sink.Create(tx, quote.RoomType.Hotel.OwnerID, &booking.ID, constants.NotificationHotelNewBooking, ownerMessage); err != nil {
				return apperrors.NewAppError(apperrors.ErrCodePartialBooking, "Cannot create owner notification", err)
			}
		}

		return nil
	})
	if err != nil {
		if flightResult != nil {
			s.logger.Error("booking transaction rolled back with AFS reference %s outstanding: %v", flightResult.BookingReference, err)
		}
		return nil, err
	}

	s.sink.Broadcast(&models.Notification{
		UserID:    userID,
		BookingID: &booking.ID,
		Type:      constants.NotificationBookingCreated,
		Message:   fmt.Sprintf("Booking #%d created", booking.ID),
	})

	resp := &dto.CreateItineraryResponse{
		Message:    "Booking created successfully",
		BookingID:  booking.ID,
		TotalPrice: totalPrice,
	}
	if roomBooking != nil {
		resp.RoomBooking = &dto.RoomLegResponse{
			ID:            roomBooking.ID,
			RoomTypeID:    roomBooking.RoomTypeID,
			HotelID:       roomBooking.HotelID,
			RoomTypeName:  quote.RoomType.Name,
			HotelName:     quote.RoomType.Hotel.Name,
			CheckInDate:   roomBooking.CheckInDate.Format(constants.DateLayout),
			CheckOutDate:  roomBooking.CheckOutDate.Format(constants.DateLayout),
			Nights:        quote.Nights,
			GuestCount:    roomBooking.GuestCount,
			NumberOfRooms: roomBooking.NumberOfRooms,
			TotalPrice:    roomBooking.TotalPrice,
		}
	}
	if flightRef != nil {
		resp.Flight = &dto.FlightLegResponse{
			ID:             flightRef.ID,
			AfsBookingID:   flightRef.AfsBookingID,
			TicketNumber:   flightRef.TicketNumber,
			PassengerCount: flightRef.PassengerCount,
			TotalPrice:     flightRef.TotalPrice,
			IsRoundTrip:    flightRef.IsRoundTrip,
		}
	}

	return resp, nil
}

func (s *BookingService) quoteRoomLeg(leg *dto.RoomLeg) (*RoomQuote, error) {
	if leg.HotelID == 0 {
		return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField, "hotelId is required for a room leg", nil)
	}
	if leg.CheckInDate == "" || leg.CheckOutDate == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField, "checkInDate and checkOutDate are required for a room leg", nil)
	}

	checkIn, checkOut, err := validator.ParseDateRange(leg.CheckInDate, leg.CheckOutDate)
	if err != nil {
		return nil, err
	}

	var hotel models.Hotel
	if err := s.db.First(&hotel, leg.HotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBNotFound, "Hotel not found", err)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot load hotel", err)
	}

	rooms := leg.NumberOfRooms
	if rooms == 0 {
		rooms = 1
	}

	return s.inventory.Quote(leg.RoomTypeID, leg.HotelID, checkIn, checkOut, rooms)
}

func passengerCount(leg *dto.FlightLeg) int {
	if leg.PassengerCount > 0 {
		return leg.PassengerCount
	}
	return 1
}

// isRoundTrip lấy từ flag của request; khi client không gửi thì suy ra
// từ số chặng như hành vi cũ, dù multi-stop một chiều cũng ra true.
func isRoundTrip(leg *dto.FlightLeg) bool {
	if leg.IsRoundTrip != nil {
		return *leg.IsRoundTrip
	}
	return len(leg.FlightIDs) > 1
}

// GetBookingsForUser trả về booking theo quyền: user thường thấy booking
// của mình, chủ hotel thấy thêm các booking chạm tới hotel của họ
func (s *BookingService) GetBookingsForUser(userID uint, role int) ([]models.Booking, error) {
	tx := s.db.Model(&models.Booking{}).
		Preload("RoomBookings.RoomType").
		Preload("RoomBookings.Hotel").
		Preload("Flights")

	if role == constants.RoleHotelOwner {
		tx = tx.Where("bookings.user_id = ? OR bookings.id IN (?)", userID,
			s.db.Model(&models.RoomBooking{}).Select("booking_id").
				Where("hotel_id IN (?)",
					s.db.Model(&models.Hotel{}).Select("id").Where("owner_id = ?", userID)))
	} else {
		tx = tx.Where("bookings.user_id = ?", userID)
	}

	var bookings []models.Booking
	if err := tx.Order("bookings.created_at DESC").Find(&bookings).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot load bookings", err)
	}
	return bookings, nil
}

// GetBooking trả về chi tiết một booking nếu caller có quyền xem
func (s *BookingService) GetBooking(bookingID, userID uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.
		Preload("RoomBookings.RoomType").
		Preload("RoomBookings.Hotel").
		Preload("Flights").
		Preload("PaymentInfo").
		First(&booking, bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBNotFound, "Booking not found", err)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot load booking", err)
	}

	if booking.UserID != userID && !s.ownsAnyLegHotel(userID, &booking) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeForbidden, "You do not have access to this booking", nil)
	}
	return &booking, nil
}

// ownsAnyLegHotel kiểm tra userID có sở hữu hotel nào trong các leg phòng
func (s *BookingService) ownsAnyLegHotel(userID uint, booking *models.Booking) bool {
	if len(booking.RoomBookings) == 0 {
		return false
	}

	hotelIDs := make([]uint, 0, len(booking.RoomBookings))
	for _, rb := range booking.RoomBookings {
		hotelIDs = append(hotelIDs, rb.HotelID)
	}

	var count int64
	s.db.Model(&models.Hotel{}).
		Where("id IN ? AND owner_id = ?", hotelIDs, userID).
		Count(&count)
	return count > 0
}
