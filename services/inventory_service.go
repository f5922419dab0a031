package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stayr/constants"
	"stayr/dto"
	apperrors "stayr/errors"
	"stayr/models"
	"stayr/services/logger"
)

// RoomQuote là kết quả kiểm tra tồn kho cho một leg phòng, chưa ghi gì
// xuống DB; việc ghi nằm trong transaction của BookingService.
type RoomQuote struct {
	RoomType      *models.RoomType
	CheckIn       time.Time
	CheckOut      time.Time
	Nights        int
	UnitPrice     float64
	NumberOfRooms int
	TotalPrice    float64
}

// InventoryService quản lý tồn kho phòng theo khoảng ngày
type InventoryService struct {
	db     *gorm.DB
	logger logger.Logger
}

type InventoryServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewInventoryService(opts InventoryServiceOptions) *InventoryService {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &InventoryService{db: opts.DB, logger: l}
}

// Nights tính số đêm, tối thiểu 1
func Nights(checkIn, checkOut time.Time) int {
	n := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if n < 1 {
		n = 1
	}
	return n
}

// Quote load room type, kiểm tra tồn kho cho khoảng ngày và tính giá.
// Read-only: dùng trước khi gọi flight broker để fail sớm.
func (s *InventoryService) Quote(roomTypeID, hotelID uint, checkIn, checkOut time.Time, rooms int) (*RoomQuote, error) {
	if rooms < 1 {
		return nil, apperrors.NewAppError(apperrors.ErrCodeValidation, "numberOfRooms must be at least 1", nil)
	}

	var roomType models.RoomType
	if err := s.db.Preload("Hotel").First(&roomType, roomTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBNotFound, "Room type not found", err)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot load room type", err)
	}

	if roomType.HotelID != hotelID {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidRelation, "Room type does not belong to this hotel", nil)
	}

	booked, err := s.countOverlapping(s.db, roomTypeID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	if booked+rooms > roomType.TotalRooms {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInsufficientInventory, "Not enough rooms available for the selected dates", nil)
	}

	nights := Nights(checkIn, checkOut)
	return &RoomQuote{
		RoomType:      &roomType,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Nights:        nights,
		UnitPrice:     roomType.PricePerNight,
		NumberOfRooms: rooms,
		TotalPrice:    roomType.PricePerNight * float64(nights) * float64(rooms),
	}, nil
}

// Reserve chạy bên trong transaction của booking: lock room type, đếm
// lại overlap rồi mới insert RoomBooking. Đếm và ghi cùng transaction
// để hai request trùng ngày không cùng vượt totalRooms.
func (s *InventoryService) Reserve(tx *gorm.DB, bookingID uint, quote *RoomQuote, guestCount int) (*models.RoomBooking, error) {
	var roomType models.RoomType
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(&roomType, quote.RoomType.ID).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot lock room type", err)
	}

	booked, err := s.countOverlapping(tx, roomType.ID, quote.CheckIn, quote.CheckOut)
	if err != nil {
		return nil, err
	}

	if booked+quote.NumberOfRooms > roomType.TotalRooms {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInsufficientInventory, "Not enough rooms available for the selected dates", nil)
	}

	roomBooking := models.RoomBooking{
		BookingID:     bookingID,
		RoomTypeID:    roomType.ID,
		HotelID:       roomType.HotelID,
		CheckInDate:   quote.CheckIn,
		CheckOutDate:  quote.CheckOut,
		GuestCount:    guestCount,
		NumberOfRooms: quote.NumberOfRooms,
		TotalPrice:    quote.TotalPrice,
	}
	if err := tx.Create(&roomBooking).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot create room booking", err)
	}

	return &roomBooking, nil
}

// countOverlapping đếm số phòng đã giữ chỗ trùng với [checkIn, checkOut).
// Overlap nửa mở: một booking trùng trừ khi nó kết thúc trước checkIn
// hoặc bắt đầu sau checkOut. Booking CANCELLED không giữ phòng.
func (s *InventoryService) countOverlapping(tx *gorm.DB, roomTypeID uint, checkIn, checkOut time.Time) (int, error) {
	var booked int64
	err := tx.Model(&models.RoomBooking{}).
		Select("COALESCE(SUM(room_bookings.number_of_rooms), 0)").
		Joins("JOIN bookings ON bookings.id = room_bookings.booking_id").
		Where("room_bookings.room_type_id = ?", roomTypeID).
		Where("room_bookings.check_in_date < ? AND room_bookings.check_out_date > ?", checkOut, checkIn).
		Where("bookings.status <> ?", constants.BookingStatusCancelled).
		Scan(&booked).Error
	if err != nil {
		return 0, apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot count overlapping bookings", err)
	}
	return int(booked), nil
}

// AvailabilityReport trả về tình trạng từng room type của hotel trong
// khoảng ngày. Báo cáo dành cho dashboard chủ hotel nên chỉ chủ sở hữu
// được xem.
func (s *InventoryService) AvailabilityReport(ownerID, hotelID uint, start, end time.Time) ([]dto.RoomTypeAvailability, error) {
	var hotel models.Hotel
	if err := s.db.First(&hotel, hotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBNotFound, "Hotel not found", err)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot load hotel", err)
	}
	if hotel.OwnerID != ownerID {
		return nil, apperrors.NewAppError(apperrors.ErrCodeForbidden, "Only the hotel owner can view the availability report", nil)
	}

	var roomTypes []models.RoomType
	if err := s.db.Where("hotel_id = ?", hotelID).Order("id").Find(&roomTypes).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot load room types", err)
	}

	report := make([]dto.RoomTypeAvailability, 0, len(roomTypes))
	for _, rt := range roomTypes {
		booked, err := s.countOverlapping(s.db, rt.ID, start, end)
		if err != nil {
			return nil, err
		}

		available := rt.TotalRooms - booked
		if available < 0 {
			available = 0
		}

		report = append(report, dto.RoomTypeAvailability{
			RoomTypeID:     rt.ID,
			RoomType:       rt.Name,
			PricePerNight:  rt.PricePerNight,
			TotalRooms:     rt.TotalRooms,
			BookedRooms:    booked,
			AvailableRooms: available,
		})
	}
	return report, nil
}

// UpdateCapacity cho chủ hotel đặt lại totalRooms. Không kiểm tra số
// phòng đang đặt vượt tổng mới: booking cũ vẫn được giữ nguyên.
func (s *InventoryService) UpdateCapacity(ownerID, hotelID, roomTypeID uint, newTotalRooms int) error {
	if newTotalRooms <= 0 {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "newTotalRooms must be positive", nil)
	}

	var roomType models.RoomType
	if err := s.db.Preload("Hotel").First(&roomType, roomTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewAppError(apperrors.ErrCodeDBNotFound, "Room type not found", err)
		}
		return apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot load room type", err)
	}

	if roomType.HotelID != hotelID {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidRelation, "Room type does not belong to this hotel", nil)
	}
	if roomType.Hotel.OwnerID != ownerID {
		return apperrors.NewAppError(apperrors.ErrCodeForbidden, "Only the hotel owner can update capacity", nil)
	}

	if err := s.db.Model(&roomType).Update("total_rooms", newTotalRooms).Error; err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeDBError, "Cannot update capacity", err)
	}

	s.logger.Info("room type %d capacity updated to %d", roomTypeID, newTotalRooms)
	return nil
}
