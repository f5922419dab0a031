package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"stayr/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.RoomType{},
		&models.Booking{},
		&models.RoomBooking{},
		&models.FlightBookingReference{},
		&models.PaymentInfo{},
		&models.Notification{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role int) *models.User {
	t.Helper()

	user := models.User{
		FirstName: "Test",
		LastName:  "Nguyen",
		Email:     email,
		Password:  "hashed",
		Role:      role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestHotel(t *testing.T, db *gorm.DB, ownerID uint) *models.Hotel {
	t.Helper()

	hotel := models.Hotel{
		OwnerID:    ownerID,
		Name:       "Lakeside Inn",
		Address:    "12 Shore Rd",
		City:       "Da Nang",
		Country:    "Vietnam",
		StarRating: 4,
	}
	require.NoError(t, db.Create(&hotel).Error)
	return &hotel
}

func createTestRoomType(t *testing.T, db *gorm.DB, hotelID uint, price float64, totalRooms int) *models.RoomType {
	t.Helper()

	roomType := models.RoomType{
		HotelID:       hotelID,
		Name:          fmt.Sprintf("Deluxe-%d", totalRooms),
		PricePerNight: price,
		TotalRooms:    totalRooms,
		Amenities:     json.RawMessage(`["wifi"]`),
		Img:           json.RawMessage(`["https://img.example.com/room.jpg"]`),
	}
	require.NoError(t, db.Create(&roomType).Error)
	return &roomType
}

// fakeBroker là FlightBroker giả cho test, ghi lại lời gọi
type fakeBroker struct {
	result    *FlightBookingResult
	err       error
	bookCalls int
	lastIDs   []string
}

func (f *fakeBroker) BookFlights(ctx context.Context, flightIDs []string, passenger Passenger) (*FlightBookingResult, error) {
	f.bookCalls++
	f.lastIDs = flightIDs
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeBroker) CancelFlight(ctx context.Context, lastName, bookingReference string) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"status":"CANCELLED"}`), nil
}

func (f *fakeBroker) SearchFlights(ctx context.Context, origin, destination, date string) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"results":[]}`), nil
}
