package models

import (
	"encoding/json"
	"time"
)

// Booking là aggregate root của một lần mua: phòng, vé máy bay hoặc cả hai.
type Booking struct {
	ID                 uint            `json:"id" gorm:"primaryKey"`
	UserID             uint            `json:"userId" gorm:"index"`
	User               *User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Status             int             `json:"status" gorm:"default:0"`
	TotalPrice         float64         `json:"totalPrice"`
	BookingDate        time.Time       `json:"bookingDate"`
	FlightSearchParams json.RawMessage `json:"flightSearchParams,omitempty" gorm:"type:json"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`

	RoomBookings []RoomBooking            `json:"roomBookings,omitempty" gorm:"foreignKey:BookingID"`
	Flights      []FlightBookingReference `json:"flights,omitempty" gorm:"foreignKey:BookingID"`
	PaymentInfo  *PaymentInfo             `json:"paymentInfo,omitempty" gorm:"foreignKey:BookingID"`
}

// RoomBooking là một leg phòng của Booking. HotelID được denormalize
// để check quyền sở hữu không phải join qua room_types.
type RoomBooking struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	BookingID     uint      `json:"bookingId" gorm:"index"`
	RoomTypeID    uint      `json:"roomTypeId" gorm:"index"`
	HotelID       uint      `json:"hotelId" gorm:"index"`
	CheckInDate   time.Time `json:"checkInDate" gorm:"index"`
	CheckOutDate  time.Time `json:"checkOutDate" gorm:"index"`
	GuestCount    int       `json:"guestCount"`
	NumberOfRooms int       `json:"numberOfRooms"`
	TotalPrice    float64   `json:"totalPrice"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Booking  *Booking  `json:"-" gorm:"foreignKey:BookingID"`
	RoomType *RoomType `json:"roomType,omitempty" gorm:"foreignKey:RoomTypeID"`
	Hotel    *Hotel    `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
}

// FlightBookingReference là một leg chuyến bay, chỉ tồn tại khi AFS
// đã trả về booking id.
type FlightBookingReference struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	BookingID      uint      `json:"bookingId" gorm:"index"`
	AfsBookingID   string    `json:"afsBookingId"`
	TicketNumber   string    `json:"ticketNumber"`
	PassengerCount int       `json:"passengerCount"`
	TotalPrice     float64   `json:"totalPrice"`
	IsRoundTrip    bool      `json:"isRoundTrip"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Booking *Booking `json:"-" gorm:"foreignKey:BookingID"`
}
