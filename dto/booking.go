package dto

import (
	"encoding/json"
	"time"
)

// RoomLeg mô tả phần đặt phòng của một itinerary
type RoomLeg struct {
	RoomTypeID    uint   `json:"roomTypeId"`
	HotelID       uint   `json:"hotelId"`
	CheckInDate   string `json:"checkInDate"`
	CheckOutDate  string `json:"checkOutDate"`
	GuestCount    int    `json:"guestCount"`
	NumberOfRooms int    `json:"numberOfRooms"`
}

// FlightLeg mô tả phần đặt vé máy bay của một itinerary
type FlightLeg struct {
	FlightIDs      []string `json:"flightIds"`
	PassportNumber string   `json:"passportNumber"`
	PassengerCount int      `json:"passengerCount"`
	IsRoundTrip    *bool    `json:"isRoundTrip"`
}

// CreateItineraryRequest là DTO cho request tạo booking; ít nhất một
// trong hai leg phải có mặt.
type CreateItineraryRequest struct {
	Room               *RoomLeg        `json:"room"`
	Flight             *FlightLeg      `json:"flight"`
	FlightSearchParams json.RawMessage `json:"flightSearchParams"`
}

// RoomLegResponse tóm tắt leg phòng đã đặt
type RoomLegResponse struct {
	ID            uint    `json:"id"`
	RoomTypeID    uint    `json:"roomTypeId"`
	HotelID       uint    `json:"hotelId"`
	RoomTypeName  string  `json:"roomTypeName,omitempty"`
	HotelName     string  `json:"hotelName,omitempty"`
	CheckInDate   string  `json:"checkInDate"`
	CheckOutDate  string  `json:"checkOutDate"`
	Nights        int     `json:"nights"`
	GuestCount    int     `json:"guestCount"`
	NumberOfRooms int     `json:"numberOfRooms"`
	TotalPrice    float64 `json:"totalPrice"`
}

// FlightLegResponse tóm tắt leg chuyến bay đã đặt
type FlightLegResponse struct {
	ID             uint    `json:"id"`
	AfsBookingID   string  `json:"afsBookingId"`
	TicketNumber   string  `json:"ticketNumber,omitempty"`
	PassengerCount int     `json:"passengerCount"`
	TotalPrice     float64 `json:"totalPrice"`
	IsRoundTrip    bool    `json:"isRoundTrip"`
}

// CreateItineraryResponse là DTO cho response tạo booking
type CreateItineraryResponse struct {
	Message     string             `json:"message"`
	BookingID   uint               `json:"bookingId"`
	RoomBooking *RoomLegResponse   `json:"roomBooking,omitempty"`
	Flight      *FlightLegResponse `json:"flight,omitempty"`
	TotalPrice  float64            `json:"totalPrice"`
}

// BookingResponse là DTO cho response chi tiết booking
type BookingResponse struct {
	ID           uint                `json:"id"`
	UserID       uint                `json:"userId"`
	Status       int                 `json:"status"`
	TotalPrice   float64             `json:"totalPrice"`
	BookingDate  time.Time           `json:"bookingDate"`
	RoomBookings []RoomLegResponse   `json:"roomBookings"`
	Flights      []FlightLegResponse `json:"flights"`
}

// CancelRoomBookingRequest là DTO cho request hủy một leg phòng (chủ hotel)
type CancelRoomBookingRequest struct {
	RoomBookingID uint `json:"roomBookingId" binding:"required"`
	HotelID       uint `json:"hotelId" binding:"required"`
}
