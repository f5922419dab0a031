package constants

// User roles
const (
	RoleUser       = 0
	RoleHotelOwner = 1
)

// Booking status
const (
	BookingStatusPending   = 0
	BookingStatusConfirmed = 1
	BookingStatusCancelled = 2
)

// Notification types
const (
	NotificationBookingConfirmation = "BOOKING_CONFIRMATION"
	NotificationBookingCancellation = "BOOKING_CANCELLATION"
	NotificationHotelNewBooking     = "HOTEL_NEW_BOOKING"
	NotificationBookingCreated      = "BOOKING_CREATED"
)

// DateLayout is the wire format for check-in/check-out dates.
const DateLayout = "2006-01-02"
