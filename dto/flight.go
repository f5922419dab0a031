package dto

// CancelFlightRequest là DTO cho request hủy leg chuyến bay; lastName
// là yếu tố xác nhận thứ hai, phải khớp với user sở hữu booking.
type CancelFlightRequest struct {
	LastName                 string `json:"lastName" binding:"required"`
	FlightBookingReferenceID uint   `json:"flightBookingReferenceId" binding:"required"`
}

// FlightSearchRequest là DTO cho request tìm chuyến bay qua AFS
type FlightSearchRequest struct {
	Origin      string `form:"origin" binding:"required"`
	Destination string `form:"destination" binding:"required"`
	Date        string `form:"date" binding:"required"`
}
