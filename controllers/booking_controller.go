package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"stayr/config"
	"stayr/constants"
	"stayr/dto"
	"stayr/middleware"
	"stayr/models"
	"stayr/response"
	"stayr/services"
)

type BookingController struct {
	bookingService   *services.BookingService
	lifecycleService *services.LifecycleService
	rdb              *redis.Client
}

type BookingControllerOptions struct {
	BookingService   *services.BookingService
	LifecycleService *services.LifecycleService
	Redis            *redis.Client
}

func NewBookingController(opts BookingControllerOptions) *BookingController {
	return &BookingController{
		bookingService:   opts.BookingService,
		lifecycleService: opts.LifecycleService,
		rdb:              opts.Redis,
	}
}

func convertToBookingResponse(booking *models.Booking) dto.BookingResponse {
	resp := dto.BookingResponse{
		ID:           booking.ID,
		UserID:       booking.UserID,
		Status:       booking.Status,
		TotalPrice:   booking.TotalPrice,
		BookingDate:  booking.BookingDate,
		RoomBookings: make([]dto.RoomLegResponse, 0, len(booking.RoomBookings)),
		Flights:      make([]dto.FlightLegResponse, 0, len(booking.Flights)),
	}
	for _, rb := range booking.RoomBookings {
		leg := dto.RoomLegResponse{
			ID:            rb.ID,
			RoomTypeID:    rb.RoomTypeID,
			HotelID:       rb.HotelID,
			CheckInDate:   rb.CheckInDate.Format(constants.DateLayout),
			CheckOutDate:  rb.CheckOutDate.Format(constants.DateLayout),
			Nights:        services.Nights(rb.CheckInDate, rb.CheckOutDate),
			GuestCount:    rb.GuestCount,
			NumberOfRooms: rb.NumberOfRooms,
			TotalPrice:    rb.TotalPrice,
		}
		if rb.RoomType != nil {
			leg.RoomTypeName = rb.RoomType.Name
		}
		if rb.Hotel != nil {
			leg.HotelName = rb.Hotel.Name
		}
		resp.RoomBookings = append(resp.RoomBookings, leg)
	}
	for _, f := range booking.Flights {
		resp.Flights = append(resp.Flights, dto.FlightLegResponse{
			ID:             f.ID,
			AfsBookingID:   f.AfsBookingID,
			TicketNumber:   f.TicketNumber,
			PassengerCount: f.PassengerCount,
			TotalPrice:     f.TotalPrice,
			IsRoundTrip:    f.IsRoundTrip,
		})
	}
	return resp
}

// CreateItinerary tạo booking mới gồm leg phòng và/hoặc leg chuyến bay
func (ctl *BookingController) CreateItinerary(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req dto.CreateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := ctl.bookingService.CreateItinerary(c.Request.Context(), userID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if req.Room != nil {
		ctl.invalidateAvailability(req.Room.HotelID)
	}
	response.Created(c, resp)
}

// Checkout thanh toán một booking PENDING
func (ctl *BookingController) Checkout(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	payment, err := ctl.lifecycleService.Checkout(userID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, payment)
}

// CancelBooking hủy toàn bộ booking theo id
func (ctl *BookingController) CancelBooking(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking id")
		return
	}

	booking, err := ctl.lifecycleService.CancelBooking(userID, uint(bookingID))
	if err != nil {
		response.FromError(c, err)
		return
	}

	for _, rb := range booking.RoomBookings {
		ctl.invalidateAvailability(rb.HotelID)
	}
	response.Success(c, convertToBookingResponse(booking))
}

// CancelRoomBooking cho chủ hotel hủy booking qua một leg phòng thuộc
// hotel của mình
func (ctl *BookingController) CancelRoomBooking(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req dto.CancelRoomBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	booking, err := ctl.lifecycleService.CancelRoomBooking(userID, req.RoomBookingID, req.HotelID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	ctl.invalidateAvailability(req.HotelID)
	response.Success(c, convertToBookingResponse(booking))
}

// GetBookings liệt kê booking theo quyền của user hiện tại
func (ctl *BookingController) GetBookings(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	role := middleware.CurrentUserRole(c)

	bookings, err := ctl.bookingService.GetBookingsForUser(userID, role)
	if err != nil {
		response.FromError(c, err)
		return
	}

	bookingResponses := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		bookingResponses = append(bookingResponses, convertToBookingResponse(&bookings[i]))
	}
	response.Success(c, bookingResponses)
}

// GetBookingDetail lấy chi tiết một booking
func (ctl *BookingController) GetBookingDetail(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking id")
		return
	}

	booking, err := ctl.bookingService.GetBooking(uint(bookingID), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, convertToBookingResponse(booking))
}

func (ctl *BookingController) invalidateAvailability(hotelID uint) {
	if ctl.rdb == nil {
		return
	}
	pattern := fmt.Sprintf("availability:%d:*", hotelID)
	_ = services.DeleteKeysByPattern(config.Ctx, ctl.rdb, pattern)
}
