package controllers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"stayr/dto"
	"stayr/middleware"
	"stayr/response"
	"stayr/services"
)

type FlightController struct {
	broker           services.FlightBroker
	lifecycleService *services.LifecycleService
}

func NewFlightController(broker services.FlightBroker, lifecycleService *services.LifecycleService) *FlightController {
	return &FlightController{broker: broker, lifecycleService: lifecycleService}
}

// SearchFlights proxy tìm chuyến bay sang AFS, trả nguyên payload
func (ctl *FlightController) SearchFlights(c *gin.Context) {
	var req dto.FlightSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "origin, destination and date query parameters are required")
		return
	}

	result, err := ctl.broker.SearchFlights(c.Request.Context(), req.Origin, req.Destination, req.Date)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, json.RawMessage(result))
}

// CancelFlight hủy một leg chuyến bay đã đặt qua AFS
func (ctl *FlightController) CancelFlight(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req dto.CancelFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := ctl.lifecycleService.CancelFlightLeg(c.Request.Context(), userID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, json.RawMessage(result))
}
