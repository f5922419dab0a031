package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stayr/config"
	"stayr/dto"
	"stayr/middleware"
	"stayr/models"
	"stayr/response"
	"stayr/services"
	"stayr/validator"
)

type RoomController struct {
	db        *gorm.DB
	rdb       *redis.Client
	inventory *services.InventoryService
}

func NewRoomController(db *gorm.DB, rdb *redis.Client, inventory *services.InventoryService) *RoomController {
	return &RoomController{db: db, rdb: rdb, inventory: inventory}
}

func availabilityCacheKey(hotelID uint, start, end string) string {
	return fmt.Sprintf("availability:%d:%s:%s", hotelID, start, end)
}

// CreateRoomType tạo room type mới cho hotel, chỉ chủ sở hữu
func (ctl *RoomController) CreateRoomType(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	hotelID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid hotel id")
		return
	}

	var hotel models.Hotel
	if err := ctl.db.First(&hotel, hotelID).Error; err != nil {
		response.NotFound(c)
		return
	}
	if hotel.OwnerID != userID {
		response.Forbidden(c)
		return
	}

	var req dto.CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	roomType := models.RoomType{
		HotelID:       hotel.ID,
		Name:          req.Name,
		PricePerNight: req.PricePerNight,
		TotalRooms:    req.TotalRooms,
		Amenities:     req.Amenities,
		Img:           req.Img,
	}
	if err := roomType.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := ctl.db.Create(&roomType).Error; err != nil {
		response.ServerError(c)
		return
	}

	ctl.invalidateAvailabilityCache(hotel.ID)
	response.Created(c, roomType)
}

// GetRoomTypes liệt kê room type của một hotel
func (ctl *RoomController) GetRoomTypes(c *gin.Context) {
	hotelID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid hotel id")
		return
	}

	var roomTypes []models.RoomType
	if err := ctl.db.Where("hotel_id = ?", hotelID).Order("id").Find(&roomTypes).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, roomTypes)
}

// UpdateRoomType cập nhật room type, chỉ chủ sở hữu hotel
func (ctl *RoomController) UpdateRoomType(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	roomTypeID, err := strconv.Atoi(c.Param("roomTypeId"))
	if err != nil {
		response.BadRequest(c, "Invalid room type id")
		return
	}

	var roomType models.RoomType
	if err := ctl.db.Preload("Hotel").First(&roomType, roomTypeID).Error; err != nil {
		response.NotFound(c)
		return
	}
	if roomType.Hotel.OwnerID != userID {
		response.Forbidden(c)
		return
	}

	var req dto.UpdateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.PricePerNight != nil {
		if *req.PricePerNight <= 0 {
			response.BadRequest(c, "pricePerNight must be positive")
			return
		}
		updates["price_per_night"] = *req.PricePerNight
	}
	if req.Amenities != nil {
		updates["amenities"] = req.Amenities
	}
	if req.Img != nil {
		updates["img"] = req.Img
	}

	if err := ctl.db.Model(&roomType).Updates(updates).Error; err != nil {
		response.ServerError(c)
		return
	}

	ctl.invalidateAvailabilityCache(roomType.HotelID)
	response.Success(c, roomType)
}

// GetAvailability báo cáo tình trạng phòng của hotel trong khoảng ngày,
// chỉ cho chủ sở hữu, có cache redis theo (hotel, start, end)
func (ctl *RoomController) GetAvailability(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	hotelID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid hotel id")
		return
	}

	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" || endStr == "" {
		response.BadRequest(c, "start and end query parameters are required")
		return
	}

	start, end, err := validator.ParseDateRange(startStr, endStr)
	if err != nil {
		response.FromError(c, err)
		return
	}

	// Kiểm tra quyền trước khi chạm cache: cache hit không được
	// bỏ qua ownership
	var hotel models.Hotel
	if err := ctl.db.First(&hotel, hotelID).Error; err != nil {
		response.NotFound(c)
		return
	}
	if hotel.OwnerID != userID {
		response.Forbidden(c)
		return
	}

	cacheKey := availabilityCacheKey(uint(hotelID), startStr, endStr)
	var report []dto.RoomTypeAvailability
	if err := services.GetFromRedis(config.Ctx, ctl.rdb, cacheKey, &report); err == nil && len(report) > 0 {
		response.Success(c, report)
		return
	}

	report, err = ctl.inventory.AvailabilityReport(userID, uint(hotelID), start, end)
	if err != nil {
		response.FromError(c, err)
		return
	}

	_ = services.SetToRedis(config.Ctx, ctl.rdb, cacheKey, report, 5*time.Minute)
	response.Success(c, report)
}

// UpdateCapacity cho chủ hotel đặt lại tổng số phòng của room type
func (ctl *RoomController) UpdateCapacity(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	hotelID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid hotel id")
		return
	}

	var req dto.UpdateCapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := ctl.inventory.UpdateCapacity(userID, uint(hotelID), req.RoomTypeID, req.NewTotalRooms); err != nil {
		response.FromError(c, err)
		return
	}

	ctl.invalidateAvailabilityCache(uint(hotelID))
	response.Success(c, gin.H{"message": "Capacity updated"})
}

func (ctl *RoomController) invalidateAvailabilityCache(hotelID uint) {
	pattern := fmt.Sprintf("availability:%d:*", hotelID)
	_ = services.DeleteKeysByPattern(config.Ctx, ctl.rdb, pattern)
}
