package dto

import "encoding/json"

// CreateRoomTypeRequest là DTO cho request tạo room type
type CreateRoomTypeRequest struct {
	Name          string          `json:"name" binding:"required"`
	PricePerNight float64         `json:"pricePerNight" binding:"required,gt=0"`
	TotalRooms    int             `json:"totalRooms" binding:"required,gt=0"`
	Amenities     json.RawMessage `json:"amenities" binding:"required"`
	Img           json.RawMessage `json:"img" binding:"required"`
}

// UpdateRoomTypeRequest là DTO cho request cập nhật room type
type UpdateRoomTypeRequest struct {
	Name          string          `json:"name"`
	PricePerNight *float64        `json:"pricePerNight"`
	Amenities     json.RawMessage `json:"amenities"`
	Img           json.RawMessage `json:"img"`
}
