package dto

import (
	"encoding/json"

	"stayr/models"
)

// CreateHotelRequest là DTO cho request tạo hotel
type CreateHotelRequest struct {
	Name       string          `json:"name" binding:"required"`
	Address    string          `json:"address" binding:"required"`
	City       string          `json:"city" binding:"required"`
	Country    string          `json:"country" binding:"required"`
	StarRating int             `json:"starRating"`
	Logo       string          `json:"logo"`
	Img        json.RawMessage `json:"img"`
}

// UpdateHotelRequest là DTO cho request cập nhật hotel
type UpdateHotelRequest struct {
	Name       string          `json:"name"`
	Address    string          `json:"address"`
	City       string          `json:"city"`
	Country    string          `json:"country"`
	StarRating *int            `json:"starRating"`
	Logo       string          `json:"logo"`
	Img        json.RawMessage `json:"img"`
}

// HotelResponse là DTO cho response hotel
type HotelResponse struct {
	ID         uint              `json:"id"`
	OwnerID    uint              `json:"ownerId"`
	Name       string            `json:"name"`
	Address    string            `json:"address"`
	City       string            `json:"city"`
	Country    string            `json:"country"`
	StarRating int               `json:"starRating"`
	Logo       string            `json:"logo"`
	Img        json.RawMessage   `json:"img"`
	RoomTypes  []models.RoomType `json:"roomTypes,omitempty"`
}

// ScoredHotel gắn điểm phù hợp của hotel với query tìm kiếm
type ScoredHotel struct {
	Hotel models.Hotel
	Score int
}
