package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type Hotel struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	OwnerID    uint            `json:"ownerId" gorm:"index"`
	Name       string          `json:"name" gorm:"not null"`
	Address    string          `json:"address"`
	City       string          `json:"city" gorm:"index"`
	Country    string          `json:"country"`
	StarRating int             `json:"starRating"`
	Logo       string          `json:"logo"`
	Img        json.RawMessage `json:"img" gorm:"type:json"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`

	Owner     User       `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	RoomTypes []RoomType `json:"roomTypes,omitempty" gorm:"foreignKey:HotelID"`
}

func (h *Hotel) ValidateStarRating() error {
	if h.StarRating < 0 || h.StarRating > 5 {
		return fmt.Errorf("invalid starRating: %d, must be between 0 and 5", h.StarRating)
	}
	return nil
}
