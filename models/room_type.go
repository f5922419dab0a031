package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type RoomType struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	HotelID       uint            `json:"hotelId" gorm:"index;uniqueIndex:idx_hotel_room_name"`
	Name          string          `json:"name" gorm:"uniqueIndex:idx_hotel_room_name"`
	PricePerNight float64         `json:"pricePerNight"`
	TotalRooms    int             `json:"totalRooms"`
	Amenities     json.RawMessage `json:"amenities" gorm:"type:json"`
	Img           json.RawMessage `json:"img" gorm:"type:json"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`

	Hotel        Hotel         `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
	RoomBookings []RoomBooking `json:"roomBookings,omitempty" gorm:"foreignKey:RoomTypeID"`
}

func (r *RoomType) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("room type name is required")
	}
	if r.PricePerNight <= 0 {
		return fmt.Errorf("pricePerNight must be positive, got %v", r.PricePerNight)
	}
	if r.TotalRooms <= 0 {
		return fmt.Errorf("totalRooms must be positive, got %d", r.TotalRooms)
	}
	if err := requireNonEmptyArray(r.Amenities, "amenities"); err != nil {
		return err
	}
	if err := requireNonEmptyArray(r.Img, "img"); err != nil {
		return err
	}
	return nil
}

// requireNonEmptyArray bắt buộc cột json là mảng có ít nhất một phần tử
func requireNonEmptyArray(raw json.RawMessage, field string) error {
	if len(raw) == 0 {
		return fmt.Errorf("%s is required", field)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("%s must be a json array", field)
	}
	if len(items) == 0 {
		return fmt.Errorf("%s must not be empty", field)
	}
	return nil
}
