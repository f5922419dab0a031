package models

import (
	"time"
)

type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	FirstName   string    `gorm:"default:New" json:"firstName"`
	LastName    string    `gorm:"default:User" json:"lastName"`
	Email       string    `gorm:"unique;not null" json:"email"`
	Password    string    `json:"-"`
	PhoneNumber string    `gorm:"type:varchar(15)" json:"phoneNumber"`
	Role        int       `gorm:"default:0" json:"role"`
	Avatar      string    `json:"avatar"`

	Hotels        []Hotel        `json:"hotels,omitempty" gorm:"foreignKey:OwnerID"`
	Bookings      []Booking      `json:"bookings,omitempty" gorm:"foreignKey:UserID"`
	Notifications []Notification `json:"notifications,omitempty" gorm:"foreignKey:UserID"`
}
