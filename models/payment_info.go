package models

import "time"

// PaymentInfo lưu thông tin thanh toán, không bao giờ lưu số thẻ đầy đủ.
type PaymentInfo struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	BookingID      uint      `json:"bookingId" gorm:"uniqueIndex"`
	CardholderName string    `json:"cardholderName"`
	CardLastFour   string    `json:"cardLastFour" gorm:"type:varchar(4)"`
	ExpiryDate     string    `json:"expiryDate" gorm:"type:varchar(5)"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
