package notification

import (
	"encoding/json"
	"fmt"

	"github.com/olahol/melody"
	"gorm.io/gorm"

	"stayr/models"
)

// Sink nhận notification record và phát cho client đang kết nối.
// Delivery là fire-and-forget: lỗi broadcast không ảnh hưởng booking.
type Sink interface {
	Create(tx *gorm.DB, userID uint, bookingID *uint, ntype, message string) error
	Broadcast(n *models.Notification)
}

// MelodySink ghi notification vào DB và broadcast qua websocket
type MelodySink struct {
	m *melody.Melody
}

func NewMelodySink(m *melody.Melody) *MelodySink {
	return &MelodySink{m: m}
}

// Create ghi notification row bằng handle/tx được truyền vào, để caller
// quyết định notification có nằm trong transaction booking hay không
func (s *MelodySink) Create(tx *gorm.DB, userID uint, bookingID *uint, ntype, message string) error {
	n := models.Notification{
		UserID:    userID,
		BookingID: bookingID,
		Type:      ntype,
		Message:   message,
	}
	return tx.Create(&n).Error
}

// Broadcast phát notification cho các session websocket của đúng user
func (s *MelodySink) Broadcast(n *models.Notification) {
	if s.m == nil {
		return
	}
	payload, err := json.Marshal(n)
	if err != nil {
		payload = []byte(fmt.Sprintf("notification for user %d", n.UserID))
	}
	_ = s.m.BroadcastFilter(payload, func(sess *melody.Session) bool {
		userID, ok := sess.Get("userID")
		return ok && userID == n.UserID
	})
}

// NopSink bỏ qua broadcast, dùng trong test
type NopSink struct{}

func (NopSink) Create(tx *gorm.DB, userID uint, bookingID *uint, ntype, message string) error {
	n := models.Notification{
		UserID:    userID,
		BookingID: bookingID,
		Type:      ntype,
		Message:   message,
	}
	return tx.Create(&n).Error
}

func (NopSink) Broadcast(n *models.Notification) {}
