package jobs

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// BookingExpirer định nghĩa interface cho việc hết hạn booking PENDING
type BookingExpirer interface {
	ExpireStalePending(window time.Duration) (int, error)
}

var bookingExpirer BookingExpirer

// SetBookingExpirer thiết lập implementation cho BookingExpirer
func SetBookingExpirer(expirer BookingExpirer) {
	bookingExpirer = expirer
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron, pendingWindow time.Duration) error {
	// Cron job chạy mỗi giờ, hủy các booking PENDING quá hạn thanh toán
	_, err := c.AddFunc("0 * * * *", func() {
		if bookingExpirer == nil {
			log.Printf("BookingExpirer is not configured")
			return
		}
		expired, err := bookingExpirer.ExpireStalePending(pendingWindow)
		if err != nil {
			log.Printf("Error expiring stale pending bookings: %v", err)
			return
		}
		if expired > 0 {
			log.Printf("Cancelled %d stale pending bookings", expired)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
