package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// StaleBookingNotifier định nghĩa interface cho việc nhắc đơn pending quá hạn
type StaleBookingNotifier interface {
	NotifyStalePending(ctx context.Context, olderThan time.Duration) (int, error)
}

var staleBookingNotifier StaleBookingNotifier

// SetStaleBookingNotifier thiết lập implementation cho StaleBookingNotifier
func SetStaleBookingNotifier(notifier StaleBookingNotifier) {
	staleBookingNotifier = notifier
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron) error {
	// Cron job chạy lúc 9h sáng mỗi ngày
	_, err := c.AddFunc("0 9 * * *", func() {
		if staleBookingNotifier == nil {
			log.Printf("Lỗi: StaleBookingNotifier chưa được thiết lập")
			return
		}
		reminded, err := staleBookingNotifier.NotifyStalePending(context.Background(), 24*time.Hour)
		if err != nil {
			log.Printf("Lỗi khi nhắc đơn đặt phòng quá hạn: %v", err)
			return
		}
		log.Printf("Đã nhắc %d đơn đặt phòng đang chờ duyệt quá hạn", reminded)
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
