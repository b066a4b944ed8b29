package notification

import (
	"fmt"

	"github.com/olahol/melody"
)

type Service interface {
	SendMessage(message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// BookingMessage dựng nội dung broadcast cho một chuyển đổi trạng thái booking
func BookingMessage(bookingID, status string) string {
	return fmt.Sprintf("🔔 Đơn đặt phòng %s chuyển sang trạng thái %s.", bookingID, status)
}

// WalletMessage dựng nội dung broadcast cho một biến động ví
func WalletMessage(userID string, txnType string, amount float64) string {
	return fmt.Sprintf("🔔 Ví của user %s vừa ghi nhận %s %.2f.", userID, txnType, amount)
}
