package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction bản ghi sổ cái di chuyển tiền của một user.
// Bản ghi Completed là bất biến; chỉ bản ghi pending được settle
// sang Completed hoặc Failed và không bao giờ quay lại.
type Transaction struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;index" json:"userId"`
	BookingID string    `gorm:"size:36;index" json:"bookingId,omitempty"`
	Type      string    `gorm:"size:20" json:"type"`
	Amount    float64   `json:"amount"`
	Date      string    `gorm:"size:10" json:"date"` // yyyy-mm-dd
	Status    string    `gorm:"size:10" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
