package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification hộp thư thông báo của user; chỉ cờ Read được cập nhật sau khi tạo
type Notification struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;index" json:"userId"`
	Type      string    `gorm:"size:30" json:"type"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Link      string    `json:"link,omitempty"`
	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
