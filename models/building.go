package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Building struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id"`
	OwnerID      string         `gorm:"size:36;index" json:"ownerId"`
	Name         string         `json:"name"`
	Address      string         `json:"address"`
	Description  string         `gorm:"type:text" json:"description"`
	Images       pq.StringArray `gorm:"type:text[]" json:"images"`
	Latitude     float64        `json:"lat"`
	Longitude    float64        `json:"lng"`
	TimeCheckIn  string         `json:"checkIn"`  // giờ nhận phòng hiển thị, ví dụ "14:00"
	TimeCheckOut string         `json:"checkOut"` // giờ trả phòng hiển thị
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	Owner        *User          `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Rooms        []Room         `json:"rooms,omitempty" gorm:"foreignKey:BuildingID"`
}

func (b *Building) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
