package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Room bảng giá của phòng: các mức giá/cọc bằng 0 nghĩa là chưa cấu hình
type Room struct {
	ID             string         `gorm:"primaryKey;size:36" json:"id"`
	BuildingID     string         `gorm:"size:36;index" json:"buildingId"`
	OwnerID        string         `gorm:"size:36" json:"ownerId"`
	Name           string         `json:"name"`
	RoomType       string         `gorm:"size:20" json:"roomType"` // single | double | couple | multiple
	PriceMonthly   float64        `json:"priceMonthly"`
	PriceWeekly    float64        `json:"priceWeekly"`
	PriceDaily     float64        `json:"priceDaily"`
	DepositMonthly float64        `json:"depositMonthly"`
	DepositWeekly  float64        `json:"depositWeekly"`
	DepositDaily   float64        `json:"depositDaily"`
	Amenities      pq.StringArray `gorm:"type:text[]" json:"amenities"`
	Images         pq.StringArray `gorm:"type:text[]" json:"images"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	Building       *Building      `json:"building,omitempty" gorm:"foreignKey:BuildingID"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
