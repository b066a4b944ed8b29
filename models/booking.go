package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking đơn đặt phòng; chỉ state machine được đổi status, không bao giờ xóa
type Booking struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	UserID          string    `gorm:"size:36;index" json:"userId"`
	BuildingID      string    `gorm:"size:36;index" json:"buildingId"`
	RoomID          string    `gorm:"size:36" json:"roomId"`
	BuildingName    string    `json:"buildingName"`
	BuildingAddress string    `json:"buildingAddress"`
	RoomName        string    `json:"roomName"`
	ImageURL        string    `json:"imageUrl"`
	CheckIn         string    `gorm:"size:10" json:"checkIn"`  // yyyy-mm-dd
	CheckOut        string    `gorm:"size:10" json:"checkOut"` // yyyy-mm-dd
	TotalPrice      float64   `json:"totalPrice"`
	Status          string    `gorm:"size:20;default:pending" json:"status"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
