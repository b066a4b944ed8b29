package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Name        string    `gorm:"default:New User" json:"name"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `gorm:"unique" json:"email"`
	PhoneNumber string    `gorm:"type:varchar(15)" json:"phoneNumber"`
	AvatarURL   string    `json:"avatarUrl"`
	Role        int       `gorm:"default:0" json:"role"` // 0: người thuê, 1: admin, 2: chủ nhà
	DateJoined  string    `gorm:"default:''" json:"dateJoined"`
	Banks       []Bank    `json:"banks" gorm:"foreignKey:UserID"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
