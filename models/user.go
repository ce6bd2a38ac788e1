package models

import (
	"time"

	"github.com/lib/pq"
)

// User tài khoản vận hành cho dashboard
type User struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name"`
	Email       string         `json:"email" gorm:"unique"`
	Password    string         `json:"-"`
	PhoneNumber string         `json:"phoneNumber"`
	Role        int            `json:"role"` // 0: lễ tân, 1: admin
	Status      int            `json:"status" gorm:"default:1"`
	Permissions pq.StringArray `json:"permissions" gorm:"type:text[]"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}
