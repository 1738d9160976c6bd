package models

import (
	"time"

	"gorm.io/gorm"
)

// AccessLog records a physical or app-side access event against a space
// (check-in, check-out, key handover).
type AccessLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	SpaceID   uint           `gorm:"not null;index" json:"space_id"`
	UserID    *uint          `gorm:"index" json:"user_id"`
	Action    string         `gorm:"size:64;not null" json:"action"`
	BookingID *uint          `gorm:"index" json:"booking_id"`
	IP        string         `gorm:"size:64" json:"ip"`
	UserAgent string         `gorm:"size:255" json:"user_agent"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AccessLog) TableName() string { return "access_logs" }
