package models

import (
	"time"

	"schedura/internal/domain"

	"gorm.io/gorm"
)

type Booking struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	SpaceID       uint           `gorm:"not null;index" json:"space_id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	StartAt       time.Time      `gorm:"not null;index" json:"start_at"`
	EndAt         time.Time      `gorm:"not null" json:"end_at"`
	Status        string         `gorm:"size:20;not null;index" json:"status"`                    // PENDING, ACCEPTED, REJECTED, CANCELLED
	PaymentStatus string         `gorm:"size:20;not null;default:'UNPAID'" json:"payment_status"` // UNPAID, PAID
	Note          string         `gorm:"size:512" json:"note"`
	DecidedAt     *time.Time     `json:"decided_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Space Space `gorm:"foreignKey:SpaceID" json:"space,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Booking) TableName() string { return "bookings" }

func (b *Booking) IsAccepted() bool { return b.Status == domain.BookingStatusAccepted }
