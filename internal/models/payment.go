package models

import (
	"time"

	"schedura/internal/domain"
)

// Payment is one payment attempt. TransactionID is the client-facing
// identifier and is assigned exactly once before the row becomes visible.
// Status leaves "pending" only through the webhook's conditional update;
// a terminal row is never mutated again.
type Payment struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	TransactionID string     `gorm:"size:64;uniqueIndex;not null" json:"transaction_id"`
	UserID        uint       `gorm:"not null;index" json:"user_id"`
	BookingID     *uint      `gorm:"index" json:"booking_id"`
	AmountPaise   int64      `gorm:"not null" json:"amount_paise"`
	Currency      string     `gorm:"size:3;not null;default:'INR'" json:"currency"`
	UPIID         string     `gorm:"size:128;not null" json:"upi_id"`
	Description   string     `gorm:"size:255" json:"description"`
	Status        string     `gorm:"size:20;not null;index" json:"status"` // pending, success, failed
	UTR           *string    `gorm:"size:64" json:"utr"`                   // bank reference, set once by the webhook
	CompletedAt   *time.Time `json:"completed_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	User    User     `gorm:"foreignKey:UserID" json:"-"`
	Booking *Booking `gorm:"foreignKey:BookingID" json:"-"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) IsTerminal() bool { return p.Status != domain.PaymentStatusPending }
