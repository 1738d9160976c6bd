package models

import (
	"time"

	"gorm.io/gorm"
)

type Space struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"size:128;not null" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	Location       string         `gorm:"size:255" json:"location"`
	Capacity       int            `gorm:"not null;default:0" json:"capacity"`
	PricePerHour   int64          `gorm:"not null;default:0" json:"price_per_hour"` // rupees
	Category       string         `gorm:"size:32;index" json:"category"`
	AmenitiesJSON  string         `gorm:"type:text" json:"-"` // JSON array of amenity names
	OwnerID        uint           `gorm:"not null;index" json:"owner_id"`
	OrganisationID *uint          `gorm:"index" json:"organisation_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Owner  User         `gorm:"foreignKey:OwnerID" json:"-"`
	Photos []SpacePhoto `gorm:"foreignKey:SpaceID" json:"photos,omitempty"`
}

func (Space) TableName() string { return "spaces" }

type SpacePhoto struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	SpaceID      uint           `gorm:"not null;index" json:"space_id"`
	URL          string         `gorm:"size:512;not null" json:"url"`
	ThumbnailURL string         `gorm:"size:512" json:"thumbnail_url"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (SpacePhoto) TableName() string { return "space_photos" }
