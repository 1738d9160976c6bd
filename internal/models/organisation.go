package models

import (
	"time"

	"gorm.io/gorm"
)

type Organisation struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:128;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	OwnerID     uint           `gorm:"not null;index" json:"owner_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Organisation) TableName() string { return "organisations" }

// Role is an organisation-scoped role with a privilege bitmask.
type Role struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OrganisationID uint           `gorm:"not null;index" json:"organisation_id"`
	Name           string         `gorm:"size:64;not null" json:"name"`
	Privileges     int            `gorm:"not null;default:0" json:"privileges"`
	CreatedAt      time.Time      `json:"created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// UserRole is a membership row: one user's role inside one organisation.
// No soft delete here: leaving must free the (user, organisation) unique key
// so a later re-join can insert again.
type UserRole struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index:idx_user_org,unique,priority:1" json:"user_id"`
	OrganisationID uint      `gorm:"not null;index:idx_user_org,unique,priority:2" json:"organisation_id"`
	RoleID         *uint     `gorm:"index" json:"role_id"`
	CreatedAt      time.Time `json:"created_at"`

	User User  `gorm:"foreignKey:UserID" json:"-"`
	Role *Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (UserRole) TableName() string { return "user_roles" }

type JoinRequest struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	OrganisationID uint           `gorm:"not null;index" json:"organisation_id"`
	Message        string         `gorm:"size:512" json:"message"`
	Status         string         `gorm:"size:20;not null;index" json:"status"` // pending, approved, rejected
	DecidedAt      *time.Time     `json:"decided_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	User         User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Organisation Organisation `gorm:"foreignKey:OrganisationID" json:"-"`
}

func (JoinRequest) TableName() string { return "join_requests" }
