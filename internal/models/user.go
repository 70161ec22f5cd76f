package models

import "time"

// User represents a registered forum member.
type User struct {
	Base
	Email            string     `gorm:"uniqueIndex;not null" json:"email"`
	Username         string     `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password         string     `gorm:"not null" json:"-"`
	Bio              string     `gorm:"size:500" json:"bio,omitempty"`
	IsActive         bool       `gorm:"default:true" json:"is_active"`
	RefreshTokenHash string     `gorm:"size:64" json:"-"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
}
