package models

import (
	"time"

	"gorm.io/gorm"
)

// PasswordReset holds a short-lived code emailed to the user for password recovery
type PasswordReset struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Code      string    `json:"-" gorm:"size:6;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	IsUsed    bool      `json:"is_used" gorm:"default:false"`
}
