package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LoginTracking records successful logins for audit purposes
type LoginTracking struct {
	gorm.Model
	UserID    uint           `json:"user_id" gorm:"index"`
	IPAddress string         `json:"ip_address"`
	Device    datatypes.JSON `json:"device"` // user agent and client hints as reported
	Timestamp time.Time      `json:"timestamp"`
}
