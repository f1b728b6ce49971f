package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Email          string `json:"email" gorm:"unique;not null"`
	Username       string `json:"username" gorm:"unique;not null"`
	Password       string `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	FullName       string `json:"full_name" gorm:"default:''"`
	RoleID         *uint  `json:"role_id" gorm:"index"`
	Role           *Role  `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	IsActive       bool   `json:"is_active" gorm:"default:true"`
	Bio            string `json:"bio" gorm:"type:text;default:''"`
	ProfilePicture string `json:"profile_picture" gorm:"default:''"`
}

// RoleName returns the user's role name, defaulting to student when no role is set
func (u *User) RoleName() string {
	if u.Role == nil {
		return RoleStudent
	}
	return u.Role.Name
}
