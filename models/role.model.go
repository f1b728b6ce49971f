package models

import "gorm.io/gorm"

// Role names form a closed set. Authorization compares them case-sensitively;
// there is no hierarchy between roles.
const (
	RoleStudent   = "student"
	RoleTutor     = "tutor"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

type Role struct {
	gorm.Model
	Name string `json:"name" gorm:"unique;not null"`
}

// IsValidRole reports whether name is one of the predefined roles
func IsValidRole(name string) bool {
	switch name {
	case RoleStudent, RoleTutor, RoleAdmin, RoleModerator:
		return true
	default:
		return false
	}
}

// AllRoles returns the predefined role names
func AllRoles() []string {
	return []string{RoleStudent, RoleTutor, RoleAdmin, RoleModerator}
}
