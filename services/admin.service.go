package services

import (
	"fmt"

	"github.com/jinzhu/now"
	"gorm.io/gorm"

	"learnhub/models"
)

// AdminService covers user administration and platform statistics.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// DashboardStats aggregates platform-wide counters for the admin dashboard
type DashboardStats struct {
	TotalUsers       int64 `json:"total_users"`
	TotalCourses     int64 `json:"total_courses"`
	PublishedCourses int64 `json:"published_courses"`
	TotalEnrollments int64 `json:"total_enrollments"`
	SignupsToday     int64 `json:"signups_today"`
	EnrollmentsToday int64 `json:"enrollments_today"`
}

// ListUsers returns users with pagination; password hashes are stripped
func (s *AdminService) ListUsers(page, limit int) ([]models.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	db := s.db.Model(&models.User{})

	var total int64
	db.Count(&total)

	var users []models.User
	err := db.Preload("Role").Offset((page - 1) * limit).Limit(limit).
		Order("created_at desc").Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, total, nil
}

// SetUserActive flips the account's active flag
func (s *AdminService) SetUserActive(userID uint, active bool) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Role").First(&user, userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	if err := s.db.Model(&user).Update("is_active", active).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	user.IsActive = active
	user.Password = ""
	return &user, nil
}

// SetUserRole assigns one of the predefined roles to the user
func (s *AdminService) SetUserRole(userID uint, roleName string) (*models.User, error) {
	if !models.IsValidRole(roleName) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrForbidden, roleName)
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	var role models.Role
	if err := s.db.Where("name = ?", roleName).First(&role).Error; err != nil {
		return nil, fmt.Errorf("role %s missing: %w", roleName, err)
	}

	if err := s.db.Model(&user).Update("role_id", role.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	user.RoleID = &role.ID
	user.Role = &role
	user.Password = ""
	return &user, nil
}

// Stats computes the dashboard counters; "today" windows start at local midnight
func (s *AdminService) Stats() (*DashboardStats, error) {
	stats := &DashboardStats{}
	startOfDay := now.BeginningOfDay()

	for _, step := range []error{
		s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error,
		s.db.Model(&models.Course{}).Count(&stats.TotalCourses).Error,
		s.db.Model(&models.Course{}).Where("is_published = ?", true).Count(&stats.PublishedCourses).Error,
		s.db.Model(&models.Enrollment{}).Count(&stats.TotalEnrollments).Error,
		s.db.Model(&models.User{}).Where("created_at >= ?", startOfDay).Count(&stats.SignupsToday).Error,
		s.db.Model(&models.Enrollment{}).Where("enrolled_at >= ?", startOfDay).Count(&stats.EnrollmentsToday).Error,
	} {
		if step != nil {
			return nil, fmt.Errorf("failed to compute stats: %w", step)
		}
	}
	return stats, nil
}
