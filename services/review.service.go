package services

import (
	"fmt"

	"gorm.io/gorm"

	"learnhub/models"
)

// ReviewService handles course reviews; moderation belongs to moderators.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// Create stores a pending review. Only enrolled students may review, once per course.
func (s *ReviewService) Create(studentID, courseID uint, rating int, comment string) (*models.Review, error) {
	if err := s.db.Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&models.Enrollment{}).Error; err != nil {
		return nil, ErrNotEnrolled
	}

	if err := s.db.Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&models.Review{}).Error; err == nil {
		return nil, ErrAlreadyReviewed
	}

	review := models.Review{
		CourseID:  courseID,
		StudentID: studentID,
		Rating:    rating,
		Comment:   comment,
		Status:    models.ReviewPending,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &review, nil
}

// Approve publishes a pending review
func (s *ReviewService) Approve(reviewID uint) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		return nil, ErrReviewNotFound
	}
	if err := s.db.Model(&review).Update("status", models.ReviewApproved).Error; err != nil {
		return nil, fmt.Errorf("failed to approve review: %w", err)
	}
	review.Status = models.ReviewApproved
	return &review, nil
}

// Remove deletes a review outright
func (s *ReviewService) Remove(reviewID uint) error {
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		return ErrReviewNotFound
	}
	return s.db.Unscoped().Delete(&review).Error
}

// ListPending returns reviews waiting for moderation
func (s *ReviewService) ListPending(page, limit int) ([]models.Review, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	db := s.db.Model(&models.Review{}).Where("status = ?", models.ReviewPending)

	var total int64
	db.Count(&total)

	var reviews []models.Review
	err := db.Offset((page - 1) * limit).Limit(limit).Order("created_at asc").Find(&reviews).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return reviews, total, nil
}
