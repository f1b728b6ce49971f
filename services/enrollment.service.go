package services

import (
	"fmt"
	"log"
	"math"
	"time"

	"gorm.io/gorm"

	"learnhub/models"
)

// EnrollmentService owns the enrollment lifecycle and is the single place
// that recomputes aggregate course progress.
type EnrollmentService struct {
	db *gorm.DB
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{db: db}
}

// ProgressSummary is the read view of one enrollment's progress
type ProgressSummary struct {
	Enrollment       models.Enrollment       `json:"enrollment"`
	Lessons          []models.LessonProgress `json:"lessons"`
	CompletedLessons int64                   `json:"completed_lessons"`
	TotalLessons     int64                   `json:"total_lessons"`
	Progress         float64                 `json:"progress"` // rounded for display
}

// Enroll creates an enrollment in a published course and seeds one incomplete
// LessonProgress row per lesson the course has right now. Lessons added later
// do not retroactively get rows. Creation and seeding are one transaction.
func (s *EnrollmentService) Enroll(studentID, courseID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	var course models.Course

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND is_published = ?", courseID, true).First(&course).Error; err != nil {
			return ErrCourseNotFound
		}

		var existing models.Enrollment
		if err := tx.Where("student_id = ? AND course_id = ?", studentID, courseID).
			First(&existing).Error; err == nil {
			return ErrAlreadyEnrolled
		}

		enrollment = models.Enrollment{
			StudentID:  studentID,
			CourseID:   courseID,
			Progress:   0,
			EnrolledAt: time.Now(),
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			return fmt.Errorf("failed to create enrollment: %w", err)
		}

		var lessons []models.Lesson
		if err := tx.Where("course_id = ?", courseID).Find(&lessons).Error; err != nil {
			return fmt.Errorf("failed to fetch lessons: %w", err)
		}
		if len(lessons) == 0 {
			return nil
		}

		rows := make([]models.LessonProgress, len(lessons))
		for i, lesson := range lessons {
			rows[i] = models.LessonProgress{
				EnrollmentID: enrollment.ID,
				LessonID:     lesson.ID,
				IsCompleted:  false,
			}
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to seed lesson progress: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	enrollment.Course = &course
	return &enrollment, nil
}

// CompleteLesson marks a lesson complete for the student's enrollment and
// recomputes the aggregate progress. Calling it again for the same lesson is
// a no-op that leaves the completion timestamp and progress unchanged.
// Returns the progress row and the rounded course progress.
func (s *EnrollmentService) CompleteLesson(studentID, lessonID uint) (*models.LessonProgress, float64, error) {
	var lesson models.Lesson
	if err := s.db.First(&lesson, lessonID).Error; err != nil {
		return nil, 0, ErrLessonNotFound
	}

	var enrollment models.Enrollment
	if err := s.db.Where("student_id = ? AND course_id = ?", studentID, lesson.CourseID).
		First(&enrollment).Error; err != nil {
		return nil, 0, ErrNotEnrolled
	}

	var progress models.LessonProgress
	var rounded float64

	// Upsert and recompute run in one transaction so the recount always sees
	// the write; concurrent completions of different lessons serialize on the
	// enrollment row and the last recount can only see more completions.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("enrollment_id = ? AND lesson_id = ?", enrollment.ID, lesson.ID).
			First(&progress).Error
		switch {
		case err == nil:
			if !progress.IsCompleted {
				now := time.Now()
				progress.IsCompleted = true
				progress.CompletedAt = &now
				if err := tx.Save(&progress).Error; err != nil {
					return fmt.Errorf("failed to update lesson progress: %w", err)
				}
			}
		default:
			// Lesson added after enrollment: the snapshot has no row yet
			now := time.Now()
			progress = models.LessonProgress{
				EnrollmentID: enrollment.ID,
				LessonID:     lesson.ID,
				IsCompleted:  true,
				CompletedAt:  &now,
			}
			if err := tx.Create(&progress).Error; err != nil {
				return fmt.Errorf("failed to create lesson progress: %w", err)
			}
		}

		pct, err := recomputeProgress(tx, &enrollment)
		if err != nil {
			return err
		}
		rounded = math.Round(pct)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return &progress, rounded, nil
}

// Unenroll removes the enrollment and all of its lesson progress rows.
// Both deletes happen in one transaction.
func (s *EnrollmentService) Unenroll(studentID, courseID uint) error {
	var enrollment models.Enrollment
	if err := s.db.Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&enrollment).Error; err != nil {
		return ErrNotEnrolled
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("enrollment_id = ?", enrollment.ID).
			Delete(&models.LessonProgress{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&enrollment).Error
	})
}

// Progress returns the per-lesson and aggregate progress for one enrollment
func (s *EnrollmentService) Progress(studentID, courseID uint) (*ProgressSummary, error) {
	var enrollment models.Enrollment
	if err := s.db.Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&enrollment).Error; err != nil {
		return nil, ErrNotEnrolled
	}

	summary := &ProgressSummary{Enrollment: enrollment}

	err := s.db.Preload("Lesson").Where("enrollment_id = ?", enrollment.ID).
		Find(&summary.Lessons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lesson progress: %w", err)
	}

	s.db.Model(&models.Lesson{}).Where("course_id = ?", courseID).Count(&summary.TotalLessons)
	s.db.Model(&models.LessonProgress{}).
		Where("enrollment_id = ? AND is_completed = ?", enrollment.ID, true).
		Count(&summary.CompletedLessons)
	summary.Progress = math.Round(enrollment.Progress)

	return summary, nil
}

// ListForStudent returns the student's enrollments with their courses
func (s *EnrollmentService) ListForStudent(studentID uint, page, limit int) ([]models.Enrollment, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	db := s.db.Model(&models.Enrollment{}).Where("student_id = ?", studentID)

	var total int64
	db.Count(&total)

	var enrollments []models.Enrollment
	err := db.Preload("Course").Offset((page - 1) * limit).Limit(limit).
		Order("enrolled_at desc").Find(&enrollments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch enrollments: %w", err)
	}
	return enrollments, total, nil
}

// Reconcile recomputes every enrollment's progress from the live lesson
// counts. Run by the nightly scheduler to absorb drift from lesson deletions.
func (s *EnrollmentService) Reconcile() error {
	var enrollments []models.Enrollment
	if err := s.db.Find(&enrollments).Error; err != nil {
		return fmt.Errorf("failed to fetch enrollments: %w", err)
	}

	for i := range enrollments {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			_, err := recomputeProgress(tx, &enrollments[i])
			return err
		})
		if err != nil {
			log.Printf("Error reconciling enrollment %d: %v", enrollments[i].ID, err)
		}
	}
	return nil
}

// recomputeProgress persists completed/total*100 on the enrollment and
// returns the precise percentage. Zero lessons means zero progress.
func recomputeProgress(tx *gorm.DB, enrollment *models.Enrollment) (float64, error) {
	var totalLessons int64
	if err := tx.Model(&models.Lesson{}).Where("course_id = ?", enrollment.CourseID).
		Count(&totalLessons).Error; err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}

	var completed int64
	if err := tx.Model(&models.LessonProgress{}).
		Where("enrollment_id = ? AND is_completed = ?", enrollment.ID, true).
		Count(&completed).Error; err != nil {
		return 0, fmt.Errorf("failed to count completed lessons: %w", err)
	}

	pct := float64(0)
	if totalLessons > 0 {
		pct = float64(completed) / float64(totalLessons) * 100
	}

	if err := tx.Model(enrollment).Update("progress", pct).Error; err != nil {
		return 0, fmt.Errorf("failed to update enrollment progress: %w", err)
	}
	enrollment.Progress = pct
	return pct, nil
}
