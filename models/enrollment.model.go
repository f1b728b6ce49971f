package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a student's enrollment in a course with aggregate progress.
// At most one enrollment may exist per (student, course) pair.
type Enrollment struct {
	gorm.Model
	StudentID  uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_student_course"`
	Student    *User     `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	CourseID   uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_student_course"`
	Course     *Course   `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Progress   float64   `json:"progress" gorm:"default:0"` // completion percentage (0-100), stored precise
	EnrolledAt time.Time `json:"enrolled_at"`
}

// LessonProgress is the per-lesson completion record scoped to one enrollment.
// Exactly one record exists per (enrollment, lesson) once initialized.
type LessonProgress struct {
	gorm.Model
	EnrollmentID uint        `json:"enrollment_id" gorm:"not null;uniqueIndex:idx_enrollment_lesson"`
	Enrollment   *Enrollment `json:"-" gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE"`
	LessonID     uint        `json:"lesson_id" gorm:"not null;uniqueIndex:idx_enrollment_lesson"`
	Lesson       *Lesson     `json:"lesson,omitempty" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`
	IsCompleted  bool        `json:"is_completed" gorm:"default:false"`
	CompletedAt  *time.Time  `json:"completed_at"`
}
