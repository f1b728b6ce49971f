package models

import "gorm.io/gorm"

// Assignment represents a coding assignment attached to a lesson
type Assignment struct {
	gorm.Model
	LessonID    uint    `json:"lesson_id" gorm:"index;not null"`
	Lesson      *Lesson `json:"-" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`
	Title       string  `json:"title"`
	Description string  `json:"description" gorm:"type:text"`
	MaxScore    int     `json:"max_score" gorm:"default:100"`
}

// Submission represents a student's answer to an assignment.
// Grade stays nil until the owning tutor grades it.
type Submission struct {
	gorm.Model
	AssignmentID   uint        `json:"assignment_id" gorm:"not null;uniqueIndex:idx_assignment_student"`
	Assignment     *Assignment `json:"-" gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE"`
	StudentID      uint        `json:"student_id" gorm:"not null;uniqueIndex:idx_assignment_student"`
	Student        *User       `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	CodeSubmission string      `json:"code_submission" gorm:"type:text"`
	Grade          *int        `json:"grade"`
	Feedback       string      `json:"feedback" gorm:"type:text;default:''"`
}
