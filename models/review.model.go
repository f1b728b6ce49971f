package models

import "gorm.io/gorm"

// Review statuses; new reviews wait for a moderator
const (
	ReviewPending  = "PENDING"
	ReviewApproved = "APPROVED"
)

type Review struct {
	gorm.Model
	CourseID  uint    `json:"course_id" gorm:"index;not null"`
	Course    *Course `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	StudentID uint    `json:"student_id" gorm:"index;not null"`
	Student   *User   `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Rating    int     `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"` // 1-5 rating
	Comment   string  `json:"comment" gorm:"type:text;default:''"`
	Status    string  `json:"status" gorm:"default:'PENDING'"`
}
