package models

import "gorm.io/gorm"

// Lesson represents a single lesson within a course, ordered by OrderIndex
type Lesson struct {
	gorm.Model
	CourseID   uint    `json:"course_id" gorm:"index;not null"`
	Course     *Course `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Title      string  `json:"title"`
	Content    string  `json:"content" gorm:"type:text"`
	VideoURL   string  `json:"video_url"`
	OrderIndex int     `json:"order_index" gorm:"default:0"`
}
