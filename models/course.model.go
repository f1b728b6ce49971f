package models

import "gorm.io/gorm"

// Course represents a learning course owned by a tutor
type Course struct {
	gorm.Model
	Title        string `json:"title"`
	Description  string `json:"description" gorm:"type:text"`
	Category     string `json:"category" gorm:"index"`
	Level        string `json:"level" gorm:"default:'beginner'"` // beginner, intermediate, advanced
	ThumbnailURL string `json:"thumbnail_url"`
	TutorID      uint   `json:"tutor_id" gorm:"index;not null"`
	Tutor        *User  `json:"tutor,omitempty" gorm:"foreignKey:TutorID"`
	IsPublished  bool   `json:"is_published" gorm:"default:false"` // courses start as drafts
}
