package models

import "gorm.io/gorm"

type Tag struct {
	gorm.Model
	Name string `json:"name" gorm:"unique;not null"`
}

// CourseTag maps courses to tags many-to-many
type CourseTag struct {
	gorm.Model
	CourseID uint    `json:"course_id" gorm:"not null;uniqueIndex:idx_course_tag"`
	Course   *Course `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	TagID    uint    `json:"tag_id" gorm:"not null;uniqueIndex:idx_course_tag"`
	Tag      *Tag    `json:"tag,omitempty" gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}
