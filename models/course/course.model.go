package course

import "gorm.io/gorm"

// Course is authored and owned by exactly one mentor.
type Course struct {
	gorm.Model
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	MentorID    uint   `json:"mentor_id" gorm:"index;not null"`
}
