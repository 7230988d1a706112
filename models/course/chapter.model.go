package course

import "gorm.io/gorm"

// Chapter is one unit of a course. SequenceOrder is unique within the
// course; numbering may have gaps, ordering is numeric.
type Chapter struct {
	gorm.Model
	CourseID      uint   `json:"course_id" gorm:"not null;uniqueIndex:idx_chapters_course_seq"`
	Title         string `json:"title" gorm:"not null"`
	Description   string `json:"description"`
	ImageURL      string `json:"image_url"`
	VideoURL      string `json:"video_url"`
	SequenceOrder int    `json:"sequence_order" gorm:"not null;uniqueIndex:idx_chapters_course_seq"`
}
