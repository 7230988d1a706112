package course

import (
	"time"

	"gorm.io/gorm"
)

// Progress records a completed chapter. Completion is never retracted.
// The unique index is the authoritative guard against double completion;
// the engine-level pre-check only exists for a friendlier error.
type Progress struct {
	gorm.Model
	StudentID   uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_progress_student_chapter"`
	CourseID    uint      `json:"course_id" gorm:"index;not null"`
	ChapterID   uint      `json:"chapter_id" gorm:"not null;uniqueIndex:idx_progress_student_chapter"`
	CompletedAt time.Time `json:"completed_at"`
}

func (Progress) TableName() string {
	return "progress"
}
