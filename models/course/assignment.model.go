package course

import (
	"time"

	"gorm.io/gorm"
)

// Assignment grants a student access to a course. At most one row per
// (course, student) pair, enforced by the composite unique index.
type Assignment struct {
	gorm.Model
	CourseID   uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_assignments_course_student"`
	StudentID  uint      `json:"student_id" gorm:"index;not null;uniqueIndex:idx_assignments_course_student"`
	AssignedAt time.Time `json:"assigned_at"`
}

func (Assignment) TableName() string {
	return "course_assignments"
}
