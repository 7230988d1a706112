package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate marks course completion. First issuance wins: IssuedAt is
// reused for every later download, never re-stamped.
type Certificate struct {
	gorm.Model
	StudentID    uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_certificates_student_course"`
	CourseID     uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_certificates_student_course"`
	SerialNumber string    `json:"serial_number" gorm:"unique"`
	IssuedAt     time.Time `json:"issued_at"`
}
