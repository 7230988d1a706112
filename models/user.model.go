package models

import "gorm.io/gorm"

// User is a platform account. Role drives route access: students consume
// courses, mentors author them, admins manage accounts. IsApproved only
// matters for mentors; an unapproved mentor cannot log in.
type User struct {
	gorm.Model
	Email      string `json:"email" gorm:"unique;not null"`
	Password   string `json:"-" gorm:"not null"`
	Role       string `json:"role" gorm:"default:'student'"` // student, mentor, admin
	IsApproved bool   `json:"is_approved" gorm:"default:false"`
}
