package models

import (
	"gorm.io/gorm"
)

// User roles
const (
	RoleStudent    = "STUDENT"
	RoleInstructor = "INSTRUCTOR"
	RoleAdmin      = "ADMIN"
)

// Instructor review states
const (
	InstructorPending  = "PENDING"
	InstructorApproved = "APPROVED"
	InstructorRejected = "REJECTED"
)

type User struct {
	gorm.Model
	Name             string `json:"name" gorm:"default:''"`
	Email            string `json:"email" gorm:"unique;not null"`
	Password         string `json:"-" gorm:"not null"`
	Role             string `json:"role" gorm:"default:'STUDENT'"` // STUDENT, INSTRUCTOR, ADMIN
	InstructorStatus string `json:"instructor_status" gorm:"default:''"`
	ProfilePoints    uint   `json:"profile_points" gorm:"default:0"`
	IsDeleted        bool   `gorm:"default:false"`
}

// UserBadge is a milestone reward. The composite unique index makes badge
// grants idempotent under retry.
type UserBadge struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_badge"`
	Badge  string `json:"badge" gorm:"not null;uniqueIndex:idx_user_badge"`
}
