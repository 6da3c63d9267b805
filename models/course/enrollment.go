package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a user's enrollment in a course with progress.
// The composite unique index enforces at most one enrollment per
// (course, user) pair even under concurrent enroll calls.
type Enrollment struct {
	gorm.Model
	CourseID          uint       `json:"course_id" gorm:"index;not null;uniqueIndex:idx_course_user"`
	UserID            uint       `json:"user_id" gorm:"index;not null;uniqueIndex:idx_course_user"`
	EnrolledAt        time.Time  `json:"enrolled_at"`
	Progress          int        `json:"progress" gorm:"default:0"` // clamped to 0-100
	Completed         bool       `json:"completed" gorm:"default:false"`
	CompletedAt       *time.Time `json:"completed_at"`
	CertificateIssued bool       `json:"certificate_issued" gorm:"default:false"`
	IsDeleted         bool       `gorm:"default:false"`
}
