package course

import (
	"time"

	"gorm.io/gorm"
)

// Upload review states
const (
	UploadPending  = "PENDING"
	UploadApproved = "APPROVED"
	UploadRejected = "REJECTED"
)

// CourseCertificate is an internally issued certificate for course completion
type CourseCertificate struct {
	gorm.Model
	UserID            uint      `json:"user_id" gorm:"index;not null"`
	CourseID          uint      `json:"course_id" gorm:"index;not null"`
	EnrollmentID      uint      `json:"enrollment_id" gorm:"index;not null"`
	CertificateNumber string    `json:"certificate_number" gorm:"unique"`
	IssuedAt          time.Time `json:"issued_at"`
	PointsAwarded     uint      `json:"points_awarded"`
	IsDeleted         bool      `gorm:"default:false"`
}

// CertificateProgram is instructor-curated metadata for an externally
// hosted certificate course. Students visit the link, complete the
// program elsewhere, and upload proof for admin-reviewed point credit.
type CertificateProgram struct {
	gorm.Model
	InstructorID uint   `json:"instructor_id" gorm:"index;not null"`
	Title        string `json:"title"`
	Genre        string `json:"genre"`
	Link         string `json:"link"`
	Points       uint   `json:"points" gorm:"default:0"` // 0 means use the configured default at approval
	Status       string `json:"status" gorm:"default:'ACTIVE'"`
	LinkOK       bool   `json:"link_ok" gorm:"default:true"` // last probe result
	IsDeleted    bool   `gorm:"default:false"`
}

// CertificateRedirect records that a student visited a program link.
// An upload is only accepted after a redirect exists for the program.
type CertificateRedirect struct {
	gorm.Model
	UserID               uint      `json:"user_id" gorm:"index;not null;uniqueIndex:idx_redirect_user_program"`
	CertificateProgramID uint      `json:"certificate_program_id" gorm:"index;not null;uniqueIndex:idx_redirect_user_program"`
	RedirectedAt         time.Time `json:"redirected_at"`
}

// StudentCertificate is a student's proof-of-completion upload for an
// external program. One upload attempt per (student, program).
type StudentCertificate struct {
	gorm.Model
	UserID               uint       `json:"user_id" gorm:"index;not null;uniqueIndex:idx_upload_user_program"`
	CertificateProgramID uint       `json:"certificate_program_id" gorm:"index;not null;uniqueIndex:idx_upload_user_program"`
	UploadURL            string     `json:"upload_url"`
	FileType             string     `json:"file_type"`
	Status               string     `json:"status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED
	PointsAwarded        uint       `json:"points_awarded" gorm:"default:0"`
	AdminNote            string     `json:"admin_note"`
	ReviewedBy           *uint      `json:"reviewed_by"`
	ReviewedAt           *time.Time `json:"reviewed_at"`
	IsDeleted            bool       `gorm:"default:false"`
}

// CourseUnlock records that a student spent points to unlock a gated course
type CourseUnlock struct {
	gorm.Model
	UserID      uint      `json:"user_id" gorm:"index;not null;uniqueIndex:idx_unlock_user_course"`
	CourseID    uint      `json:"course_id" gorm:"index;not null;uniqueIndex:idx_unlock_user_course"`
	PointsSpent uint      `json:"points_spent"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}
