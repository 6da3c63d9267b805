package models

import (
	"time"

	"gorm.io/gorm"
)

// Points transaction types
const (
	PointsTypeCertificateAward = "CERTIFICATE_AWARD"
	PointsTypeUploadAward      = "UPLOAD_AWARD"
	PointsTypeCourseUnlock     = "COURSE_UNLOCK"
)

// PointsTransaction records every credit/debit of a user's point balance
type PointsTransaction struct {
	gorm.Model
	UserID          uint      `json:"user_id" gorm:"index;not null"`
	TransactionType string    `json:"transaction_type"` // CERTIFICATE_AWARD, UPLOAD_AWARD, COURSE_UNLOCK
	Points          int       `json:"points"`           // negative for debits
	BalanceBefore   uint      `json:"balance_before"`
	BalanceAfter    uint      `json:"balance_after"`
	Description     string    `json:"description"`
	ReferenceID     uint      `json:"reference_id"` // certificate / unlock row behind this entry
	TransactionDate time.Time `json:"transaction_date"`
	IsDeleted       bool      `gorm:"default:false"`
}
