package utils

import (
	"lms/models"
	"time"

	"gorm.io/gorm"
)

// CreditPoints atomically increments a user's balance and writes the
// matching ledger row. Never read-modify-write: the increment runs as a
// single UPDATE so concurrent awards cannot lose updates.
func CreditPoints(tx *gorm.DB, userID uint, points int, txnType, description string, referenceID uint) (uint, *models.PointsTransaction, error) {
	if err := tx.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("profile_points", gorm.Expr("profile_points + ?", points)).Error; err != nil {
		return 0, nil, err
	}

	// Re-read inside the transaction for the ledger balance columns
	var updated models.User
	if err := tx.Where("id = ?", userID).First(&updated).Error; err != nil {
		return 0, nil, err
	}

	txn := models.PointsTransaction{
		UserID:          userID,
		TransactionType: txnType,
		Points:          points,
		BalanceBefore:   updated.ProfilePoints - uint(points),
		BalanceAfter:    updated.ProfilePoints,
		Description:     description,
		ReferenceID:     referenceID,
		TransactionDate: time.Now(),
	}
	if err := tx.Create(&txn).Error; err != nil {
		return 0, nil, err
	}

	return updated.ProfilePoints, &txn, nil
}

// GrantBadge appends a badge unless the user already holds it. Returns
// whether a new badge row was written.
func GrantBadge(tx *gorm.DB, userID uint, badge string) (bool, error) {
	var existing models.UserBadge
	if err := tx.Where("user_id = ? AND badge = ?", userID, badge).First(&existing).Error; err == nil {
		return false, nil
	}

	if err := tx.Create(&models.UserBadge{UserID: userID, Badge: badge}).Error; err != nil {
		return false, err
	}
	return true, nil
}
