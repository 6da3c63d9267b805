package utils

import (
	"lms/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func pointsTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.UserBadge{}, &models.PointsTransaction{}))
	return db
}

func TestCreditPoints(t *testing.T) {
	db := pointsTestDB(t)

	user := models.User{Name: "Sam", Email: "sam@lms.test", Password: "x", Role: models.RoleStudent, ProfilePoints: 40}
	require.NoError(t, db.Create(&user).Error)

	balance, txn, err := CreditPoints(db, user.ID, 100, models.PointsTypeCertificateAward, "Certificate for course: Go Basics", 7)
	require.NoError(t, err)
	assert.Equal(t, uint(140), balance)

	assert.Equal(t, uint(40), txn.BalanceBefore)
	assert.Equal(t, uint(140), txn.BalanceAfter)
	assert.Equal(t, 100, txn.Points)
	assert.Equal(t, uint(7), txn.ReferenceID)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, uint(140), stored.ProfilePoints)

	var ledger int64
	db.Model(&models.PointsTransaction{}).Where("user_id = ?", user.ID).Count(&ledger)
	assert.Equal(t, int64(1), ledger)
}

func TestGrantBadgeIsIdempotent(t *testing.T) {
	db := pointsTestDB(t)

	user := models.User{Name: "Sam", Email: "sam@lms.test", Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&user).Error)

	granted, err := GrantBadge(db, user.ID, BadgeFirstCertificate)
	require.NoError(t, err)
	assert.True(t, granted)

	granted, err = GrantBadge(db, user.ID, BadgeFirstCertificate)
	require.NoError(t, err)
	assert.False(t, granted)

	var count int64
	db.Model(&models.UserBadge{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
