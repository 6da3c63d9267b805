package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UnlockCourse lets a student spend points to access a gated course.
// Deduction, unlock record, ledger entry and enrollment commit as one
// transaction; a failure partway leaves the balance untouched.
func UnlockCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.PointsRequired == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course is not points-gated!", nil)
	}

	var existing courseModels.CourseUnlock
	if err := db.Where("course_id = ? AND user_id = ?", courseID, userID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course already unlocked!", nil)
	}

	required := course.PointsRequired
	if user.ProfilePoints < required {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Insufficient points to unlock this course!", fiber.Map{
			"required": required,
			"current":  user.ProfilePoints,
		})
	}

	tx := db.Begin()

	// Conditional deduction: the balance guard runs inside the UPDATE so a
	// concurrent spend can never drive the balance negative
	result := tx.Model(&models.User{}).
		Where("id = ? AND profile_points >= ?", userID, required).
		UpdateColumn("profile_points", gorm.Expr("profile_points - ?", required))
	if result.Error != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unlock course!", nil)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		var current models.User
		db.Where("id = ?", userID).First(&current)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Insufficient points to unlock this course!", fiber.Map{
			"required": required,
			"current":  current.ProfilePoints,
		})
	}

	unlock := courseModels.CourseUnlock{
		UserID:      userID,
		CourseID:    course.ID,
		PointsSpent: required,
		UnlockedAt:  time.Now(),
	}
	if err := tx.Create(&unlock).Error; err != nil {
		// Unique (user, course) index catches a concurrent double unlock
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course already unlocked!", nil)
	}

	var updated models.User
	if err := tx.Where("id = ?", userID).First(&updated).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unlock course!", nil)
	}

	txn := models.PointsTransaction{
		UserID:          userID,
		TransactionType: models.PointsTypeCourseUnlock,
		Points:          -int(required),
		BalanceBefore:   updated.ProfilePoints + required,
		BalanceAfter:    updated.ProfilePoints,
		Description:     "Unlocked course: " + course.Title,
		ReferenceID:     unlock.ID,
		TransactionDate: time.Now(),
	}
	if err := tx.Create(&txn).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unlock course!", nil)
	}

	// Unlocking enrolls the student unless they already are
	var enrollment courseModels.Enrollment
	if err := tx.Where("course_id = ? AND user_id = ? AND is_deleted = ?", courseID, userID, false).First(&enrollment).Error; err != nil {
		enrollment = courseModels.Enrollment{
			CourseID:   course.ID,
			UserID:     userID,
			EnrolledAt: time.Now(),
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			tx.Rollback()
			log.Printf("Error enrolling after unlock: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unlock course!", nil)
		}
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course unlocked successfully!", fiber.Map{
		"points_spent":      required,
		"remaining_points":  updated.ProfilePoints,
		"course_id":         course.ID,
		"students_enrolled": enrollmentCount(db, course.ID),
	})
}
