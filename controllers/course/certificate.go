package controllers

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// IssueCertificate issues an internal certificate for a completed course.
// Certificate flag flip, certificate row, point credit, ledger entry and
// badge grant commit as one transaction.
func IssueCertificate(c *fiber.Ctx) error {
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

	var enrollment courseModels.Enrollment
	if err := db.Where("course_id = ? AND user_id = ? AND is_deleted = ?", courseID, userID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	if !enrollment.Completed {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Complete the course before requesting a certificate!", nil)
	}
	if enrollment.CertificateIssued {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already issued!", nil)
	}

	points := config.AppConfig.CertificatePoints

	tx := db.Begin()

	// Conditional flip; zero rows means a concurrent call won the race
	result := tx.Model(&courseModels.Enrollment{}).
		Where("id = ? AND certificate_issued = ?", enrollment.ID, false).
		Update("certificate_issued", true)
	if result.Error != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already issued!", nil)
	}

	cert := courseModels.CourseCertificate{
		UserID:            userID,
		CourseID:          course.ID,
		EnrollmentID:      enrollment.ID,
		CertificateNumber: utils.GenerateCertificateNumber(),
		IssuedAt:          time.Now(),
		PointsAwarded:     uint(points),
	}
	if err := tx.Create(&cert).Error; err != nil {
		tx.Rollback()
		log.Printf("Error creating certificate: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	newBadges := []string{}
	totalPoints, txn, err := utils.CreditPoints(tx, userID, points, models.PointsTypeCertificateAward,
		"Certificate for course: "+course.Title, cert.ID)
	if err != nil {
		tx.Rollback()
		log.Printf("Error crediting points: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	// Badge check runs on the new total count of earned certificates
	var certCount int64
	tx.Model(&courseModels.CourseCertificate{}).Where("user_id = ? AND is_deleted = ?", userID, false).Count(&certCount)
	if badge, crossed := utils.BadgeForCertificateCount(certCount); crossed {
		granted, err := utils.GrantBadge(tx, userID, badge)
		if err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
		}
		if granted {
			newBadges = append(newBadges, badge)
		}
	}

	tx.Commit()

	utils.SendCertificateIssuedEmail(user.Email, user.Name, course.Title, cert.CertificateNumber, points)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", fiber.Map{
		"certificate_id": cert.CertificateNumber,
		"issued_at":      cert.IssuedAt,
		"points_earned":  points,
		"total_points":   totalPoints,
		"new_badges":     newBadges,
		"transaction_id": txn.ID,
	})
}

// GetUserCertificates gets all internally issued certificates for the user
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var certificates []courseModels.CourseCertificate
	if err := db.Where("user_id = ? AND is_deleted = ?", userID, false).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	type CertificateWithCourse struct {
		courseModels.CourseCertificate
		CourseTitle string `json:"course_title"`
	}

	result := make([]CertificateWithCourse, len(certificates))
	for i, cert := range certificates {
		var course courseModels.Course
		db.Where("id = ?", cert.CourseID).First(&course)
		result[i] = CertificateWithCourse{CourseCertificate: cert, CourseTitle: course.Title}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}
