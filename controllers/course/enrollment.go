package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"time"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse enrolls the calling student in an approved, active course
func EnrollInCourse(c *fiber.Ctx) error {
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

	if course.ApprovalStatus != courseModels.ApprovalApproved || course.Status != courseModels.StatusActive {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Course is not approved for enrollment!", nil)
	}

	// Check if user is already enrolled
	var existing courseModels.Enrollment
	if err := db.Where("course_id = ? AND user_id = ? AND is_deleted = ?", courseID, userID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
	}

	enrollment := courseModels.Enrollment{
		CourseID:   uint(courseID),
		UserID:     userID,
		EnrolledAt: time.Now(),
	}

	tx := db.Begin()
	if err := tx.Create(&enrollment).Error; err != nil {
		// The unique (course, user) index catches concurrent double enrolls
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", fiber.Map{
		"enrolled":          true,
		"course_id":         course.ID,
		"students_enrolled": enrollmentCount(db, course.ID),
	})
}

// UpdateProgress records a student's progress on a course. Input is
// clamped to 0-100; completion is one-way and re-submitting a lower value
// after completion never un-completes.
func UpdateProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedProgress").(*struct {
		Progress *int `json:"progress"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Where("course_id = ? AND user_id = ? AND is_deleted = ?", courseID, userID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	if enrollment.Completed {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Course already completed!", fiber.Map{
			"progress":  enrollment.Progress,
			"completed": true,
		})
	}

	progress := *reqData.Progress
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	updates := map[string]interface{}{"progress": progress}
	if progress == 100 {
		now := time.Now()
		updates["completed"] = true
		updates["completed_at"] = &now
	}

	// Guard on completed=false so a concurrent completion is never undone
	result := db.Model(&courseModels.Enrollment{}).
		Where("id = ? AND completed = ?", enrollment.ID, false).
		Updates(updates)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Course already completed!", fiber.Map{
			"progress":  100,
			"completed": true,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", fiber.Map{
		"progress":  progress,
		"completed": progress == 100,
	})
}

// GetEnrollment returns the caller's enrollment state for a course.
// Absence is a sentinel for UI state, not an error.
func GetEnrollment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Where("course_id = ? AND user_id = ? AND is_deleted = ?", courseID, userID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Not enrolled.", fiber.Map{
			"enrolled": false,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment fetched successfully!", fiber.Map{
		"enrolled":   true,
		"enrollment": enrollment,
	})
}

// GetUserEnrollmentsList gets all enrollments for the current user
func GetUserEnrollmentsList(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	query := db.Model(&courseModels.Enrollment{}).Where("user_id = ? AND is_deleted = ?", userID, false)

	var total int64
	query.Count(&total)

	var enrollments []courseModels.Enrollment
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithCourse struct {
		courseModels.Enrollment
		CourseTitle string `json:"course_title"`
		CourseSlug  string `json:"course_slug"`
		CourseLevel string `json:"course_level"`
	}

	result := make([]EnrollmentWithCourse, len(enrollments))
	for i, e := range enrollments {
		var course courseModels.Course
		db.Where("id = ?", e.CourseID).First(&course)
		result[i] = EnrollmentWithCourse{
			Enrollment:  e,
			CourseTitle: course.Title,
			CourseSlug:  course.Slug,
			CourseLevel: course.Level,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
