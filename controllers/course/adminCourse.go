package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetPendingCourses lists courses awaiting admin approval
func GetPendingCourses(c *fiber.Ctx) error {
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

	query := db.Model(&courseModels.Course{}).
		Where("approval_status = ? AND is_deleted = ?", courseModels.ApprovalPending, false)

	var total int64
	query.Count(&total)

	var courses []courseModels.Course
	if err := query.Offset(offset).Limit(limit).Order("created_at asc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// ApproveCourse marks a pending course as approved
func ApproveCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.ApprovalStatus == courseModels.ApprovalApproved {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course already approved!", nil)
	}

	if err := db.Model(&course).Update("approval_status", courseModels.ApprovalApproved).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course approved successfully!", course)
}

// RejectCourse marks a pending course as rejected
func RejectCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.ApprovalStatus == courseModels.ApprovalRejected {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course already rejected!", nil)
	}

	if err := db.Model(&course).Update("approval_status", courseModels.ApprovalRejected).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course rejected successfully!", course)
}

// ReviewInstructor approves or rejects a pending instructor account
func ReviewInstructor(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedInstructorReview").(*struct {
		UserID  uint `json:"user_id"`
		Approve bool `json:"approve"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var instructor models.User
	if err := db.Where("id = ? AND role = ? AND is_deleted = ?", reqData.UserID, models.RoleInstructor, false).First(&instructor).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Instructor not found!", nil)
	}

	status := models.InstructorRejected
	if reqData.Approve {
		status = models.InstructorApproved
	}

	if instructor.InstructorStatus == status {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Instructor already reviewed!", nil)
	}

	if err := db.Model(&instructor).Update("instructor_status", status).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to review instructor!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructor reviewed successfully!", fiber.Map{
		"user_id":           instructor.ID,
		"instructor_status": status,
	})
}
