package certController

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

// GetPendingUploads lists certificate uploads awaiting admin review
func GetPendingUploads(c *fiber.Ctx) error {
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

	query := db.Model(&courseModels.StudentCertificate{}).
		Where("status = ? AND is_deleted = ?", courseModels.UploadPending, false)

	var total int64
	query.Count(&total)

	var uploads []courseModels.StudentCertificate
	if err := query.Offset(offset).Limit(limit).Order("created_at asc").Find(&uploads).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending uploads!", nil)
	}

	type PendingUpload struct {
		courseModels.StudentCertificate
		StudentName  string `json:"student_name"`
		StudentEmail string `json:"student_email"`
		ProgramTitle string `json:"program_title"`
	}

	result := make([]PendingUpload, len(uploads))
	for i, upload := range uploads {
		var student models.User
		db.Where("id = ?", upload.UserID).First(&student)
		var program courseModels.CertificateProgram
		db.Where("id = ?", upload.CertificateProgramID).First(&program)
		result[i] = PendingUpload{
			StudentCertificate: upload,
			StudentName:        student.Name,
			StudentEmail:       student.Email,
			ProgramTitle:       program.Title,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending uploads fetched successfully!", fiber.Map{
		"uploads": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// ApproveUpload approves a pending certificate upload and credits the
// program's points to the student exactly once. Re-approving is a
// conflict, never a second credit.
func ApproveUpload(c *fiber.Ctx) error {
	admin, ok := c.Locals("adminUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	uploadID := c.Locals("uploadID").(int)
	db := database.Database.Db

	var upload courseModels.StudentCertificate
	if err := db.Where("id = ? AND is_deleted = ?", uploadID, false).First(&upload).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Upload not found!", nil)
	}

	if upload.Status == courseModels.UploadApproved {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Upload already approved!", nil)
	}
	if upload.Status == courseModels.UploadRejected {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Upload already rejected!", nil)
	}

	var program courseModels.CertificateProgram
	if err := db.Where("id = ?", upload.CertificateProgramID).First(&program).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate program not found!", nil)
	}

	points := program.Points
	if points == 0 {
		points = uint(config.AppConfig.UploadDefaultPoints)
	}

	now := time.Now()

	tx := db.Begin()

	// Conditional transition guards against a concurrent double approval
	result := tx.Model(&courseModels.StudentCertificate{}).
		Where("id = ? AND status = ?", upload.ID, courseModels.UploadPending).
		Updates(map[string]interface{}{
			"status":         courseModels.UploadApproved,
			"points_awarded": points,
			"reviewed_by":    admin.ID,
			"reviewed_at":    &now,
		})
	if result.Error != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve upload!", nil)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Upload already reviewed!", nil)
	}

	totalPoints, _, err := utils.CreditPoints(tx, upload.UserID, int(points), models.PointsTypeUploadAward,
		"Approved certificate for program: "+program.Title, upload.ID)
	if err != nil {
		tx.Rollback()
		log.Printf("Error crediting upload points: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve upload!", nil)
	}

	tx.Commit()

	var student models.User
	if err := db.Where("id = ?", upload.UserID).First(&student).Error; err == nil {
		utils.SendUploadApprovedEmail(student.Email, student.Name, program.Title, points)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Upload approved successfully!", fiber.Map{
		"status":         courseModels.UploadApproved,
		"points_awarded": points,
		"total_points":   totalPoints,
	})
}

// RejectUpload rejects a pending certificate upload with an admin note
func RejectUpload(c *fiber.Ctx) error {
	admin, ok := c.Locals("adminUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	uploadID := c.Locals("uploadID").(int)

	reqData, ok := c.Locals("validatedUploadReview").(*struct {
		Note string `json:"note"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var upload courseModels.StudentCertificate
	if err := db.Where("id = ? AND is_deleted = ?", uploadID, false).First(&upload).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Upload not found!", nil)
	}

	if upload.Status != courseModels.UploadPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Upload already reviewed!", nil)
	}

	now := time.Now()
	result := db.Model(&courseModels.StudentCertificate{}).
		Where("id = ? AND status = ?", upload.ID, courseModels.UploadPending).
		Updates(map[string]interface{}{
			"status":      courseModels.UploadRejected,
			"admin_note":  reqData.Note,
			"reviewed_by": admin.ID,
			"reviewed_at": &now,
		})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject upload!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Upload already reviewed!", nil)
	}

	var program courseModels.CertificateProgram
	db.Where("id = ?", upload.CertificateProgramID).First(&program)

	var student models.User
	if err := db.Where("id = ?", upload.UserID).First(&student).Error; err == nil {
		utils.SendUploadRejectedEmail(student.Email, student.Name, program.Title, reqData.Note)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Upload rejected successfully!", fiber.Map{
		"status": courseModels.UploadRejected,
		"note":   reqData.Note,
	})
}
