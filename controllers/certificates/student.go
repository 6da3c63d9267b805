package certController

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// TrackRedirect records that the student followed a program link. The
// first call writes the timestamp; repeat calls are a no-op that reports
// already_tracked, not an error.
func TrackRedirect(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certID := c.Locals("certID").(int)
	db := database.Database.Db

	var program courseModels.CertificateProgram
	if err := db.Where("id = ? AND is_deleted = ?", certID, false).First(&program).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate program not found!", nil)
	}

	var existing courseModels.CertificateRedirect
	if err := db.Where("user_id = ? AND certificate_program_id = ?", userID, certID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Redirect already tracked.", fiber.Map{
			"cert_link":       program.Link,
			"already_tracked": true,
		})
	}

	redirect := courseModels.CertificateRedirect{
		UserID:               userID,
		CertificateProgramID: program.ID,
		RedirectedAt:         time.Now(),
	}
	if err := db.Create(&redirect).Error; err != nil {
		// Concurrent duplicate hits the unique pair index; report as tracked
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Redirect already tracked.", fiber.Map{
			"cert_link":       program.Link,
			"already_tracked": true,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Redirect tracked successfully!", fiber.Map{
		"cert_link":       program.Link,
		"already_tracked": false,
	})
}

// UploadCertificate accepts a student's proof-of-completion file for an
// external program. Requires a prior redirect for the same program and
// allows one upload attempt per (student, program).
func UploadCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certID := c.Locals("certID").(int)
	db := database.Database.Db

	var program courseModels.CertificateProgram
	if err := db.Where("id = ? AND is_deleted = ?", certID, false).First(&program).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate program not found!", nil)
	}

	// Visit-before-upload gate
	var redirect courseModels.CertificateRedirect
	if err := db.Where("user_id = ? AND certificate_program_id = ?", userID, certID).First(&redirect).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Visit the certificate program before uploading!", nil)
	}

	var existing courseModels.StudentCertificate
	if err := db.Where("user_id = ? AND certificate_program_id = ? AND is_deleted = ?", userID, certID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already uploaded for this program!", nil)
	}

	file, err := c.FormFile("certificate")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate file is required!", nil)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" && ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Only PDF and image files are accepted!", nil)
	}

	savedPath, err := utils.SaveUploadedFile(file, filepath.Join(config.AppConfig.UploadDir, "certificates"))
	if err != nil {
		log.Printf("Error saving certificate upload: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save certificate file!", nil)
	}

	upload := courseModels.StudentCertificate{
		UserID:               userID,
		CertificateProgramID: program.ID,
		UploadURL:            utils.GetFileURL(savedPath),
		FileType:             strings.TrimPrefix(ext, "."),
	}
	if err := db.Create(&upload).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already uploaded for this program!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate uploaded successfully!", fiber.Map{
		"status":          courseModels.UploadPending,
		"student_cert_id": upload.ID,
	})
}

// GetMyUploads lists the caller's certificate uploads and redirect history
func GetMyUploads(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var uploads []courseModels.StudentCertificate
	if err := db.Where("user_id = ? AND is_deleted = ?", userID, false).Order("created_at desc").Find(&uploads).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch uploads!", nil)
	}

	type UploadWithProgram struct {
		courseModels.StudentCertificate
		ProgramTitle string `json:"program_title"`
	}

	result := make([]UploadWithProgram, len(uploads))
	for i, upload := range uploads {
		var program courseModels.CertificateProgram
		db.Where("id = ?", upload.CertificateProgramID).First(&program)
		result[i] = UploadWithProgram{StudentCertificate: upload, ProgramTitle: program.Title}
	}

	var redirects []courseModels.CertificateRedirect
	db.Where("user_id = ?", userID).Order("redirected_at desc").Find(&redirects)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Uploads fetched successfully!", fiber.Map{
		"uploads":   result,
		"redirects": redirects,
	})
}
