package certController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateProgram creates an external certificate program entry. The link is
// probed in the background; an unreachable link flags the program but does
// not block creation.
func CreateProgram(c *fiber.Ctx) error {
	instructor, ok := c.Locals("instructorUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedProgram").(*struct {
		Title  string `json:"title"`
		Genre  string `json:"genre"`
		Link   string `json:"link"`
		Points *int   `json:"points"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	program := courseModels.CertificateProgram{
		InstructorID: instructor.ID,
		Title:        reqData.Title,
		Genre:        reqData.Genre,
		Link:         reqData.Link,
	}
	if reqData.Points != nil {
		program.Points = uint(*reqData.Points)
	}

	db := database.Database.Db
	if err := db.Create(&program).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create certificate program!", nil)
	}

	go func(id uint, link string) {
		ok := utils.ProbeLink(link)
		db.Model(&courseModels.CertificateProgram{}).Where("id = ?", id).Update("link_ok", ok)
	}(program.ID, program.Link)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate program created successfully!", program)
}

// UpdateProgram updates program metadata. Owner or admin only.
func UpdateProgram(c *fiber.Ctx) error {
	instructor, ok := c.Locals("instructorUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certID := c.Locals("certID").(int)

	reqData, ok := c.Locals("validatedProgramUpdate").(*struct {
		Title  *string `json:"title"`
		Genre  *string `json:"genre"`
		Link   *string `json:"link"`
		Points *int    `json:"points"`
		Status *string `json:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var program courseModels.CertificateProgram
	if err := db.Where("id = ? AND is_deleted = ?", certID, false).First(&program).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate program not found!", nil)
	}

	if program.InstructorID != instructor.ID && !middleware.IsAdmin(instructor) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this program!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
	}
	if reqData.Genre != nil {
		updates["genre"] = *reqData.Genre
	}
	if reqData.Link != nil {
		updates["link"] = *reqData.Link
	}
	if reqData.Points != nil {
		updates["points"] = uint(*reqData.Points)
	}
	if reqData.Status != nil {
		updates["status"] = *reqData.Status
	}

	if len(updates) > 0 {
		if err := db.Model(&program).Updates(updates).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update certificate program!", nil)
		}
	}

	if reqData.Link != nil {
		go func(id uint, link string) {
			ok := utils.ProbeLink(link)
			db.Model(&courseModels.CertificateProgram{}).Where("id = ?", id).Update("link_ok", ok)
		}(program.ID, *reqData.Link)
	}

	db.Where("id = ?", program.ID).First(&program)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate program updated successfully!", program)
}

// DeleteProgram soft-deletes a program. Owner or admin only.
func DeleteProgram(c *fiber.Ctx) error {
	instructor, ok := c.Locals("instructorUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certID := c.Locals("certID").(int)
	db := database.Database.Db

	var program courseModels.CertificateProgram
	if err := db.Where("id = ? AND is_deleted = ?", certID, false).First(&program).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate program not found!", nil)
	}

	if program.InstructorID != instructor.ID && !middleware.IsAdmin(instructor) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this program!", nil)
	}

	if err := db.Model(&program).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete certificate program!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate program deleted successfully!", nil)
}

// GetPrograms lists active external certificate programs
func GetPrograms(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	genre := c.Query("genre")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	query := db.Model(&courseModels.CertificateProgram{}).Where("status = ? AND is_deleted = ?", "ACTIVE", false)
	if genre != "" {
		query = query.Where("genre = ?", genre)
	}

	var total int64
	query.Count(&total)

	var programs []courseModels.CertificateProgram
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&programs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificate programs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate programs fetched successfully!", fiber.Map{
		"programs": programs,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
