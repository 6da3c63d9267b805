package userController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// GetProfile returns the current user's profile with points and badges
func GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var badges []models.UserBadge
	db.Where("user_id = ?", userID).Order("created_at asc").Find(&badges)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", fiber.Map{
		"user":   user,
		"badges": badges,
	})
}

// GetPointsBalance returns the user's current point balance
func GetPointsBalance(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Points balance fetched!", fiber.Map{
		"balance": user.ProfilePoints,
	})
}

// GetPointsHistory returns the user's points transaction history
func GetPointsHistory(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	txnType := c.Query("type") // CERTIFICATE_AWARD, UPLOAD_AWARD, COURSE_UNLOCK

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	query := db.Model(&models.PointsTransaction{}).Where("user_id = ? AND is_deleted = ?", userID, false)
	if txnType != "" {
		query = query.Where("transaction_type = ?", txnType)
	}

	var total int64
	query.Count(&total)

	var transactions []models.PointsTransaction
	if err := query.
		Order("transaction_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Points history fetched!", fiber.Map{
		"transactions":    transactions,
		"current_balance": user.ProfilePoints,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetBadges returns the user's badge set
func GetBadges(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var badges []models.UserBadge
	if err := database.Database.Db.Where("user_id = ?", userID).Order("created_at asc").Find(&badges).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch badges!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badges fetched successfully!", fiber.Map{
		"badges": badges,
		"total":  len(badges),
	})
}
