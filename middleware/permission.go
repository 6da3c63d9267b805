package middleware

import (
	"lms/config"
	"lms/database"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// IsAdmin is the capability check for admin actions: either the ADMIN role
// or membership in the injected admin email allowlist.
func IsAdmin(user *models.User) bool {
	return user.Role == models.RoleAdmin || config.AppConfig.IsAdminEmail(user.Email)
}

// AdminOnly allows only admins through
func AdminOnly(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if !IsAdmin(&user) {
		return JsonResponse(c, fiber.StatusForbidden, false, "Admin role required!", nil)
	}

	c.Locals("adminUser", &user)
	return c.Next()
}

// ApprovedInstructorOnly allows approved instructors and admins through
func ApprovedInstructorOnly(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if IsAdmin(&user) {
		c.Locals("instructorUser", &user)
		return c.Next()
	}

	if user.Role != models.RoleInstructor || user.InstructorStatus != models.InstructorApproved {
		return JsonResponse(c, fiber.StatusForbidden, false, "Approved instructor role required!", nil)
	}

	c.Locals("instructorUser", &user)
	return c.Next()
}
