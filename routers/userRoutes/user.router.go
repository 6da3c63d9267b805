package userRoutes

import (
	userController "lms/controllers/userControllers"
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up profile, points and badge routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user", middleware.JWTMiddleware)

	userGroup.Get("/profile", userController.GetProfile)
	userGroup.Get("/points", userController.GetPointsBalance)
	userGroup.Get("/points/history", userController.GetPointsHistory)
	userGroup.Get("/badges", userController.GetBadges)
}
