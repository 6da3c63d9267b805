package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course")

	// Public listing of approved, active courses
	userGroup.Get("/list", controllers.GetAllCourses)

	// Enrollment list must register before /:id
	userGroup.Get("/my/enrollments", middleware.JWTMiddleware, controllers.GetUserEnrollmentsList)
	userGroup.Get("/my/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)

	// Course details with curriculum
	userGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.GetCourseDetails)

	// Enrollment and progress
	userGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.EnrollInCourse)
	userGroup.Get("/:id/enrollment", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.GetEnrollment)
	userGroup.Put("/:id/progress", middleware.JWTMiddleware, validators.CourseIDParam(), validators.UpdateProgress(), controllers.UpdateProgress)

	// Certificate issuance for completed courses
	userGroup.Post("/:id/certificate", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.IssueCertificate)

	// Points-gated unlock
	userGroup.Post("/:id/unlock", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.UnlockCourse)
}
