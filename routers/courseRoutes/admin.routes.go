package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupInstructorCourseRoutes sets up course authoring routes
func SetupInstructorCourseRoutes(app *fiber.App) {
	instructorGroup := app.Group("/instructor/course", middleware.JWTMiddleware, middleware.ApprovedInstructorOnly)

	instructorGroup.Post("/", validators.CreateCourse(), controllers.CreateCourse)
	instructorGroup.Put("/:id", validators.CourseIDParam(), validators.UpdateCourse(), controllers.UpdateCourse)
	instructorGroup.Put("/:id/curriculum", validators.CourseIDParam(), validators.ReplaceCurriculum(), controllers.ReplaceCurriculum)
	instructorGroup.Delete("/:id", validators.CourseIDParam(), controllers.DeleteCourse)
}

// SetupAdminCourseRoutes sets up admin review routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	adminGroup.Get("/course/pending", controllers.GetPendingCourses)
	adminGroup.Put("/course/:id/approve", validators.CourseIDParam(), controllers.ApproveCourse)
	adminGroup.Put("/course/:id/reject", validators.CourseIDParam(), controllers.RejectCourse)

	adminGroup.Put("/instructor/review", validators.InstructorReview(), controllers.ReviewInstructor)
}
