package certRoutes

import (
	certController "lms/controllers/certificates"
	"lms/middleware"
	certValidator "lms/validators/certificates"

	"github.com/gofiber/fiber/v2"
)

// SetupCertificateRoutes sets up external certificate program routes
func SetupCertificateRoutes(app *fiber.App) {
	certGroup := app.Group("/certificates")

	// Browsing programs and the student flow
	certGroup.Get("/programs", middleware.JWTMiddleware, certController.GetPrograms)
	certGroup.Get("/my", middleware.JWTMiddleware, certController.GetMyUploads)
	certGroup.Post("/:id/redirect", middleware.JWTMiddleware, certValidator.CertIDParam(), certController.TrackRedirect)
	certGroup.Post("/:id/upload", middleware.JWTMiddleware, certValidator.CertIDParam(), certController.UploadCertificate)

	// Instructor program management
	programGroup := app.Group("/instructor/certificates", middleware.JWTMiddleware, middleware.ApprovedInstructorOnly)
	programGroup.Post("/", certValidator.CreateProgram(), certController.CreateProgram)
	programGroup.Put("/:id", certValidator.CertIDParam(), certValidator.UpdateProgram(), certController.UpdateProgram)
	programGroup.Delete("/:id", certValidator.CertIDParam(), certController.DeleteProgram)

	// Admin review of uploads
	adminGroup := app.Group("/admin/certificates", middleware.JWTMiddleware, middleware.AdminOnly)
	adminGroup.Get("/pending", certController.GetPendingUploads)
	adminGroup.Put("/:id/approve", certValidator.UploadIDParam(), certController.ApproveUpload)
	adminGroup.Put("/:id/reject", certValidator.UploadIDParam(), certValidator.ReviewUpload(), certController.RejectUpload)
}
