package courseValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// UpdateProgress validates the progress payload. Parsing into a typed
// pointer rejects non-numeric input up front; clamping happens in the
// controller.
func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Progress *int `json:"progress"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Progress == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"progress": "Progress is required and must be a number!",
			})
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

// InstructorReview validates the admin instructor-review payload
func InstructorReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID  uint `json:"user_id"`
			Approve bool `json:"approve"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.UserID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"user_id": "User ID is required!",
			})
		}

		c.Locals("validatedInstructorReview", reqData)
		return c.Next()
	}
}
