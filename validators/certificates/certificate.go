package certValidator

import (
	"lms/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CertIDParam validates the :id route parameter for certificate programs
func CertIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		certIDStr := strings.TrimSpace(c.Params("id"))
		if certIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate program ID is required!", nil)
		}

		certID, err := strconv.Atoi(certIDStr)
		if err != nil || certID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate program ID!", nil)
		}

		c.Locals("certID", certID)
		return c.Next()
	}
}

// UploadIDParam validates the :id route parameter for student uploads
func UploadIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		uploadIDStr := strings.TrimSpace(c.Params("id"))
		if uploadIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Upload ID is required!", nil)
		}

		uploadID, err := strconv.Atoi(uploadIDStr)
		if err != nil || uploadID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid upload ID!", nil)
		}

		c.Locals("uploadID", uploadID)
		return c.Next()
	}
}

func CreateProgram() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title  string `json:"title"`
			Genre  string `json:"genre"`
			Link   string `json:"link"`
			Points *int   `json:"points"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		link := strings.TrimSpace(reqData.Link)
		if link == "" {
			errors["link"] = "Link is required!"
		} else if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
			errors["link"] = "Link must be an http(s) URL!"
		}
		if reqData.Points != nil && *reqData.Points < 0 {
			errors["points"] = "Points cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgram", reqData)
		return c.Next()
	}
}

func UpdateProgram() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title  *string `json:"title"`
			Genre  *string `json:"genre"`
			Link   *string `json:"link"`
			Points *int    `json:"points"`
			Status *string `json:"status"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && strings.TrimSpace(*reqData.Title) == "" {
			errors["title"] = "Title cannot be empty!"
		}
		if reqData.Link != nil {
			link := strings.TrimSpace(*reqData.Link)
			if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
				errors["link"] = "Link must be an http(s) URL!"
			}
		}
		if reqData.Points != nil && *reqData.Points < 0 {
			errors["points"] = "Points cannot be negative!"
		}
		if reqData.Status != nil && *reqData.Status != "ACTIVE" && *reqData.Status != "INACTIVE" {
			errors["status"] = "Status must be ACTIVE or INACTIVE!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgramUpdate", reqData)
		return c.Next()
	}
}

// ReviewUpload validates the admin rejection payload
func ReviewUpload() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Note string `json:"note"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Note) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"note": "A note explaining the rejection is required!",
			})
		}

		c.Locals("validatedUploadReview", reqData)
		return c.Next()
	}
}
