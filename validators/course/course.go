package courseValidator

import (
	"lms/middleware"
	courseModels "lms/models/course"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var validCategories = map[string]bool{
	"PROGRAMMING":          true,
	"DESIGN":               true,
	"BUSINESS":             true,
	"MARKETING":            true,
	"DATA_SCIENCE":         true,
	"PERSONAL_DEVELOPMENT": true,
}

var validLevels = map[string]bool{
	"BEGINNER":     true,
	"INTERMEDIATE": true,
	"ADVANCED":     true,
}

var validStatuses = map[string]bool{
	courseModels.StatusDraft:    true,
	courseModels.StatusActive:   true,
	courseModels.StatusInactive: true,
}

// CourseIDParam validates the :id route parameter
func CourseIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title          string                       `json:"title"`
			Description    string                       `json:"description"`
			Category       string                       `json:"category"`
			Level          string                       `json:"level"`
			Price          *float64                     `json:"price"`
			PointsRequired *int                         `json:"points_required"`
			ThumbnailURL   string                       `json:"thumbnail_url"`
			SyllabusTopics []courseModels.SyllabusTopic `json:"syllabus_topics"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}

		if !validCategories[reqData.Category] {
			errors["category"] = "Invalid category!"
		}
		if !validLevels[reqData.Level] {
			errors["level"] = "Invalid level!"
		}

		if reqData.Price != nil && *reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}
		if reqData.PointsRequired != nil && *reqData.PointsRequired < 0 {
			errors["points_required"] = "Points required cannot be negative!"
		}

		for i, topic := range reqData.SyllabusTopics {
			if strings.TrimSpace(topic.Title) == "" {
				errors["syllabus_topics"] = "Syllabus topic " + strconv.Itoa(i+1) + " is missing a title!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title          *string                      `json:"title"`
			Description    *string                      `json:"description"`
			Category       *string                      `json:"category"`
			Level          *string                      `json:"level"`
			Price          *float64                     `json:"price"`
			PointsRequired *int                         `json:"points_required"`
			ThumbnailURL   *string                      `json:"thumbnail_url"`
			Status         *string                      `json:"status"`
			SyllabusTopics []courseModels.SyllabusTopic `json:"syllabus_topics"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Category != nil && !validCategories[*reqData.Category] {
			errors["category"] = "Invalid category!"
		}
		if reqData.Level != nil && !validLevels[*reqData.Level] {
			errors["level"] = "Invalid level!"
		}
		if reqData.Price != nil && *reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}
		if reqData.PointsRequired != nil && *reqData.PointsRequired < 0 {
			errors["points_required"] = "Points required cannot be negative!"
		}
		if reqData.Status != nil && !validStatuses[*reqData.Status] {
			errors["status"] = "Status must be DRAFT, ACTIVE or INACTIVE!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// ReplaceCurriculum validates a full section tree. Every section needs a
// title, node types must be VIDEO, TEXT or QUIZ, and every quiz must have
// exactly one correct option.
func ReplaceCurriculum() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Sections []courseModels.Section `json:"sections"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		for si, section := range reqData.Sections {
			key := "sections." + strconv.Itoa(si)
			if strings.TrimSpace(section.Title) == "" {
				errors[key] = "Section title is required!"
				continue
			}
			for li, lesson := range section.Lessons {
				lessonKey := key + ".lessons." + strconv.Itoa(li)
				validateNode(errors, lessonKey, lesson.Title, lesson.Type, lesson.Quizzes)
				for pi, part := range lesson.SubParts {
					partKey := lessonKey + ".sub_parts." + strconv.Itoa(pi)
					validateNode(errors, partKey, part.Title, part.Type, part.Quizzes)
					for ssi, leaf := range part.SubSubParts {
						leafKey := partKey + ".sub_sub_parts." + strconv.Itoa(ssi)
						validateNode(errors, leafKey, leaf.Title, leaf.Type, leaf.Quizzes)
					}
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCurriculum", reqData)
		return c.Next()
	}
}

func validateNode(errors map[string]string, key, title, nodeType string, quizzes []courseModels.Quiz) {
	if strings.TrimSpace(title) == "" {
		errors[key] = "Title is required!"
		return
	}

	switch nodeType {
	case courseModels.LessonVideo, courseModels.LessonText, courseModels.LessonQuiz:
	default:
		errors[key+".type"] = "Type must be VIDEO, TEXT or QUIZ!"
		return
	}

	for qi, quiz := range quizzes {
		quizKey := key + ".quizzes." + strconv.Itoa(qi)
		if strings.TrimSpace(quiz.Question) == "" {
			errors[quizKey] = "Quiz question is required!"
			continue
		}
		if len(quiz.Options) < 2 {
			errors[quizKey] = "Quiz must have at least 2 options!"
			continue
		}
		correct := 0
		for _, option := range quiz.Options {
			if option.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			errors[quizKey] = "Quiz must have exactly one correct option!"
		}
	}
}
