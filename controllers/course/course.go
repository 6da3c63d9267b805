package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateCourse creates a new course owned by the calling instructor.
// New courses always start as DRAFT and pending admin approval.
func CreateCourse(c *fiber.Ctx) error {
	instructor, ok := c.Locals("instructorUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title          string                       `json:"title"`
		Description    string                       `json:"description"`
		Category       string                       `json:"category"`
		Level          string                       `json:"level"`
		Price          *float64                     `json:"price"`
		PointsRequired *int                         `json:"points_required"`
		ThumbnailURL   string                       `json:"thumbnail_url"`
		SyllabusTopics []courseModels.SyllabusTopic `json:"syllabus_topics"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	course := courseModels.Course{
		Title:          reqData.Title,
		Slug:           utils.UniqueCourseSlug(db, reqData.Title, 0),
		Description:    reqData.Description,
		Category:       reqData.Category,
		Level:          reqData.Level,
		ThumbnailURL:   reqData.ThumbnailURL,
		Status:         courseModels.StatusDraft,
		ApprovalStatus: courseModels.ApprovalPending,
		InstructorID:   instructor.ID,
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}
	if reqData.PointsRequired != nil {
		course.PointsRequired = uint(*reqData.PointsRequired)
	}

	tx := db.Begin()
	if err := tx.Create(&course).Error; err != nil {
		tx.Rollback()
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	for i := range reqData.SyllabusTopics {
		topic := reqData.SyllabusTopics[i]
		topic.ID = 0
		topic.CourseID = course.ID
		topic.OrderIndex = i
		if err := tx.Create(&topic).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create syllabus!", nil)
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse updates course fields. Only the owning instructor or an
// admin may update; curriculum is replaced through its own endpoint.
func UpdateCourse(c *fiber.Ctx) error {
	instructor, ok := c.Locals("instructorUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
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
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != instructor.ID && !middleware.IsAdmin(instructor) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Title != nil && *reqData.Title != course.Title {
		updates["title"] = *reqData.Title
		updates["slug"] = utils.UniqueCourseSlug(db, *reqData.Title, course.ID)
	}
	if reqData.Description != nil {
		updates["description"] = *reqData.Description
	}
	if reqData.Category != nil {
		updates["category"] = *reqData.Category
	}
	if reqData.Level != nil {
		updates["level"] = *reqData.Level
	}
	if reqData.Price != nil {
		updates["price"] = *reqData.Price
	}
	if reqData.PointsRequired != nil {
		updates["points_required"] = uint(*reqData.PointsRequired)
	}
	if reqData.ThumbnailURL != nil {
		updates["thumbnail_url"] = *reqData.ThumbnailURL
	}
	if reqData.Status != nil {
		updates["status"] = *reqData.Status
	}

	tx := db.Begin()
	if len(updates) > 0 {
		if err := tx.Model(&course).Updates(updates).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
		}
	}

	// Syllabus topics are display-only and replaced wholesale when provided
	if reqData.SyllabusTopics != nil {
		if err := tx.Where("course_id = ?", course.ID).Delete(&courseModels.SyllabusTopic{}).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update syllabus!", nil)
		}
		for i := range reqData.SyllabusTopics {
			topic := reqData.SyllabusTopics[i]
			topic.ID = 0
			topic.CourseID = course.ID
			topic.OrderIndex = i
			if err := tx.Create(&topic).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update syllabus!", nil)
			}
		}
	}
	tx.Commit()

	db.Where("id = ?", course.ID).First(&course)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// ReplaceCurriculum replaces a course's full section tree. There is no
// partial-patch path: the existing tree is removed and the incoming one
// inserted fresh inside one transaction.
func ReplaceCurriculum(c *fiber.Ctx) error {
	instructor, ok := c.Locals("instructorUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedCurriculum").(*struct {
		Sections []courseModels.Section `json:"sections"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != instructor.ID && !middleware.IsAdmin(instructor) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	tx := db.Begin()

	if err := deleteCurriculum(tx, course.ID); err != nil {
		tx.Rollback()
		log.Printf("Error deleting curriculum for course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to replace curriculum!", nil)
	}

	for i := range reqData.Sections {
		section := reqData.Sections[i]
		resetSectionIDs(&section)
		section.CourseID = course.ID
		section.OrderIndex = i
		if err := tx.Create(&section).Error; err != nil {
			tx.Rollback()
			log.Printf("Error inserting curriculum for course %d: %v", course.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to replace curriculum!", nil)
		}
	}

	tx.Commit()

	var sections []courseModels.Section
	curriculumQuery(db).Where("course_id = ?", course.ID).Find(&sections)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Curriculum replaced successfully!", fiber.Map{
		"sections": sections,
	})
}

// DeleteCourse soft-deletes a course. Owner or admin only.
func DeleteCourse(c *fiber.Ctx) error {
	instructor, ok := c.Locals("instructorUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != instructor.ID && !middleware.IsAdmin(instructor) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	if err := db.Model(&course).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// GetAllCourses lists publicly visible courses (ACTIVE and approved)
func GetAllCourses(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	category := c.Query("category")
	level := c.Query("level")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	query := db.Model(&courseModels.Course{}).
		Where("status = ? AND approval_status = ? AND is_deleted = ?",
			courseModels.StatusActive, courseModels.ApprovalApproved, false)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if level != "" {
		query = query.Where("level = ?", level)
	}

	var total int64
	query.Count(&total)

	var courses []courseModels.Course
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	type CourseWithStats struct {
		courseModels.Course
		StudentsEnrolled int64 `json:"students_enrolled"`
	}

	result := make([]CourseWithStats, len(courses))
	for i, course := range courses {
		result[i] = CourseWithStats{Course: course, StudentsEnrolled: enrollmentCount(db, course.ID)}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails returns a course with its full curriculum tree and the
// caller's enrollment state. Video keys on paid lessons and quiz answers
// are stripped unless the caller is enrolled, has unlocked the course, or
// owns it.
func GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var course courseModels.Course
	if err := db.Preload("SyllabusTopics", func(db *gorm.DB) *gorm.DB {
		return db.Where("is_deleted = ?", false).Order("order_index asc")
	}).Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	isOwner := course.InstructorID == user.ID || middleware.IsAdmin(&user)
	if !course.PubliclyVisible() && !isOwner {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var sections []courseModels.Section
	curriculumQuery(db).Where("course_id = ?", course.ID).Find(&sections)

	lessonCount, totalDuration := utils.ComputeCourseTotals(sections)

	// Enrollment state is a sentinel, not an error, when absent
	enrolled := false
	var enrollment *courseModels.Enrollment
	var e courseModels.Enrollment
	if err := db.Where("course_id = ? AND user_id = ? AND is_deleted = ?", course.ID, userID, false).First(&e).Error; err == nil {
		enrolled = true
		enrollment = &e
	}

	unlocked := false
	if err := db.Where("course_id = ? AND user_id = ?", course.ID, userID).First(&courseModels.CourseUnlock{}).Error; err == nil {
		unlocked = true
	}

	if !enrolled && !unlocked && !isOwner {
		sanitizeCurriculum(sections)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":            course,
		"sections":          sections,
		"lesson_count":      lessonCount,
		"total_duration":    totalDuration,
		"students_enrolled": enrollmentCount(db, course.ID),
		"enrolled":          enrolled,
		"enrollment":        enrollment,
		"unlocked":          unlocked,
	})
}

// curriculumQuery preloads the full section tree in display order
func curriculumQuery(db *gorm.DB) *gorm.DB {
	ordered := func(db *gorm.DB) *gorm.DB { return db.Order("order_index asc") }
	return db.Order("order_index asc").
		Preload("Lessons", ordered).
		Preload("Lessons.Resources").
		Preload("Lessons.CodeSnippets").
		Preload("Lessons.Quizzes.Options").
		Preload("Lessons.SubParts", ordered).
		Preload("Lessons.SubParts.Resources").
		Preload("Lessons.SubParts.CodeSnippets").
		Preload("Lessons.SubParts.Quizzes.Options").
		Preload("Lessons.SubParts.SubSubParts", ordered).
		Preload("Lessons.SubParts.SubSubParts.Resources").
		Preload("Lessons.SubParts.SubSubParts.CodeSnippets").
		Preload("Lessons.SubParts.SubSubParts.Quizzes.Options")
}

// enrollmentCount is the live studentsEnrolled figure, derived from the
// enrollment rows rather than stored, so it cannot drift.
func enrollmentCount(db *gorm.DB, courseID uint) int64 {
	var count int64
	db.Model(&courseModels.Enrollment{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&count)
	return count
}

// sanitizeCurriculum strips video keys of paid nodes and quiz answers
// before the tree is shown to users without access
func sanitizeCurriculum(sections []courseModels.Section) {
	hideAnswers := func(quizzes []courseModels.Quiz) {
		for i := range quizzes {
			for j := range quizzes[i].Options {
				quizzes[i].Options[j].IsCorrect = false
			}
		}
	}

	for si := range sections {
		for li := range sections[si].Lessons {
			lesson := &sections[si].Lessons[li]
			if !lesson.IsFree {
				lesson.VideoKey = ""
			}
			hideAnswers(lesson.Quizzes)
			for pi := range lesson.SubParts {
				part := &lesson.SubParts[pi]
				if !part.IsFree {
					part.VideoKey = ""
				}
				hideAnswers(part.Quizzes)
				for ssi := range part.SubSubParts {
					leaf := &part.SubSubParts[ssi]
					if !leaf.IsFree {
						leaf.VideoKey = ""
					}
					hideAnswers(leaf.Quizzes)
				}
			}
		}
	}
}

// resetSectionIDs clears primary keys throughout an incoming section tree
// so every node is inserted fresh
func resetSectionIDs(section *courseModels.Section) {
	section.ID = 0
	for li := range section.Lessons {
		lesson := &section.Lessons[li]
		lesson.ID = 0
		lesson.SectionID = 0
		resetContentIDs(&lesson.Resources, &lesson.CodeSnippets, &lesson.Quizzes)
		for pi := range lesson.SubParts {
			part := &lesson.SubParts[pi]
			part.ID = 0
			part.LessonID = 0
			resetContentIDs(&part.Resources, &part.CodeSnippets, &part.Quizzes)
			for ssi := range part.SubSubParts {
				leaf := &part.SubSubParts[ssi]
				leaf.ID = 0
				leaf.SubPartID = 0
				resetContentIDs(&leaf.Resources, &leaf.CodeSnippets, &leaf.Quizzes)
			}
		}
	}
}

func resetContentIDs(resources *[]courseModels.Resource, snippets *[]courseModels.CodeSnippet, quizzes *[]courseModels.Quiz) {
	for i := range *resources {
		(*resources)[i].ID = 0
		(*resources)[i].OwnerID = 0
	}
	for i := range *snippets {
		(*snippets)[i].ID = 0
		(*snippets)[i].OwnerID = 0
	}
	for i := range *quizzes {
		(*quizzes)[i].ID = 0
		(*quizzes)[i].OwnerID = 0
		for j := range (*quizzes)[i].Options {
			(*quizzes)[i].Options[j].ID = 0
			(*quizzes)[i].Options[j].QuizID = 0
		}
	}
}

// deleteCurriculum removes a course's entire section tree, level by level
func deleteCurriculum(tx *gorm.DB, courseID uint) error {
	var sectionIDs []uint
	if err := tx.Model(&courseModels.Section{}).Where("course_id = ?", courseID).Pluck("id", &sectionIDs).Error; err != nil {
		return err
	}
	if len(sectionIDs) == 0 {
		return nil
	}

	var lessonIDs []uint
	if err := tx.Model(&courseModels.Lesson{}).Where("section_id IN ?", sectionIDs).Pluck("id", &lessonIDs).Error; err != nil {
		return err
	}

	var subPartIDs []uint
	if len(lessonIDs) > 0 {
		if err := tx.Model(&courseModels.SubPart{}).Where("lesson_id IN ?", lessonIDs).Pluck("id", &subPartIDs).Error; err != nil {
			return err
		}
	}

	var subSubPartIDs []uint
	if len(subPartIDs) > 0 {
		if err := tx.Model(&courseModels.SubSubPart{}).Where("sub_part_id IN ?", subPartIDs).Pluck("id", &subSubPartIDs).Error; err != nil {
			return err
		}
	}

	owners := []struct {
		ownerType string
		ids       []uint
	}{
		{"lessons", lessonIDs},
		{"sub_parts", subPartIDs},
		{"sub_sub_parts", subSubPartIDs},
	}

	for _, owner := range owners {
		if len(owner.ids) == 0 {
			continue
		}

		var quizIDs []uint
		if err := tx.Model(&courseModels.Quiz{}).Where("owner_type = ? AND owner_id IN ?", owner.ownerType, owner.ids).Pluck("id", &quizIDs).Error; err != nil {
			return err
		}
		if len(quizIDs) > 0 {
			if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&courseModels.QuizOption{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("owner_type = ? AND owner_id IN ?", owner.ownerType, owner.ids).Delete(&courseModels.Quiz{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_type = ? AND owner_id IN ?", owner.ownerType, owner.ids).Delete(&courseModels.Resource{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_type = ? AND owner_id IN ?", owner.ownerType, owner.ids).Delete(&courseModels.CodeSnippet{}).Error; err != nil {
			return err
		}
	}

	if len(subSubPartIDs) > 0 {
		if err := tx.Where("id IN ?", subSubPartIDs).Delete(&courseModels.SubSubPart{}).Error; err != nil {
			return err
		}
	}
	if len(subPartIDs) > 0 {
		if err := tx.Where("id IN ?", subPartIDs).Delete(&courseModels.SubPart{}).Error; err != nil {
			return err
		}
	}
	if len(lessonIDs) > 0 {
		if err := tx.Where("id IN ?", lessonIDs).Delete(&courseModels.Lesson{}).Error; err != nil {
			return err
		}
	}
	return tx.Where("id IN ?", sectionIDs).Delete(&courseModels.Section{}).Error
}
