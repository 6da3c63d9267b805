package controllers_test

import (
	"fmt"
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func curriculumPayload() map[string]interface{} {
	return map[string]interface{}{
		"sections": []map[string]interface{}{
			{
				"title": "Getting Started",
				"lessons": []map[string]interface{}{
					{
						"title":          "Introduction",
						"type":           "VIDEO",
						"video_key":      "intro-video-key",
						"video_duration": 300,
						"is_free":        true,
					},
					{
						"title":          "Deep Dive",
						"type":           "VIDEO",
						"video_key":      "paid-video-key",
						"video_duration": 900,
						"sub_parts": []map[string]interface{}{
							{
								"title":          "Part One",
								"type":           "TEXT",
								"video_duration": 0,
								"sub_sub_parts": []map[string]interface{}{
									{
										"title":          "Fine Print",
										"type":           "VIDEO",
										"video_key":      "leaf-video-key",
										"video_duration": 120,
									},
								},
							},
						},
						"quizzes": []map[string]interface{}{
							{
								"question": "What did we cover?",
								"options": []map[string]interface{}{
									{"text": "Everything", "is_correct": true},
									{"text": "Nothing", "is_correct": false},
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestCreateCourseAndSlugSuffix(t *testing.T) {
	app := setupTestApp(t)

	instructor := createTestUser(t, "Ina Instructor", "ina@lms.test", models.RoleInstructor, 0)
	token := authToken(t, instructor)

	payload := map[string]interface{}{
		"title":       "Go For Beginners",
		"description": "Learn Go from scratch",
		"category":    "PROGRAMMING",
		"level":       "BEGINNER",
	}

	status, result := doRequest(t, app, "POST", "/instructor/course", token, payload)
	require.Equal(t, 201, status)
	data := dataOf(t, result)
	assert.Equal(t, "go-for-beginners", data["slug"])
	assert.Equal(t, courseModels.StatusDraft, data["status"])
	assert.Equal(t, courseModels.ApprovalPending, data["approval_status"])

	// A second course with the same title gets a numeric slug suffix
	status, result = doRequest(t, app, "POST", "/instructor/course", token, payload)
	require.Equal(t, 201, status)
	assert.Equal(t, "go-for-beginners-2", dataOf(t, result)["slug"])

	status, result = doRequest(t, app, "POST", "/instructor/course", token, payload)
	require.Equal(t, 201, status)
	assert.Equal(t, "go-for-beginners-3", dataOf(t, result)["slug"])
}

func TestCreateCourseValidation(t *testing.T) {
	app := setupTestApp(t)

	instructor := createTestUser(t, "Ina Instructor", "ina@lms.test", models.RoleInstructor, 0)
	token := authToken(t, instructor)

	status, _ := doRequest(t, app, "POST", "/instructor/course", token, map[string]interface{}{
		"description": "No title here",
		"category":    "PROGRAMMING",
		"level":       "BEGINNER",
	})
	assert.Equal(t, 422, status)

	status, _ = doRequest(t, app, "POST", "/instructor/course", token, map[string]interface{}{
		"title":       "Valid Title",
		"description": "Bad category",
		"category":    "COOKING",
		"level":       "BEGINNER",
	})
	assert.Equal(t, 422, status)
}

func TestCreateCourseRequiresApprovedInstructor(t *testing.T) {
	app := setupTestApp(t)

	student := createTestUser(t, "Sam Student", "sam@lms.test", models.RoleStudent, 0)
	pending := createTestUser(t, "Pat Pending", "pat@lms.test", models.RoleInstructor, 0)
	require.NoError(t, database.Database.Db.Model(&pending).Update("instructor_status", models.InstructorPending).Error)

	payload := map[string]interface{}{
		"title":       "Unauthorized Course",
		"description": "Should not be created",
		"category":    "PROGRAMMING",
		"level":       "BEGINNER",
	}

	status, _ := doRequest(t, app, "POST", "/instructor/course", authToken(t, student), payload)
	assert.Equal(t, 403, status)

	status, _ = doRequest(t, app, "POST", "/instructor/course", authToken(t, pending), payload)
	assert.Equal(t, 403, status)
}

func TestReplaceCurriculum(t *testing.T) {
	app := setupTestApp(t)

	instructor := createTestUser(t, "Ina Instructor", "ina@lms.test", models.RoleInstructor, 0)
	token := authToken(t, instructor)

	course := createTestCourse(t, instructor.ID, courseModels.StatusActive, courseModels.ApprovalApproved, 0)
	path := fmt.Sprintf("/instructor/course/%d/curriculum", course.ID)

	status, result := doRequest(t, app, "PUT", path, token, curriculumPayload())
	require.Equal(t, 200, status)
	sections := dataOf(t, result)["sections"].([]interface{})
	require.Len(t, sections, 1)

	// Replacing again discards the old tree entirely
	replacement := map[string]interface{}{
		"sections": []map[string]interface{}{
			{"title": "Rewritten Section"},
		},
	}
	status, result = doRequest(t, app, "PUT", path, token, replacement)
	require.Equal(t, 200, status)
	sections = dataOf(t, result)["sections"].([]interface{})
	require.Len(t, sections, 1)
	assert.Equal(t, "Rewritten Section", sections[0].(map[string]interface{})["title"])

	var lessonCount int64
	database.Database.Db.Model(&courseModels.Lesson{}).Count(&lessonCount)
	assert.Equal(t, int64(0), lessonCount)
}

func TestReplaceCurriculumValidation(t *testing.T) {
	app := setupTestApp(t)

	instructor := createTestUser(t, "Ina Instructor", "ina@lms.test", models.RoleInstructor, 0)
	token := authToken(t, instructor)

	course := createTestCourse(t, instructor.ID, courseModels.StatusActive, courseModels.ApprovalApproved, 0)
	path := fmt.Sprintf("/instructor/course/%d/curriculum", course.ID)

	// Missing section title
	status, _ := doRequest(t, app, "PUT", path, token, map[string]interface{}{
		"sections": []map[string]interface{}{{"title": ""}},
	})
	assert.Equal(t, 422, status)

	// Invalid lesson type
	status, _ = doRequest(t, app, "PUT", path, token, map[string]interface{}{
		"sections": []map[string]interface{}{
			{
				"title": "Section",
				"lessons": []map[string]interface{}{
					{"title": "Lesson", "type": "AUDIO"},
				},
			},
		},
	})
	assert.Equal(t, 422, status)

	// Quiz with two correct options
	status, _ = doRequest(t, app, "PUT", path, token, map[string]interface{}{
		"sections": []map[string]interface{}{
			{
				"title": "Section",
				"lessons": []map[string]interface{}{
					{
						"title": "Lesson",
						"type":  "QUIZ",
						"quizzes": []map[string]interface{}{
							{
								"question": "Pick one",
								"options": []map[string]interface{}{
									{"text": "A", "is_correct": true},
									{"text": "B", "is_correct": true},
								},
							},
						},
					},
				},
			},
		},
	})
	assert.Equal(t, 422, status)
}

func TestReplaceCurriculumOwnershipCheck(t *testing.T) {
	app := setupTestApp(t)

	owner := createTestUser(t, "Ina Instructor", "ina@lms.test", models.RoleInstructor, 0)
	other := createTestUser(t, "Omar Other", "omar@lms.test", models.RoleInstructor, 0)

	course := createTestCourse(t, owner.ID, courseModels.StatusActive, courseModels.ApprovalApproved, 0)

	status, _ := doRequest(t, app, "PUT", fmt.Sprintf("/instructor/course/%d/curriculum", course.ID),
		authToken(t, other), curriculumPayload())
	assert.Equal(t, 403, status)
}

func TestGetAllCoursesFiltering(t *testing.T) {
	app := setupTestApp(t)

	instructor := createTestUser(t, "Ina Instructor", "ina@lms.test", models.RoleInstructor, 0)

	programming := createTestCourse(t, instructor.ID, courseModels.StatusActive, courseModels.ApprovalApproved, 0)
	design := createTestCourse(t, instructor.ID, courseModels.StatusActive, courseModels.ApprovalApproved, 0)
	require.NoError(t, database.Database.Db.Model(&design).Update("category", "DESIGN").Error)

	// Draft and unapproved courses never show up publicly
	createTestCourse(t, instructor.ID, courseModels.StatusDraft, courseModels.ApprovalApproved, 0)
	createTestCourse(t, instructor.ID, courseModels.StatusActive, courseModels.ApprovalPending, 0)

	status, result := doRequest(t, app, "GET", "/course/list", "", nil)
	require.Equal(t, 200, status)
	data := dataOf(t, result)
	assert.Len(t, data["courses"].([]interface{}), 2)

	status, result = doRequest(t, app, "GET", "/course/list?category=PROGRAMMING", "", nil)
	require.Equal(t, 200, status)
	courses := dataOf(t, result)["courses"].([]interface{})
	require.Len(t, courses, 1)
	assert.Equal(t, float64(programming.ID), courses[0].(map[string]interface{})["ID"])
}

func TestGetCourseDetailsSanitization(t *testing.T) {
	app := setupTestApp(t)

	instructor := createTestUser(t, "Ina Instructor", "ina@lms.test", models.RoleInstructor, 0)
	student := createTestUser(t, "Sam Student", "sam@lms.test", models.RoleStudent, 0)

	course := createTestCourse(t, instructor.ID, courseModels.StatusActive, courseModels.ApprovalApproved, 0)
	doRequest(t, app, "PUT", fmt.Sprintf("/instructor/course/%d/curriculum", course.ID),
		authToken(t, instructor), curriculumPayload())

	detailPath := fmt.Sprintf("/course/%d", course.ID)

	// Not enrolled: paid video keys and quiz answers are stripped
	status, result := doRequest(t, app, "GET", detailPath, authToken(t, student), nil)
	require.Equal(t, 200, status)
	data := dataOf(t, result)
	assert.Equal(t, false, data["enrolled"])
	assert.Equal(t, float64(2), data["lesson_count"])
	assert.Equal(t, float64(1320), data["total_duration"])

	lessons := data["sections"].([]interface{})[0].(map[string]interface{})["lessons"].([]interface{})
	free := lessons[0].(map[string]interface{})
	paid := lessons[1].(map[string]interface{})
	assert.Equal(t, "intro-video-key", free["video_key"])
	assert.Equal(t, "", paid["video_key"])

	options := paid["quizzes"].([]interface{})[0].(map[string]interface{})["options"].([]interface{})
	for _, opt := range options {
		assert.Equal(t, false, opt.(map[string]interface{})["is_correct"])
	}

	// Enrolled students see the full tree
	doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), authToken(t, student), nil)
	status, result = doRequest(t, app, "GET", detailPath, authToken(t, student), nil)
	require.Equal(t, 200, status)
	data = dataOf(t, result)
	assert.Equal(t, true, data["enrolled"])

	lessons = data["sections"].([]interface{})[0].(map[string]interface{})["lessons"].([]interface{})
	paid = lessons[1].(map[string]interface{})
	assert.Equal(t, "paid-video-key", paid["video_key"])
}

func TestAdminCourseReview(t *testing.T) {
	app := setupTestApp(t)

	instructor := createTestUser(t, "Ina Instructor", "ina@lms.test", models.RoleInstructor, 0)
	admin := createTestUser(t, "Ada Admin", "ada@lms.test", models.RoleAdmin, 0)
	adminToken := authToken(t, admin)

	course := createTestCourse(t, instructor.ID, courseModels.StatusActive, courseModels.ApprovalPending, 0)

	status, result := doRequest(t, app, "GET", "/admin/course/pending", adminToken, nil)
	require.Equal(t, 200, status)
	assert.Len(t, dataOf(t, result)["courses"].([]interface{}), 1)

	approvePath := fmt.Sprintf("/admin/course/%d/approve", course.ID)
	status, _ = doRequest(t, app, "PUT", approvePath, adminToken, nil)
	require.Equal(t, 200, status)

	// Approving twice is a conflict
	status, _ = doRequest(t, app, "PUT", approvePath, adminToken, nil)
	assert.Equal(t, 409, status)

	var updated courseModels.Course
	require.NoError(t, database.Database.Db.First(&updated, course.ID).Error)
	assert.Equal(t, courseModels.ApprovalApproved, updated.ApprovalStatus)

	// Non-admins are rejected outright
	status, _ = doRequest(t, app, "PUT", approvePath, authToken(t, instructor), nil)
	assert.Equal(t, 403, status)
}

func TestAdminAllowlistEmail(t *testing.T) {
	app := setupTestApp(t)

	instructor := createTestUser(t, "Ina Instructor", "ina@lms.test", models.RoleInstructor, 0)
	// Plain student whose email is on the admin allowlist
	listed := createTestUser(t, "Alice Allowlisted", "admin@lms.test", models.RoleStudent, 0)

	course := createTestCourse(t, instructor.ID, courseModels.StatusActive, courseModels.ApprovalPending, 0)

	status, _ := doRequest(t, app, "PUT", fmt.Sprintf("/admin/course/%d/approve", course.ID), authToken(t, listed), nil)
	assert.Equal(t, 200, status)
}

func TestReviewInstructor(t *testing.T) {
	app := setupTestApp(t)

	admin := createTestUser(t, "Ada Admin", "ada@lms.test", models.RoleAdmin, 0)
	pending := createTestUser(t, "Pat Pending", "pat@lms.test", models.RoleInstructor, 0)
	require.NoError(t, database.Database.Db.Model(&pending).Update("instructor_status", models.InstructorPending).Error)

	status, _ := doRequest(t, app, "PUT", "/admin/instructor/review", authToken(t, admin), map[string]interface{}{
		"user_id": pending.ID,
		"approve": true,
	})
	require.Equal(t, 200, status)

	var updated models.User
	require.NoError(t, database.Database.Db.First(&updated, pending.ID).Error)
	assert.Equal(t, models.InstructorApproved, updated.InstructorStatus)
}
