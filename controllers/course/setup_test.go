package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	courseRoutes "lms/routers/courseRoutes"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()
	config.AppConfig.SetAdminEmails("admin@lms.test")
	config.AppConfig.UploadDir = t.TempDir()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupInstructorCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	return app
}

func createTestUser(t *testing.T, name, email, role string, points uint) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:          name,
		Email:         email,
		Password:      string(hashed),
		Role:          role,
		ProfilePoints: points,
	}
	if role == models.RoleInstructor {
		user.InstructorStatus = models.InstructorApproved
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	return user
}

func authToken(t *testing.T, user models.User) string {
	t.Helper()

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return token
}

var testSlugSeq uint64

func createTestCourse(t *testing.T, instructorID uint, status, approval string, pointsRequired uint) courseModels.Course {
	t.Helper()

	course := courseModels.Course{
		Title:          "Test Course",
		Slug:           fmt.Sprintf("test-course-%d", atomic.AddUint64(&testSlugSeq, 1)),
		Description:    "A course for testing",
		Category:       "PROGRAMMING",
		Level:          "BEGINNER",
		Status:         status,
		ApprovalStatus: approval,
		PointsRequired: pointsRequired,
		InstructorID:   instructorID,
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

func dataOf(t *testing.T, result map[string]interface{}) map[string]interface{} {
	t.Helper()

	data, ok := result["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %v", result)
	return data
}
