package authController_test

import (
	"bytes"
	"encoding/json"
	"lms/config"
	"lms/database"
	"lms/models"
	authRoutes "lms/routers/authRoutes"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()
	config.AppConfig.SetAdminEmails("admin@lms.test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

func TestSignupAndLogin(t *testing.T) {
	app := setupAuthApp(t)

	status, result := postJSON(t, app, "/auth/signup", map[string]interface{}{
		"name":     "Sam Student",
		"email":    "Sam@LMS.test",
		"password": "supersecret",
	})
	require.Equal(t, 201, status)
	data := result["data"].(map[string]interface{})
	assert.Equal(t, models.RoleStudent, data["role"])
	assert.Equal(t, "sam@lms.test", data["email"])
	// Password hash never leaves the server
	_, exposed := data["password"]
	assert.False(t, exposed)

	// Duplicate email
	status, _ = postJSON(t, app, "/auth/signup", map[string]interface{}{
		"name":     "Sam Again",
		"email":    "sam@lms.test",
		"password": "supersecret",
	})
	assert.Equal(t, 409, status)

	status, result = postJSON(t, app, "/auth/login", map[string]interface{}{
		"email":    "sam@lms.test",
		"password": "supersecret",
	})
	require.Equal(t, 200, status)
	data = result["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	status, _ = postJSON(t, app, "/auth/login", map[string]interface{}{
		"email":    "sam@lms.test",
		"password": "wrongpassword",
	})
	assert.Equal(t, 401, status)
}

func TestSignupRoleAssignment(t *testing.T) {
	app := setupAuthApp(t)

	// Instructor requests start out pending review
	status, result := postJSON(t, app, "/auth/signup", map[string]interface{}{
		"name":     "Ina Instructor",
		"email":    "ina@lms.test",
		"password": "supersecret",
		"role":     "INSTRUCTOR",
	})
	require.Equal(t, 201, status)
	data := result["data"].(map[string]interface{})
	assert.Equal(t, models.RoleInstructor, data["role"])
	assert.Equal(t, models.InstructorPending, data["instructor_status"])

	// Allowlisted emails become admins regardless of requested role
	status, result = postJSON(t, app, "/auth/signup", map[string]interface{}{
		"name":     "Ada Admin",
		"email":    "admin@lms.test",
		"password": "supersecret",
	})
	require.Equal(t, 201, status)
	assert.Equal(t, models.RoleAdmin, result["data"].(map[string]interface{})["role"])
}

func TestSignupValidation(t *testing.T) {
	app := setupAuthApp(t)

	// Short password
	status, _ := postJSON(t, app, "/auth/signup", map[string]interface{}{
		"name":     "Sam",
		"email":    "sam@lms.test",
		"password": "short",
	})
	assert.Equal(t, 422, status)

	// Bad email
	status, _ = postJSON(t, app, "/auth/signup", map[string]interface{}{
		"name":     "Sam",
		"email":    "not-an-email",
		"password": "supersecret",
	})
	assert.Equal(t, 422, status)

	// Role outside STUDENT/INSTRUCTOR
	status, _ = postJSON(t, app, "/auth/signup", map[string]interface{}{
		"name":     "Sam",
		"email":    "sam@lms.test",
		"password": "supersecret",
		"role":     "ADMIN",
	})
	assert.Equal(t, 422, status)
}
