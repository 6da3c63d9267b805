package certController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	certRoutes "lms/routers/certRoutes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
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
	certRoutes.SetupCertificateRoutes(app)
	return app
}

func createTestUser(t *testing.T, name, email, role string, points uint) models.User {
	t.Helper()

	user := models.User{
		Name:          name,
		Email:         email,
		Password:      "not-a-real-hash",
		Role:          role,
		ProfilePoints: points,
	}
	if role == models.RoleInstructor {
		user.InstructorStatus = models.InstructorApproved
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	return user
}

func createTestProgram(t *testing.T, instructorID, points uint) courseModels.CertificateProgram {
	t.Helper()

	program := courseModels.CertificateProgram{
		InstructorID: instructorID,
		Title:        "Cloud Fundamentals",
		Genre:        "CLOUD",
		Link:         "https://partner.example.com/cloud-fundamentals",
		Points:       points,
		Status:       "ACTIVE",
	}
	require.NoError(t, database.Database.Db.Create(&program).Error)
	return program
}

func authToken(t *testing.T, user models.User) string {
	t.Helper()

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return token
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

// doUpload posts a multipart certificate file
func doUpload(t *testing.T, app *fiber.App, path, token, filename string) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("certificate", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake certificate bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

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
