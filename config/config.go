package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	// Points awarded when an internal course certificate is issued
	CertificatePoints int
	// Fallback award when an external certificate program has no points set
	UploadDefaultPoints int

	UploadDir string

	SendgridApiKey string
	EmailSender    string

	adminEmails map[string]bool
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		CertificatePoints:   getEnvInt("CERTIFICATE_POINTS", 100),
		UploadDefaultPoints: getEnvInt("UPLOAD_DEFAULT_POINTS", 50),

		UploadDir: getEnv("UPLOAD_DIR", "./public/uploads"),

		SendgridApiKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", ""),

		adminEmails: parseEmailList(getEnv("ADMIN_EMAILS", "")),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if len(AppConfig.adminEmails) == 0 {
		log.Println("Warning: ADMIN_EMAILS is empty. No user will pass the admin allowlist.")
	}
}

// IsAdminEmail reports whether the email is on the injected admin allowlist
func (c *Config) IsAdminEmail(email string) bool {
	return c.adminEmails[strings.ToLower(strings.TrimSpace(email))]
}

// SetAdminEmails replaces the allowlist. Used by tests to swap the policy table.
func (c *Config) SetAdminEmails(emails ...string) {
	c.adminEmails = parseEmailList(strings.Join(emails, ","))
}

func parseEmailList(raw string) map[string]bool {
	set := make(map[string]bool)
	for _, e := range strings.Split(raw, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			set[e] = true
		}
	}
	return set
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
