package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// InsecureDevSecret is the JWT signing fallback used when no secret is configured.
// It must never be accepted outside local development.
const InsecureDevSecret = "insecure-dev-secret"

// Config holds application configuration
type Config struct {
	Port      string
	Env       string
	SaltRound int

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTKey         string
	JWTExpiryHours int // 0 disables token expiry

	SendgridAPIKey string
	EmailSender    string

	WebhookURL string

	UploadDir string
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
		Env:       getEnv("APP_ENV", "development"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "learnhub"),

		JWTKey:         getEnv("JWT_SECRET_KEY", ""),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 0),

		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@learnhub.io"),

		WebhookURL: getEnv("WEBHOOK_URL", ""),

		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
	}

	// The signing secret must be explicit outside development.
	if AppConfig.JWTKey == "" {
		if AppConfig.Env == "production" {
			log.Fatal("JWT_SECRET_KEY is required when APP_ENV=production")
		}
		log.Println("Warning: JWT_SECRET_KEY not set. Using the INSECURE development fallback secret.")
		AppConfig.JWTKey = InsecureDevSecret
	}

	if AppConfig.SendgridAPIKey == "" {
		log.Println("Warning: SENDGRID_API_KEY not set. Outgoing email is disabled.")
	}
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
