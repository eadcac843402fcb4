package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	DBName string
	JWTKey string

	UploadRoot string // Base directory for all uploaded thesis files

	EmailSender string
	Password    string // SMTP Password

	AlmaLaureaApiUrl string // Added for AlmaLaurea registry notifications
	AlmaLaureaApiKey string // Added for AlmaLaurea API Key

	MaxUploadSizeMB int
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		DBName: getEnv("DB_NAME", "thesis_proposals"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		UploadRoot: getEnv("UPLOAD_ROOT", "uploads"),

		EmailSender: getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:    getEnv("PASSWORD", "defaultSecret"),

		AlmaLaureaApiUrl: getEnv("ALMALAUREA_API_URL", "https://api.almalaurea.it/v1/"),
		AlmaLaureaApiKey: getEnv("ALMALAUREA_API_KEY", ""),

		MaxUploadSizeMB: getEnvInt("MAX_UPLOAD_SIZE_MB", 50),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.AlmaLaureaApiKey == "" {
		log.Println("Warning: ALMALAUREA_API_KEY not set. Registry notifications will be skipped.")
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
