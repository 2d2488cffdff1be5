package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabaseURL    string
	DatabasePath   string
	MigrationsPath string

	JWTSecret string
	JWTExpiry time.Duration

	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	EmailDebug   bool

	FrontendURL string

	// Weekly report cron pattern (with seconds field) and timezone
	WeeklyReportSchedule string
	CronTimezone         string
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	// Load .env if present; deployed environments set variables directly
	_ = godotenv.Load()

	return &Config{
		ServerPort:           getEnv("PORT", "8080"),
		DatabaseType:         getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		DatabasePath:         getEnv("DB_PATH", "./gyanghar.db"),
		MigrationsPath:       getEnv("MIGRATIONS_PATH", "./migrations"),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		JWTExpiry:            getEnvDuration("JWT_EXPIRY", 24*time.Hour),
		AWSRegion:            getEnv("AWS_REGION", "ap-south-1"),
		SESFromEmail:         getEnv("SES_FROM_EMAIL", ""),
		SESFromName:          getEnv("SES_FROM_NAME", "Gyan Ghar App"),
		EmailDebug:           getEnvBool("EMAIL_DEBUG", false),
		FrontendURL:          getEnv("FRONTEND_URL", "http://localhost:3000"),
		WeeklyReportSchedule: getEnv("WEEKLY_REPORT_CRON_SCHEDULE", "0 0 18 * * 1"),
		CronTimezone:         getEnv("CRON_TIMEZONE", "Asia/Kolkata"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool reads a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration reads a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
