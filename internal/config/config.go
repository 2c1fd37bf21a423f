package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// GradingPolicy carries the product decisions around marking that are
// still open: whether an already graded submission may be graded again,
// and whether the given mark is range-checked.
type GradingPolicy struct {
	AllowRegrade bool
	MaxMark      int // 0 disables the range check
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

type Config struct {
	Port          string
	MongoURI      string
	DatabaseName  string
	JWTSecret     string
	AllowedOrigin string
	CookieSecure  bool
	LogLevel      string
	Timeout       time.Duration
	SMTP          SMTPConfig
	Grading       GradingPolicy
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		if os.IsNotExist(err) {
			// .env file not found, proceed with default values
		} else {
			panic("Error loading .env file")
		}
	}
	return Config{
		Port:          getEnv("PORT", "8000"),
		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DatabaseName:  getEnv("DATABASE_NAME", "assignment_portal"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-only-secret-change-me"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:5173"),
		CookieSecure:  getEnvBool("COOKIE_SECURE", false),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Timeout:       10 * time.Second,
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
		},
		Grading: GradingPolicy{
			AllowRegrade: getEnvBool("GRADING_ALLOW_REGRADE", true),
			MaxMark:      getEnvInt("GRADING_MAX_MARK", 0),
		},
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
