package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr           string
	MongoURI       string
	MongoDatabase  string
	SessionSecret  string
	SessionTTL     time.Duration
	AdminPassword  string
	Environment    string
	RunSeed        bool
	MaxBodyBytes   int64
	MetricsEnabled bool

	RateLimitPerMinute int
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func Load() Config {
	return Config{
		Addr:           getEnv("APP_ADDR", ":8080"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017/employee_management"),
		MongoDatabase:  getEnv("MONGO_DATABASE", "employee_management"),
		SessionSecret:  getEnv("SESSION_SECRET", ""),
		SessionTTL:     getEnvDuration("SESSION_TTL", 8*time.Hour),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "admin123"),
		Environment:    getEnv("APP_ENV", "development"),
		RunSeed:        getEnvBool("RUN_SEED", true),
		MaxBodyBytes:   int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 240),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.MongoURI) == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if strings.TrimSpace(c.MongoDatabase) == "" {
		return fmt.Errorf("MONGO_DATABASE is required")
	}
	if c.IsProduction() {
		if strings.TrimSpace(c.SessionSecret) == "" {
			return fmt.Errorf("SESSION_SECRET must be set to a strong value in production")
		}
		if c.RunSeed && c.AdminPassword == "admin123" {
			return fmt.Errorf("ADMIN_PASSWORD must be changed or RUN_SEED disabled in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	return nil
}
