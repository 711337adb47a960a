package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	AppPort   string
	AppEnv    string
	JWTSecret string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Scheduling defaults; tenants can override via their settings row.
	RotationBlockDays   int
	MaxRequestsPerMonth int
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func Load() *Config {
	return &Config{
		AppPort:   get("APP_PORT", "8080"),
		AppEnv:    get("APP_ENV", "dev"),
		JWTSecret: get("JWT_SECRET", "dev-secret"),

		DBHost:     get("DB_HOST", "localhost"),
		DBPort:     get("DB_PORT", "5432"),
		DBUser:     get("DB_USER", "postgres"),
		DBPassword: get("DB_PASSWORD", "postgres"),
		DBName:     get("DB_NAME", "shiftara"),
		DBSSLMode:  get("DB_SSLMODE", "disable"),

		RotationBlockDays:   getInt("ROTATION_BLOCK_DAYS", 2),
		MaxRequestsPerMonth: getInt("MAX_REQUESTS_PER_MONTH", 3),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}
