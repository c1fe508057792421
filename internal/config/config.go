// Package config provides application configuration loaded from environment variables.
package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	App      AppConfig
}

// DatabaseConfig holds storage settings. Path points at the local SQLite
// file and defaults to the per-user documents location resolved by the db
// package; DSN, when set, switches the store to PostgreSQL instead.
type DatabaseConfig struct {
	Path string
	DSN  string
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Debug         bool
	Migrations    bool // run versioned SQL migrations from ./migrations on startup
	RetentionDays int  // soft-delete retention window before purge
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local use.
func Load() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: getEnv("ORDEM_DB_PATH", ""),
			DSN:  getEnv("DATABASE_DSN", ""),
		},
		App: AppConfig{
			Debug:         getEnvBool("DB_DEBUG", false),
			Migrations:    getEnvBool("MIGRATIONS", false),
			RetentionDays: getEnvInt("RETENTION_DAYS", 30),
		},
	}
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}
