package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the berthing hub service.
type Config struct {
	// Database. DatabaseURL selects the Postgres backend when set;
	// otherwise DatabasePath selects SQLite.
	DatabasePath string
	DatabaseURL  string

	// HTTP server
	Port        string
	CORSOrigins []string

	// Upstream feeds
	FeedBaseURL string

	// Background sync. 0 disables the loop; sync then only runs via the
	// HTTP endpoint or the sync-once command.
	SyncInterval time.Duration

	// Resolved conflicts older than this are deleted on each sync pass.
	ConflictRetention time.Duration

	// Default KPI window when the request gives no dates.
	KPIWindowDays int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		DatabasePath: getEnv("SQLITE_DATABASE", "/data/port.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "*")),

		FeedBaseURL: getEnv("FEED_BASE_URL", "https://api.hackathon.souamigu.org.br"),

		SyncInterval:      time.Duration(getEnvInt("SYNC_INTERVAL_MINUTES", 0)) * time.Minute,
		ConflictRetention: time.Duration(getEnvInt("CONFLICT_RETENTION_HOURS", 168)) * time.Hour,
		KPIWindowDays:     getEnvInt("KPI_WINDOW_DAYS", 30),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func splitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
