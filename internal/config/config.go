// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends accepted in STORAGE_BACKEND.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StorageBackend selects where the trip is kept: file, postgres or memory.
	// Defaults to "file".
	StorageBackend string

	// DataDir is the directory used by the file backend. Defaults to "./data".
	DataDir string

	// DatabaseURL is the Postgres connection string.
	// Required only when StorageBackend is "postgres".
	DatabaseURL string

	// MaxImportBytes caps the size of an uploaded backup. Defaults to 5 MiB.
	MaxImportBytes int64

	// IntentTTL is how long a delete or reset request waits for confirmation.
	// Defaults to 5m.
	IntentTTL time.Duration
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory is loaded first if present; it never
// overrides variables that are already set.
// Returns an error listing any required variables that are not set and any
// that could not be parsed.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile)),
		DataDir:        getEnv("DATA_DIR", "./data"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
	}

	var missing, invalid []string

	switch cfg.StorageBackend {
	case BackendFile, BackendMemory:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		invalid = append(invalid, "STORAGE_BACKEND")
	}

	maxBytes, err := strconv.ParseInt(getEnv("MAX_IMPORT_BYTES", "5242880"), 10, 64)
	if err != nil || maxBytes <= 0 {
		invalid = append(invalid, "MAX_IMPORT_BYTES")
	}
	cfg.MaxImportBytes = maxBytes

	ttl, err := time.ParseDuration(getEnv("INTENT_TTL", "5m"))
	if err != nil || ttl <= 0 {
		invalid = append(invalid, "INTENT_TTL")
	}
	cfg.IntentTTL = ttl

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
