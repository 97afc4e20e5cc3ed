package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds application configuration values.
type Config struct {
	HTTPPort    string
	DataBackend string
	DatabaseDSN string
	// SeedSample loads the built-in sample catalog into an empty database.
	SeedSample bool
	// CatalogPath, when set, replaces the built-in sample catalog.
	CatalogPath string
	LogLevel    string
	// LegacyErrorStatus answers dashboard errors with HTTP 200 and an
	// error body, as older no-code callers expect.
	LegacyErrorStatus bool
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	return Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		DataBackend:       strings.ToLower(getEnv("DATA_BACKEND", BackendSQLite)),
		DatabaseDSN:       getEnv("DATABASE_DSN", "royalties.db"),
		SeedSample:        getEnvBool("SEED_SAMPLE", true),
		CatalogPath:       getEnv("CATALOG_PATH", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LegacyErrorStatus: getEnvBool("LEGACY_ERROR_STATUS", false),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.HTTPPort); err != nil {
		problems = append(problems, fmt.Sprintf("invalid HTTP_PORT %q: must be a number", c.HTTPPort))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid HTTP_PORT %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case BackendSQLite:
		if c.DatabaseDSN == "" {
			problems = append(problems, "DATABASE_DSN cannot be empty when using the sqlite backend")
		} else if inMemoryDSN(c.DatabaseDSN) {
			// Migrations run on their own connection, so an in-memory
			// schema would never be seen by the server.
			problems = append(problems, fmt.Sprintf("DATABASE_DSN %q is an in-memory database; use the memory backend instead", c.DatabaseDSN))
		}
	case BackendMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid DATA_BACKEND %q: must be %s or %s", c.DataBackend, BackendSQLite, BackendMemory))
	}

	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); err != nil {
			problems = append(problems, fmt.Sprintf("catalog file %s is not readable: %v", c.CatalogPath, err))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func inMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.HasPrefix(dsn, "file::memory:") || strings.Contains(dsn, "mode=memory")
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
