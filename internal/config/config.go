package config

import (
	"fmt"
	"os"
	"strings"
)

// Backend names accepted by DATA_BACKEND.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type Config struct {
	// HTTP server
	Addr        string
	CORSOrigins []string

	// Persistence
	DataBackend  string
	SQLiteDBPath string
	RedisAddr    string

	// Logging
	LogLevel string
}

// Load reads configuration from the environment with sensible defaults.
func Load() *Config {
	return &Config{
		Addr:        getEnv("ADDR", ":8080"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:8080")),

		DataBackend:  getEnv("DATA_BACKEND", BackendSQLite),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/gastei.db"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate returns an error when the configuration is unusable.
func (c *Config) Validate() error {
	switch c.DataBackend {
	case BackendMemory, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("unknown DATA_BACKEND %q (want memory, sqlite or redis)", c.DataBackend)
	}
	if c.Addr == "" {
		return fmt.Errorf("ADDR must not be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
