package config

import (
	"os"
	"strconv"

	"qpcrfold/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Sweep    SweepConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database connection settings. URL empty means the
// server runs without result persistence.
type DatabaseConfig struct {
	URL string
}

// SweepConfig holds batch analysis settings
type SweepConfig struct {
	MaxParallel int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Sweep: SweepConfig{
			MaxParallel: getEnvInt64("SWEEP_MAX_PARALLEL", 4),
		},
	}
	if cfg.Sweep.MaxParallel < 1 {
		return nil, errors.ConfigInvalid("SWEEP_MAX_PARALLEL must be at least 1")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
