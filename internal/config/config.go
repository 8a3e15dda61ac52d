package config

import (
	"os"
	"strconv"

	"pairscore/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data     DataConfig
	Database DatabaseConfig
	Scoring  ScoringConfig
}

// DataConfig holds file-backed matrix settings
type DataConfig struct {
	MatrixFile string // xlsx or csv feature-by-sample matrix
}

// DatabaseConfig holds database-backed matrix settings
type DatabaseConfig struct {
	URL     string
	Dataset string
}

// ScoringConfig holds permutation scoring defaults; flags override these.
type ScoringConfig struct {
	Iterations    int
	MinIterations int
	MinPairs      int
	Seed          int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data: DataConfig{
			MatrixFile: getEnvOrDefault("MATRIX_FILE", ""),
		},
		Database: DatabaseConfig{
			URL:     getEnvOrDefault("DATABASE_URL", ""),
			Dataset: getEnvOrDefault("DATASET_NAME", "default"),
		},
		Scoring: ScoringConfig{
			Iterations:    getEnvIntOrDefault("SCORE_ITERATIONS", 1000),
			MinIterations: getEnvIntOrDefault("SCORE_MIN_ITERATIONS", 100),
			MinPairs:      getEnvIntOrDefault("SCORE_MIN_PAIRS", 50),
			Seed:          getEnvInt64OrDefault("SCORE_SEED", 42),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Scoring.Iterations <= 0 {
		return errors.ConfigInvalid("SCORE_ITERATIONS must be positive")
	}
	if config.Scoring.MinIterations <= 0 {
		return errors.ConfigInvalid("SCORE_MIN_ITERATIONS must be positive")
	}
	if config.Scoring.MinPairs <= 0 {
		return errors.ConfigInvalid("SCORE_MIN_PAIRS must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
