package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"hierlogit/internal/errors"
)

// Config represents the complete library configuration
type Config struct {
	Numeric NumericConfig
	Batch   BatchConfig
}

// NumericConfig holds numerical tolerances used at bind time
type NumericConfig struct {
	// SymmetryTol bounds the allowed absolute asymmetry |A[i,j]-A[j,i]| of
	// the supplied prior precision matrix before binding rejects it.
	SymmetryTol float64
}

// BatchConfig holds settings for concurrent batch evaluation
type BatchConfig struct {
	// Workers caps the number of concurrent log-density evaluations in a
	// batch call.
	Workers int
}

// Defaults used when the corresponding environment variable is unset.
const (
	DefaultSymmetryTol = 1e-8
	DefaultWorkers     = 4
)

// Load reads configuration from environment variables and validates it. A
// .env file in the working directory is honored when present.
func Load() (*Config, error) {
	// Ignore the error: a missing .env file just means plain env vars.
	_ = godotenv.Load()

	config := &Config{
		Numeric: NumericConfig{
			SymmetryTol: getEnvFloatOrDefault("OMEGA_SYMMETRY_TOL", DefaultSymmetryTol),
		},
		Batch: BatchConfig{
			Workers: getEnvIntOrDefault("BATCH_WORKERS", DefaultWorkers),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Numeric.SymmetryTol < 0 {
		return errors.ConfigInvalid("OMEGA_SYMMETRY_TOL must be non-negative")
	}
	if config.Batch.Workers < 1 {
		return errors.ConfigInvalid("BATCH_WORKERS must be at least 1")
	}
	return nil
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
