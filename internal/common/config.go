package common

import (
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	LogLevel string
	Database DatabaseConfig
	Policy   PolicyConfig
	Export   ExportConfig
}

// DatabaseConfig holds embedded-database configuration
type DatabaseConfig struct {
	Path string
}

// PolicyConfig holds routing-policy configuration
type PolicyConfig struct {
	ConfigPath     string
	AutoStageMin   float64
	ReviewMin      float64
	BlockBelow     float64
	FieldReviewMin float64
	CatalogVersion string
}

// ExportConfig holds export-builder configuration
type ExportConfig struct {
	OutputDir string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		LogLevel: getEnv("POINTAKE_LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Path: getEnv("POINTAKE_DB", "./po-intake.db"),
		},
		Policy: PolicyConfig{
			ConfigPath:     getEnv("POINTAKE_POLICY", ""),
			AutoStageMin:   getEnvAsFloat64("POINTAKE_AUTO_STAGE_MIN", 0.95),
			ReviewMin:      getEnvAsFloat64("POINTAKE_REVIEW_MIN", 0.80),
			BlockBelow:     getEnvAsFloat64("POINTAKE_BLOCK_BELOW", 0.50),
			FieldReviewMin: getEnvAsFloat64("POINTAKE_FIELD_REVIEW_MIN", 0.85),
			CatalogVersion: getEnv("POINTAKE_CATALOG_VERSION", ""),
		},
		Export: ExportConfig{
			OutputDir: getEnv("POINTAKE_EXPORT_DIR", "./exports"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return NewAppError("CONFIG_ERROR", "POINTAKE_DB is required", ErrInvalidInput)
	}
	if c.Policy.AutoStageMin < c.Policy.ReviewMin {
		return NewAppError("CONFIG_ERROR", "POINTAKE_AUTO_STAGE_MIN must be >= POINTAKE_REVIEW_MIN", ErrInvalidInput)
	}
	return nil
}
