package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Database       DatabaseConfig
	App            AppConfig
	Regularization RegularizationConfig
	Import         ImportConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// RegularizationConfig holds the fallback regularization settings used when
// the settings store has no row yet.
type RegularizationConfig struct {
	Enabled             bool
	MaxRequestsPerMonth int
}

// ImportConfig holds bulk-import settings. PunchInCodes is the set of device
// punch-state codes treated as clock-in; every other code is clock-out. The
// mapping is vendor-specific, so it has to stay configurable.
type ImportConfig struct {
	PunchInCodes []int
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "biotrack"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Regularization defaults
	maxPerMonth, err := strconv.Atoi(getEnv("REGULARIZATION_MAX_PER_MONTH", "3"))
	if err != nil || maxPerMonth < 1 {
		return nil, fmt.Errorf("invalid REGULARIZATION_MAX_PER_MONTH: must be an integer >= 1")
	}

	config.Regularization = RegularizationConfig{
		Enabled:             getEnv("REGULARIZATION_ENABLED", "true") == "true",
		MaxRequestsPerMonth: maxPerMonth,
	}

	// Import configuration
	punchInCodes, err := parseIntSlice(getEnv("IMPORT_PUNCH_IN_CODES", "255"))
	if err != nil {
		return nil, fmt.Errorf("invalid IMPORT_PUNCH_IN_CODES: %w", err)
	}
	config.Import = ImportConfig{
		PunchInCodes: punchInCodes,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if len(c.Import.PunchInCodes) == 0 {
		return fmt.Errorf("IMPORT_PUNCH_IN_CODES is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseIntSlice(value string) ([]int, error) {
	var result []int
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, nil
}
