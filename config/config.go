// Package config provides configuration settings for the URL shortener service.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported values for DatabaseDriver.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the configuration settings for the application.
type Config struct {
	ServerPort            int
	BaseURL               string
	RequestTimeout        time.Duration
	JWTSecret             string
	TokenTTL              time.Duration
	DatabaseDriver        string
	DatabaseDSN           string
	MaxGenerationAttempts int
	LogLevel              string
}

// DefaultConfig returns the default configuration settings.
func DefaultConfig() *Config {
	return &Config{
		ServerPort:            3000,
		BaseURL:               "http://localhost:3000",
		RequestTimeout:        5 * time.Second,
		JWTSecret:             "dev-secret",
		TokenTTL:              time.Hour,
		DatabaseDriver:        DriverSQLite,
		DatabaseDSN:           "shortener.db",
		MaxGenerationAttempts: 10,
		LogLevel:              "info",
	}
}

// Load reads an optional .env file and overlays environment variables on the
// defaults. Values that fail to parse keep their default.
func Load() (*Config, error) {
	// a missing .env is the normal case outside local development
	_ = godotenv.Load()

	cfg := DefaultConfig()
	cfg.ServerPort = getEnvInt("PORT", cfg.ServerPort)
	cfg.BaseURL = getEnv("BASE_URL", fmt.Sprintf("http://localhost:%d", cfg.ServerPort))
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.TokenTTL = getEnvDuration("JWT_EXPIRES_IN", cfg.TokenTTL)
	cfg.RequestTimeout = getEnvDuration("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.DatabaseDriver = strings.ToLower(getEnv("DATABASE_DRIVER", cfg.DatabaseDriver))
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", cfg.DatabaseDSN)
	cfg.MaxGenerationAttempts = getEnvInt("MAX_GENERATION_ATTEMPTS", cfg.MaxGenerationAttempts)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that the service cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.ServerPort <= 0 || c.ServerPort > 65535:
		return fmt.Errorf("invalid server port %d", c.ServerPort)
	case c.BaseURL == "":
		return errors.New("base URL cannot be empty")
	case c.JWTSecret == "":
		return errors.New("JWT secret cannot be empty")
	case c.TokenTTL <= 0:
		return errors.New("token TTL must be positive")
	case c.RequestTimeout <= 0:
		return errors.New("request timeout must be positive")
	case c.MaxGenerationAttempts <= 0:
		return errors.New("max generation attempts must be positive")
	}

	switch c.DatabaseDriver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.DatabaseDriver)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}
