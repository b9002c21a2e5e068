package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/johndoniego/erudite/internal/database"
)

// Storage drivers
const (
	DriverMemory    = database.DriverMemory
	DriverSQLite    = database.DriverSQLite
	DriverSurrealDB = database.DriverSurrealDB
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Store    StoreConfig
	Poller   PollerConfig
	Media    MediaConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// StorageConfig selects the persistence medium
type StorageConfig struct {
	Driver        string
	Path          string
	QuotaBytes    int
	WatchInterval time.Duration
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// StoreConfig holds collection-level business limits
type StoreConfig struct {
	MembershipLimit int
}

// PollerConfig holds the polling fallback settings
type PollerConfig struct {
	Enabled  bool
	Interval time.Duration
}

// MediaConfig holds image upload settings
type MediaConfig struct {
	MaxImageBytes int64
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            getEnv("SERVER_ENV", "development"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 0),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Storage: StorageConfig{
			Driver:        getEnv("STORAGE_DRIVER", DriverSQLite),
			Path:          getEnv("STORAGE_PATH", "./erudite.db"),
			QuotaBytes:    getIntEnv("STORAGE_QUOTA_BYTES", 5*1024*1024),
			WatchInterval: getDurationEnv("WATCH_INTERVAL", 500*time.Millisecond),
		},
		Database: DatabaseConfig{
			Host:      getEnv("DB_HOST", "localhost"),
			Port:      getEnv("DB_PORT", "8000"),
			Namespace: getEnv("DB_NAMESPACE", "erudite"),
			Database:  getEnv("DB_DATABASE", "main"),
			User:      getEnv("DB_USER", "root"),
			Password:  getEnv("DB_PASSWORD", "root"),
		},
		Store: StoreConfig{
			MembershipLimit: getIntEnv("MEMBERSHIP_LIMIT", 7),
		},
		Poller: PollerConfig{
			Enabled:  getBoolEnv("POLL_ENABLED", true),
			Interval: getDurationEnv("POLL_INTERVAL", time.Second),
		},
		Media: MediaConfig{
			MaxImageBytes: int64(getIntEnv("MAX_IMAGE_BYTES", 2*1024*1024)),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Storage.Path == "" {
			errs = append(errs, errors.New("STORAGE_PATH is required for the sqlite driver"))
		}
	case DriverSurrealDB:
		if err := c.Database.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("SurrealDB: %w", err))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be 'memory', 'sqlite', or 'surrealdb', got '%s'", c.Storage.Driver))
	}
	if c.Storage.QuotaBytes < 0 {
		errs = append(errs, errors.New("STORAGE_QUOTA_BYTES must not be negative"))
	}
	if c.Storage.WatchInterval <= 0 {
		errs = append(errs, errors.New("WATCH_INTERVAL must be positive"))
	}

	if c.Store.MembershipLimit <= 0 {
		errs = append(errs, errors.New("MEMBERSHIP_LIMIT must be positive"))
	}

	if c.Poller.Enabled && c.Poller.Interval <= 0 {
		errs = append(errs, errors.New("POLL_INTERVAL must be positive when POLL_ENABLED is true"))
	}

	if c.Media.MaxImageBytes <= 0 {
		errs = append(errs, errors.New("MAX_IMAGE_BYTES must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Validate checks that all required SurrealDB fields are present
func (d DatabaseConfig) Validate() error {
	var missing []string
	if d.Host == "" {
		missing = append(missing, "DB_HOST")
	}
	if d.Port == "" {
		missing = append(missing, "DB_PORT")
	}
	if d.Namespace == "" {
		missing = append(missing, "DB_NAMESPACE")
	}
	if d.Database == "" {
		missing = append(missing, "DB_DATABASE")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
