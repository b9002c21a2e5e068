package config

import (
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate_ValidConfig(t *testing.T) {
	if err := validBaseConfig().Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_InvalidServerEnv(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Env = "invalid"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid SERVER_ENV")
	}
	if !strings.Contains(err.Error(), "SERVER_ENV") {
		t.Errorf("expected error to mention SERVER_ENV, got: %v", err)
	}
}

func TestConfig_Validate_MissingPort(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Port = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing SERVER_PORT")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Errorf("expected error to mention SERVER_PORT, got: %v", err)
	}
}

func TestConfig_Validate_UnknownDriver(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Storage.Driver = "indexeddb"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown STORAGE_DRIVER")
	}
	if !strings.Contains(err.Error(), "STORAGE_DRIVER") {
		t.Errorf("expected error to mention STORAGE_DRIVER, got: %v", err)
	}
}

func TestConfig_Validate_SQLiteRequiresPath(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Storage.Path = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing STORAGE_PATH")
	}
	if !strings.Contains(err.Error(), "STORAGE_PATH") {
		t.Errorf("expected error to mention STORAGE_PATH, got: %v", err)
	}
}

func TestConfig_Validate_MemoryIgnoresPath(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Storage.Driver = DriverMemory
	cfg.Storage.Path = ""

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_SurrealRequiresDatabaseFields(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Storage.Driver = DriverSurrealDB
	cfg.Database.Host = ""
	cfg.Database.Namespace = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for incomplete SurrealDB config")
	}
	if !strings.Contains(err.Error(), "DB_HOST") || !strings.Contains(err.Error(), "DB_NAMESPACE") {
		t.Errorf("expected error to list DB_HOST and DB_NAMESPACE, got: %v", err)
	}
}

func TestConfig_Validate_MembershipLimitMustBePositive(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Store.MembershipLimit = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for zero MEMBERSHIP_LIMIT")
	}
	if !strings.Contains(err.Error(), "MEMBERSHIP_LIMIT") {
		t.Errorf("expected error to mention MEMBERSHIP_LIMIT, got: %v", err)
	}
}

func TestConfig_Validate_PollIntervalOnlyCheckedWhenEnabled(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Poller.Interval = 0

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero POLL_INTERVAL with polling enabled")
	}

	cfg.Poller.Enabled = false
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config with polling disabled, got: %v", err)
	}
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Port = ""
	cfg.Store.MembershipLimit = -1
	cfg.Media.MaxImageBytes = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected errors")
	}
	for _, want := range []string{"SERVER_PORT", "MEMBERSHIP_LIMIT", "MAX_IMAGE_BYTES"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %s, got: %v", want, err)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MEMBERSHIP_LIMIT", "")
	t.Setenv("POLL_INTERVAL", "")
	t.Setenv("STORAGE_DRIVER", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Store.MembershipLimit != 7 {
		t.Errorf("expected default membership limit 7, got %d", cfg.Store.MembershipLimit)
	}
	if cfg.Poller.Interval != time.Second {
		t.Errorf("expected default poll interval 1s, got %v", cfg.Poller.Interval)
	}
	if cfg.Storage.Driver != DriverSQLite {
		t.Errorf("expected sqlite driver by default, got %q", cfg.Storage.Driver)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MEMBERSHIP_LIMIT", "3")
	t.Setenv("POLL_INTERVAL", "250ms")
	t.Setenv("POLL_ENABLED", "false")
	t.Setenv("STORAGE_DRIVER", DriverMemory)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Store.MembershipLimit != 3 {
		t.Errorf("expected membership limit 3, got %d", cfg.Store.MembershipLimit)
	}
	if cfg.Poller.Interval != 250*time.Millisecond {
		t.Errorf("expected poll interval 250ms, got %v", cfg.Poller.Interval)
	}
	if cfg.Poller.Enabled {
		t.Error("expected polling disabled")
	}
	if cfg.Storage.Driver != DriverMemory {
		t.Errorf("expected memory driver, got %q", cfg.Storage.Driver)
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := validBaseConfig()
	if !cfg.IsDevelopment() {
		t.Error("expected development")
	}
	cfg.Server.Env = "production"
	if cfg.IsDevelopment() || !cfg.IsProduction() {
		t.Error("expected production")
	}
}

func validBaseConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			Env:            "development",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Storage: StorageConfig{
			Driver:        DriverSQLite,
			Path:          "./erudite.db",
			QuotaBytes:    5 * 1024 * 1024,
			WatchInterval: 500 * time.Millisecond,
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      "8000",
			Namespace: "erudite",
			Database:  "main",
		},
		Store: StoreConfig{MembershipLimit: 7},
		Poller: PollerConfig{
			Enabled:  true,
			Interval: time.Second,
		},
		Media: MediaConfig{MaxImageBytes: 1024},
	}
}
