package database

import (
	"context"
	"fmt"
	"time"
)

// Drivers accepted by Open
const (
	DriverMemory    = "memory"
	DriverSQLite    = "sqlite"
	DriverSurrealDB = "surrealdb"
)

// OpenConfig selects and configures a medium
type OpenConfig struct {
	Driver        string
	Path          string        // sqlite file
	QuotaBytes    int           // memory backend capacity, 0 for unlimited
	WatchInterval time.Duration // sqlite change polling
	SurrealDB     Config
}

// Open builds the medium named by cfg.Driver and connects it
func Open(ctx context.Context, cfg OpenConfig) (Database, error) {
	var db Database
	switch cfg.Driver {
	case DriverMemory:
		db = NewMemoryBackend(cfg.QuotaBytes).Open()
	case DriverSQLite:
		db = NewSQLiteDB(cfg.Path, cfg.WatchInterval)
	case DriverSurrealDB:
		db = NewSurrealDB(cfg.SurrealDB)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}

	if err := db.Connect(ctx); err != nil {
		return nil, err
	}
	return db, nil
}
