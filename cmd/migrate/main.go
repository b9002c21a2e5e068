// Command migrate copies app collections between a storage medium and a JSON
// dump file. The dump format is the object a browser's local storage export
// produces, so data saved by the web app can be loaded into any driver.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/johndoniego/erudite/internal/database"
	"github.com/johndoniego/erudite/internal/events"
	"github.com/johndoniego/erudite/internal/store"
)

// nolint:lll,gochecknoglobals
var opts = struct {
	Driver        string        `long:"storage.driver" env:"STORAGE_DRIVER" default:"sqlite" description:"storage driver" choice:"sqlite" choice:"surrealdb"`
	Path          string        `long:"storage.path" env:"STORAGE_PATH" default:"erudite.db" description:"sqlite database file"`
	WatchInterval time.Duration `long:"storage.watch_interval" env:"WATCH_INTERVAL" default:"500ms" description:"sqlite change polling interval"`

	DBHost      string `long:"db.host" env:"DB_HOST" default:"localhost" description:"surrealdb host"`
	DBPort      string `long:"db.port" env:"DB_PORT" default:"8000" description:"surrealdb port"`
	DBNamespace string `long:"db.namespace" env:"DB_NAMESPACE" default:"erudite" description:"surrealdb namespace"`
	DBDatabase  string `long:"db.database" env:"DB_DATABASE" default:"main" description:"surrealdb database"`
	DBUser      string `long:"db.user" env:"DB_USER" default:"root" description:"surrealdb user"`
	DBPassword  string `long:"db.password" env:"DB_PASSWORD" default:"root" description:"surrealdb password"`

	MembershipLimit int `long:"store.membership_limit" env:"MEMBERSHIP_LIMIT" default:"7" description:"maximum joined communities accepted on import"`

	Import string `long:"import" description:"dump file to load into storage"`
	Export string `long:"export" description:"file to write the storage dump to, - for stdout"`

	LogLevel string `long:"log.level" env:"LOG_LEVEL" default:"info" description:"Log level" choice:"debug" choice:"info" choice:"warn" choice:"error"`
}{}

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "Erudite Migrate"
	parser.LongDescription = "Import or export Erudite collections as a JSON dump"

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	var level slog.Level
	_ = level.UnmarshalText([]byte(opts.LogLevel)) // choices are all valid levels
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if (opts.Import == "") == (opts.Export == "") {
		slog.Error("exactly one of --import or --export is required")
		os.Exit(2)
	}

	if err := run(context.Background()); err != nil {
		slog.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	db, err := database.Open(ctx, database.OpenConfig{
		Driver:        opts.Driver,
		Path:          opts.Path,
		WatchInterval: opts.WatchInterval,
		SurrealDB: database.Config{
			Host:      opts.DBHost,
			Port:      opts.DBPort,
			User:      opts.DBUser,
			Password:  opts.DBPassword,
			Namespace: opts.DBNamespace,
			Database:  opts.DBDatabase,
		},
	})
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() { _ = db.Close() }()

	hub := events.NewHub()
	defer hub.Close()
	st := store.New(db, hub,
		store.WithLogger(slog.Default()),
		store.WithMembershipLimit(opts.MembershipLimit),
	)
	defer st.Close()

	if opts.Import != "" {
		return importDump(ctx, st, opts.Import)
	}
	return exportDump(ctx, st, opts.Export)
}

func importDump(ctx context.Context, st *store.Store, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var dump store.Dump
	if err := json.Unmarshal(raw, &dump); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	written, err := st.Import(ctx, dump)
	if err != nil {
		return err
	}
	slog.Info("import complete",
		slog.String("file", path),
		slog.Int("keys", len(written)),
		slog.Int("skipped", len(dump)-len(written)),
	)
	return nil
}

func exportDump(ctx context.Context, st *store.Store, path string) error {
	dump, err := st.Export(ctx)
	if err != nil {
		return err
	}

	out := os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dump); err != nil {
		return err
	}
	slog.Info("export complete", slog.String("file", path), slog.Int("keys", len(dump)))
	return nil
}
