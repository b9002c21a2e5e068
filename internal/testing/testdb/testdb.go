// Package testdb provides isolated collection stores for tests.
//
// Every TestDB owns a private backend, so tests may run in parallel without
// sharing data. A TestDB can open further tabs on the same backend to
// exercise cross-tab propagation.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    joined := store.ListOf[string](tdb.Store, store.KeyJoinedCommunities)
//	    _ = joined.Write(tdb.Ctx(), []string{"web-dev"})
//	}
package testdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/johndoniego/erudite/internal/database"
	"github.com/johndoniego/erudite/internal/events"
	"github.com/johndoniego/erudite/internal/model"
	"github.com/johndoniego/erudite/internal/store"
)

// TestDB is an isolated store over a memory backend
type TestDB struct {
	Backend  *database.MemoryBackend
	DB       *database.MemoryDB
	Hub      *events.Hub
	Store    *store.Store
	Notifier *Notifier
	t        *testing.T
}

// New creates a store over a fresh memory backend. Cleanup is registered
// with t.
func New(t *testing.T) *TestDB {
	t.Helper()
	return NewWithQuota(t, 0)
}

// NewWithQuota is New with a backend size limit in bytes
func NewWithQuota(t *testing.T, quotaBytes int) *TestDB {
	t.Helper()
	return open(t, database.NewMemoryBackend(quotaBytes))
}

// OpenTab opens another store on the same backend, as a second browser tab would
func (tdb *TestDB) OpenTab() *TestDB {
	tdb.t.Helper()
	return open(tdb.t, tdb.Backend)
}

func open(t *testing.T, backend *database.MemoryBackend) *TestDB {
	db := backend.Open()
	hub := events.NewHub()
	notifier := &Notifier{}
	s := store.New(db, hub,
		store.WithNotifier(notifier),
		store.WithMembershipLimit(model.DefaultMembershipLimit),
	)

	t.Cleanup(func() {
		s.Close()
		hub.Close()
		_ = db.Close()
	})

	return &TestDB{
		Backend:  backend,
		DB:       db,
		Hub:      hub,
		Store:    s,
		Notifier: notifier,
		t:        t,
	}
}

// NewSQLite creates a store over a SQLite file in a temporary directory
func NewSQLite(t *testing.T) (*store.Store, *database.SQLiteDB) {
	t.Helper()

	db := database.NewSQLiteDB(filepath.Join(t.TempDir(), "erudite.db"), 10*time.Millisecond)
	if err := db.Connect(context.Background()); err != nil {
		t.Fatalf("testdb: failed to open sqlite: %v", err)
	}
	s := store.New(db, events.NewHub())
	t.Cleanup(func() {
		s.Close()
		_ = db.Close()
	})
	return s, db
}

// NewSurreal creates a store over a running SurrealDB instance configured by
// TEST_DB_* variables. The test is skipped when TEST_DB_HOST is unset.
func NewSurreal(t *testing.T) *store.Store {
	t.Helper()

	cfg, ok := surrealConfig()
	if !ok {
		t.Skip("testdb: TEST_DB_HOST not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.NewSurrealDB(cfg)
	if err := db.Connect(ctx); err != nil {
		t.Fatalf("testdb: failed to connect: %v", err)
	}
	s := store.New(db, events.NewHub())
	t.Cleanup(func() {
		s.Close()
		_ = db.Close()
	})
	return s
}

func surrealConfig() (database.Config, bool) {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		return database.Config{}, false
	}
	return database.Config{
		Host:      host,
		Port:      getenv("TEST_DB_PORT", "8000"),
		User:      getenv("TEST_DB_USER", "root"),
		Password:  getenv("TEST_DB_PASSWORD", "root"),
		Namespace: getenv("TEST_DB_NAMESPACE", "erudite_test"),
		Database:  fmt.Sprintf("test_%d", time.Now().UnixNano()),
	}, true
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Ctx returns a context with a reasonable timeout for test operations.
func (tdb *TestDB) Ctx() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	tdb.t.Cleanup(cancel)
	return ctx
}

// Notifier records storage notices
type Notifier struct {
	mu      sync.Mutex
	notices []store.Notice
}

// Notify implements store.Notifier
func (n *Notifier) Notify(notice store.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

// Notices returns the recorded notices
func (n *Notifier) Notices() []store.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]store.Notice(nil), n.notices...)
}
