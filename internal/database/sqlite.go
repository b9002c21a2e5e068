package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteDB is a file-backed medium. Removed keys are kept as tombstones
// (NULL value) so that watchers on other handles can observe the removal.
type SQLiteDB struct {
	path     string
	interval time.Duration
	origin   string
	conn     *sql.DB

	mu      sync.Mutex
	stopChs []chan struct{}
	wg      sync.WaitGroup
}

// NewSQLiteDB creates a medium on the file at path. watchInterval controls how
// often watchers poll for foreign writes.
func NewSQLiteDB(path string, watchInterval time.Duration) *SQLiteDB {
	if watchInterval <= 0 {
		watchInterval = 500 * time.Millisecond
	}
	return &SQLiteDB{
		path:     path,
		interval: watchInterval,
		origin:   uuid.New().String(),
	}
}

// ID returns the handle identifier used as Change.Origin
func (s *SQLiteDB) ID() string {
	return s.origin
}

// Connect opens the file and applies the schema
func (s *SQLiteDB) Connect(ctx context.Context) error {
	conn, err := sql.Open("sqlite", "file:"+s.path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("%w: open db: %v", ErrConnection, err)
	}
	// One connection serialises version allocation within the process.
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = conn.Close()
		return fmt.Errorf("%w: set wal mode: %v", ErrConnection, err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT,
		version INTEGER NOT NULL,
		origin TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS kv_version ON kv(version);
	`
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		_ = conn.Close()
		return fmt.Errorf("%w: migrate: %v", ErrConnection, err)
	}

	s.conn = conn
	return nil
}

// Close stops all watchers and closes the file
func (s *SQLiteDB) Close() error {
	s.mu.Lock()
	for _, ch := range s.stopChs {
		close(ch)
	}
	s.stopChs = nil
	s.mu.Unlock()
	s.wg.Wait()

	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Ping checks the connection
func (s *SQLiteDB) Ping(ctx context.Context) error {
	if s.conn == nil {
		return ErrConnection
	}
	if err := s.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Get returns the value stored under key
func (s *SQLiteDB) Get(ctx context.Context, key string) (string, error) {
	if s.conn == nil {
		return "", ErrUnavailable
	}
	var value string
	err := s.conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ? AND value IS NOT NULL`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", s.classify(err)
	}
	return value, nil
}

// Set stores value under key
func (s *SQLiteDB) Set(ctx context.Context, key, value string) error {
	if s.conn == nil {
		return ErrUnavailable
	}
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO kv (key, value, version, origin)
		VALUES (?, ?, (SELECT COALESCE(MAX(version), 0) + 1 FROM kv), ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			version = excluded.version,
			origin = excluded.origin`,
		key, value, s.origin)
	if err != nil {
		return s.classify(err)
	}
	return nil
}

// Remove tombstones key
func (s *SQLiteDB) Remove(ctx context.Context, key string) error {
	if s.conn == nil {
		return ErrUnavailable
	}
	_, err := s.conn.ExecContext(ctx, `
		UPDATE kv SET
			value = NULL,
			version = (SELECT COALESCE(MAX(version), 0) + 1 FROM kv),
			origin = ?
		WHERE key = ? AND value IS NOT NULL`,
		s.origin, key)
	if err != nil {
		return s.classify(err)
	}
	return nil
}

// Keys lists all live keys in lexical order
func (s *SQLiteDB) Keys(ctx context.Context) ([]string, error) {
	if s.conn == nil {
		return nil, ErrUnavailable
	}
	rows, err := s.conn.QueryContext(ctx, `SELECT key FROM kv WHERE value IS NOT NULL ORDER BY key`)
	if err != nil {
		return nil, s.classify(err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, s.classify(err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Watch polls for writes made by other handles on the same file
func (s *SQLiteDB) Watch(fn func(Change)) func() {
	stopCh := make(chan struct{})

	s.mu.Lock()
	s.stopChs = append(s.stopChs, stopCh)
	s.mu.Unlock()

	last, err := s.maxVersion(context.Background())
	if err != nil {
		slog.Warn("sqlite watch: failed to read version", slog.String("error", err.Error()))
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				last = s.pollChanges(last, fn)
			case <-stopCh:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, ch := range s.stopChs {
				if ch == stopCh {
					close(ch)
					s.stopChs = append(s.stopChs[:i], s.stopChs[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *SQLiteDB) pollChanges(since int64, fn func(Change)) int64 {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, err := s.conn.QueryContext(ctx,
		`SELECT key, value, origin, version FROM kv WHERE version > ? ORDER BY version`, since)
	if err != nil {
		slog.Warn("sqlite watch: poll failed", slog.String("error", err.Error()))
		return since
	}
	defer rows.Close()

	var changes []Change
	for rows.Next() {
		var (
			key, origin string
			value       sql.NullString
			version     int64
		)
		if err := rows.Scan(&key, &value, &origin, &version); err != nil {
			slog.Warn("sqlite watch: scan failed", slog.String("error", err.Error()))
			return since
		}
		since = version
		if origin == s.origin {
			continue
		}
		c := Change{Key: key, Origin: origin}
		if value.Valid {
			v := value.String
			c.Value = &v
		}
		changes = append(changes, c)
	}

	for _, c := range changes {
		fn(c)
	}
	return since
}

func (s *SQLiteDB) maxVersion(ctx context.Context) (int64, error) {
	if s.conn == nil {
		return 0, ErrUnavailable
	}
	var v int64
	err := s.conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM kv`).Scan(&v)
	return v, err
}

// classify maps driver errors onto the package's sentinel errors
func (s *SQLiteDB) classify(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_FULL:
			return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		case sqlite3.SQLITE_READONLY, sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_IOERR:
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrQuery, err)
}

var (
	_ Database = (*SQLiteDB)(nil)
	_ Watcher  = (*SQLiteDB)(nil)
)
