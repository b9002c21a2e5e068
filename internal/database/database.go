// Package database provides the persistence medium for the collection store.
//
// The medium is a flat key/value store of UTF-8 strings, the same shape as a
// browser's local storage. Every app collection is one key holding one JSON
// document; the database layer never looks inside the values.
//
// # Implementations
//
//   - Memory: a shared in-process backend. Each Open() returns a handle that
//     behaves like one browser tab; writes through one handle are announced
//     asynchronously to the watchers of every other handle.
//   - SQLite: a file-backed medium (modernc.org/sqlite). Handles opened on the
//     same file, including from other processes, observe each other's writes
//     through a version-polling watcher.
//   - SurrealDB: a networked medium storing each key as a record in the kv table.
//
// # Error Handling
//
// Standard errors are defined for common failure cases:
//   - ErrNotFound: key has never been written (or was removed)
//   - ErrUnavailable: medium disabled or unreachable
//   - ErrQuotaExceeded: write rejected because the medium is full
//   - ErrConnection / ErrQuery: driver-level failures
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Treat as empty
//	}
package database

import (
	"context"
	"errors"
	"fmt"
)

// Standard errors for medium operations.
// Use errors.Is() to check these error types in calling code.
var (
	// ErrNotFound indicates the key holds no value.
	ErrNotFound = errors.New("key not found")

	// ErrUnavailable indicates the medium cannot be accessed at all.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrQuotaExceeded indicates a write would exceed the medium's capacity.
	// It wraps ErrUnavailable so callers can treat both the same way.
	ErrQuotaExceeded = fmt.Errorf("%w: quota exceeded", ErrUnavailable)

	// ErrConnection indicates a failure to connect to or communicate with the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure.
	ErrQuery = errors.New("query error")
)

// Database defines the key/value operations every medium supports
type Database interface {
	// Connection management
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Get returns the value stored under key, or ErrNotFound
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error

	// Remove deletes key; removing an absent key is not an error
	Remove(ctx context.Context, key string) error

	// Keys lists every key currently holding a value
	Keys(ctx context.Context) ([]string, error)
}

// Change describes a write observed by a Watcher.
// Value is nil when the key was removed.
type Change struct {
	Key    string
	Value  *string
	Origin string
}

// Removed reports whether the change deleted the key
func (c Change) Removed() bool {
	return c.Value == nil
}

// Watcher is implemented by media that can announce writes made through
// other handles (other tabs or processes). Writes made through the watching
// handle itself are never delivered back to it. Delivery is asynchronous and
// carries no ordering guarantee relative to other handles.
type Watcher interface {
	Watch(fn func(Change)) (stop func())
}

// Config holds SurrealDB connection configuration
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}
