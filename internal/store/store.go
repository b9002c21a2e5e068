// Package store is the single entry point to the persisted app collections.
//
// Each collection is one key in the persistence medium holding one JSON
// document. Reads never fail: an absent, unreadable or malformed value comes
// back as the collection's empty default. Writes persist first and then fan
// the new value out through the events hub before returning, so a caller that
// both writes and displays a key sees its own change immediately.
//
// Usage:
//
//	s := store.New(db, hub, store.WithLogger(logger))
//	joined := store.ListOf[string](s, store.KeyJoinedCommunities)
//	ids := joined.Read(ctx)
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/johndoniego/erudite/internal/database"
	"github.com/johndoniego/erudite/internal/events"
)

var (
	// ErrStorageUnavailable is returned by writes the medium refused
	// (disabled, unreachable, or over quota).
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrMalformedValue marks a stored value that could not be decoded.
	// It is only logged; reads fall back to the empty default.
	ErrMalformedValue = errors.New("malformed stored value")
)

// Store persists collections through a database.Database and propagates
// every change through an events.Hub
type Store struct {
	db       database.Database
	hub      *events.Hub
	logger   *slog.Logger
	notifier Notifier
	checks   map[string][]WriteCheck

	// mu serialises writes so Mutate observes the latest persisted value
	mu sync.Mutex

	watchMu   sync.Mutex
	stopWatch func()
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for recoverable read errors
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithNotifier sets where failed writes are reported
func WithNotifier(n Notifier) Option {
	return func(s *Store) {
		s.notifier = n
	}
}

// New creates a store over db. If db implements database.Watcher, changes
// made through other handles are forwarded to hub until Close is called.
func New(db database.Database, hub *events.Hub, opts ...Option) *Store {
	s := &Store{
		db:     db,
		hub:    hub,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = NewLogNotifier(s.logger)
	}

	if w, ok := db.(database.Watcher); ok {
		s.stopWatch = w.Watch(s.forward)
	}
	return s
}

// Hub returns the hub changes are propagated through
func (s *Store) Hub() *events.Hub {
	return s.hub
}

// Close stops forwarding changes from other handles. It does not close the
// underlying database.
func (s *Store) Close() {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	if s.stopWatch != nil {
		s.stopWatch()
		s.stopWatch = nil
	}
}

// forward relays a change observed on another handle to local subscribers
func (s *Store) forward(c database.Change) {
	var raw []byte
	if !c.Removed() {
		raw = []byte(*c.Value)
	}
	s.logger.Debug("cross-tab change", "key", c.Key, "origin", c.Origin, "removed", c.Removed())
	s.hub.Notify(c.Key, raw)
}

// ReadRaw returns the JSON stored under key, or nil when the key is absent or
// the medium cannot be read
func (s *Store) ReadRaw(ctx context.Context, key string) []byte {
	value, err := s.db.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			s.logger.Warn("collection read failed, using empty default",
				"key", key,
				"error", err,
			)
		}
		return nil
	}
	return []byte(value)
}

// WriteRaw persists raw JSON under key and notifies subscribers.
// raw must be a valid JSON document.
func (s *Store) WriteRaw(ctx context.Context, key string, raw []byte) error {
	s.mu.Lock()
	err := s.persist(ctx, key, raw)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.hub.Notify(key, raw)
	return nil
}

// Remove deletes the collection under key and notifies subscribers with the
// empty value
func (s *Store) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	err := s.db.Remove(ctx, key)
	s.mu.Unlock()
	if err != nil {
		return s.writeFailed(key, err)
	}

	s.hub.Notify(key, nil)
	return nil
}

// Keys lists the keys currently holding a value
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.db.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return keys, nil
}

// persist writes raw under key; callers hold s.mu
func (s *Store) persist(ctx context.Context, key string, raw []byte) error {
	if err := s.check(key, raw); err != nil {
		return err
	}
	if err := s.db.Set(ctx, key, string(raw)); err != nil {
		return s.writeFailed(key, err)
	}
	return nil
}

func (s *Store) writeFailed(key string, cause error) error {
	msg := "Your changes could not be saved on this device"
	if errors.Is(cause, database.ErrQuotaExceeded) {
		msg = "Local storage is full, so your changes were not saved"
	}
	s.notifier.Notify(Notice{Key: key, Message: msg, Err: cause})
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, key, cause)
}

// isNull reports whether raw holds no usable document
func isNull(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
