package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Collection is a typed view of one key
type Collection[T any] struct {
	store *Store
	key   string
	empty func() T
}

// NewCollection binds key to T, with empty supplying the value returned for
// absent or unreadable data
func NewCollection[T any](s *Store, key string, empty func() T) *Collection[T] {
	return &Collection[T]{store: s, key: key, empty: empty}
}

// ListOf returns a list collection whose empty default is an empty, non-nil slice
func ListOf[E any](s *Store, key string) *Collection[[]E] {
	return NewCollection(s, key, func() []E { return []E{} })
}

// RecordOf returns a singleton collection whose empty default is the zero T
func RecordOf[T any](s *Store, key string) *Collection[T] {
	return NewCollection(s, key, func() T {
		var zero T
		return zero
	})
}

// Key returns the persisted key
func (c *Collection[T]) Key() string {
	return c.key
}

// Read returns the persisted value, or the empty default
func (c *Collection[T]) Read(ctx context.Context) T {
	return c.decode(c.store.ReadRaw(ctx, c.key))
}

// Write replaces the persisted value and notifies subscribers
func (c *Collection[T]) Write(ctx context.Context, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	return c.store.WriteRaw(ctx, c.key, raw)
}

// Mutate applies fn to the latest persisted value and writes the result.
// Returning an error from fn aborts without writing. Mutations through the
// same Store are serialised; mutations from other handles may still be lost
// (last writer wins).
func (c *Collection[T]) Mutate(ctx context.Context, fn func(current T) (T, error)) (T, error) {
	c.store.mu.Lock()
	current := c.decode(c.store.ReadRaw(ctx, c.key))
	next, err := fn(current)
	if err != nil {
		c.store.mu.Unlock()
		return current, err
	}

	raw, err := json.Marshal(next)
	if err != nil {
		c.store.mu.Unlock()
		return current, fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.store.persist(ctx, c.key, raw); err != nil {
		c.store.mu.Unlock()
		return current, err
	}
	c.store.mu.Unlock()

	c.store.hub.Notify(c.key, raw)
	return next, nil
}

// Subscribe registers fn for every change to the collection, including
// changes made through other handles. fn receives the decoded value.
func (c *Collection[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	return c.store.hub.Subscribe(c.key, func(_ string, raw []byte) {
		fn(c.decode(raw))
	})
}

func (c *Collection[T]) decode(raw []byte) T {
	if isNull(raw) {
		return c.empty()
	}
	v := c.empty()
	if err := json.Unmarshal(raw, &v); err != nil {
		c.store.logger.Warn("collection value is malformed, using empty default",
			"key", c.key,
			"error", fmt.Errorf("%w: %v", ErrMalformedValue, err),
		)
		return c.empty()
	}
	return v
}
