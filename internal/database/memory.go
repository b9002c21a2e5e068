package database

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryBackend is shared storage for any number of MemoryDB handles,
// the in-process analogue of one browser origin's local storage.
type MemoryBackend struct {
	mu        sync.RWMutex
	data      map[string]string
	size      int
	quota     int
	available bool
	handles   map[string]*MemoryDB
}

// NewMemoryBackend creates an empty backend. A quota of zero disables the limit.
func NewMemoryBackend(quotaBytes int) *MemoryBackend {
	return &MemoryBackend{
		data:      make(map[string]string),
		quota:     quotaBytes,
		available: true,
		handles:   make(map[string]*MemoryDB),
	}
}

// SetAvailable toggles whether the backend accepts reads and writes,
// mirroring storage being disabled in the browser.
func (b *MemoryBackend) SetAvailable(available bool) {
	b.mu.Lock()
	b.available = available
	b.mu.Unlock()
}

// Open returns a new handle on the backend
func (b *MemoryBackend) Open() *MemoryDB {
	h := &MemoryDB{
		id:       uuid.New().String(),
		backend:  b,
		watchers: make(map[int]func(Change)),
	}
	b.mu.Lock()
	b.handles[h.id] = h
	b.mu.Unlock()
	return h
}

func (b *MemoryBackend) set(origin, key string, value *string) error {
	b.mu.Lock()
	if !b.available {
		b.mu.Unlock()
		return ErrUnavailable
	}

	old, existed := b.data[key]
	next := b.size
	if existed {
		next -= len(key) + len(old)
	}
	if value != nil {
		next += len(key) + len(*value)
		if b.quota > 0 && next > b.quota {
			b.mu.Unlock()
			return ErrQuotaExceeded
		}
		b.data[key] = *value
	} else {
		if !existed {
			b.mu.Unlock()
			return nil
		}
		delete(b.data, key)
	}
	b.size = next

	peers := make([]*MemoryDB, 0, len(b.handles))
	for id, h := range b.handles {
		if id != origin {
			peers = append(peers, h)
		}
	}
	b.mu.Unlock()

	change := Change{Key: key, Value: value, Origin: origin}
	for _, h := range peers {
		h.dispatch(change)
	}
	return nil
}

// MemoryDB is one handle on a MemoryBackend
type MemoryDB struct {
	id      string
	backend *MemoryBackend

	mu       sync.Mutex
	watchers map[int]func(Change)
	nextID   int
	closed   bool
}

// NewMemoryDB creates a handle on a fresh private backend
func NewMemoryDB() *MemoryDB {
	return NewMemoryBackend(0).Open()
}

// ID returns the handle identifier used as Change.Origin
func (m *MemoryDB) ID() string {
	return m.id
}

// Connect is a no-op for the memory medium
func (m *MemoryDB) Connect(ctx context.Context) error {
	return nil
}

// Close detaches the handle from its backend and stops all watchers
func (m *MemoryDB) Close() error {
	m.backend.mu.Lock()
	delete(m.backend.handles, m.id)
	m.backend.mu.Unlock()

	m.mu.Lock()
	m.closed = true
	m.watchers = make(map[int]func(Change))
	m.mu.Unlock()
	return nil
}

// Ping reports whether the backend is available
func (m *MemoryDB) Ping(ctx context.Context) error {
	m.backend.mu.RLock()
	defer m.backend.mu.RUnlock()
	if !m.backend.available {
		return ErrUnavailable
	}
	return nil
}

// Get returns the value stored under key
func (m *MemoryDB) Get(ctx context.Context, key string) (string, error) {
	m.backend.mu.RLock()
	defer m.backend.mu.RUnlock()
	if !m.backend.available {
		return "", ErrUnavailable
	}
	value, ok := m.backend.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores value under key
func (m *MemoryDB) Set(ctx context.Context, key, value string) error {
	return m.backend.set(m.id, key, &value)
}

// Remove deletes key
func (m *MemoryDB) Remove(ctx context.Context, key string) error {
	return m.backend.set(m.id, key, nil)
}

// Keys lists all keys in lexical order
func (m *MemoryDB) Keys(ctx context.Context) ([]string, error) {
	m.backend.mu.RLock()
	defer m.backend.mu.RUnlock()
	if !m.backend.available {
		return nil, ErrUnavailable
	}
	keys := make([]string, 0, len(m.backend.data))
	for k := range m.backend.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Watch registers fn for writes made through other handles on the backend
func (m *MemoryDB) Watch(fn func(Change)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	if !m.closed {
		m.watchers[id] = fn
	}
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.watchers, id)
			m.mu.Unlock()
		})
	}
}

// dispatch delivers a foreign change to every watcher off the writer's goroutine
func (m *MemoryDB) dispatch(c Change) {
	m.mu.Lock()
	fns := make([]func(Change), 0, len(m.watchers))
	for _, fn := range m.watchers {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		go fn(c)
	}
}

var (
	_ Database = (*MemoryDB)(nil)
	_ Watcher  = (*MemoryDB)(nil)
)
