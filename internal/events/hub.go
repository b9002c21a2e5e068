// Package events propagates collection changes to every interested observer.
//
// Listeners registered with Subscribe are invoked synchronously, on the
// writer's goroutine, exactly once per Notify. Streams registered with Stream
// receive events over a buffered channel and are meant for long-lived
// consumers such as SSE connections; a slow stream loses events rather than
// blocking the writer.
package events

import (
	"encoding/json"
	"sync"
)

// Listener receives the raw JSON value of a key after it changes.
// value is nil when the key was removed.
type Listener func(key string, value []byte)

// Event is a change delivered to a stream
type Event struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// Format returns the SSE formatted string
func (e *Event) Format() string {
	data, _ := json.Marshal(e)
	return "event: change\ndata: " + string(data) + "\n\n"
}

// Subscriber represents a connected stream
type Subscriber struct {
	ID     string
	Keys   map[string]bool // empty means every key
	Events chan *Event
	Done   chan struct{}
}

func (s *Subscriber) wants(key string) bool {
	return len(s.Keys) == 0 || s.Keys[key]
}

// Hub manages listener registrations and change fan-out
type Hub struct {
	mu        sync.RWMutex
	listeners map[string]map[uint64]Listener // key -> listenerID -> listener
	streams   map[string]*Subscriber         // subscriberID -> subscriber
	nextID    uint64
}

// NewHub creates a new hub
func NewHub() *Hub {
	return &Hub{
		listeners: make(map[string]map[uint64]Listener),
		streams:   make(map[string]*Subscriber),
	}
}

// Subscribe registers l for changes to key. The returned function removes the
// registration and is safe to call more than once.
func (h *Hub) Subscribe(key string, l Listener) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	if h.listeners[key] == nil {
		h.listeners[key] = make(map[uint64]Listener)
	}
	h.listeners[key][id] = l
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if keyListeners, ok := h.listeners[key]; ok {
				delete(keyListeners, id)
				if len(keyListeners) == 0 {
					delete(h.listeners, key)
				}
			}
		})
	}
}

// Notify fans value out to every listener and stream registered for key.
// Listeners run after the hub lock is released, so they may subscribe,
// unsubscribe or write again.
func (h *Hub) Notify(key string, value []byte) {
	h.mu.RLock()
	snapshot := make([]Listener, 0, len(h.listeners[key]))
	for _, l := range h.listeners[key] {
		snapshot = append(snapshot, l)
	}
	event := &Event{Key: key, Value: json.RawMessage(cloneBytes(value))}
	if event.Value == nil {
		event.Value = json.RawMessage("null")
	}
	for _, sub := range h.streams {
		if !sub.wants(key) {
			continue
		}
		select {
		case sub.Events <- event:
		default:
			// Buffer full, skip this subscriber
		}
	}
	h.mu.RUnlock()

	for _, l := range snapshot {
		l(key, cloneBytes(value))
	}
}

// Stream adds a channel subscriber for the given keys (all keys when none given)
func (h *Hub) Stream(subscriberID string, keys ...string) *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &Subscriber{
		ID:     subscriberID,
		Keys:   make(map[string]bool, len(keys)),
		Events: make(chan *Event, 100), // Buffer to prevent blocking
		Done:   make(chan struct{}),
	}
	for _, k := range keys {
		sub.Keys[k] = true
	}
	h.streams[subscriberID] = sub
	return sub
}

// Unstream removes a channel subscriber
func (h *Hub) Unstream(subscriberID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub, ok := h.streams[subscriberID]; ok {
		close(sub.Done)
		close(sub.Events)
		delete(h.streams, subscriberID)
	}
}

// Close drops every registration and closes all streams
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, sub := range h.streams {
		close(sub.Done)
		close(sub.Events)
		delete(h.streams, id)
	}
	h.listeners = make(map[string]map[uint64]Listener)
}

// ListenerCount returns the number of listeners registered for key
func (h *Hub) ListenerCount(key string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners[key])
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
