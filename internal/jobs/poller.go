package jobs

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/johndoniego/erudite/internal/store"
)

// Poller is the fallback consistency check. It re-reads watched keys on an
// interval and announces a key through the hub only when its persisted value
// differs from the last value seen. Values seen through ordinary hub
// notifications count as seen, so a write is never announced twice.
type Poller struct {
	store    *store.Store
	interval time.Duration
	logger   *slog.Logger

	mu           sync.Mutex
	fingerprints map[string][blake2b.Size256]byte
	generations  map[string]uint64 // bumped by every hub delivery
	unsubscribe  map[string]func()

	stopCh  chan struct{}
	wg      sync.WaitGroup
	running bool
}

// NewPoller creates a poller over s watching keys
func NewPoller(s *store.Store, interval time.Duration, logger *slog.Logger, keys ...string) *Poller {
	if interval == 0 {
		interval = time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &Poller{
		store:        s,
		interval:     interval,
		logger:       logger,
		fingerprints: make(map[string][blake2b.Size256]byte),
		generations:  make(map[string]uint64),
		unsubscribe:  make(map[string]func()),
		stopCh:       make(chan struct{}),
	}
	for _, key := range keys {
		p.Watch(key)
	}
	return p
}

// Watch adds key to the polled set. The current value is taken as seen.
func (p *Poller) Watch(key string) {
	p.mu.Lock()
	if _, ok := p.unsubscribe[key]; ok {
		p.mu.Unlock()
		return
	}
	p.fingerprints[key] = fingerprint(p.store.ReadRaw(context.Background(), key))
	p.mu.Unlock()

	unsub := p.store.Hub().Subscribe(key, p.observe)

	p.mu.Lock()
	p.unsubscribe[key] = unsub
	p.mu.Unlock()
}

// Keys returns the watched keys in lexical order
func (p *Poller) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.fingerprints))
	for k := range p.fingerprints {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// observe records a value delivered through the hub
func (p *Poller) observe(key string, value []byte) {
	p.mu.Lock()
	p.fingerprints[key] = fingerprint(value)
	p.generations[key]++
	p.mu.Unlock()
}

// Start begins polling
func (p *Poller) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run()
	p.logger.Info("collection poller started", "interval", p.interval, "keys", len(p.Keys()))
}

// Stop halts polling and releases the hub subscriptions
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	unsubs := make([]func(), 0, len(p.unsubscribe))
	for key, unsub := range p.unsubscribe {
		unsubs = append(unsubs, unsub)
		delete(p.unsubscribe, key)
	}
	p.mu.Unlock()

	close(p.stopCh)
	p.wg.Wait()
	for _, unsub := range unsubs {
		unsub()
	}
	p.logger.Info("collection poller stopped")
}

func (p *Poller) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), p.interval)
			if changed := p.RunOnce(ctx); len(changed) > 0 {
				p.logger.Debug("poller found external changes", "keys", changed)
			}
			cancel()
		case <-p.stopCh:
			return
		}
	}
}

// RunOnce polls every watched key once and returns the keys it announced.
// A key that received a hub delivery while it was being read is skipped: the
// delivered value is newer than the one read, and the next poll re-checks it.
func (p *Poller) RunOnce(ctx context.Context) []string {
	type change struct {
		key   string
		value []byte
	}
	var changes []change

	for _, key := range p.Keys() {
		p.mu.Lock()
		gen := p.generations[key]
		p.mu.Unlock()

		value := p.store.ReadRaw(ctx, key)
		fp := fingerprint(value)

		p.mu.Lock()
		if p.generations[key] == gen && p.fingerprints[key] != fp {
			p.fingerprints[key] = fp
			changes = append(changes, change{key: key, value: value})
		}
		p.mu.Unlock()
	}

	keys := make([]string, 0, len(changes))
	for _, c := range changes {
		p.store.Hub().Notify(c.key, c.value)
		keys = append(keys, c.key)
	}
	return keys
}

// IsRunning returns whether the poller is running
func (p *Poller) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func fingerprint(value []byte) [blake2b.Size256]byte {
	return blake2b.Sum256(value)
}
