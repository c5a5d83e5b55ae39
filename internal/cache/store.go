package cache

import (
	"context"
	"sync"
)

// Store is the durable medium behind the in-memory cache. Implementations
// load the full entry map at startup and save full snapshots; the format is
// their own concern as long as key, score and timestamp survive a round trip.
type Store interface {
	Load(ctx context.Context) (map[string]Entry, error)
	Save(ctx context.Context, entries map[string]Entry) error
	Close() error
}

// memoryStore is a Store for tests and cache-less operation. Saves can
// arrive from concurrent persists, so it carries its own lock.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
}

// NewMemoryStore returns an in-memory Store with no durability.
func NewMemoryStore() Store {
	return &memoryStore{entries: make(map[string]Entry)}
}

func (m *memoryStore) Load(_ context.Context) (map[string]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]Entry, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out, nil
}

func (m *memoryStore) Save(_ context.Context, entries map[string]Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]Entry, len(entries))
	for k, v := range entries {
		m.entries[k] = v
	}
	return nil
}

func (m *memoryStore) Close() error { return nil }
