package cache

import (
	"context"
	"sync"
	"time"
)

// sweepEvery is how many writes pass between expiry sweeps
const sweepEvery = 64

type memoryEntry struct {
	value    []byte
	expireAt time.Time // zero never expires
}

// MemoryStore is an in-process Store. Like Redis it honours the ttl given to
// Set: expired slots read as missing and are swept out every sweepEvery
// writes, so keys that are never read again (old scoreboards, athlete
// stats) do not pile up for the life of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	writes  int
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

// WithClock swaps the clock used for slot expiry
func (m *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	m.now = now
	return m
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok || e.expired(m.now()) {
		return nil, ErrNotFound
	}
	return e.value, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expireAt = m.now().Add(ttl)
	}
	m.entries[key] = e

	m.writes++
	if m.writes%sweepEvery == 0 {
		m.sweepLocked()
	}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

// Sweep drops every expired slot and reports how many went
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepLocked()
}

func (m *MemoryStore) sweepLocked() int {
	now := m.now()
	n := 0
	for k, e := range m.entries {
		if e.expired(now) {
			delete(m.entries, k)
			n++
		}
	}
	return n
}

// Len is the number of stored slots, fresh or not
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expireAt.IsZero() && !now.Before(e.expireAt)
}
