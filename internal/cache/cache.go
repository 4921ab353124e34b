// Package cache is a time-boxed, read-through cache of upstream API
// responses. Values are wrapped in an envelope carrying their expiry and
// stale entries are evicted lazily, on the read that finds them.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"
)

// DefaultTTL is how long a cached response stays fresh
const DefaultTTL = 30 * time.Minute

// ErrNotFound is returned by a Store when the key has no value
var ErrNotFound = errors.New("cache: key not found")

// Store is the raw key-value backend under a Cache
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Entry is the stored envelope. Expiry is in epoch milliseconds.
type Entry struct {
	Expiry int64           `json:"expiry"`
	Data   json.RawMessage `json:"data"`
}

// Cache wraps a Store with TTL envelopes. A nil *Cache is valid and caches
// nothing.
type Cache struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// New creates a Cache. A non-positive ttl uses DefaultTTL.
func New(store Store, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{store: store, ttl: ttl, now: time.Now}
}

// WithClock replaces the clock used for expiry
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// TTL reports the freshness window
func (c *Cache) TTL() time.Duration {
	if c == nil {
		return 0
	}
	return c.ttl
}

// Key builds "<kind>-<season>" keys such as "schedule-2026"
func Key(kind string, season interface{}) string {
	return fmt.Sprintf("%s-%v", kind, season)
}

// Get decodes a fresh entry into dst and reports whether one was found.
// An expired or unreadable entry is deleted and reported as absent.
func (c *Cache) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	if c == nil || c.store == nil {
		return false, nil
	}

	raw, err := c.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", key, err)
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil || len(entry.Data) == 0 {
		log.Printf("[cache] ⚠️  dropping unreadable entry %s", key)
		c.evict(ctx, key)
		return false, nil
	}

	if c.now().UnixMilli() >= entry.Expiry {
		c.evict(ctx, key)
		return false, nil
	}

	if err := json.Unmarshal(entry.Data, dst); err != nil {
		c.evict(ctx, key)
		return false, nil
	}
	return true, nil
}

// Set stores value under key for one TTL
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	if c == nil || c.store == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	entry, err := json.Marshal(Entry{
		Expiry: c.now().Add(c.ttl).UnixMilli(),
		Data:   data,
	})
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	if err := c.store.Set(ctx, key, entry, c.ttl); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (c *Cache) evict(ctx context.Context, key string) {
	if err := c.store.Delete(ctx, key); err != nil {
		log.Printf("[cache] ⚠️  failed to evict %s: %v", key, err)
	}
}
