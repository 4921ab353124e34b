package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fortuna/courtside/internal/store"
)

// Backend kinds accepted by Open
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendNone     = "none"
)

// OpenOptions selects and locates a cache backend
type OpenOptions struct {
	Kind       string
	RedisURL   string
	DSN        string
	Retries    int           // connection attempts for redis and postgres
	RetryDelay time.Duration // pause between attempts
	PruneAfter time.Duration // postgres rows older than this are deleted on open
}

// Backend is an opened Store. Redis is set when the store is Redis-backed,
// so other components can share the connection.
type Backend struct {
	Store Store
	Redis *redis.Client

	closers []func() error
	health  func(context.Context) error
}

// Open connects the configured backend. Kind "none" yields a nil Store.
func Open(ctx context.Context, opts OpenOptions) (*Backend, error) {
	b := &Backend{}

	switch opts.Kind {
	case BackendMemory, "":
		b.Store = NewMemoryStore()

	case BackendRedis:
		var rs *RedisStore
		err := retry(opts, "Redis", func() error {
			var err error
			rs, err = NewRedisStore(opts.RedisURL)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		b.Store, b.Redis = rs, rs.Client()
		b.closers = append(b.closers, rs.Close)
		b.health = rs.HealthCheck

	case BackendPostgres:
		var db *store.Database
		err := retry(opts, "Postgres", func() error {
			var err error
			db, err = store.NewDatabase(opts.DSN)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		b.closers = append(b.closers, db.Close)
		b.health = db.HealthCheck

		if err := db.RunMigrations(ctx); err != nil {
			b.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}

		ps := NewPostgresStore(db.DB())
		if opts.PruneAfter > 0 {
			if n, err := ps.Prune(ctx, opts.PruneAfter); err != nil {
				log.Printf("[cache] ⚠️  prune failed: %v (continuing anyway)", err)
			} else if n > 0 {
				log.Printf("[cache] ✓ pruned %d stale rows", n)
			}
		}
		b.Store = ps

	case BackendNone:

	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Kind)
	}

	return b, nil
}

// Cache wraps the store with ttl, or returns nil when caching is off
func (b *Backend) Cache(ttl time.Duration) *Cache {
	if b.Store == nil {
		return nil
	}
	return New(b.Store, ttl)
}

// HealthCheck pings the remote backend. In-process and disabled caches are
// always healthy.
func (b *Backend) HealthCheck(ctx context.Context) error {
	if b.health == nil {
		return nil
	}
	return b.health(ctx)
}

// Close releases every connection Open made
func (b *Backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}

func retry(opts OpenOptions, name string, connect func() error) error {
	attempts := max(opts.Retries, 1)
	var err error
	for i := 0; i < attempts; i++ {
		if err = connect(); err == nil {
			return nil
		}
		if i < attempts-1 {
			log.Printf("[cache] %s connection attempt %d/%d failed: %v (retrying in %v)", name, i+1, attempts, err, opts.RetryDelay)
			time.Sleep(opts.RetryDelay)
		}
	}
	return err
}
