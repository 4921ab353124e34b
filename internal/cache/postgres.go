package cache

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
)

// PostgresStore keeps cache envelopes in the api_cache table. The table is
// created by the store package migrations.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (ps *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := ps.db.QueryRowContext(ctx, `SELECT value FROM api_cache WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

// Set upserts; concurrent writers race and the last write wins
func (ps *PostgresStore) Set(ctx context.Context, key string, value []byte, _ time.Duration) error {
	_, err := ps.db.ExecContext(ctx, `
		INSERT INTO api_cache (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, key, string(value))
	return err
}

func (ps *PostgresStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := ps.db.ExecContext(ctx, `DELETE FROM api_cache WHERE key = ANY($1)`, pq.Array(keys))
	return err
}

// Prune removes rows not written for longer than maxAge. Expired rows that
// are never read again would otherwise stay forever.
func (ps *PostgresStore) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	res, err := ps.db.ExecContext(ctx, `DELETE FROM api_cache WHERE updated_at < $1`, time.Now().Add(-maxAge))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
