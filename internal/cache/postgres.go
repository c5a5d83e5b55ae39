package cache

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists cache entries in PostgreSQL, for deployments where
// several machines share one comparison cache.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and ensures the cache table
// exists.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS comparison_cache (
		key        TEXT PRIMARY KEY,
		score      DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create cache table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Load reads all persisted entries.
func (s *PostgresStore) Load(ctx context.Context) (map[string]Entry, error) {
	rows, err := s.pool.Query(ctx, `SELECT key, score, created_at FROM comparison_cache`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cache entries: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]Entry)
	for rows.Next() {
		var entry Entry
		var key string
		if err := rows.Scan(&key, &entry.Score, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan cache entry: %w", err)
		}
		entries[key] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cache entries: %w", err)
	}

	return entries, nil
}

// Save upserts the snapshot. Existing keys are overwritten; other writers'
// keys are left alone, so concurrent processes converge instead of clobbering
// each other's entries.
func (s *PostgresStore) Save(ctx context.Context, entries map[string]Entry) error {
	for key, entry := range entries {
		_, err := s.pool.Exec(ctx,
			`INSERT INTO comparison_cache (key, score, created_at)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (key) DO UPDATE SET score = $2, created_at = $3`,
			key, entry.Score, entry.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert cache entry: %w", err)
		}
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
