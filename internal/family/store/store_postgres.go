package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"famcard/internal/family/models"
	"famcard/pkg/platform/sentinel"
)

// PostgresCache persists profiles in PostgreSQL so they survive restarts.
type PostgresCache struct {
	pool     *pgxpool.Pool
	cacheTTL time.Duration
}

// NewPostgresCache constructs a PostgreSQL-backed cache and ensures its table
// exists.
func NewPostgresCache(ctx context.Context, pool *pgxpool.Pool, cacheTTL time.Duration) (*PostgresCache, error) {
	if pool == nil {
		return nil, errors.New("postgres pool is required")
	}
	c := &PostgresCache{pool: pool, cacheTTL: cacheTTL}
	if err := c.migrate(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *PostgresCache) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS family_cache (
			iin CHAR(12) PRIMARY KEY,
			payload JSONB NOT NULL,
			stored_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS family_cache_stored_at_idx ON family_cache (stored_at);`,
	}
	for _, stmt := range stmts {
		if _, err := c.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply family cache migrations: %w", err)
		}
	}
	return nil
}

func (c *PostgresCache) Save(ctx context.Context, iin string, family *models.Family) error {
	if family == nil {
		return nil
	}
	payload, err := encode(family)
	if err != nil {
		return err
	}
	const query = `
		INSERT INTO family_cache (iin, payload, stored_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (iin) DO UPDATE SET payload = EXCLUDED.payload, stored_at = EXCLUDED.stored_at;
	`
	if _, err := c.pool.Exec(ctx, query, iin, payload); err != nil {
		return fmt.Errorf("save family cache: %w", err)
	}
	return nil
}

func (c *PostgresCache) Find(ctx context.Context, iin string) (*models.Family, error) {
	const query = `SELECT payload FROM family_cache WHERE iin = $1 AND stored_at > $2;`
	cutoff := time.Now().Add(-c.cacheTTL)

	var payload []byte
	err := c.pool.QueryRow(ctx, query, iin, cutoff).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find family cache: %w", err)
	}
	return decode(payload)
}

func (c *PostgresCache) Delete(ctx context.Context, iin string) error {
	if _, err := c.pool.Exec(ctx, `DELETE FROM family_cache WHERE iin = $1;`, iin); err != nil {
		return fmt.Errorf("delete family cache: %w", err)
	}
	return nil
}
