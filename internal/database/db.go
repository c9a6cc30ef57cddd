package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx pool on url and pings it.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("unable to parse pgx config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id         UUID PRIMARY KEY,
	status     TEXT NOT NULL DEFAULT 'in_progress',
	start_time TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	end_time   TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS game_actions (
	game_id        UUID NOT NULL REFERENCES games (id),
	action_index   INT NOT NULL,
	actor_id       TEXT NOT NULL DEFAULT '',
	action_type    TEXT NOT NULL,
	action_payload JSONB NOT NULL DEFAULT '{}',
	recorded_at    TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (game_id, action_index)
);
`

// EnsureSchema creates the historian tables if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
