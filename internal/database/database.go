package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vedran77/bloglist/internal/config"
)

// Applied one statement at a time; pgx's extended protocol rejects
// multi-statement strings.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		post_ids      JSONB NOT NULL DEFAULT '[]',
		created_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id         UUID PRIMARY KEY,
		title      TEXT NOT NULL,
		author     TEXT NOT NULL DEFAULT '',
		url        TEXT NOT NULL,
		likes      INTEGER NOT NULL DEFAULT 0,
		user_id    UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

// Connect opens a pgx pool against the configured postgres database and
// applies the schema.
func Connect(cfg *config.Config) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	for _, stmt := range schema {
		if _, err := pool.Exec(context.Background(), stmt); err != nil {
			return nil, fmt.Errorf("unable to apply schema: %w", err)
		}
	}

	return pool, nil
}
