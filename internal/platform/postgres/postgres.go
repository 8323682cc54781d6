// Package postgres owns the pgx connection pool and the schema the stores
// rely on. One generic record set serves every tenant; tenant is a key
// column, not a table suffix.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx pool and verifies connectivity.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolCfg.MaxConns = 10
	poolCfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the tables if they do not exist. Kept as plain DDL
// rather than a migration tool; the schema is two tables.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS learners (
	tenant        TEXT NOT NULL,
	email         TEXT NOT NULL,
	full_name     TEXT NOT NULL,
	company_name  TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (tenant, email),
	UNIQUE (tenant, company_name)
);

CREATE TABLE IF NOT EXISTS training_progress (
	tenant             TEXT NOT NULL,
	email              TEXT NOT NULL,
	video1             BOOLEAN NOT NULL DEFAULT FALSE,
	video2             BOOLEAN NOT NULL DEFAULT FALSE,
	quiz_score         INTEGER,
	dispositif         TEXT,
	engagement         TEXT,
	identification     TEXT,
	formation          TEXT,
	"procedure"        TEXT,
	dispositif_alert   TEXT,
	certifier_iso      TEXT,
	mep_system         TEXT,
	intention          TEXT,
	attestation_issued BOOLEAN NOT NULL DEFAULT FALSE,
	attestation_date   TIMESTAMPTZ,
	PRIMARY KEY (tenant, email)
);
`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
