// Package database opens the PostgreSQL handle and ensures the schema
// exists, mirroring first-run initialization.
package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// schema is the two logical tables plus the append-only audit table.
//
// Reference policies are deliberate:
//   - records.creator_id is a weak reference (ON DELETE SET NULL): removing
//     a user clears attribution, never cascades into deleting records.
//   - audit_log.actor_id is a strong reference (ON DELETE RESTRICT): a user
//     with audit history cannot be removed, so the trail stays attributable.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id          UUID PRIMARY KEY,
	login       TEXT NOT NULL,
	contact     TEXT NOT NULL,
	secret_hash TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS users_login_key ON users (lower(login));
CREATE UNIQUE INDEX IF NOT EXISTS users_contact_key ON users (lower(contact));

CREATE TABLE IF NOT EXISTS records (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	department TEXT NOT NULL,
	creator_id UUID REFERENCES users (id) ON DELETE SET NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS audit_log (
	id         UUID PRIMARY KEY,
	actor_id   UUID NOT NULL REFERENCES users (id) ON DELETE RESTRICT,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	department TEXT NOT NULL,
	action     TEXT NOT NULL,
	timestamp  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS audit_log_timestamp_idx ON audit_log (timestamp DESC);
`

// EnsureSchema creates the tables if they do not exist. Idempotent.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
