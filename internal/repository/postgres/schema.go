package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// EnsureSchema creates the tables the service needs if they do not exist.
// Booking ids are BIGSERIAL so the ledger is ordered by assignment;
// committed_at is store-assigned and never client-supplied.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			venue TEXT NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			total_capacity INTEGER NOT NULL CHECK (total_capacity >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id BIGSERIAL PRIMARY KEY,
			event_id BIGINT NOT NULL REFERENCES events(id),
			user_id BIGINT NOT NULL REFERENCES users(id),
			seats INTEGER NOT NULL CHECK (seats > 0),
			remaining_after INTEGER NOT NULL CHECK (remaining_after >= 0),
			committed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_event_id ON bookings (event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_user_id ON bookings (user_id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
