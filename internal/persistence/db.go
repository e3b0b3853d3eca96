package persistence

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // register sqlite driver
)

func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("set wal mode: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()

		return nil, err
	}

	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	// Single-row table: the widget remembers at most one authorized session.
	const schema = `
		CREATE TABLE IF NOT EXISTS wallet_sessions (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			strategy TEXT NOT NULL,
			account TEXT NOT NULL,
			chain_id INTEGER NOT NULL,
			connected_at INTEGER NOT NULL
		);
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate wallet_sessions: %w", err)
	}

	return nil
}
