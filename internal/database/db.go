// Package database keeps a sqlite journal of countdown sessions.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type Database struct {
	DB     *sql.DB
	dbFile string
}

// Open opens (creating if needed) the journal at path and migrates it.
func Open(ctx context.Context, path string) (*Database, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// sqlite serialises writers anyway; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping journal: %w", err)
	}
	d := &Database{DB: db, dbFile: path}
	if err := d.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return d, nil
}

func (d *Database) migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			day TEXT NOT NULL,
			requested_minutes INTEGER NOT NULL,
			started_at DATETIME NOT NULL,
			ended_at DATETIME,
			outcome TEXT NOT NULL DEFAULT 'running'
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_day ON sessions(day);`,
	}
	for _, query := range queries {
		if _, err := d.DB.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	// Columns added after the first release; fails harmlessly when present.
	_, _ = d.DB.ExecContext(ctx, "ALTER TABLE sessions ADD COLUMN remaining_seconds INTEGER DEFAULT 0")
	return nil
}

// WithTx runs fn in a transaction, rolling back when it fails.
func (d *Database) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (d *Database) Path() string { return d.dbFile }

func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close()
}
