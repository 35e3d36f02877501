// Package db persists load runs, daily category totals and raised alerts
// in SQLite.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"
	// sqlite driver
)

// DB wraps the SQL database connection with application-specific methods.
type DB struct {
	*sql.DB
	path string
}

// New creates a new database connection and initializes the schema.
func New(path string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Open database connection
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := sqlDB.PingContext(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{
		DB:   sqlDB,
		path: path,
	}

	// Configure database
	if err := db.configure(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	// Create schema
	if err := db.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	if err := db.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// configure sets up database pragmas for optimal performance.
func (db *DB) configure() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA cache_size=-64000", // 64MB cache
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA temp_store=MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	return nil
}

func (db *DB) createSchema() error {
	if err := db.createLoadRunsTable(); err != nil {
		return err
	}
	if err := db.createDailyTotalsTable(); err != nil {
		return err
	}
	return db.createAlertsTable()
}

func (db *DB) createLoadRunsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS load_runs (
		id TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		format TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		duration_ms INTEGER DEFAULT 0,
		rows_read INTEGER DEFAULT 0,
		rows_dropped INTEGER DEFAULT 0,
		rows_kept INTEGER DEFAULT 0,
		unknown_apps INTEGER DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_load_runs_started ON load_runs(started_at);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

func (db *DB) createDailyTotalsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS daily_totals (
		date TEXT NOT NULL,
		category TEXT NOT NULL,
		seconds REAL NOT NULL DEFAULT 0,
		run_id TEXT,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		day_of_week INTEGER GENERATED ALWAYS AS (CAST(strftime('%w', date) AS INTEGER)) STORED,
		PRIMARY KEY (date, category)
	);
	CREATE INDEX IF NOT EXISTS idx_daily_totals_dow ON daily_totals(day_of_week);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

func (db *DB) createAlertsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS alerts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		key TEXT NOT NULL,
		title TEXT NOT NULL,
		message TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(kind, key)
	);
	CREATE INDEX IF NOT EXISTS idx_alerts_created ON alerts(created_at);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

// Close closes the database connection gracefully.
func (db *DB) Close() error {
	// Checkpoint WAL before closing
	_, _ = db.ExecContext(context.Background(), "PRAGMA wal_checkpoint(TRUNCATE)")
	return db.DB.Close()
}

// Vacuum performs database maintenance to reclaim space.
func (db *DB) Vacuum() error {
	_, err := db.ExecContext(context.Background(), "VACUUM")
	return err
}
