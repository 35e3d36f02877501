package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/j-veylop/activity-insights-tui/internal/logger"
	"github.com/j-veylop/activity-insights-tui/internal/models"
)

// InsertLoadRun records an ingestion. A missing ID is filled with a new UUID.
func (db *DB) InsertLoadRun(run *models.LoadRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	started := run.StartedAt
	if started.IsZero() {
		started = time.Now()
	}

	query := `
		INSERT INTO load_runs (
			id, path, format, started_at, duration_ms,
			rows_read, rows_dropped, rows_kept, unknown_apps
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.ExecContext(context.Background(), query,
		run.ID,
		run.Path,
		run.Format,
		started.UTC().Format(timestampLayout),
		run.Duration.Milliseconds(),
		run.RowsRead,
		run.RowsDropped,
		run.RowsKept,
		run.UnknownApps,
	)
	if err != nil {
		return fmt.Errorf("failed to insert load run: %w", err)
	}
	return nil
}

// GetRecentLoadRuns returns the newest load runs first.
func (db *DB) GetRecentLoadRuns(limit int) ([]models.LoadRun, error) {
	query := `
		SELECT id, path, format, started_at, duration_ms,
			   rows_read, rows_dropped, rows_kept, unknown_apps
		FROM load_runs
		ORDER BY started_at DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query load runs: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var runs []models.LoadRun
	for rows.Next() {
		var run models.LoadRun
		var durationMs int64
		err := rows.Scan(
			&run.ID,
			&run.Path,
			&run.Format,
			&run.StartedAt,
			&durationMs,
			&run.RowsRead,
			&run.RowsDropped,
			&run.RowsKept,
			&run.UnknownApps,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan load run: %w", err)
		}
		run.StartedAt = run.StartedAt.Local()
		run.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// UpsertDailyTotals stores each day's category totals, replacing earlier
// values for the same (date, category). Runs in one transaction.
func (db *DB) UpsertDailyTotals(runID string, days []models.DailyAggregate) error {
	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(context.Background(), `
		INSERT INTO daily_totals (date, category, seconds, run_id, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(date, category) DO UPDATE SET
			seconds = excluded.seconds,
			run_id = excluded.run_id,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare daily totals upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, day := range days {
		for cat, seconds := range day.CategoryTotals {
			if _, err := stmt.ExecContext(context.Background(), day.Key(), cat.String(), seconds, nullString(runID)); err != nil {
				return fmt.Errorf("failed to upsert daily total %s/%s: %w", day.Key(), cat, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit daily totals: %w", err)
	}
	return nil
}

// GetDailyTotals returns stored days on or after since, oldest first.
func (db *DB) GetDailyTotals(since time.Time) ([]models.DailyAggregate, error) {
	query := `
		SELECT date, category, seconds
		FROM daily_totals
		WHERE date >= ?
		ORDER BY date ASC, category ASC
	`

	rows, err := db.QueryContext(context.Background(), query, since.Format(models.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query daily totals: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var days []models.DailyAggregate
	for rows.Next() {
		var dateStr, catName string
		var seconds float64
		if err := rows.Scan(&dateStr, &catName, &seconds); err != nil {
			return nil, fmt.Errorf("failed to scan daily total: %w", err)
		}

		date, err := time.ParseInLocation(models.DateLayout, dateStr, time.Local)
		if err != nil {
			logger.Warn("skipping malformed stored date", "date", dateStr)
			continue
		}
		cat, err := models.ParseCategory(catName)
		if err != nil {
			logger.Warn("unknown stored category", "category", catName)
		}

		if n := len(days); n == 0 || !days[n-1].Date.Equal(date) {
			days = append(days, models.DailyAggregate{
				Date:           date,
				CategoryTotals: make(map[models.Category]float64),
			})
		}
		last := &days[len(days)-1]
		last.CategoryTotals[cat] += seconds
		last.Total += seconds
	}

	return days, rows.Err()
}

// RecordAlert stores alert unless one with the same kind and key already
// exists. It reports whether the alert is new.
func (db *DB) RecordAlert(alert *models.Alert) (bool, error) {
	created := alert.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	result, err := db.ExecContext(context.Background(), `
		INSERT OR IGNORE INTO alerts (kind, key, title, message, created_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		string(alert.Kind),
		alert.Key,
		alert.Title,
		nullString(alert.Message),
		created.UTC().Format(timestampLayout),
	)
	if err != nil {
		return false, fmt.Errorf("failed to record alert: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read alert insert result: %w", err)
	}
	if n == 0 {
		return false, nil
	}
	if id, err := result.LastInsertId(); err == nil {
		alert.ID = id
	}
	return true, nil
}

// GetRecentAlerts returns the newest alerts first.
func (db *DB) GetRecentAlerts(limit int) ([]models.Alert, error) {
	query := `
		SELECT id, kind, key, title, COALESCE(message, ''), created_at
		FROM alerts
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var alerts []models.Alert
	for rows.Next() {
		var a models.Alert
		var kind string
		if err := rows.Scan(&a.ID, &kind, &a.Key, &a.Title, &a.Message, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		a.Kind = models.AlertKind(kind)
		a.CreatedAt = a.CreatedAt.Local()
		alerts = append(alerts, a)
	}

	return alerts, rows.Err()
}

// nullString returns a sql.NullString from a string.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
