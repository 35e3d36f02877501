package db

import (
	"context"
	"fmt"
)

// migrations run in order once each; PRAGMA user_version records how many
// have been applied.
var migrations = []string{
	// Older stores kept full RFC3339 instants with a zone suffix.
	`UPDATE load_runs
	 SET started_at = SUBSTR(REPLACE(started_at, 'T', ' '), 1, 19)
	 WHERE length(started_at) > 19`,

	// Category names were briefly stored lowercase.
	`UPDATE OR REPLACE daily_totals
	 SET category = 'Testing & QA'
	 WHERE category = 'testing & qa'`,
}

// SchemaVersion returns the number of applied migrations.
func (db *DB) SchemaVersion() (int, error) {
	var v int
	if err := db.QueryRowContext(context.Background(), "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}

func (db *DB) migrate() error {
	current, err := db.SchemaVersion()
	if err != nil {
		return err
	}

	for i := current; i < len(migrations); i++ {
		if _, err := db.ExecContext(context.Background(), migrations[i]); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", i+1, err)
		}
		if _, err := db.ExecContext(context.Background(), fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", i+1, err)
		}
	}

	return nil
}
