package models

import "time"

// LoadRun records one ingestion of the activity log.
type LoadRun struct {
	ID          string
	Path        string
	Format      string
	StartedAt   time.Time
	Duration    time.Duration
	RowsRead    int
	RowsDropped int
	RowsKept    int
	UnknownApps int
}

// AlertKind names what raised an alert.
type AlertKind string

// Alert kinds.
const (
	AlertAnomaly AlertKind = "anomaly"
	AlertStreak  AlertKind = "streak"
)

// Alert is a notification that must be raised at most once per key.
type Alert struct {
	ID        int64
	Kind      AlertKind
	Key       string // e.g. the anomaly date or the streak milestone
	Title     string
	Message   string
	CreatedAt time.Time
}
