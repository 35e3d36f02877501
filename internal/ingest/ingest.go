// Package ingest reads activity logs exported by desktop activity trackers.
package ingest

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/j-veylop/activity-insights-tui/internal/apperrors"
	"github.com/j-veylop/activity-insights-tui/internal/logger"
	"github.com/j-veylop/activity-insights-tui/internal/models"
)

// UnknownApp names records that carry no application.
const UnknownApp = "Unknown"

// Format identifies an activity log encoding.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Stats counts what happened to the rows of a log.
type Stats struct {
	Read        int `json:"read" yaml:"read"`
	Dropped     int `json:"dropped" yaml:"dropped"`
	Kept        int `json:"kept" yaml:"kept"`
	UnknownApps int `json:"unknownApps" yaml:"unknownApps"`
}

// Load reads the activity log at path.
func Load(path string) ([]models.ActivityRecord, Stats, error) {
	if path == "" {
		return nil, Stats{}, apperrors.ErrNoLogConfigured
	}
	format, err := FormatForPath(path)
	if err != nil {
		return nil, Stats{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to open activity log: %w", err)
	}
	defer f.Close()

	records, stats, err := Read(f, format)
	if err != nil {
		return nil, stats, err
	}
	logger.Debug("Activity log loaded", "path", path, "read", stats.Read, "kept", stats.Kept, "dropped", stats.Dropped)
	return records, stats, nil
}

// Read decodes an activity log. It fails with ErrEmptyLog when no row
// survives.
func Read(r io.Reader, format Format) ([]models.ActivityRecord, Stats, error) {
	var (
		records []models.ActivityRecord
		stats   Stats
		err     error
	)
	switch format {
	case FormatCSV:
		records, stats, err = readCSV(r)
	case FormatJSON:
		records, stats, err = readActivityWatch(r)
	default:
		return nil, Stats{}, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, stats, err
	}
	if len(records) == 0 {
		return nil, stats, apperrors.ErrEmptyLog
	}
	return records, stats, nil
}

// row is one raw entry before validation.
type row struct {
	timestamp string
	duration  string
	app       string
	title     string
}

func (s *Stats) accept(rw row) (models.ActivityRecord, bool) {
	s.Read++
	ts, ok := ParseTimestamp(rw.timestamp)
	if !ok {
		s.Dropped++
		return models.ActivityRecord{}, false
	}

	app := strings.TrimSpace(rw.app)
	if app == "" {
		app = UnknownApp
		s.UnknownApps++
	}
	s.Kept++
	return models.ActivityRecord{
		Timestamp: ts,
		Duration:  parseDuration(rw.duration),
		AppName:   app,
		Title:     rw.title,
	}, true
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp accepts RFC3339 and the common space-separated forms.
// Layouts without a zone are read as local time.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseDuration reads seconds; missing, malformed or negative values are 0.
func parseDuration(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
