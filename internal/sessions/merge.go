// Package sessions rebuilds work sessions, activity blocks and app-to-app
// transition sequences from raw activity records.
package sessions

import "github.com/j-veylop/activity-insights-tui/internal/models"

// MergeConsecutive sorts records by time and folds immediately adjacent
// records for the same app into one, summing their durations. The first
// record of each run keeps its timestamp and title.
func MergeConsecutive(records []models.ActivityRecord) []models.ActivityRecord {
	if len(records) == 0 {
		return nil
	}

	sorted := models.SortedByTime(records)
	merged := make([]models.ActivityRecord, 0, len(sorted))
	current := sorted[0]

	for _, r := range sorted[1:] {
		if r.AppName == current.AppName {
			current.Duration += r.Duration
			continue
		}
		merged = append(merged, current)
		current = r
	}
	return append(merged, current)
}
