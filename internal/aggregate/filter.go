package aggregate

import (
	"time"

	"github.com/j-veylop/activity-insights-tui/internal/models"
)

// FilterParams selects a subset of records. RangeDays <= 0 keeps all time.
type FilterParams struct {
	DayFilter models.DayFilter
	RangeDays int
	Now       time.Time
}

// Filter returns the records matching params, preserving input order.
func Filter(records []models.ActivityRecord, params FilterParams) []models.ActivityRecord {
	var cutoff time.Time
	if params.RangeDays > 0 {
		cutoff = models.StartOfDay(params.Now.Local()).AddDate(0, 0, -params.RangeDays)
	}

	out := make([]models.ActivityRecord, 0, len(records))
	for _, r := range records {
		if !params.DayFilter.Matches(r.Timestamp.Local()) {
			continue
		}
		if !cutoff.IsZero() && r.Timestamp.Before(cutoff) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Window returns records with start <= timestamp < end.
func Window(records []models.ActivityRecord, start, end time.Time) []models.ActivityRecord {
	out := make([]models.ActivityRecord, 0)
	for _, r := range records {
		if !r.Timestamp.Before(start) && r.Timestamp.Before(end) {
			out = append(out, r)
		}
	}
	return out
}
