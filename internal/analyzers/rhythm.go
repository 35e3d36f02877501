package analyzers

import (
	"sort"

	"github.com/j-veylop/activity-insights-tui/internal/classify"
	"github.com/j-veylop/activity-insights-tui/internal/models"
	"github.com/j-veylop/activity-insights-tui/internal/sessions"
)

const minutesPerDay = 24 * 60

// RhythmSlot is the dominant category of one minute of the day. Idle slots
// carry Occurrences 0.
type RhythmSlot struct {
	Category    models.Category `json:"category" yaml:"category"`
	Idle        bool            `json:"idle" yaml:"idle"`
	Occurrences int             `json:"occurrences" yaml:"occurrences"` // distinct days
}

// Rhythm is the minute-resolution activity heatmap.
type Rhythm struct {
	Slots     [minutesPerDay]RhythmSlot `json:"-" yaml:"-"`
	TotalDays int                       `json:"totalDays" yaml:"totalDays"`
}

// Slot returns the slot at hour:minute.
func (r Rhythm) Slot(hour, minute int) RhythmSlot {
	return r.Slots[hour*60+minute]
}

// HourDominant collapses the minute slots into 24 hourly columns. Each hour
// takes the category holding the most non-idle minutes; an hour without any
// activity is idle.
func (r Rhythm) HourDominant() [24]RhythmSlot {
	var out [24]RhythmSlot
	for h := 0; h < 24; h++ {
		counts := make(map[models.Category]int)
		best := RhythmSlot{Idle: true, Category: models.CategoryOther}
		for m := 0; m < 60; m++ {
			s := r.Slot(h, m)
			if s.Idle {
				continue
			}
			counts[s.Category]++
			if best.Idle || counts[s.Category] > best.Occurrences {
				best = RhythmSlot{Category: s.Category, Occurrences: counts[s.Category]}
			}
		}
		out[h] = best
	}
	return out
}

// RhythmHeatmap finds, for every minute of the day, the category seen on the
// most distinct dates at that minute. Ties keep the category encountered
// first.
func RhythmHeatmap(records []models.ActivityRecord) Rhythm {
	type minuteDates struct {
		order []models.Category
		dates map[models.Category]map[string]struct{}
	}

	var slots [minutesPerDay]*minuteDates
	days := make(map[string]struct{})
	for _, r := range records {
		local := r.Timestamp.Local()
		date := dayKey(r.Timestamp)
		days[date] = struct{}{}

		idx := local.Hour()*60 + local.Minute()
		md := slots[idx]
		if md == nil {
			md = &minuteDates{dates: make(map[models.Category]map[string]struct{})}
			slots[idx] = md
		}
		cat := classify.CategorizeApp(r.AppName)
		if _, ok := md.dates[cat]; !ok {
			md.order = append(md.order, cat)
			md.dates[cat] = make(map[string]struct{})
		}
		md.dates[cat][date] = struct{}{}
	}

	out := Rhythm{TotalDays: len(days)}
	for i, md := range slots {
		slot := RhythmSlot{Idle: true, Category: models.CategoryOther}
		if md != nil {
			for _, cat := range md.order {
				if n := len(md.dates[cat]); n > slot.Occurrences {
					slot = RhythmSlot{Category: cat, Occurrences: n}
				}
			}
		}
		out.Slots[i] = slot
	}
	return out
}

// SessionBucket is a duration band of the session-length histogram.
type SessionBucket struct {
	Label string  `json:"label" yaml:"label"`
	Upper float64 `json:"upper" yaml:"upper"` // exclusive, seconds; 0 = unbounded
}

// SessionBuckets are the histogram bands in display order.
var SessionBuckets = []SessionBucket{
	{"0-10s", 10},
	{"10-30s", 30},
	{"30-60s", 60},
	{"1-3min", 180},
	{"3-5min", 300},
	{"5-10min", 600},
	{"10-30min", 1800},
	{"30min+", 0},
}

// ShortSessionSeconds is the cutoff used when excluding short sessions.
const ShortSessionSeconds = 3.0

func bucketIndex(seconds float64) int {
	for i, b := range SessionBuckets {
		if b.Upper == 0 || seconds < b.Upper {
			return i
		}
	}
	return len(SessionBuckets) - 1
}

// SessionLengthRow is one histogram band with per-category sessions per day.
type SessionLengthRow struct {
	Label      string                  `json:"label" yaml:"label"`
	Categories map[models.Category]int `json:"categories" yaml:"categories"`
}

// Total sums the band across categories.
func (r SessionLengthRow) Total() int {
	total := 0
	for _, n := range r.Categories {
		total += n
	}
	return total
}

// SessionLengthReport is the distribution of merged session lengths.
type SessionLengthReport struct {
	Rows           []SessionLengthRow `json:"rows" yaml:"rows"`
	TotalSessions  int                `json:"totalSessions" yaml:"totalSessions"`
	SessionsPerDay int                `json:"sessionsPerDay" yaml:"sessionsPerDay"`
	AvgDuration    float64            `json:"avgDuration" yaml:"avgDuration"`       // seconds
	MedianDuration float64            `json:"medianDuration" yaml:"medianDuration"` // seconds
}

// SessionLengths merges consecutive same-app records and buckets the
// resulting sessions by length. With excludeShort, sessions under three
// seconds are dropped; otherwise only zero-length ones are.
func SessionLengths(records []models.ActivityRecord, excludeShort bool) SessionLengthReport {
	var valid []models.ActivityRecord
	for _, r := range sessions.MergeConsecutive(records) {
		if (excludeShort && r.Duration >= ShortSessionSeconds) || (!excludeShort && r.Duration > 0) {
			valid = append(valid, r)
		}
	}

	counts := make([]map[models.Category]int, len(SessionBuckets))
	for i := range counts {
		counts[i] = make(map[models.Category]int)
	}
	days := make(map[string]struct{})
	durations := make([]float64, 0, len(valid))
	total := 0.0
	for _, r := range valid {
		counts[bucketIndex(r.Duration)][classify.CategorizeApp(r.AppName)]++
		days[dayKey(r.Timestamp)] = struct{}{}
		durations = append(durations, r.Duration)
		total += r.Duration
	}

	report := SessionLengthReport{TotalSessions: len(valid)}
	for i, b := range SessionBuckets {
		row := SessionLengthRow{Label: b.Label, Categories: make(map[models.Category]int)}
		for _, cat := range models.AllCategories() {
			n := counts[i][cat]
			if len(days) > 0 {
				n = round(float64(n) / float64(len(days)))
			}
			row.Categories[cat] = n
		}
		report.Rows = append(report.Rows, row)
	}
	if len(days) > 0 {
		report.SessionsPerDay = round(float64(len(valid)) / float64(len(days)))
	}
	if len(valid) > 0 {
		report.AvgDuration = total / float64(len(valid))
		sort.Float64s(durations)
		report.MedianDuration = durations[len(durations)/2]
	}
	return report
}
