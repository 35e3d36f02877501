// Package models defines data structures and domain types.
package models

import (
	"sort"
	"time"
)

// ActivityRecord is one observed interval of focus on an application.
type ActivityRecord struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Duration  float64   `json:"duration" yaml:"duration"` // seconds, >= 0
	AppName   string    `json:"appName" yaml:"appName"`
	Title     string    `json:"title" yaml:"title"`
}

// Focused reports whether the record carries elapsed time.
func (r ActivityRecord) Focused() bool {
	return r.Duration > 0
}

// End returns the instant the focus interval ended.
func (r ActivityRecord) End() time.Time {
	return r.Timestamp.Add(time.Duration(r.Duration * float64(time.Second)))
}

// SortedByTime returns a copy of records ordered by timestamp ascending.
// The input slice is never modified.
func SortedByTime(records []ActivityRecord) []ActivityRecord {
	sorted := make([]ActivityRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}

// FocusedOnly returns the records with a positive duration.
func FocusedOnly(records []ActivityRecord) []ActivityRecord {
	out := make([]ActivityRecord, 0, len(records))
	for _, r := range records {
		if r.Focused() {
			out = append(out, r)
		}
	}
	return out
}

// TotalSeconds sums the durations of records.
func TotalSeconds(records []ActivityRecord) float64 {
	total := 0.0
	for _, r := range records {
		total += r.Duration
	}
	return total
}

// ActivityBlock is a run of records with no gap larger than the block threshold.
type ActivityBlock struct {
	Start             time.Time            `json:"start" yaml:"start"`
	End               time.Time            `json:"end" yaml:"end"`
	Duration          float64              `json:"duration" yaml:"duration"` // minutes
	DominantCategory  Category             `json:"dominantCategory" yaml:"dominantCategory"`
	CategoryBreakdown map[Category]float64 `json:"categoryBreakdown" yaml:"categoryBreakdown"` // minutes
	BreakdownOrder    []Category           `json:"-" yaml:"-"`
	EventCount        int                  `json:"eventCount" yaml:"eventCount"`
}

// SequencePattern classifies a transition sequence.
type SequencePattern string

// Transition sequence patterns.
const (
	PatternLoop        SequencePattern = "loop"
	PatternFocused     SequencePattern = "focused"
	PatternWorkflow    SequencePattern = "workflow"
	PatternDistraction SequencePattern = "distraction"
)

// TransitionSequence is an ordered tuple of consecutive distinct apps and how
// often it occurred.
type TransitionSequence struct {
	Apps         []string        `json:"apps" yaml:"apps"`
	Count        int             `json:"count" yaml:"count"`
	Categories   []Category      `json:"categories" yaml:"categories"`
	IsLoop       bool            `json:"isLoop" yaml:"isLoop"`
	Pattern      SequencePattern `json:"pattern" yaml:"pattern"`
	AvgDurations []float64       `json:"durations" yaml:"durations"` // seconds, per step
}

// TotalDuration sums the per-step average durations.
func (s TransitionSequence) TotalDuration() float64 {
	total := 0.0
	for _, d := range s.AvgDurations {
		total += d
	}
	return total
}

// DailyAggregate rolls up one local calendar day.
type DailyAggregate struct {
	Date           time.Time            `json:"date" yaml:"date"` // local midnight
	CategoryTotals map[Category]float64 `json:"categoryTotals" yaml:"categoryTotals"`
	Total          float64              `json:"total" yaml:"total"` // seconds
}

// Hours returns the day total in hours.
func (d DailyAggregate) Hours() float64 {
	return d.Total / 3600
}

// Key returns the YYYY-MM-DD form of the date.
func (d DailyAggregate) Key() string {
	return d.Date.Format(DateLayout)
}

// DateLayout is the calendar-date key format used throughout the analytics.
const DateLayout = "2006-01-02"
