// Package report runs every analyzer over a log and writes the results as
// styled text, JSON or YAML.
package report

import (
	"time"

	"github.com/j-veylop/activity-insights-tui/internal/aggregate"
	"github.com/j-veylop/activity-insights-tui/internal/analyzers"
	"github.com/j-veylop/activity-insights-tui/internal/forecast"
	"github.com/j-veylop/activity-insights-tui/internal/models"
	"github.com/j-veylop/activity-insights-tui/internal/sessions"
)

const maxBlocks = 10

// Params carries every analyzer knob. The zero value is not useful; start
// from DefaultParams.
type Params struct {
	Now                  time.Time
	Filter               aggregate.FilterParams
	SessionGap           time.Duration
	Transitions          sessions.TransitionParams
	ContextSwitch        analyzers.ContextSwitchParams
	Loyalty              analyzers.LoyaltyParams
	Language             analyzers.LanguageParams
	ExcludeShortSessions bool
}

// DefaultParams returns the standard analysis settings at now.
func DefaultParams(now time.Time) Params {
	return Params{
		Now:                  now,
		Filter:               aggregate.FilterParams{DayFilter: models.DayFilterAll, Now: now},
		SessionGap:           sessions.DefaultGap,
		Transitions:          sessions.DefaultTransitionParams(),
		ContextSwitch:        analyzers.DefaultContextSwitchParams(),
		Loyalty:              analyzers.LoyaltyParams{Limit: 15},
		Language:             analyzers.DefaultLanguageParams(),
		ExcludeShortSessions: true,
	}
}

// Report is the full analysis of one log snapshot.
type Report struct {
	GeneratedAt     time.Time                     `json:"generatedAt" yaml:"generatedAt"`
	Records         int                           `json:"records" yaml:"records"`
	DaysTracked     int                           `json:"daysTracked" yaml:"daysTracked"`
	Summary         analyzers.Summary             `json:"summary" yaml:"summary"`
	Daily           []models.DailyAggregate       `json:"daily" yaml:"daily"`
	Blocks          []models.ActivityBlock        `json:"blocks" yaml:"blocks"`
	BlockStats      sessions.BlockStats           `json:"blockStats" yaml:"blockStats"`
	Transitions     []models.TransitionSequence   `json:"transitions" yaml:"transitions"`
	TransitionStats sessions.TransitionStats      `json:"transitionStats" yaml:"transitionStats"`
	ContextSwitches analyzers.ContextSwitchReport `json:"contextSwitches" yaml:"contextSwitches"`
	SessionLengths  analyzers.SessionLengthReport `json:"sessionLengths" yaml:"sessionLengths"`
	Anomalies       analyzers.AnomalyReport       `json:"anomalies" yaml:"anomalies"`
	Consistency     analyzers.ConsistencyReport   `json:"consistency" yaml:"consistency"`
	Insights        []models.Insight              `json:"insights" yaml:"insights"`
	Loyalty         analyzers.LoyaltyReport       `json:"loyalty" yaml:"loyalty"`
	TechStack       analyzers.TechStackReport     `json:"techStack" yaml:"techStack"`
	Velocity        analyzers.VelocityReport      `json:"velocity" yaml:"velocity"`
	DevStats        analyzers.DevStatsReport      `json:"devStats" yaml:"devStats"`
	Forecast        forecast.Forecast             `json:"forecast" yaml:"forecast"`
	Rhythm          analyzers.Rhythm              `json:"-" yaml:"-"`
}

// Build runs the analyzers. The day/range filter applies to the views that
// describe a selected period; streaks, anomalies, forecast and development
// trends always see the whole log.
func Build(records []models.ActivityRecord, params Params) Report {
	params.Filter.Now = params.Now
	filtered := aggregate.Filter(records, params.Filter)

	blocks := sessions.DetectBlocks(filtered, params.SessionGap)
	transitions := sessions.DetectTransitions(filtered, params.Transitions)

	r := Report{
		GeneratedAt:     params.Now,
		Records:         len(filtered),
		DaysTracked:     aggregate.DaysTracked(filtered),
		Summary:         analyzers.Summarize(filtered, params.Now),
		Daily:           aggregate.Daily(filtered),
		BlockStats:      sessions.SummarizeBlocks(blocks, filtered),
		Transitions:     transitions,
		TransitionStats: sessions.TransitionSummary(transitions),
		ContextSwitches: analyzers.AnalyzeContextSwitches(filtered, params.ContextSwitch),
		SessionLengths:  analyzers.SessionLengths(filtered, params.ExcludeShortSessions),
		Anomalies:       analyzers.DetectAnomalies(records, params.Now),
		Consistency:     analyzers.TrackConsistency(records, params.Now),
		Insights:        analyzers.WorkflowInsights(filtered, params.Now),
		Loyalty:         analyzers.ScoreLoyalty(filtered, params.Loyalty),
		TechStack:       analyzers.TechStack(records, params.Language, params.Now),
		Velocity:        analyzers.LanguageVelocity(records, params.Now),
		DevStats:        analyzers.DevStats(records, params.Now),
		Forecast:        forecast.PredictNext7Days(records, params.Now),
		Rhythm:          analyzers.RhythmHeatmap(filtered),
	}
	if len(blocks) > maxBlocks {
		blocks = blocks[:maxBlocks]
	}
	r.Blocks = blocks
	return r
}
