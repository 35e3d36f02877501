// Package services provides service orchestration for the TUI.
package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/j-veylop/activity-insights-tui/internal/aggregate"
	"github.com/j-veylop/activity-insights-tui/internal/analyzers"
	"github.com/j-veylop/activity-insights-tui/internal/clock"
	"github.com/j-veylop/activity-insights-tui/internal/config"
	"github.com/j-veylop/activity-insights-tui/internal/db"
	"github.com/j-veylop/activity-insights-tui/internal/logger"
	"github.com/j-veylop/activity-insights-tui/internal/models"
	"github.com/j-veylop/activity-insights-tui/internal/report"
	"github.com/j-veylop/activity-insights-tui/internal/services/activity"
	"github.com/j-veylop/activity-insights-tui/internal/services/analysis"
)

// anomalyAlertWindow limits anomaly alerts to recent days so a first load of
// a long history does not flood the desktop.
const anomalyAlertWindow = 7

var desktopNotify = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

// StreakMilestones are the productive streak lengths that raise an alert.
var StreakMilestones = []int{3, 7, 14, 30, 60, 100, 365}

type (
	// SnapshotLoadedEvent is emitted when the activity log is (re)loaded.
	SnapshotLoadedEvent struct {
		Snapshot *activity.Snapshot
		RunID    string
	}

	// AnalysisUpdatedEvent is emitted when a new report is available.
	AnalysisUpdatedEvent struct {
		Report *report.Report
		Params report.Params
	}

	// AlertEvent is emitted once per new anomaly or streak milestone.
	AlertEvent struct {
		Alert models.Alert
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (SnapshotLoadedEvent) isServiceEvent()  {}
func (AnalysisUpdatedEvent) isServiceEvent() {}
func (AlertEvent) isServiceEvent()           {}
func (ErrorEvent) isServiceEvent()           {}

// Manager orchestrates services and event routing.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	clock       clock.Clock
	activity    *activity.Service
	analysis    *analysis.Service
	database    *db.DB
	stopChan    chan struct{}
	closeOnce   sync.Once
	subscribers []chan<- ServiceEvent
	params      report.Params
	latest      *report.Report
	notify      func(title, message string) error
}

// NewManager creates a new service manager. It fails with
// apperrors.ErrNoLogConfigured when no activity log path is set.
func NewManager(cfg *config.Config, clk clock.Clock) (*Manager, error) {
	if clk == nil {
		clk = clock.System{}
	}

	m := &Manager{
		cfg:      cfg,
		clock:    clk,
		analysis: analysis.New(),
		stopChan: make(chan struct{}),
		params:   ParamsFromConfig(cfg, clk.Now()),
		notify:   desktopNotify,
	}

	var err error
	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	m.activity, err = activity.New(cfg.ActivityLogPath, cfg.WatchDebounce)
	if err != nil {
		_ = m.database.Close()
		return nil, fmt.Errorf("failed to start activity service: %w", err)
	}

	go m.routeEvents()

	return m, nil
}

// ParamsFromConfig maps the env surface onto analysis parameters.
func ParamsFromConfig(cfg *config.Config, now time.Time) report.Params {
	p := report.DefaultParams(now)
	p.Filter.DayFilter = cfg.DayFilter
	p.Filter.RangeDays = cfg.RangeDays
	if cfg.SessionGap > 0 {
		p.SessionGap = cfg.SessionGap
	}
	if cfg.SequenceLength >= 2 {
		p.Transitions.Length = cfg.SequenceLength
	}
	if cfg.MinTransitions > 0 {
		p.Transitions.MinOccurrences = cfg.MinTransitions
	}
	if cfg.MinTransitionDuration > 0 {
		p.Transitions.MinDuration = cfg.MinTransitionDuration.Seconds()
	}
	return p
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.activity.Events():
			m.handleActivityEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

func (m *Manager) handleActivityEvent(event activity.Event) {
	switch event.Type {
	case activity.EventSnapshotLoaded:
		runID := m.persistSnapshot(event.Snapshot)
		m.broadcast(SnapshotLoadedEvent{Snapshot: event.Snapshot, RunID: runID})
		if r := m.analyze(); r != nil {
			m.checkAlerts(r)
		}

	case activity.EventError:
		m.broadcast(ErrorEvent{
			Service: "activity",
			Error:   event.Error,
		})
	}
}

// persistSnapshot records the load run and the daily totals. Store failures
// are reported but never block analysis.
func (m *Manager) persistSnapshot(snap *activity.Snapshot) string {
	run := &models.LoadRun{
		Path:        snap.Path,
		Format:      string(snap.Format),
		StartedAt:   snap.LoadedAt,
		Duration:    snap.Took,
		RowsRead:    snap.Stats.Read,
		RowsDropped: snap.Stats.Dropped,
		RowsKept:    snap.Stats.Kept,
		UnknownApps: snap.Stats.UnknownApps,
	}
	if err := m.database.InsertLoadRun(run); err != nil {
		logger.Error("failed to record load run", "error", err)
		m.broadcast(ErrorEvent{Service: "store", Error: err})
		return ""
	}
	if err := m.database.UpsertDailyTotals(run.ID, aggregate.Daily(snap.Records)); err != nil {
		logger.Error("failed to store daily totals", "error", err)
		m.broadcast(ErrorEvent{Service: "store", Error: err})
	}
	return run.ID
}

// analyze rebuilds the report for the current snapshot and params.
func (m *Manager) analyze() *report.Report {
	snap := m.activity.Snapshot()
	if snap == nil {
		return nil
	}

	m.mu.Lock()
	m.params.Now = m.clock.Now()
	params := m.params
	m.mu.Unlock()

	r := m.analysis.Analyze(snap.Records, params)

	m.mu.Lock()
	m.latest = r
	m.mu.Unlock()

	m.broadcast(AnalysisUpdatedEvent{Report: r, Params: params})
	return r
}

// checkAlerts raises each recent high anomaly and each reached streak
// milestone at most once, across restarts.
func (m *Manager) checkAlerts(r *report.Report) {
	today := models.StartOfDay(r.GeneratedAt.Local())
	cutoff := today.AddDate(0, 0, -anomalyAlertWindow)

	var alerts []models.Alert
	for _, a := range r.Anomalies.Anomalies {
		if a.Type != analyzers.AnomalyHigh || a.Date.Before(cutoff) {
			continue
		}
		alerts = append(alerts, models.Alert{
			Kind:    models.AlertAnomaly,
			Key:     a.Date.Format(models.DateLayout),
			Title:   fmt.Sprintf("Unusual day: %s", a.DateLabel),
			Message: a.Insight,
		})
	}

	streak := r.Consistency.Streak
	if streak > 0 {
		// The streak ends yesterday; its first day identifies it.
		start := today.AddDate(0, 0, -streak)
		for _, milestone := range StreakMilestones {
			if streak < milestone {
				break
			}
			alerts = append(alerts, models.Alert{
				Kind:    models.AlertStreak,
				Key:     fmt.Sprintf("%d@%s", milestone, start.Format(models.DateLayout)),
				Title:   fmt.Sprintf("%s %d-day productive streak", analyzers.StreakEmoji(milestone), milestone),
				Message: r.Consistency.Insight,
			})
		}
	}

	for i := range alerts {
		alert := alerts[i]
		alert.CreatedAt = r.GeneratedAt
		inserted, err := m.database.RecordAlert(&alert)
		if err != nil {
			logger.Error("failed to record alert", "kind", alert.Kind, "error", err)
			continue
		}
		if !inserted {
			continue
		}

		if m.cfg.Notifications {
			if err := m.notify(alert.Title, alert.Message); err != nil {
				logger.Warn("desktop notification failed", "error", err)
			}
		}
		m.broadcast(AlertEvent{Alert: alert})
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Reload re-reads the activity log; the result arrives as events.
func (m *Manager) Reload() error {
	return m.activity.Reload()
}

// SetFilter changes the day filter and range and re-runs the analysis.
func (m *Manager) SetFilter(filter models.DayFilter, timeRange models.TimeRange) *report.Report {
	m.mu.Lock()
	m.params.Filter.DayFilter = filter
	m.params.Filter.RangeDays = timeRange.Days()
	m.mu.Unlock()
	return m.analyze()
}

// UpdateParams lets fn edit the current params, then re-runs the analysis.
func (m *Manager) UpdateParams(fn func(*report.Params)) *report.Report {
	m.mu.Lock()
	fn(&m.params)
	m.mu.Unlock()
	return m.analyze()
}

// Params returns the current analysis parameters.
func (m *Manager) Params() report.Params {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.params
}

// Latest returns the most recent report, or nil before the first load.
func (m *Manager) Latest() *report.Report {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}

// Snapshot returns the loaded log, or nil.
func (m *Manager) Snapshot() *activity.Snapshot {
	return m.activity.Snapshot()
}

// History returns stored daily totals for the last days.
func (m *Manager) History(days int) ([]models.DailyAggregate, error) {
	since := models.StartOfDay(m.clock.Now()).AddDate(0, 0, -days)
	return m.database.GetDailyTotals(since)
}

// RecentRuns returns the newest load runs.
func (m *Manager) RecentRuns(limit int) ([]models.LoadRun, error) {
	return m.database.GetRecentLoadRuns(limit)
}

// RecentAlerts returns the newest raised alerts.
func (m *Manager) RecentAlerts(limit int) ([]models.Alert, error) {
	return m.database.GetRecentAlerts(limit)
}

// CacheStats exposes the analysis cache counters.
func (m *Manager) CacheStats() analysis.Stats {
	return m.analysis.Stats()
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	var err error
	m.closeOnce.Do(func() { err = m.close() })
	return err
}

func (m *Manager) close() error {
	close(m.stopChan)

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error

	if err := m.activity.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close activity service: %w", err))
	}

	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	return errors.Join(errs...)
}
