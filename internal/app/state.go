// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"strconv"
	"sync"
	"time"

	"github.com/j-veylop/activity-insights-tui/internal/models"
	"github.com/j-veylop/activity-insights-tui/internal/report"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	maxNotifications = 10
	maxAlerts        = 20
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Initial  bool
	Snapshot bool
	Analysis bool
}

// SnapshotInfo describes the last successful log load.
type SnapshotInfo struct {
	Path        string
	Format      string
	Records     int
	RowsDropped int
	UnknownApps int
	LoadedAt    time.Time
	Took        time.Duration
	RunID       string
}

// State is the data shared between the root model and its tabs.
type State struct {
	mu sync.RWMutex

	Report    *report.Report
	Params    report.Params
	Snapshot  SnapshotInfo
	DayFilter models.DayFilter
	TimeRange models.TimeRange
	Alerts    []models.Alert

	Loading LoadingState

	LastUpdated time.Time

	notifications   []Notification
	notificationSeq int
}

// NewState creates an empty state that is waiting for its first report.
func NewState() *State {
	return &State{
		DayFilter:     models.DayFilterAll,
		TimeRange:     models.TimeRange30Days,
		notifications: make([]Notification, 0),
		Loading: LoadingState{
			Initial: true,
		},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case "initial":
		s.Loading.Initial = loading
	case "snapshot":
		s.Loading.Snapshot = loading
	case "analysis":
		s.Loading.Analysis = loading
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.Loading.Initial || s.Loading.Snapshot || s.Loading.Analysis
}

// IsInitialLoading returns true if initial data is still loading.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial
}

// SetReport stores a fresh analysis and the params that produced it.
func (s *State) SetReport(r *report.Report, params report.Params) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Report = r
	s.Params = params
	s.DayFilter = params.Filter.DayFilter
	s.TimeRange = models.TimeRangeForDays(params.Filter.RangeDays)
	s.Loading.Initial = false
	s.Loading.Analysis = false
	s.LastUpdated = time.Now()
}

// GetReport returns the current report, or nil before the first analysis.
func (s *State) GetReport() *report.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Report
}

// GetParams returns the params of the current report.
func (s *State) GetParams() report.Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Params
}

// SetSnapshot records metadata about the loaded log.
func (s *State) SetSnapshot(info SnapshotInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Snapshot = info
	s.Loading.Snapshot = false
}

// GetSnapshot returns metadata about the loaded log.
func (s *State) GetSnapshot() SnapshotInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Snapshot
}

// SetFilter records the selected day filter and time range.
func (s *State) SetFilter(filter models.DayFilter, timeRange models.TimeRange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DayFilter = filter
	s.TimeRange = timeRange
}

// GetFilter returns the selected day filter and time range.
func (s *State) GetFilter() (models.DayFilter, models.TimeRange) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.DayFilter, s.TimeRange
}

// AddAlert prepends an alert, keeping the most recent few.
func (s *State) AddAlert(a models.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Alerts = append([]models.Alert{a}, s.Alerts...)
	if len(s.Alerts) > maxAlerts {
		s.Alerts = s.Alerts[:maxAlerts]
	}
}

// GetAlerts returns a copy of the recent alerts, newest first.
func (s *State) GetAlerts() []models.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alerts := make([]models.Alert, len(s.Alerts))
	copy(alerts, s.Alerts)
	return alerts
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + strconv.Itoa(s.notificationSeq)

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.RemoveNotification(LoadingNotificationID)
}

// TimeSinceUpdate returns the duration since the last report arrived.
func (s *State) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.LastUpdated)
}
