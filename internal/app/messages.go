package app

import (
	"time"

	"github.com/j-veylop/activity-insights-tui/internal/models"
	"github.com/j-veylop/activity-insights-tui/internal/report"
	"github.com/j-veylop/activity-insights-tui/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// ReportUpdatedMsg carries a freshly computed report to the tabs.
type ReportUpdatedMsg struct {
	Report *report.Report
	Params report.Params
}

// ReloadResultMsg contains the result of a manual log reload.
type ReloadResultMsg struct {
	Error error
}

// FilterChangedMsg is sent after the day filter or time range changed.
type FilterChangedMsg struct {
	DayFilter models.DayFilter
	TimeRange models.TimeRange
}

// ParamsChangeMsg asks the root model to re-run the analysis with edited
// params. Label is shown as an info toast when non-empty.
type ParamsChangeMsg struct {
	Apply func(*report.Params)
	Label string
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
