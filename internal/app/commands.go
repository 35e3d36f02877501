package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/activity-insights-tui/internal/models"
	"github.com/j-veylop/activity-insights-tui/internal/report"
	"github.com/j-veylop/activity-insights-tui/internal/services"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second
)

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// loadLatestCmd delivers whatever report the manager already holds. The
// manager analyzes at startup, before the program subscribes.
func loadLatestCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		r := mgr.Latest()
		if r == nil {
			return nil
		}
		return ReportUpdatedMsg{Report: r, Params: mgr.Params()}
	}
}

func reloadCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		return ReloadResultMsg{Error: mgr.Reload()}
	}
}

func setFilterCmd(mgr *services.Manager, filter models.DayFilter, timeRange models.TimeRange) tea.Cmd {
	return func() tea.Msg {
		r := mgr.SetFilter(filter, timeRange)
		if r == nil {
			return FilterChangedMsg{DayFilter: filter, TimeRange: timeRange}
		}
		return ReportUpdatedMsg{Report: r, Params: mgr.Params()}
	}
}

func updateParamsCmd(mgr *services.Manager, fn func(*report.Params)) tea.Cmd {
	return func() tea.Msg {
		r := mgr.UpdateParams(fn)
		if r == nil {
			return nil
		}
		return ReportUpdatedMsg{Report: r, Params: mgr.Params()}
	}
}

func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

func notifyCmd(t NotificationType, message string, d time.Duration) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{Type: t, Message: message, Duration: d}
	}
}

func notifySuccessCmd(message string) tea.Cmd {
	return notifyCmd(NotificationSuccess, message, DefaultNotificationDuration)
}

func notifyErrorCmd(message string) tea.Cmd {
	return notifyCmd(NotificationError, message, LongNotificationDuration)
}

func notifyWarningCmd(message string) tea.Cmd {
	return notifyCmd(NotificationWarning, message, LongNotificationDuration)
}

func notifyInfoCmd(message string) tea.Cmd {
	return notifyCmd(NotificationInfo, message, QuickNotificationDuration)
}

// Commands provides a public interface to the command functions.
type Commands struct {
	manager *services.Manager
}

// NewCommands creates a new Commands instance.
func NewCommands(mgr *services.Manager) *Commands {
	return &Commands{manager: mgr}
}

// Tick returns a tick command with the specified interval.
func (c *Commands) Tick(interval time.Duration) tea.Cmd {
	return tickCmd(interval)
}

// Reload returns a command that re-reads the activity log.
func (c *Commands) Reload() tea.Cmd {
	if c.manager == nil {
		return nil
	}
	return reloadCmd(c.manager)
}

// SetFilter returns a command that re-runs the analysis for a new filter.
func (c *Commands) SetFilter(filter models.DayFilter, timeRange models.TimeRange) tea.Cmd {
	if c.manager == nil {
		return func() tea.Msg { return FilterChangedMsg{DayFilter: filter, TimeRange: timeRange} }
	}
	return setFilterCmd(c.manager, filter, timeRange)
}

// UpdateParams returns a command that re-runs the analysis with edited params.
func (c *Commands) UpdateParams(fn func(*report.Params)) tea.Cmd {
	if c.manager == nil || fn == nil {
		return nil
	}
	return updateParamsCmd(c.manager, fn)
}

// NotifySuccess returns a command that adds a success notification.
func (c *Commands) NotifySuccess(message string) tea.Cmd {
	return notifySuccessCmd(message)
}

// NotifyError returns a command that adds an error notification.
func (c *Commands) NotifyError(message string) tea.Cmd {
	return notifyErrorCmd(message)
}

// NotifyWarning returns a command that adds a warning notification.
func (c *Commands) NotifyWarning(message string) tea.Cmd {
	return notifyWarningCmd(message)
}

// NotifyInfo returns a command that adds an info notification.
func (c *Commands) NotifyInfo(message string) tea.Cmd {
	return notifyInfoCmd(message)
}

// ClearNotification returns a command that removes a notification after a delay.
func (c *Commands) ClearNotification(id string, delay time.Duration) tea.Cmd {
	return clearNotificationCmd(id, delay)
}
