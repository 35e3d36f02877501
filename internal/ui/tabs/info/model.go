// Package info provides the info tab: configuration, the loaded log
// snapshot, recent loads and alerts, and build information.
package info

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/activity-insights-tui/internal/app"
	"github.com/j-veylop/activity-insights-tui/internal/config"
	"github.com/j-veylop/activity-insights-tui/internal/models"
	"github.com/j-veylop/activity-insights-tui/internal/services/analysis"
	"github.com/j-veylop/activity-insights-tui/internal/ui/components"
)

const (
	// recentRuns is how many load runs the tab lists.
	recentRuns = 5

	// storedDays is the window of persisted daily totals summarized.
	storedDays = 30
)

// Diagnostics exposes load history, stored rollups and cache counters.
type Diagnostics interface {
	RecentRuns(limit int) ([]models.LoadRun, error)
	History(days int) ([]models.DailyAggregate, error)
	CacheStats() analysis.Stats
}

// keyMap defines the key bindings specific to the info tab.
type keyMap struct {
	Up   key.Binding
	Down key.Binding
}

// defaultKeyMap returns the default key bindings for the info tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}

// Model represents the info tab state.
type Model struct {
	state  *app.State
	config *config.Config
	diag   Diagnostics
	page   components.Page
	keys   keyMap

	runs   []models.LoadRun
	stored []models.DailyAggregate
	cache  analysis.Stats
}

// New creates a new info model. diag may be nil.
func New(state *app.State, cfg *config.Config, diag Diagnostics) *Model {
	return &Model{
		state:  state,
		config: cfg,
		diag:   diag,
		page:   components.NewPage(""),
		keys:   defaultKeyMap(),
	}
}

// Init loads the diagnostics shown on first render.
func (m *Model) Init() tea.Cmd {
	m.refresh()
	return nil
}

// Update handles messages for the info tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if _, ok := msg.(app.ReportUpdatedMsg); ok {
		m.refresh()
		return m, nil
	}
	return m, m.page.Update(msg)
}

func (m *Model) refresh() {
	if m.diag == nil {
		return
	}
	m.cache = m.diag.CacheStats()
	if runs, err := m.diag.RecentRuns(recentRuns); err != nil {
		slog.Warn("loading recent runs failed", "error", err)
	} else {
		m.runs = runs
	}
	if stored, err := m.diag.History(storedDays); err != nil {
		slog.Warn("loading stored totals failed", "error", err)
	} else {
		m.stored = stored
	}
}

// SetSize sets the available size for the info tab.
func (m *Model) SetSize(width, height int) {
	m.page.SetSize(width, height)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down},
	}
}
