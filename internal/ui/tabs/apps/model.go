// Package apps provides the apps tab: per-application loyalty scores and
// usage habits.
package apps

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/activity-insights-tui/internal/analyzers"
	"github.com/j-veylop/activity-insights-tui/internal/app"
	"github.com/j-veylop/activity-insights-tui/internal/report"
	"github.com/j-veylop/activity-insights-tui/internal/ui/components"
)

// limitOptions are the table sizes l cycles through.
var limitOptions = []int{10, 15, 25, 50}

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	MinDaily key.Binding
	Limit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous app"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next app"),
		),
		MinDaily: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "min daily time"),
		),
		Limit: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "apps shown"),
		),
	}
}

// Model represents the apps tab state.
type Model struct {
	state    *app.State
	page     components.Page
	keys     keyMap
	selected int
}

// New creates a new apps model.
func New(state *app.State) *Model {
	return &Model{
		state: state,
		page:  components.NewPage("Scoring apps..."),
		keys:  defaultKeyMap(),
	}
}

// Init starts the loading spinner.
func (m *Model) Init() tea.Cmd {
	return m.page.Spinner.Init()
}

// Update handles messages for the apps tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case app.ReportUpdatedMsg:
		m.clampSelection()
		return m, nil

	case tea.KeyMsg:
		p := m.state.GetParams()
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			m.selected++
			m.clampSelection()
			return m, nil

		case key.Matches(msg, m.keys.MinDaily):
			v := nextOption(analyzers.MinDailyOptions, p.Loyalty.MinDailyMinutes)
			return m, paramsChange(minDailyLabel(v), func(p *report.Params) {
				p.Loyalty.MinDailyMinutes = v
			})

		case key.Matches(msg, m.keys.Limit):
			n := nextOption(limitOptions, p.Loyalty.Limit)
			return m, paramsChange(fmt.Sprintf("Showing top %d apps", n), func(p *report.Params) {
				p.Loyalty.Limit = n
			})
		}
	}
	return m, m.page.Update(msg)
}

func (m *Model) clampSelection() {
	n := 0
	if r := m.state.GetReport(); r != nil {
		n = len(r.Loyalty.Apps)
	}
	m.selected = max(min(m.selected, n-1), 0)
}

func nextOption[T comparable](values []T, cur T) T {
	i := slices.Index(values, cur)
	return values[(i+1)%len(values)]
}

func minDailyLabel(minutes float64) string {
	if minutes == 0 {
		return "All apps"
	}
	return fmt.Sprintf("Apps used %.0fm+ per day", minutes)
}

func paramsChange(label string, apply func(*report.Params)) tea.Cmd {
	return func() tea.Msg {
		return app.ParamsChangeMsg{Apply: apply, Label: label}
	}
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.page.SetSize(width, height)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.MinDaily, m.keys.Limit}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down},
		{m.keys.MinDaily, m.keys.Limit},
	}
}
