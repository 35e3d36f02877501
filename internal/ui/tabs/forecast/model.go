// Package forecast provides the forecast tab: the seven-day outlook
// charted against recent history.
package forecast

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/activity-insights-tui/internal/app"
	"github.com/j-veylop/activity-insights-tui/internal/models"
	"github.com/j-veylop/activity-insights-tui/internal/ui/components"
)

// historyDays is how many past days the chart shows before the forecast.
const historyDays = 14

type keyMap struct {
	Category key.Binding
	Up       key.Binding
	Down     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Category: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "chart category"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

// Model represents the forecast tab state.
type Model struct {
	state *app.State
	page  components.Page
	keys  keyMap

	// focus is the charted category; nil charts the daily total.
	focus *models.Category
}

// New creates a new forecast model.
func New(state *app.State) *Model {
	return &Model{
		state: state,
		page:  components.NewPage("Forecasting..."),
		keys:  defaultKeyMap(),
	}
}

// Init starts the loading spinner.
func (m *Model) Init() tea.Cmd {
	return m.page.Spinner.Init()
}

// Update handles messages for the forecast tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Category) {
		m.nextFocus()
		return m, nil
	}
	return m, m.page.Update(msg)
}

// nextFocus steps through total, then each active category, then back.
func (m *Model) nextFocus() {
	r := m.state.GetReport()
	if r == nil {
		return
	}
	cats := r.Forecast.ActiveCategories
	i := -1
	if m.focus != nil {
		i = slices.Index(cats, *m.focus)
	}
	if i+1 >= len(cats) {
		m.focus = nil
		return
	}
	c := cats[i+1]
	m.focus = &c
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.page.SetSize(width, height)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Category, m.keys.Up, m.keys.Down}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Category},
		{m.keys.Up, m.keys.Down},
	}
}
