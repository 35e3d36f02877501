// Package patterns provides the patterns tab: streaks, the consistency
// calendar, anomalous days and workflow insights.
package patterns

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/activity-insights-tui/internal/app"
	"github.com/j-veylop/activity-insights-tui/internal/ui/components"
)

// collapsedInsights is how many insights show until expanded.
const collapsedInsights = 5

type keyMap struct {
	Expand key.Binding
	Up     key.Binding
	Down   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Expand: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all insights"),
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

// Model represents the patterns tab state.
type Model struct {
	state       *app.State
	page        components.Page
	keys        keyMap
	allInsights bool
}

// New creates a new patterns model.
func New(state *app.State) *Model {
	return &Model{
		state: state,
		page:  components.NewPage("Looking for patterns..."),
		keys:  defaultKeyMap(),
	}
}

// Init starts the loading spinner.
func (m *Model) Init() tea.Cmd {
	return m.page.Spinner.Init()
}

// Update handles messages for the patterns tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Expand) {
		m.allInsights = !m.allInsights
		return m, nil
	}
	return m, m.page.Update(msg)
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.page.SetSize(width, height)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Expand, m.keys.Up, m.keys.Down}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Expand},
		{m.keys.Up, m.keys.Down},
	}
}
