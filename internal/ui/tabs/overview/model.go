// Package overview provides the overview tab: headline cards, category
// shares, top apps and the hourly profile.
package overview

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/activity-insights-tui/internal/app"
	"github.com/j-veylop/activity-insights-tui/internal/ui/components"
)

type keyMap struct {
	Up   key.Binding
	Down key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
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

// Model represents the overview tab state.
type Model struct {
	state *app.State
	page  components.Page
	keys  keyMap
}

// New creates a new overview model.
func New(state *app.State) *Model {
	return &Model{
		state: state,
		page:  components.NewPage("Analyzing activity log..."),
		keys:  defaultKeyMap(),
	}
}

// Init starts the loading spinner.
func (m *Model) Init() tea.Cmd {
	return m.page.Spinner.Init()
}

// Update handles messages for the overview tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	return m, m.page.Update(msg)
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.page.SetSize(width, height)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.keys.Up, m.keys.Down}}
}
