// Package dev provides the development tab: language breakdown, coding
// velocity and overall development stats.
package dev

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/activity-insights-tui/internal/app"
	"github.com/j-veylop/activity-insights-tui/internal/report"
	"github.com/j-veylop/activity-insights-tui/internal/ui/components"
)

// windowOptions are the tech stack comparison windows, in days.
var windowOptions = []int{7, 14, 30, 90}

type keyMap struct {
	Window key.Binding
	Up     key.Binding
	Down   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Window: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "comparison window"),
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

// Model represents the development tab state.
type Model struct {
	state *app.State
	page  components.Page
	keys  keyMap
}

// New creates a new development model.
func New(state *app.State) *Model {
	return &Model{
		state: state,
		page:  components.NewPage("Detecting languages..."),
		keys:  defaultKeyMap(),
	}
}

// Init starts the loading spinner.
func (m *Model) Init() tea.Cmd {
	return m.page.Spinner.Init()
}

// Update handles messages for the development tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Window) {
		cur := m.state.GetParams().Language.Days
		days := windowOptions[(slices.Index(windowOptions, cur)+1)%len(windowOptions)]
		return m, func() tea.Msg {
			return app.ParamsChangeMsg{
				Apply: func(p *report.Params) { p.Language.Days = days },
				Label: fmt.Sprintf("Comparing %d day windows", days),
			}
		}
	}
	return m, m.page.Update(msg)
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.page.SetSize(width, height)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Window, m.keys.Up, m.keys.Down}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Window},
		{m.keys.Up, m.keys.Down},
	}
}
