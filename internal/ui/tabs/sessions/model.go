// Package sessions provides the sessions tab: activity blocks, app
// transition sequences, context switches and session lengths.
package sessions

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/activity-insights-tui/internal/analyzers"
	"github.com/j-veylop/activity-insights-tui/internal/app"
	"github.com/j-veylop/activity-insights-tui/internal/models"
	"github.com/j-veylop/activity-insights-tui/internal/report"
	"github.com/j-veylop/activity-insights-tui/internal/ui/components"
)

const (
	minSequenceLength = 2
	maxSequenceLength = 5
)

// occurrenceSteps are the minimum-occurrence thresholds o cycles through.
var occurrenceSteps = []int{3, 5, 10, 20}

type keyMap struct {
	Length      key.Binding
	Occurrences key.Binding
	From        key.Binding
	To          key.Binding
	Display     key.Binding
	Short       key.Binding
	Up          key.Binding
	Down        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Length: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sequence length"),
		),
		Occurrences: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "min occurrences"),
		),
		From: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "switch from"),
		),
		To: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "switch to"),
		),
		Display: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "switch display"),
		),
		Short: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "short sessions"),
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

// Model represents the sessions tab state.
type Model struct {
	state *app.State
	page  components.Page
	keys  keyMap
}

// New creates a new sessions model.
func New(state *app.State) *Model {
	return &Model{
		state: state,
		page:  components.NewPage("Detecting sessions..."),
		keys:  defaultKeyMap(),
	}
}

// Init starts the loading spinner.
func (m *Model) Init() tea.Cmd {
	return m.page.Spinner.Init()
}

// Update handles messages for the sessions tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if cmd := m.handleKey(keyMsg); cmd != nil {
			return m, cmd
		}
	}
	return m, m.page.Update(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	p := m.state.GetParams()

	switch {
	case key.Matches(msg, m.keys.Length):
		n := p.Transitions.Length + 1
		if n > maxSequenceLength || n < minSequenceLength {
			n = minSequenceLength
		}
		return paramsChange(fmt.Sprintf("Sequence length: %d", n), func(p *report.Params) {
			p.Transitions.Length = n
		})

	case key.Matches(msg, m.keys.Occurrences):
		n := cycle(occurrenceSteps, p.Transitions.MinOccurrences)
		return paramsChange(fmt.Sprintf("Min occurrences: %d", n), func(p *report.Params) {
			p.Transitions.MinOccurrences = n
		})

	case key.Matches(msg, m.keys.From):
		c := cycle(models.AllCategories(), p.ContextSwitch.From)
		return paramsChange("Switches from "+c.String(), func(p *report.Params) {
			p.ContextSwitch.From = c
		})

	case key.Matches(msg, m.keys.To):
		c := cycle(models.AllCategories(), p.ContextSwitch.To)
		return paramsChange("Switches to "+c.String(), func(p *report.Params) {
			p.ContextSwitch.To = c
		})

	case key.Matches(msg, m.keys.Display):
		d := cycle(analyzers.SwitchDisplays, p.ContextSwitch.Display)
		return paramsChange("Showing "+string(d), func(p *report.Params) {
			p.ContextSwitch.Display = d
		})

	case key.Matches(msg, m.keys.Short):
		exclude := !p.ExcludeShortSessions
		label := fmt.Sprintf("Including sessions under %.0fs", analyzers.ShortSessionSeconds)
		if exclude {
			label = fmt.Sprintf("Excluding sessions under %.0fs", analyzers.ShortSessionSeconds)
		}
		return paramsChange(label, func(p *report.Params) {
			p.ExcludeShortSessions = exclude
		})
	}
	return nil
}

// cycle returns the element after cur, wrapping around. Unknown values
// start over at the first element.
func cycle[T comparable](values []T, cur T) T {
	i := slices.Index(values, cur)
	return values[(i+1)%len(values)]
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
	return []key.Binding{m.keys.Length, m.keys.From, m.keys.To, m.keys.Display}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Length, m.keys.Occurrences, m.keys.Short},
		{m.keys.From, m.keys.To, m.keys.Display},
		{m.keys.Up, m.keys.Down},
	}
}
