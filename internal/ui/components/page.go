package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/activity-insights-tui/internal/ui/styles"
)

// Page is the scrollable body shared by the tabs: a viewport for content
// and a spinner shown until the first report arrives.
type Page struct {
	Spinner  LoadingSpinner
	Viewport viewport.Model
	Width    int
	Height   int
}

// NewPage creates a page whose spinner shows label while loading.
func NewPage(label string) Page {
	return Page{
		Spinner:  NewSpinner(label),
		Viewport: viewport.New(0, 0),
	}
}

// SetSize resizes the page and its viewport.
func (p *Page) SetSize(width, height int) {
	p.Width = width
	p.Height = height
	p.Viewport.Width = width
	p.Viewport.Height = height
}

// Update advances the spinner and scrolls the viewport on key input.
func (p *Page) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case spinner.TickMsg:
		p.Spinner, cmd = p.Spinner.Update(msg)
	case tea.KeyMsg, tea.MouseMsg:
		p.Viewport, cmd = p.Viewport.Update(msg)
	}
	return cmd
}

// Render places content in the viewport and frames it.
func (p *Page) Render(content string) string {
	p.Viewport.SetContent(content)
	return styles.DocStyle.
		Width(p.Width).
		Height(p.Height).
		Render(p.Viewport.View())
}

// Loading renders the centered spinner.
func (p *Page) Loading() string {
	return RenderSpinnerCentered(p.Spinner, p.Width, p.Height)
}

// CardWidth clamps a card to the page, between lo and hi columns.
func (p *Page) CardWidth(lo, hi int) int {
	return min(max(p.Width-6, lo), hi)
}
