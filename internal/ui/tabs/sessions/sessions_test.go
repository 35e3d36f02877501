package sessions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/activity-insights-tui/internal/analyzers"
	"github.com/j-veylop/activity-insights-tui/internal/app"
	"github.com/j-veylop/activity-insights-tui/internal/models"
	"github.com/j-veylop/activity-insights-tui/internal/ui/tabs/tabtest"
)

func newModel(t *testing.T) *Model {
	t.Helper()
	m := New(tabtest.State(t, tabtest.Records()))
	m.SetSize(140, 400)
	return m
}

func TestNew(t *testing.T) {
	m := New(app.NewState())
	require.NotNil(t, m)
	assert.NotNil(t, m.Init(), "Init should start the spinner")
}

func TestModel_View_Loading(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(80, 24)
	assert.Contains(t, m.View(), "Detecting sessions")
}

func TestModel_View(t *testing.T) {
	view := newModel(t).View()
	for _, want := range []string{"Sessions", "Activity blocks", "App sequences", "Switches", "Session lengths", "Total"} {
		assert.Contains(t, view, want)
	}
}

func TestModel_ParamKeys(t *testing.T) {
	defaults := tabtest.Params()

	for _, k := range []string{"s", "o", "[", "]", "d", "x"} {
		t.Run(k, func(t *testing.T) {
			m := newModel(t)
			_, cmd := m.Update(tabtest.Keys(k))
			p, label := tabtest.ApplyParams(t, cmd)
			assert.NotEmpty(t, label)

			switch k {
			case "s":
				assert.Equal(t, defaults.Transitions.Length+1, p.Transitions.Length)
			case "o":
				assert.Equal(t, 20, p.Transitions.MinOccurrences)
			case "[":
				assert.Equal(t, models.AllCategories()[1], p.ContextSwitch.From)
			case "]":
				assert.NotEqual(t, defaults.ContextSwitch.To, p.ContextSwitch.To)
			case "d":
				assert.Equal(t, analyzers.DisplayTop10, p.ContextSwitch.Display)
			case "x":
				assert.Equal(t, !defaults.ExcludeShortSessions, p.ExcludeShortSessions)
			}
		})
	}
}

func TestModel_SequenceLengthWraps(t *testing.T) {
	state := tabtest.State(t, tabtest.Records())
	p := state.GetParams()
	p.Transitions.Length = maxSequenceLength
	r := state.GetReport()
	state.SetReport(r, p)

	m := New(state)
	_, cmd := m.Update(tabtest.Keys("s"))
	got, label := tabtest.ApplyParams(t, cmd)
	assert.Equal(t, minSequenceLength, got.Transitions.Length)
	assert.Equal(t, "Sequence length: 2", label)
}

func TestCycle(t *testing.T) {
	assert.Equal(t, 2, cycle([]int{1, 2, 3}, 1))
	assert.Equal(t, 1, cycle([]int{1, 2, 3}, 3))
	assert.Equal(t, 1, cycle([]int{1, 2, 3}, 42), "unknown values restart the cycle")
}

func TestBreakdownBar(t *testing.T) {
	b := models.ActivityBlock{
		Duration:          60,
		CategoryBreakdown: map[models.Category]float64{models.CategoryDevelopment: 45, models.CategoryBrowser: 15},
		BreakdownOrder:    []models.Category{models.CategoryDevelopment, models.CategoryBrowser},
	}
	bar := breakdownBar(b, 20)
	assert.Equal(t, 20, strings.Count(bar, "█"))
	assert.Empty(t, breakdownBar(models.ActivityBlock{}, 20))
}

func TestModel_UnboundKeyScrolls(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(tabtest.Keys("z"))
	assert.Nil(t, cmd)
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState())
	assert.Len(t, m.ShortHelp(), 4)
	assert.Len(t, m.FullHelp(), 3)
}
