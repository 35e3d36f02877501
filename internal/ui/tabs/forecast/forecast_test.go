package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/activity-insights-tui/internal/app"
	fc "github.com/j-veylop/activity-insights-tui/internal/forecast"
	"github.com/j-veylop/activity-insights-tui/internal/models"
	"github.com/j-veylop/activity-insights-tui/internal/ui/tabs/tabtest"
)

func TestNew(t *testing.T) {
	m := New(app.NewState())
	require.NotNil(t, m)
	assert.NotNil(t, m.Init())
}

func TestModel_View_Loading(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(80, 24)
	assert.Contains(t, m.View(), "Forecasting")
}

func TestModel_View_Empty(t *testing.T) {
	m := New(tabtest.State(t, nil))
	m.SetSize(80, 24)
	assert.Contains(t, m.View(), "Not enough history")
}

func TestModel_View(t *testing.T) {
	m := New(tabtest.State(t, tabtest.Records()))
	m.SetSize(140, 200)

	view := m.View()
	for _, want := range []string{"Next 7 days", "Tomorrow", "Trend", "forecast", "all activity", "Total"} {
		assert.Contains(t, view, want)
	}
}

func TestModel_CategoryFocusCycles(t *testing.T) {
	state := tabtest.State(t, tabtest.Records())
	cats := state.GetReport().Forecast.ActiveCategories
	require.NotEmpty(t, cats)

	m := New(state)
	m.SetSize(140, 200)
	assert.Nil(t, m.focus)

	for _, want := range cats {
		_, cmd := m.Update(tabtest.Keys("c"))
		assert.Nil(t, cmd)
		require.NotNil(t, m.focus)
		assert.Equal(t, want, *m.focus)
	}
	assert.Contains(t, m.View(), "Hours per day, "+cats[len(cats)-1].String())

	m.Update(tabtest.Keys("c"))
	assert.Nil(t, m.focus, "focus should return to the total after the last category")
}

func TestModel_CategoryFocusWithoutReport(t *testing.T) {
	m := New(app.NewState())
	m.Update(tabtest.Keys("c"))
	assert.Nil(t, m.focus)
}

func TestSeries(t *testing.T) {
	state := tabtest.State(t, tabtest.Records())
	r := state.GetReport()

	history, forecast := series(r, nil)
	assert.LessOrEqual(t, len(history), historyDays)
	assert.Len(t, forecast, fc.Horizon)
	assert.Equal(t, r.Daily[len(r.Daily)-1].Hours(), history[len(history)-1])

	dev := models.CategoryDevelopment
	devHistory, devForecast := series(r, &dev)
	assert.Len(t, devHistory, len(history))
	assert.Len(t, devForecast, fc.Horizon)
	for i := range history {
		assert.LessOrEqual(t, devHistory[i], history[i])
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState())
	assert.Len(t, m.ShortHelp(), 3)
	assert.Len(t, m.FullHelp(), 2)
}
