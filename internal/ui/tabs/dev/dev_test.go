package dev

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/activity-insights-tui/internal/analyzers"
	"github.com/j-veylop/activity-insights-tui/internal/app"
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
	assert.Contains(t, m.View(), "Detecting languages")
}

func TestModel_View_NoDevelopment(t *testing.T) {
	day := models.StartOfDay(tabtest.Now).AddDate(0, 0, -1)
	records := []models.ActivityRecord{
		{Timestamp: day.Add(20 * time.Hour), Duration: 3600, AppName: "YouTube", Title: "music"},
	}
	m := New(tabtest.State(t, records))
	m.SetSize(80, 24)
	assert.Contains(t, m.View(), "No development activity")
}

func TestModel_View(t *testing.T) {
	m := New(tabtest.State(t, tabtest.Records()))
	m.SetSize(140, 200)

	view := m.View()
	for _, want := range []string{"Development", "Coding", "Top language", "Go", "Tech stack, last 30 days", "Velocity"} {
		assert.Contains(t, view, want)
	}
}

func TestModel_WindowKey(t *testing.T) {
	m := New(tabtest.State(t, tabtest.Records()))
	_, cmd := m.Update(tabtest.Keys("w"))

	p, label := tabtest.ApplyParams(t, cmd)
	assert.Equal(t, 90, p.Language.Days)
	assert.Equal(t, "Comparing 90 day windows", label)
}

func TestMomentumStyle(t *testing.T) {
	assert.Equal(t, momentumStyle("unknown").GetForeground(), momentumStyle(analyzers.MomentumSteady).GetForeground())
	assert.NotEqual(t,
		momentumStyle(analyzers.MomentumGrowing).GetForeground(),
		momentumStyle(analyzers.MomentumDeclining).GetForeground())
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState())
	assert.Len(t, m.ShortHelp(), 3)
	assert.Len(t, m.FullHelp(), 2)
}
