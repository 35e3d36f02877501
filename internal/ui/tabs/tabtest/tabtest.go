// Package tabtest holds fixtures shared by the tab tests.
package tabtest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/activity-insights-tui/internal/app"
	"github.com/j-veylop/activity-insights-tui/internal/models"
	"github.com/j-veylop/activity-insights-tui/internal/report"
)

// Now is the fixed clock the fixtures are built against.
var Now = time.Date(2024, 5, 20, 12, 0, 0, 0, time.Local)

// Records returns two weeks of a developer's day: coding, chat, a
// browser detour and evening video.
func Records() []models.ActivityRecord {
	var records []models.ActivityRecord
	for d := 1; d <= 14; d++ {
		day := models.StartOfDay(Now).AddDate(0, 0, -d)
		coding := float64(5400 + 600*(d%3))
		records = append(records,
			models.ActivityRecord{Timestamp: day.Add(9 * time.Hour), Duration: coding, AppName: "Code", Title: "main.go - api"},
			models.ActivityRecord{Timestamp: day.Add(11 * time.Hour), Duration: 900, AppName: "Slack", Title: "general"},
			models.ActivityRecord{Timestamp: day.Add(11*time.Hour + 20*time.Minute), Duration: 1200, AppName: "Firefox", Title: "Go docs"},
			models.ActivityRecord{Timestamp: day.Add(11*time.Hour + 45*time.Minute), Duration: 2400, AppName: "Code", Title: "handler_test.go - api"},
			models.ActivityRecord{Timestamp: day.Add(14 * time.Hour), Duration: 1800, AppName: "iTerm2", Title: "go test ./..."},
			models.ActivityRecord{Timestamp: day.Add(20 * time.Hour), Duration: 1800, AppName: "YouTube", Title: "music"},
		)
	}
	return records
}

// Params returns the default analysis params at Now.
func Params() report.Params {
	return report.DefaultParams(Now)
}

// State returns app state holding a report built from records.
func State(t *testing.T, records []models.ActivityRecord) *app.State {
	t.Helper()
	state := app.NewState()
	params := Params()
	r := report.Build(records, params)
	state.SetReport(&r, params)
	return state
}

// Keys builds a key press for the given runes.
func Keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// ApplyParams runs cmd and applies the params change it requests to a
// copy of the default params.
func ApplyParams(t *testing.T, cmd tea.Cmd) (report.Params, string) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a params change command")
	}
	msg, ok := cmd().(app.ParamsChangeMsg)
	if !ok {
		t.Fatalf("expected app.ParamsChangeMsg, got %T", cmd())
	}
	p := Params()
	msg.Apply(&p)
	return p, msg.Label
}
