package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/activity-insights-tui/internal/ingest"
	"github.com/j-veylop/activity-insights-tui/internal/models"
	"github.com/j-veylop/activity-insights-tui/internal/report"
	"github.com/j-veylop/activity-insights-tui/internal/services"
	"github.com/j-veylop/activity-insights-tui/internal/services/activity"
)

// recordingTab counts the messages it receives.
type recordingTab struct {
	name     string
	received []tea.Msg
	width    int
	height   int
}

func (r *recordingTab) Init() tea.Cmd { return nil }
func (r *recordingTab) Update(msg tea.Msg) (Tab, tea.Cmd) {
	r.received = append(r.received, msg)
	return r, nil
}
func (r *recordingTab) View() string              { return "content of " + r.name }
func (r *recordingTab) SetSize(width, height int) { r.width, r.height = width, height }
func (r *recordingTab) ShortHelp() []key.Binding {
	return []key.Binding{key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "tab action"))}
}
func (r *recordingTab) FullHelp() [][]key.Binding { return nil }

func newTabbedModel() (*Model, []*recordingTab) {
	model := NewModel(nil)
	rec := make([]*recordingTab, tabCount)
	tabs := make([]Tab, tabCount)
	for i := 0; i < tabCount; i++ {
		rec[i] = &recordingTab{name: TabID(i).String()}
		tabs[i] = rec[i]
	}
	model.SetTabs(tabs)
	model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return model, rec
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel(t *testing.T) {
	model := NewModel(nil)
	if model == nil {
		t.Fatal("NewModel returned nil")
	}
	if model.state == nil {
		t.Error("State should be initialized")
	}
	if model.activeTab != TabOverview {
		t.Error("Default tab should be Overview")
	}
	if len(model.tabs) != tabCount {
		t.Errorf("Should have %d tab placeholders, got %d", tabCount, len(model.tabs))
	}
}

func TestModel_Init(t *testing.T) {
	model := NewModel(nil)
	if model.Init() == nil {
		t.Error("Init returned nil command")
	}
	if len(model.state.GetNotifications()) != 1 {
		t.Error("Init should show a loading notification")
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	model, rec := newTabbedModel()

	if model.width != 120 || model.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", model.width, model.height)
	}
	if !model.IsReady() {
		t.Error("Model should be ready after WindowSizeMsg")
	}
	if rec[0].width != 120 || rec[0].height != 35 {
		t.Errorf("tab size = %dx%d, want 120x35", rec[0].width, rec[0].height)
	}
}

func TestModel_TabNavigation(t *testing.T) {
	model, rec := newTabbedModel()

	model.Update(TabSwitchMsg{Tab: TabSessions})
	if model.GetActiveTab() != TabSessions {
		t.Errorf("ActiveTab = %v, want Sessions", model.GetActiveTab())
	}

	model.Update(runes("5"))
	if model.GetActiveTab() != TabForecast {
		t.Errorf("ActiveTab = %v, want Forecast", model.GetActiveTab())
	}
	for _, msg := range rec[TabForecast].received {
		if _, ok := msg.(tea.KeyMsg); ok {
			t.Error("global keys should not reach the tab")
		}
	}

	model.Update(tea.KeyMsg{Type: tea.KeyTab})
	if model.GetActiveTab() != TabDev {
		t.Errorf("ActiveTab = %v, want Dev", model.GetActiveTab())
	}
	model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model.Update(tea.KeyMsg{Type: tea.KeyTab})
	if model.GetActiveTab() != TabOverview {
		t.Errorf("next tab should wrap, got %v", model.GetActiveTab())
	}
	model.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if model.GetActiveTab() != TabInfo {
		t.Errorf("prev tab should wrap, got %v", model.GetActiveTab())
	}

	model.Update(TabSwitchMsg{Tab: TabID(42)})
	if model.GetActiveTab() != TabInfo {
		t.Error("out-of-range tab switch should be ignored")
	}

	model.Update(runes("x"))
	last := rec[TabInfo].received[len(rec[TabInfo].received)-1]
	if km, ok := last.(tea.KeyMsg); !ok || km.String() != "x" {
		t.Errorf("tab keys should reach the active tab, got %#v", last)
	}
}

func TestModel_FilterKeys(t *testing.T) {
	model := NewModel(nil)

	_, cmd := model.Update(runes("f"))
	if cmd == nil {
		t.Fatal("f should return a command")
	}
	filter, timeRange := model.state.GetFilter()
	if filter != models.DayFilterWeekday {
		t.Errorf("DayFilter = %v, want weekday", filter)
	}

	model.Update(runes("t"))
	_, timeRange = model.state.GetFilter()
	if timeRange != models.TimeRange90Days {
		t.Errorf("TimeRange = %v, want 90 days", timeRange)
	}

	cmd = model.commands.SetFilter(models.DayFilterWeekend, models.TimeRangeAllTime)
	model.Update(cmd())
	filter, timeRange = model.state.GetFilter()
	if filter != models.DayFilterWeekend || timeRange != models.TimeRangeAllTime {
		t.Errorf("FilterChangedMsg not applied: %v %v", filter, timeRange)
	}
}

func TestModel_ReportUpdatedReachesAllTabs(t *testing.T) {
	model, rec := newTabbedModel()
	model.state.SetLoadingNotification("Analyzing...")

	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.Local)
	params := report.DefaultParams(now)
	r := report.Build(sampleRecords(now), params)
	model.Update(ReportUpdatedMsg{Report: &r, Params: params})

	if model.state.GetReport() != &r {
		t.Error("report should be stored in state")
	}
	for i, tab := range rec {
		if len(tab.received) == 0 {
			t.Errorf("tab %d did not receive the report", i)
		}
	}
	if len(model.state.GetNotifications()) != 0 {
		t.Error("loading notification should clear once the report arrives")
	}

	model.Update(ReportUpdatedMsg{})
	if model.state.GetReport() != &r {
		t.Error("an empty update should not replace the report")
	}
}

func TestModel_Update_Tick(t *testing.T) {
	model := NewModel(nil)
	_, cmd := model.Update(TickMsg{Time: time.Now()})
	if cmd == nil {
		t.Error("TickMsg should return a command (next tick)")
	}
}

func TestModel_View(t *testing.T) {
	model := NewModel(nil)

	view := model.View()
	if !strings.Contains(view, "Loading...") {
		t.Error("View should show Loading when not ready")
	}

	model.ready = true
	model.width = 120
	model.height = 24

	view = model.View()
	for _, name := range []string{"Overview", "Patterns", "Forecast", "Info"} {
		if !strings.Contains(view, name) {
			t.Errorf("View should show %s tab", name)
		}
	}
	if !strings.Contains(view, "Nothing to show yet") {
		t.Error("View should show placeholder text")
	}
	if !strings.Contains(view, "30 Days") {
		t.Error("navbar should show the time range")
	}
}

func TestModel_Help(t *testing.T) {
	model, _ := newTabbedModel()

	model.Update(ToggleHelpMsg{})
	if !model.showHelp {
		t.Fatal("showHelp should be true")
	}

	view := model.View()
	if !strings.Contains(view, "Keyboard Shortcuts") {
		t.Error("View should show help modal")
	}
	if !strings.Contains(view, "tab action") {
		t.Error("help should list the active tab's keys")
	}

	model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if model.showHelp {
		t.Error("Esc should close help")
	}

	model.Update(runes("?"))
	model.Update(runes("?"))
	if model.showHelp {
		t.Error("showHelp should be false after two toggles")
	}
}

func TestModel_Notifications(t *testing.T) {
	model := NewModel(nil)

	model.Update(AddNotificationMsg{Message: "Test Note", Type: NotificationInfo})

	notifs := model.state.GetNotifications()
	if len(notifs) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notifs))
	}

	model.ready = true
	model.width = 100
	model.height = 24
	if !strings.Contains(model.View(), "Test Note") {
		t.Error("View should show notification")
	}

	model.Update(RemoveNotificationMsg{ID: notifs[0].ID})
	if len(model.state.GetNotifications()) != 0 {
		t.Error("notification should be removed")
	}
}

func TestModel_HandleServiceEvent(t *testing.T) {
	model := NewModel(nil)

	snap := &activity.Snapshot{
		Path:     "/tmp/activity.csv",
		Format:   ingest.FormatCSV,
		Records:  make([]models.ActivityRecord, 3),
		Stats:    ingest.Stats{Dropped: 2, UnknownApps: 1},
		LoadedAt: time.Now(),
	}
	if cmd := model.handleServiceEvent(services.SnapshotLoadedEvent{Snapshot: snap, RunID: "run-1"}); cmd != nil {
		t.Error("snapshot event should not return a command")
	}
	info := model.state.GetSnapshot()
	if info.Records != 3 || info.RowsDropped != 2 || info.RunID != "run-1" || info.Format != "csv" {
		t.Errorf("snapshot info = %+v", info)
	}

	now := time.Now()
	r := report.Build(sampleRecords(now), report.DefaultParams(now))
	cmd := model.handleServiceEvent(services.AnalysisUpdatedEvent{Report: &r})
	if _, ok := cmd().(ReportUpdatedMsg); !ok {
		t.Error("analysis event should produce ReportUpdatedMsg")
	}

	cmd = model.handleServiceEvent(services.AlertEvent{Alert: models.Alert{Kind: models.AlertAnomaly, Title: "Unusual day"}})
	msg, ok := cmd().(AddNotificationMsg)
	if !ok || msg.Type != NotificationWarning || msg.Message != "Unusual day" {
		t.Errorf("anomaly alert = %#v", msg)
	}
	if len(model.state.GetAlerts()) != 1 {
		t.Error("alert should be stored")
	}

	cmd = model.handleServiceEvent(services.AlertEvent{Alert: models.Alert{Kind: models.AlertStreak, Title: "7-day streak"}})
	if msg, _ := cmd().(AddNotificationMsg); msg.Type != NotificationSuccess {
		t.Errorf("streak alert type = %v, want success", msg.Type)
	}

	cmd = model.handleServiceEvent(services.ErrorEvent{Service: "activity", Error: errors.New("boom")})
	if msg, _ := cmd().(AddNotificationMsg); msg.Type != NotificationError || !strings.Contains(msg.Message, "boom") {
		t.Errorf("error event = %#v", msg)
	}
}

func TestModel_ReloadResult(t *testing.T) {
	model := NewModel(nil)
	model.state.SetLoading("initial", false)

	model.Update(StartLoadingMsg{Resource: "snapshot"})
	if !model.state.Loading.Snapshot {
		t.Error("Loading.Snapshot should be true")
	}

	cmds := model.handleReloadResult(ReloadResultMsg{})
	if msg, _ := cmds[0]().(AddNotificationMsg); msg.Type != NotificationSuccess {
		t.Error("successful reload should notify success")
	}
	if model.state.AnyLoading() {
		t.Error("loading should clear after reload")
	}

	cmds = model.handleReloadResult(ReloadResultMsg{Error: errors.New("gone")})
	if msg, _ := cmds[0]().(AddNotificationMsg); msg.Type != NotificationError {
		t.Error("failed reload should notify error")
	}
}

func TestModel_ParamsChange(t *testing.T) {
	model := NewModel(nil)

	cmds := model.handleParamsChange(ParamsChangeMsg{Apply: func(*report.Params) {}, Label: "Sequence length: 3"})
	if len(cmds) != 1 {
		t.Fatalf("without a manager only the toast is returned, got %d cmds", len(cmds))
	}
	if msg, _ := cmds[0]().(AddNotificationMsg); msg.Message != "Sequence length: 3" {
		t.Errorf("toast = %q", msg.Message)
	}
}

func TestModel_ErrorMsg(t *testing.T) {
	model := NewModel(nil)
	_, cmd := model.Update(ErrorMsg{Error: errors.New("bad"), Context: "export"})
	if cmd == nil {
		t.Fatal("ErrorMsg should return a command")
	}
	if got := errorText(ErrorMsg{Error: errors.New("bad"), Context: "export"}); got != "export: bad" {
		t.Errorf("errorText = %q", got)
	}
}

func TestModel_HandleSpinnerTick(t *testing.T) {
	model := NewModel(nil)
	_, cmd := model.Update(spinner.TickMsg{})
	if cmd == nil {
		t.Error("Spinner tick should return command")
	}
}

func TestTabID_String(t *testing.T) {
	tests := []struct {
		id   TabID
		want string
	}{
		{TabOverview, "Overview"},
		{TabPatterns, "Patterns"},
		{TabSessions, "Sessions"},
		{TabApps, "Apps"},
		{TabForecast, "Forecast"},
		{TabDev, "Dev"},
		{TabInfo, "Info"},
		{TabID(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("TabID(%d).String() = %s, want %s", tt.id, got, tt.want)
		}
	}
}

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp should not be empty")
	}
	if len(km.FullHelp()) == 0 {
		t.Error("FullHelp should not be empty")
	}
	if km.Tabs[6].Help().Key != "7" {
		t.Errorf("seventh tab key = %q, want 7", km.Tabs[6].Help().Key)
	}
}

func TestDefaultStyles(t *testing.T) {
	s := DefaultStyles()
	if s.Title.GetBold() != true {
		t.Error("Title should be bold")
	}
}
