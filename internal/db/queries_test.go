package db

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/j-veylop/activity-insights-tui/internal/models"
)

func TestInsertLoadRun(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	run := &models.LoadRun{
		Path:        "/tmp/activity.csv",
		Format:      "csv",
		StartedAt:   time.Date(2024, 5, 20, 9, 30, 0, 0, time.UTC),
		Duration:    1500 * time.Millisecond,
		RowsRead:    120,
		RowsDropped: 3,
		RowsKept:    117,
		UnknownApps: 2,
	}

	if err := db.InsertLoadRun(run); err != nil {
		t.Fatalf("InsertLoadRun() failed: %v", err)
	}
	if _, err := uuid.Parse(run.ID); err != nil {
		t.Errorf("InsertLoadRun() should assign a UUID, got %q", run.ID)
	}

	runs, err := db.GetRecentLoadRuns(5)
	if err != nil {
		t.Fatalf("GetRecentLoadRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}

	got := runs[0]
	if !got.StartedAt.Equal(run.StartedAt) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, run.StartedAt)
	}
	got.StartedAt = run.StartedAt
	if diff := cmp.Diff(*run, got); diff != "" {
		t.Errorf("load run mismatch (-want +got):\n%s", diff)
	}
}

func TestGetRecentLoadRuns_Order(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	base := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		run := &models.LoadRun{Path: "log.csv", Format: "csv", StartedAt: base.Add(time.Duration(i) * time.Hour), RowsKept: i}
		if err := db.InsertLoadRun(run); err != nil {
			t.Fatalf("InsertLoadRun() failed: %v", err)
		}
	}

	runs, err := db.GetRecentLoadRuns(2)
	if err != nil {
		t.Fatalf("GetRecentLoadRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].RowsKept != 2 || runs[1].RowsKept != 1 {
		t.Errorf("runs not newest first: %d, %d", runs[0].RowsKept, runs[1].RowsKept)
	}
}

func TestUpsertDailyTotals(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	may20 := time.Date(2024, 5, 20, 0, 0, 0, 0, time.Local)
	may21 := may20.AddDate(0, 0, 1)

	first := []models.DailyAggregate{
		{Date: may20, CategoryTotals: map[models.Category]float64{
			models.CategoryDevelopment:   3600,
			models.CategoryEntertainment: 600,
		}, Total: 4200},
		{Date: may21, CategoryTotals: map[models.Category]float64{
			models.CategoryTesting: 1800,
		}, Total: 1800},
	}
	if err := db.UpsertDailyTotals("run-1", first); err != nil {
		t.Fatalf("UpsertDailyTotals() failed: %v", err)
	}

	// A later load revises May 20.
	second := []models.DailyAggregate{
		{Date: may20, CategoryTotals: map[models.Category]float64{
			models.CategoryDevelopment: 7200,
		}, Total: 7200},
	}
	if err := db.UpsertDailyTotals("run-2", second); err != nil {
		t.Fatalf("UpsertDailyTotals() failed: %v", err)
	}

	days, err := db.GetDailyTotals(may20)
	if err != nil {
		t.Fatalf("GetDailyTotals() failed: %v", err)
	}

	want := []models.DailyAggregate{
		{Date: may20, CategoryTotals: map[models.Category]float64{
			models.CategoryDevelopment:   7200,
			models.CategoryEntertainment: 600,
		}, Total: 7800},
		{Date: may21, CategoryTotals: map[models.Category]float64{
			models.CategoryTesting: 1800,
		}, Total: 1800},
	}
	if diff := cmp.Diff(want, days); diff != "" {
		t.Errorf("daily totals mismatch (-want +got):\n%s", diff)
	}

	later, err := db.GetDailyTotals(may21)
	if err != nil {
		t.Fatalf("GetDailyTotals() failed: %v", err)
	}
	if len(later) != 1 || later[0].Key() != "2024-05-21" {
		t.Errorf("GetDailyTotals(since) should skip earlier days, got %d days", len(later))
	}
}

func TestUpsertDailyTotals_Empty(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	if err := db.UpsertDailyTotals("", nil); err != nil {
		t.Errorf("UpsertDailyTotals(nil) failed: %v", err)
	}
	days, err := db.GetDailyTotals(time.Time{})
	if err != nil {
		t.Fatalf("GetDailyTotals() failed: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("got %d days, want 0", len(days))
	}
}

func TestRecordAlert_Dedup(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	alert := &models.Alert{
		Kind:    models.AlertAnomaly,
		Key:     "2024-05-12",
		Title:   "Unusually high activity",
		Message: "12.0h on Sunday, May 12",
	}

	inserted, err := db.RecordAlert(alert)
	if err != nil {
		t.Fatalf("RecordAlert() failed: %v", err)
	}
	if !inserted {
		t.Error("first RecordAlert() should insert")
	}
	if alert.ID == 0 {
		t.Error("RecordAlert() should set ID")
	}

	dup := *alert
	dup.ID = 0
	dup.Message = "different text, same key"
	inserted, err = db.RecordAlert(&dup)
	if err != nil {
		t.Fatalf("RecordAlert() failed: %v", err)
	}
	if inserted {
		t.Error("duplicate RecordAlert() should be ignored")
	}

	// Same key under another kind is distinct.
	other := &models.Alert{Kind: models.AlertStreak, Key: "2024-05-12", Title: "streak"}
	if inserted, _ := db.RecordAlert(other); !inserted {
		t.Error("alert with a different kind should insert")
	}

	alerts, err := db.GetRecentAlerts(10)
	if err != nil {
		t.Fatalf("GetRecentAlerts() failed: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("got %d alerts, want 2", len(alerts))
	}
	for _, a := range alerts {
		if a.Kind == models.AlertAnomaly && a.Message != alert.Message {
			t.Errorf("stored message = %q, want original %q", a.Message, alert.Message)
		}
	}
}

func TestNullString(t *testing.T) {
	if ns := nullString(""); ns.Valid {
		t.Error("nullString(\"\") should be invalid")
	}
	if ns := nullString("x"); !ns.Valid || ns.String != "x" {
		t.Errorf("nullString(\"x\") = %+v", ns)
	}
}
