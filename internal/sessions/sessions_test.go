package sessions

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/activity-insights-tui/internal/models"
)

var monday = time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

func rec(at time.Time, dur float64, app string) models.ActivityRecord {
	return models.ActivityRecord{Timestamp: at, Duration: dur, AppName: app}
}

// sequenceOf lays out apps back to back, each lasting dur seconds.
func sequenceOf(dur float64, apps ...string) []models.ActivityRecord {
	out := make([]models.ActivityRecord, len(apps))
	at := monday.Add(9 * time.Hour)
	for i, app := range apps {
		out[i] = rec(at, dur, app)
		at = at.Add(time.Duration(dur) * time.Second)
	}
	return out
}

func TestMergeConsecutive(t *testing.T) {
	records := []models.ActivityRecord{
		rec(monday.Add(2*time.Minute), 30, "Slack"),
		rec(monday, 60, "Visual Studio Code"),
		rec(monday.Add(time.Minute), 60, "Visual Studio Code"),
		rec(monday.Add(3*time.Minute), 10, "Visual Studio Code"),
	}
	records[1].Title = "first.go - proj"
	records[2].Title = "second.go - proj"

	got := MergeConsecutive(records)

	want := []models.ActivityRecord{
		{Timestamp: monday, Duration: 120, AppName: "Visual Studio Code", Title: "first.go - proj"},
		rec(monday.Add(2*time.Minute), 30, "Slack"),
		rec(monday.Add(3*time.Minute), 10, "Visual Studio Code"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MergeConsecutive() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Slack", records[0].AppName, "input must not be reordered")
}

func TestMergeConsecutive_Empty(t *testing.T) {
	assert.Empty(t, MergeConsecutive(nil))
}

func TestDetectBlocks_ContiguousRecordsFormOneBlock(t *testing.T) {
	records := []models.ActivityRecord{
		{Timestamp: monday.Add(9 * time.Hour), Duration: 3600, AppName: "Visual Studio Code", Title: "main.ts - proj"},
		{Timestamp: monday.Add(10 * time.Hour), Duration: 3600, AppName: "Visual Studio Code", Title: "main.ts - proj"},
	}

	blocks := DetectBlocks(records, DefaultGap)

	require.Len(t, blocks, 1)
	assert.InDelta(t, 120, blocks[0].Duration, 1e-9)
	assert.Equal(t, models.CategoryDevelopment, blocks[0].DominantCategory)
	assert.Equal(t, 2, blocks[0].EventCount)
	assert.True(t, blocks[0].Start.Equal(monday.Add(9*time.Hour)))
	assert.True(t, blocks[0].End.Equal(monday.Add(11*time.Hour)))
}

func TestDetectBlocks_GapThreshold(t *testing.T) {
	start := monday.Add(9 * time.Hour)

	within := []models.ActivityRecord{
		rec(start, 600, "Slack"),
		rec(start.Add(10*time.Minute+9*time.Minute), 600, "Slack"),
	}
	blocks := DetectBlocks(within, DefaultGap)
	require.Len(t, blocks, 1)
	assert.InDelta(t, 29, blocks[0].Duration, 1e-9)

	beyond := []models.ActivityRecord{
		rec(start, 600, "Slack"),
		rec(start.Add(10*time.Minute+11*time.Minute), 600, "Slack"),
	}
	assert.Len(t, DetectBlocks(beyond, DefaultGap), 2)
}

func TestDetectBlocks_ContainedRecordKeepsEnd(t *testing.T) {
	start := monday.Add(9 * time.Hour)
	records := []models.ActivityRecord{
		rec(start, 7200, "Visual Studio Code"),
		rec(start.Add(30*time.Minute), 60, "Slack"),
		rec(start.Add(100*time.Minute), 600, "Visual Studio Code"),
	}

	blocks := DetectBlocks(records, DefaultGap)

	require.Len(t, blocks, 1)
	assert.Equal(t, 3, blocks[0].EventCount)
	assert.InDelta(t, 120, blocks[0].Duration, 1e-9)
	assert.True(t, blocks[0].End.Equal(start.Add(2*time.Hour)))
	assert.Equal(t, models.CategoryDevelopment, blocks[0].DominantCategory)
}

func TestDetectBlocks_DominantAndOrdering(t *testing.T) {
	start := monday.Add(9 * time.Hour)
	records := []models.ActivityRecord{
		rec(start, 300, "Slack"),
		rec(start.Add(5*time.Minute), 600, "Spotify"),
		rec(start.Add(15*time.Minute), 300, "Slack"),
		rec(start.Add(5*time.Hour), 60, "Google Chrome"),
	}

	blocks := DetectBlocks(records, DefaultGap)

	require.Len(t, blocks, 2)
	assert.Equal(t, models.CategoryCommunication, blocks[0].DominantCategory, "ties keep the first category seen")
	assert.Equal(t, []models.Category{models.CategoryCommunication, models.CategoryEntertainment}, blocks[0].BreakdownOrder)
	assert.Equal(t, models.CategoryBrowser, blocks[1].DominantCategory)
	assert.Greater(t, blocks[0].Duration, blocks[1].Duration)
}

func TestDetectBlocks_ZeroDurationOnlyIsOther(t *testing.T) {
	blocks := DetectBlocks([]models.ActivityRecord{rec(monday, 0, "Slack")}, DefaultGap)
	require.Len(t, blocks, 1)
	assert.Equal(t, models.CategoryOther, blocks[0].DominantCategory)
}

func TestAvgBlocksPerWeek(t *testing.T) {
	records := []models.ActivityRecord{rec(monday, 60, "a"), rec(monday.AddDate(0, 0, 14), 60, "a")}
	blocks := DetectBlocks(records, DefaultGap)
	assert.InDelta(t, 1.0, AvgBlocksPerWeek(blocks, records), 1e-9)
	assert.Zero(t, AvgBlocksPerWeek(nil, records))

	short := records[:1]
	assert.InDelta(t, 1.0, AvgBlocksPerWeek(DetectBlocks(short, DefaultGap), short), 1e-9)
}

func TestDetectTransitions_MergesReverseTwoStepSequences(t *testing.T) {
	// A→B five times and B→A three times, with A→B seen first. The lone
	// B→C and C→A windows fall below the occurrence floor.
	records := sequenceOf(60,
		"A", "B", "B", "A", "A", "B", "B", "A", "A", "B", "B", "A", "A", "B", "C", "A", "B")

	seqs := DetectTransitions(records, TransitionParams{Length: 2, MinDuration: 3, MinOccurrences: 2, Limit: 12})

	require.Len(t, seqs, 1)
	assert.Equal(t, []string{"A", "B"}, seqs[0].Apps)
	assert.Equal(t, 8, seqs[0].Count)
}

func TestDetectTransitions_FiltersShortRecords(t *testing.T) {
	records := sequenceOf(2, "A", "B", "A", "B")
	assert.Empty(t, DetectTransitions(records, TransitionParams{Length: 2, MinDuration: 3, MinOccurrences: 1}))
}

func TestDetectTransitions_Patterns(t *testing.T) {
	apps := []string{}
	for i := 0; i < 6; i++ {
		apps = append(apps, "Visual Studio Code", "YouTube")
	}
	apps = append(apps, "Visual Studio Code")

	seqs := DetectTransitions(sequenceOf(60, apps...), TransitionParams{Length: 3, MinDuration: 3, MinOccurrences: 1})

	require.Len(t, seqs, 2)
	byKey := map[string]models.TransitionSequence{}
	for _, s := range seqs {
		byKey[s.Apps[0]] = s
	}
	assert.Equal(t, models.PatternDistraction, byKey["Visual Studio Code"].Pattern)
	assert.Equal(t, models.PatternLoop, byKey["YouTube"].Pattern)
}

func TestDetectTransitions_LongEntertainmentIsNotDistraction(t *testing.T) {
	records := sequenceOf(400, "Slack", "Netflix", "Slack")
	seqs := DetectTransitions(records, TransitionParams{Length: 3, MinDuration: 3, MinOccurrences: 1})
	require.Len(t, seqs, 1)
	assert.Equal(t, models.PatternLoop, seqs[0].Pattern)
}

func TestDetectTransitions_FocusedAndWorkflow(t *testing.T) {
	focused := DetectTransitions(sequenceOf(60, "Slack", "Discord"), TransitionParams{Length: 2, MinOccurrences: 1})
	require.Len(t, focused, 1)
	assert.Equal(t, models.PatternFocused, focused[0].Pattern)

	workflow := DetectTransitions(sequenceOf(60, "Slack", "Google Chrome"), TransitionParams{Length: 2, MinOccurrences: 1})
	require.Len(t, workflow, 1)
	assert.Equal(t, models.PatternWorkflow, workflow[0].Pattern)
}

func TestDetectTransitions_Idempotent(t *testing.T) {
	records := sequenceOf(60, "A", "B", "C", "A", "B", "C", "A")
	params := TransitionParams{Length: 3, MinOccurrences: 1}
	first := DetectTransitions(records, params)
	second := DetectTransitions(records, params)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated run differs:\n%s", diff)
	}
}

func TestTransitionSummary(t *testing.T) {
	seqs := []models.TransitionSequence{
		{Apps: []string{"A", "Y", "A"}, Count: 4, Categories: []models.Category{models.CategoryOther, models.CategoryEntertainment, models.CategoryOther}, Pattern: models.PatternDistraction, AvgDurations: []float64{10, 5, 10}},
		{Apps: []string{"A", "B"}, Count: 6, Categories: []models.Category{models.CategoryOther, models.CategoryOther}, Pattern: models.PatternFocused, AvgDurations: []float64{60, 60}},
	}

	stats := TransitionSummary(seqs)

	assert.Equal(t, 10, stats.TotalSequences)
	assert.Equal(t, 3, stats.UniqueApps)
	assert.InDelta(t, 72.5, stats.AvgSequenceTime, 1e-9)
	assert.Equal(t, 1, stats.RapidSwitches)
	assert.Equal(t, 50, stats.FlowDisruptionRate)
	assert.Equal(t, 1, stats.PatternCounts[models.PatternDistraction])
	assert.InDelta(t, 20, stats.DistractionTime, 1e-9)
}
