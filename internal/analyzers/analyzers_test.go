package analyzers

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/activity-insights-tui/internal/models"
)

// day0 is a Monday.
var day0 = time.Date(2024, 5, 6, 0, 0, 0, 0, time.Local)

func at(day, hour, minute int) time.Time {
	return day0.AddDate(0, 0, day).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func rec(ts time.Time, dur float64, app string) models.ActivityRecord {
	return models.ActivityRecord{Timestamp: ts, Duration: dur, AppName: app}
}

func titled(ts time.Time, dur float64, app, title string) models.ActivityRecord {
	return models.ActivityRecord{Timestamp: ts, Duration: dur, AppName: app, Title: title}
}

func TestDetectAnomalies_FlagsHighOutlier(t *testing.T) {
	hours := []float64{4, 4, 4, 4, 4, 4, 12}
	var records []models.ActivityRecord
	for i, h := range hours {
		records = append(records, rec(at(i, 8, 0), h*3600, "Visual Studio Code"))
	}

	report := DetectAnomalies(records, at(7, 12, 0))

	require.Len(t, report.Anomalies, 1)
	a := report.Anomalies[0]
	assert.Equal(t, AnomalyHigh, a.Type)
	assert.InDelta(t, 12.0, a.TotalHours, 1e-9)
	assert.Equal(t, "Sunday", a.DayName)
	assert.Equal(t, "May 12", a.DateLabel)
	assert.Equal(t, 7, report.DaysAnalyzed)
	assert.InDelta(t, 36.0/7, report.Mean, 1e-9)
	assert.Greater(t, a.Deviation, 0.0)
	require.NotEmpty(t, a.TopCategories)
	assert.Equal(t, models.CategoryDevelopment, a.TopCategories[0].Category)
}

func TestDetectAnomalies_ExcludesToday(t *testing.T) {
	records := []models.ActivityRecord{
		rec(at(0, 9, 0), 4*3600, "Slack"),
		rec(at(1, 9, 0), 4*3600, "Slack"),
		rec(at(2, 9, 0), 4*3600, "Slack"),
		rec(at(3, 9, 0), 20*3600, "Slack"),
	}

	report := DetectAnomalies(records, at(3, 23, 0))

	assert.Equal(t, 3, report.DaysAnalyzed)
	assert.Empty(t, report.Anomalies)
}

func TestDetectAnomalies_NeedsTwoDays(t *testing.T) {
	report := DetectAnomalies([]models.ActivityRecord{rec(at(0, 9, 0), 3600, "Slack")}, at(5, 9, 0))
	assert.Empty(t, report.Anomalies)
	assert.Zero(t, report.Mean)
}

func TestAnomalyThreshold_Monotonic(t *testing.T) {
	prev := 0.0
	for n := 2; n <= 60; n++ {
		th := AnomalyThreshold(n)
		assert.GreaterOrEqual(t, th, prev, "threshold decreased at n=%d", n)
		prev = th
	}
	assert.Equal(t, 1.0, AnomalyThreshold(6))
	assert.Equal(t, 1.25, AnomalyThreshold(7))
	assert.Equal(t, 1.5, AnomalyThreshold(14))
}

// dailyHours lays out one development record per day starting at day0.
func dailyHours(hours ...float64) []models.ActivityRecord {
	records := make([]models.ActivityRecord, len(hours))
	for i, h := range hours {
		records[i] = rec(at(i, 9, 0), h*3600, "Visual Studio Code")
	}
	return records
}

func TestDetectAnomalies_ThresholdTightensWithHistory(t *testing.T) {
	// Four 4h days then three 8h days. The 8h days sit sqrt(2) sigma out
	// after six days and sqrt(4/3) sigma out after seven.
	week := dailyHours(4, 4, 4, 4, 8, 8, 8)
	// Five 8h days then nine 4h days. The 8h days sit sqrt(8/5) sigma out
	// after thirteen days and sqrt(9/5) sigma out after fourteen.
	fortnight := dailyHours(8, 8, 8, 8, 8, 4, 4, 4, 4, 4, 4, 4, 4, 4)

	tests := []struct {
		name      string
		records   []models.ActivityRecord
		days      int
		threshold float64
		flagged   int
	}{
		{"six days", week, 6, 1.0, 2},
		{"seven days", week, 7, 1.25, 0},
		{"thirteen days", fortnight, 13, 1.25, maxAnomalies},
		{"fourteen days", fortnight, 14, 1.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := DetectAnomalies(tt.records, at(tt.days, 12, 0))

			assert.Equal(t, tt.days, report.DaysAnalyzed)
			assert.Equal(t, tt.threshold, report.Threshold)
			assert.Len(t, report.Anomalies, tt.flagged)
			for _, a := range report.Anomalies {
				assert.Equal(t, AnomalyHigh, a.Type)
				assert.InDelta(t, 8.0, a.TotalHours, 1e-9)
			}
		})
	}
}

func TestTrackConsistency_Streak(t *testing.T) {
	now := at(10, 12, 0)
	records := []models.ActivityRecord{
		rec(at(7, 9, 0), 5*3600, "Visual Studio Code"),
		rec(at(8, 9, 0), 5*3600, "Visual Studio Code"),
		rec(at(9, 9, 0), 5*3600, "Visual Studio Code"),
		rec(at(5, 9, 0), 600, "YouTube"),
		rec(at(10, 9, 0), 8*3600, "Visual Studio Code"),
	}

	report := TrackConsistency(records, now)

	assert.Equal(t, 3, report.Streak)
	assert.Equal(t, "✨", report.StreakEmoji)
	assert.Equal(t, 3, report.WeeklyProductive)
	assert.Equal(t, 29, report.Consistency) // 4 of 14 days
	require.Len(t, report.Calendar, calendarDays)
	last := report.Calendar[len(report.Calendar)-1]
	assert.True(t, last.IsToday)
	assert.Equal(t, DayActive, report.Calendar[8].Status)
	assert.Equal(t, DayInactive, report.Calendar[0].Status)
	require.NotEmpty(t, report.TopCategories)
	assert.Equal(t, models.CategoryDevelopment, report.TopCategories[0].Category)
	assert.Equal(t, 3, report.TopCategories[0].DaysActive)
	assert.Equal(t,
		"💡 Current 3-day productive streak indicates consistent engagement. 3 of last 7 days met productivity threshold.",
		report.Insight)
}

func TestStreakEmoji(t *testing.T) {
	cases := map[int]string{0: "💤", 1: "🌱", 2: "✨", 5: "⚡", 7: "🔥", 20: "💪", 30: "🏆"}
	for streak, want := range cases {
		assert.Equal(t, want, StreakEmoji(streak), "streak %d", streak)
	}
}

func TestScoreLoyalty(t *testing.T) {
	records := []models.ActivityRecord{
		rec(at(0, 9, 0), 1800, "Visual Studio Code"),
		rec(at(0, 10, 0), 1800, "Visual Studio Code"),
		rec(at(1, 9, 0), 1800, "Visual Studio Code"),
		rec(at(1, 10, 0), 1800, "Visual Studio Code"),
		rec(at(1, 11, 0), 600, "Discord"),
	}

	report := ScoreLoyalty(records, LoyaltyParams{})

	require.Len(t, report.Apps, 2)
	code, discord := report.Apps[0], report.Apps[1]
	assert.Equal(t, "Visual Studio Code", code.App)
	assert.InDelta(t, 76.0, code.Score, 1e-9)
	assert.Equal(t, TierLoyal, code.Tier)
	assert.InDelta(t, 60.0, code.AvgDaily, 1e-9)
	assert.InDelta(t, 28.5, discord.Score, 1e-9)
	assert.Equal(t, TierRegular, discord.Tier)
	assert.Equal(t, "Tue", discord.PeakDay)
	assert.Equal(t, "Sun", discord.LeastDay)
	assert.Equal(t, 2, report.TotalDays)
	assert.Equal(t, 1, report.TierCounts[TierLoyal])
	assert.Equal(t, 1, report.TierCounts[TierRegular])
	assert.Equal(t, 0, report.TierCounts[TierCasual])
}

func TestScoreLoyalty_MinDailyFilter(t *testing.T) {
	records := []models.ActivityRecord{
		rec(at(0, 9, 0), 3600, "Visual Studio Code"),
		rec(at(0, 11, 0), 300, "Discord"),
	}
	report := ScoreLoyalty(records, LoyaltyParams{MinDailyMinutes: 30})
	require.Len(t, report.Apps, 1)
	assert.Equal(t, "Visual Studio Code", report.Apps[0].App)
}

func TestAnalyzeContextSwitches(t *testing.T) {
	base := at(0, 9, 0)
	records := []models.ActivityRecord{
		rec(base, 60, "Visual Studio Code"),
		rec(base.Add(70*time.Second), 30, "Cloudflare"),
		rec(base.Add(200*time.Second), 60, "Visual Studio Code"),
		rec(base.Add(263*time.Second), 40, "GitHub"),
		rec(base.Add(400*time.Second), 60, "Visual Studio Code"),
		rec(base.Add(430*time.Second), 40, "GitHub"),
	}

	report := AnalyzeContextSwitches(records, DefaultContextSwitchParams())

	require.Len(t, report.Targets, 2)
	assert.Equal(t, "GitHub", report.Targets[0].App)
	assert.Equal(t, 2, report.Targets[0].SwitchCount)
	assert.Equal(t, 0.0, report.Targets[0].MinGap, "overlap floors at zero")
	assert.Equal(t, 3.0, report.Targets[0].MaxGap)
	assert.Equal(t, 3, report.TotalSwitches)
	assert.InDelta(t, 13.0/3, report.AvgGap, 1e-9)
	assert.Equal(t, GapQuick, report.Level)

	bottom := AnalyzeContextSwitches(records, ContextSwitchParams{
		From: models.CategoryDevelopment, To: models.CategoryOperations, Display: DisplayBottom5,
	})
	require.Len(t, bottom.Targets, 2)
	assert.Equal(t, "Cloudflare", bottom.Targets[0].App)
}

func TestAnalyzeContextSwitches_NoMatches(t *testing.T) {
	report := AnalyzeContextSwitches([]models.ActivityRecord{rec(at(0, 9, 0), 60, "Slack")}, DefaultContextSwitchParams())
	assert.Empty(t, report.Targets)
	assert.Zero(t, report.TotalSwitches)
	assert.Empty(t, report.Insight)
}

func workflowFixture() []models.ActivityRecord {
	var records []models.ActivityRecord
	for d := 0; d < 3; d++ {
		records = append(records,
			rec(at(d, 9, 0), 6*3600, "Visual Studio Code"),
			rec(at(d, 15, 0), 3600, "Windows PowerShell"),
		)
	}
	return records
}

func TestWorkflowInsights(t *testing.T) {
	records := append(workflowFixture(), rec(at(3, 9, 0), 600, "Discord"))

	insights := WorkflowInsights(records, at(3, 12, 0))

	require.NotEmpty(t, insights)
	assert.LessOrEqual(t, len(insights), maxWorkflowInsights)
	assert.Equal(t, "dev-test-high", insights[0].ID)
	for i := 1; i < len(insights); i++ {
		assert.LessOrEqual(t, insights[i-1].Priority, insights[i].Priority)
	}

	byID := make(map[string]models.Insight)
	for _, in := range insights {
		_, dup := byID[in.ID]
		assert.False(t, dup, "duplicate insight %s", in.ID)
		byID[in.ID] = in
	}
	for _, id := range []string{"early-bird", "consistent-start", "deep-work-strong", "strong-consistency", "focused-toolset", "category-dominance"} {
		assert.Contains(t, byID, id)
	}
	assert.Contains(t, byID["consistent-start"].Description, "9:00")
	assert.Contains(t, byID["focused-toolset"].Description, "3 core applications")
	assert.NotContains(t, byID, "balanced-recovery")
}

func TestWorkflowInsights_Idempotent(t *testing.T) {
	records := workflowFixture()
	now := at(3, 12, 0)
	if diff := cmp.Diff(WorkflowInsights(records, now), WorkflowInsights(records, now)); diff != "" {
		t.Errorf("WorkflowInsights() not deterministic (-first +second):\n%s", diff)
	}
}

func TestWorkflowRuleNames(t *testing.T) {
	names := WorkflowRuleNames()
	assert.Len(t, names, len(workflowRules))
	assert.Equal(t, "dev-test-ratio", names[0])
}

func TestClockTime(t *testing.T) {
	assert.Equal(t, "9:00", clockTime(9))
	assert.Equal(t, "17:30", clockTime(17.5))
}

func TestSummarize(t *testing.T) {
	records := []models.ActivityRecord{
		rec(at(0, 9, 0), 3600, "Visual Studio Code"),
		rec(at(0, 10, 0), 1800, "YouTube"),
		rec(at(1, 9, 0), 3600, "Visual Studio Code"),
	}

	s := Summarize(records, at(1, 12, 0))

	assert.Equal(t, 75, s.TotalTime.WeekdayAvgMin)
	assert.Equal(t, 0, s.TotalTime.WeekendAvgMin)
	assert.Equal(t, 60, s.TotalTime.TodayMin)
	assert.Equal(t, 80, s.TotalTime.TodayPercent)
	assert.Equal(t, 2, s.TotalTime.DaysTracked)
	assert.Equal(t, "May 6 - May 7, 2024", s.TotalTime.DateRange())

	assert.Equal(t, 80, s.Balance.ProductivePercent)
	assert.Equal(t, 20, s.Balance.LeisurePercent)

	assert.Equal(t, Switching{AvgSwitchesPerDay: 1, AvgTimePerApp: 3000, AvgUniqueApps: 2}, s.Switching)

	wantCats := []CategoryShare{
		{Category: models.CategoryDevelopment, Minutes: 60, Percent: 80},
		{Category: models.CategoryEntertainment, Minutes: 15, Percent: 20},
	}
	if diff := cmp.Diff(wantCats, s.Categories); diff != "" {
		t.Errorf("Categories mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t,
		"Development leads with 1h/day (80%), followed by Entertainment at 15m/day (20%). Entertainment accounts for only 15m/day (20% of time).",
		s.CategoryInsight)

	require.Len(t, s.TopApps, 2)
	assert.Equal(t, AppShare{App: "Visual Studio Code", Category: models.CategoryDevelopment, Minutes: 60, Percent: 80}, s.TopApps[0])

	require.Len(t, s.Hourly, 2)
	assert.Equal(t, HourActivity{Hour: 9, Productive: 60, Total: 60}, s.Hourly[0])
	assert.Equal(t, 9, s.PeakHour)
	assert.Equal(t, 100, s.PeakProductivePc)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, at(0, 12, 0))
	assert.Equal(t, -1, s.PeakHour)
	assert.Empty(t, s.Categories)
	assert.Equal(t, "No category data available.", s.CategoryInsight)
	assert.Equal(t, "No data", s.TotalTime.DateRange())
}

func TestRhythmHeatmap(t *testing.T) {
	records := []models.ActivityRecord{
		rec(at(0, 9, 0), 60, "Visual Studio Code"),
		rec(at(1, 9, 0), 60, "Visual Studio Code"),
		rec(at(0, 9, 1), 60, "YouTube"),
	}

	r := RhythmHeatmap(records)

	assert.Equal(t, 2, r.TotalDays)
	assert.Equal(t, RhythmSlot{Category: models.CategoryDevelopment, Occurrences: 2}, r.Slot(9, 0))
	assert.Equal(t, RhythmSlot{Category: models.CategoryEntertainment, Occurrences: 1}, r.Slot(9, 1))
	assert.True(t, r.Slot(0, 0).Idle)

	hours := r.HourDominant()
	assert.Equal(t, models.CategoryDevelopment, hours[9].Category)
	assert.False(t, hours[9].Idle)
	assert.True(t, hours[10].Idle)
}

func TestSessionLengths(t *testing.T) {
	base := at(0, 9, 0)
	records := []models.ActivityRecord{
		rec(base, 5, "Visual Studio Code"),
		rec(base.Add(5*time.Second), 10, "Visual Studio Code"),
		rec(base.Add(15*time.Second), 2, "YouTube"),
		rec(base.Add(17*time.Second), 700, "Slack"),
	}

	excl := SessionLengths(records, true)
	assert.Equal(t, 2, excl.TotalSessions)
	assert.InDelta(t, 357.5, excl.AvgDuration, 1e-9)
	assert.Equal(t, 700.0, excl.MedianDuration)
	require.Len(t, excl.Rows, len(SessionBuckets))
	assert.Equal(t, 1, excl.Rows[1].Categories[models.CategoryDevelopment])
	assert.Equal(t, 1, excl.Rows[6].Categories[models.CategoryCommunication])
	assert.Equal(t, 0, excl.Rows[0].Total())

	all := SessionLengths(records, false)
	assert.Equal(t, 3, all.TotalSessions)
	assert.Equal(t, 1, all.Rows[0].Categories[models.CategoryEntertainment])
}

func devFixture() []models.ActivityRecord {
	return []models.ActivityRecord{
		titled(at(20, 9, 0), 3600, "Visual Studio Code", "main.go - proj"),
		titled(at(19, 9, 0), 3600, "Visual Studio Code", "main.go - proj"),
		titled(at(18, 9, 0), 3600, "Visual Studio Code", "main.go - proj"),
		titled(at(12, 9, 0), 1800, "Visual Studio Code", "main.go - proj"),
		titled(at(18, 11, 0), 3600, "Slack", "general"),
	}
}

func TestTechStack(t *testing.T) {
	records := append(devFixture(),
		titled(at(-20, 9, 0), 1800, "Visual Studio Code", "server.go - proj"),
	)
	report := TechStack(records, LanguageParams{Days: 7}, at(20, 12, 0))

	require.Len(t, report.Languages, 1)
	goLang := report.Languages[0]
	assert.Equal(t, "Go", goLang.Language)
	assert.InDelta(t, 3.0, goLang.Hours, 1e-9)
	assert.InDelta(t, 0.5, goLang.PrevHours, 1e-9)
	assert.InDelta(t, 500.0, goLang.ChangePercent, 1e-9)
	assert.Equal(t, 3, goLang.DaysActive)
	assert.InDelta(t, 100.0, goLang.Percent, 1e-9)
	assert.InDelta(t, 100.0, report.DetectionRate, 1e-9)
}

func TestLanguageVelocity(t *testing.T) {
	report := LanguageVelocity(devFixture(), at(20, 12, 0))

	require.Len(t, report.Days, velocityDays)
	assert.Equal(t, []string{"Go"}, report.Languages)
	require.Len(t, report.Trends, 1)
	trend := report.Trends[0]
	assert.InDelta(t, 500.0, trend.WeekOverWeek, 1e-9)
	assert.Equal(t, MomentumGrowing, trend.Momentum)
	assert.Equal(t, 3, trend.ConsecutiveDays)
	assert.Equal(t, []string{
		"🚀 Go momentum: +500% vs last week",
		"🎯 Learning focus: Go (3 consecutive days)",
	}, report.Insights)
}

func TestDevStats(t *testing.T) {
	s := DevStats(devFixture(), at(20, 12, 0))

	assert.InDelta(t, 3.5, s.TotalHours, 1e-9)
	assert.Equal(t, 1, s.LanguageCount)
	require.NotNil(t, s.TopLanguage)
	assert.Equal(t, "Go", s.TopLanguage.Language)
	assert.Equal(t, 1, s.UniqueFiles)
	assert.Equal(t, 4, s.ActiveDays)
	assert.Equal(t, 3, s.LongestStreak)
	assert.InDelta(t, 1.0, s.MaxDayHours, 1e-9)
	assert.Equal(t, 8, s.DaysSinceFirst)
	assert.Equal(t, "Your longest coding streak is 3 consecutive days", s.Insight)
}

func TestDevStats_Empty(t *testing.T) {
	s := DevStats(nil, at(0, 0, 0))
	assert.Nil(t, s.TopLanguage)
	assert.Equal(t, "Your lifetime development statistics", s.Insight)
}
