package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/j-veylop/activity-insights-tui/internal/models"
)

var now = time.Date(2024, 5, 20, 12, 0, 0, 0, time.Local)

func fixture() []models.ActivityRecord {
	var records []models.ActivityRecord
	for d := 1; d <= 10; d++ {
		day := now.AddDate(0, 0, -d)
		base := time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, time.Local)
		records = append(records,
			models.ActivityRecord{Timestamp: base, Duration: 4 * 3600, AppName: "Visual Studio Code", Title: "main.go - proj"},
			models.ActivityRecord{Timestamp: base.Add(4 * time.Hour), Duration: 600, AppName: "Google Chrome", Title: "docs"},
			models.ActivityRecord{Timestamp: base.Add(4*time.Hour + 10*time.Minute), Duration: 1800, AppName: "Slack", Title: "general"},
			models.ActivityRecord{Timestamp: base.Add(5 * time.Hour), Duration: 900, AppName: "YouTube", Title: "music"},
		)
	}
	return records
}

func TestBuild(t *testing.T) {
	r := Build(fixture(), DefaultParams(now))

	assert.Equal(t, 40, r.Records)
	assert.Equal(t, 10, r.DaysTracked)
	assert.Len(t, r.Daily, 10)
	assert.NotEmpty(t, r.Blocks)
	assert.LessOrEqual(t, len(r.Blocks), maxBlocks)
	assert.Equal(t, 10, r.Anomalies.DaysAnalyzed)
	assert.Equal(t, 10, r.Consistency.Streak)
	assert.NotEmpty(t, r.Insights)
	require.NotEmpty(t, r.Loyalty.Apps)
	assert.Equal(t, "Go", r.TechStack.Languages[0].Language)
	assert.Greater(t, r.Forecast.WeeklyTotal, 0.0)
}

func TestBuild_DayFilter(t *testing.T) {
	params := DefaultParams(now)
	params.Filter.DayFilter = models.DayFilterWeekend

	r := Build(fixture(), params)

	// May 11, 12, 18 and 19 are weekend days.
	assert.Equal(t, 16, r.Records)
	assert.Equal(t, 10, r.Anomalies.DaysAnalyzed, "anomalies see the whole log")
}

func TestWrite_JSON(t *testing.T) {
	r := Build(fixture(), DefaultParams(now))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r, FormatJSON))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	for _, key := range []string{"summary", "blocks", "anomalies", "consistency", "insights", "loyalty", "forecast", "devStats"} {
		assert.Contains(t, decoded, key)
	}
	assert.Contains(t, buf.String(), `"Development"`)
}

func TestWrite_YAMLSection(t *testing.T) {
	r := Build(fixture(), DefaultParams(now))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r, FormatYAML, SectionForecast))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "days")
	assert.Contains(t, decoded, "weeklyTotal")
	assert.NotContains(t, decoded, "summary")
}

func TestWrite_Text(t *testing.T) {
	r := Build(fixture(), DefaultParams(now))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r, FormatText))

	out := buf.String()
	for _, want := range []string{"Overview", "Patterns", "Sessions", "App loyalty", "7-day forecast", "Development", "Visual Studio Code"} {
		assert.True(t, strings.Contains(out, want), "text report missing %q", want)
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"": FormatText, "TEXT": FormatText, "json": FormatJSON, "yml": FormatYAML, "yaml": FormatYAML}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}
