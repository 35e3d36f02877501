package analyzers

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/j-veylop/activity-insights-tui/internal/classify"
	"github.com/j-veylop/activity-insights-tui/internal/models"
)

// SwitchDisplay selects which slice of the ranked destinations to report.
type SwitchDisplay string

// Display modes.
const (
	DisplayTop5     SwitchDisplay = "top5"
	DisplayTop10    SwitchDisplay = "top10"
	DisplayBottom5  SwitchDisplay = "bottom5"
	DisplayBottom10 SwitchDisplay = "bottom10"
	DisplayAll      SwitchDisplay = "all"
)

// SwitchDisplays lists the modes in cycling order.
var SwitchDisplays = []SwitchDisplay{DisplayTop5, DisplayTop10, DisplayBottom5, DisplayBottom10, DisplayAll}

// ContextSwitchParams picks the category pair to examine.
type ContextSwitchParams struct {
	From    models.Category
	To      models.Category
	Display SwitchDisplay
}

// DefaultContextSwitchParams examines Development to Operations switches.
func DefaultContextSwitchParams() ContextSwitchParams {
	return ContextSwitchParams{From: models.CategoryDevelopment, To: models.CategoryOperations, Display: DisplayTop5}
}

// SwitchTarget is the gap profile for one destination app.
type SwitchTarget struct {
	App         string  `json:"appName" yaml:"appName"`
	SwitchCount int     `json:"switchCount" yaml:"switchCount"`
	AvgGap      float64 `json:"avgGap" yaml:"avgGap"` // seconds
	MinGap      float64 `json:"minGap" yaml:"minGap"`
	MaxGap      float64 `json:"maxGap" yaml:"maxGap"`
	TimeInApp   float64 `json:"totalTimeInApp" yaml:"totalTimeInApp"` // seconds
}

// GapLevel rates an average switching gap.
type GapLevel string

// Gap levels.
const (
	GapQuick    GapLevel = "Quick"
	GapModerate GapLevel = "Moderate"
	GapExtended GapLevel = "Extended"
)

// GapLevelFor rates an average gap in seconds.
func GapLevelFor(avg float64) GapLevel {
	switch {
	case avg < 5:
		return GapQuick
	case avg < 15:
		return GapModerate
	default:
		return GapExtended
	}
}

// ContextSwitchReport summarizes switches for one category pair.
type ContextSwitchReport struct {
	From          models.Category `json:"from" yaml:"from"`
	To            models.Category `json:"to" yaml:"to"`
	Targets       []SwitchTarget  `json:"targets" yaml:"targets"`
	TotalSwitches int             `json:"totalSwitches" yaml:"totalSwitches"`
	AvgGap        float64         `json:"avgGap" yaml:"avgGap"`
	MinGap        float64         `json:"minGap" yaml:"minGap"`
	MaxGap        float64         `json:"maxGap" yaml:"maxGap"`
	Level         GapLevel        `json:"level" yaml:"level"`
	Insight       string          `json:"insight,omitempty" yaml:"insight,omitempty"`
}

type switchAcc struct {
	gaps  []float64
	total float64
}

// AnalyzeContextSwitches measures the idle gap between leaving a From app and
// starting the next record when that record is in the To category. Gaps are
// floored at zero so overlapping events never produce negative values. The
// summary covers the selected display slice.
func AnalyzeContextSwitches(records []models.ActivityRecord, params ContextSwitchParams) ContextSwitchReport {
	sorted := models.SortedByTime(records)
	accs := make(map[string]*switchAcc)
	var order []string

	for i := 0; i+1 < len(sorted); i++ {
		cur, next := sorted[i], sorted[i+1]
		if classify.CategorizeApp(cur.AppName) != params.From || classify.CategorizeApp(next.AppName) != params.To {
			continue
		}
		gap := next.Timestamp.Sub(cur.Timestamp).Seconds() - cur.Duration
		a, ok := accs[next.AppName]
		if !ok {
			a = &switchAcc{}
			accs[next.AppName] = a
			order = append(order, next.AppName)
		}
		a.gaps = append(a.gaps, math.Max(0, gap))
		a.total += next.Duration
	}

	all := make([]SwitchTarget, 0, len(order))
	for _, app := range order {
		a := accs[app]
		t := SwitchTarget{App: app, SwitchCount: len(a.gaps), MinGap: math.Inf(1), TimeInApp: a.total}
		for _, g := range a.gaps {
			t.AvgGap += g
			t.MinGap = math.Min(t.MinGap, g)
			t.MaxGap = math.Max(t.MaxGap, g)
		}
		t.AvgGap /= float64(len(a.gaps))
		all = append(all, t)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].SwitchCount > all[j].SwitchCount })

	report := ContextSwitchReport{From: params.From, To: params.To, Targets: sliceTargets(all, params.Display)}
	if len(report.Targets) == 0 {
		report.Level = GapLevelFor(0)
		return report
	}

	weighted := 0.0
	report.MinGap = math.Inf(1)
	for _, t := range report.Targets {
		report.TotalSwitches += t.SwitchCount
		weighted += t.AvgGap * float64(t.SwitchCount)
		report.MinGap = math.Min(report.MinGap, t.MinGap)
		report.MaxGap = math.Max(report.MaxGap, t.MaxGap)
	}
	report.AvgGap = weighted / float64(report.TotalSwitches)
	report.Level = GapLevelFor(report.AvgGap)
	report.Insight = switchInsight(report)
	return report
}

func sliceTargets(all []SwitchTarget, display SwitchDisplay) []SwitchTarget {
	head := func(n int) []SwitchTarget {
		if len(all) < n {
			n = len(all)
		}
		return all[:n]
	}
	tailReversed := func(n int) []SwitchTarget {
		if len(all) < n {
			n = len(all)
		}
		out := make([]SwitchTarget, 0, n)
		for i := len(all) - 1; i >= len(all)-n; i-- {
			out = append(out, all[i])
		}
		return out
	}

	switch display {
	case DisplayTop5:
		return head(5)
	case DisplayBottom5:
		return tailReversed(5)
	case DisplayBottom10:
		return tailReversed(10)
	case DisplayAll:
		return all
	default:
		return head(10)
	}
}

func switchInsight(r ContextSwitchReport) string {
	from := strings.ToLower(r.From.String())
	to := strings.ToLower(r.To.String())
	gap := classify.FormatSeconds(r.AvgGap)
	avg := r.AvgGap

	switch r.To {
	case models.CategoryEntertainment, models.CategoryOther:
		switch {
		case avg > 60:
			return fmt.Sprintf("Extended %s gap to %s suggests intentional breaks or context switching between work sessions.", gap, to)
		case avg > 15:
			return fmt.Sprintf("Moderate %s gap to %s indicates deliberate transitions to non-work activities.", gap, to)
		default:
			return fmt.Sprintf("Quick %s transitions to %s may indicate impulsive context switching patterns. Batching breaks could improve focus.", gap, to)
		}
	case models.CategoryCommunication:
		switch {
		case avg < 5:
			return fmt.Sprintf("⚡ %s average gap indicates rapid notification assessment. This pattern prevents larger interruptions by addressing time-sensitive items immediately.", gap)
		case avg < 15:
			return fmt.Sprintf("%s gap to %s suggests prompt awareness of notifications with efficient importance evaluation.", gap, to)
		case avg < 60:
			return fmt.Sprintf("Moderate %s delay to %s. Some messages may benefit from quicker attention to prevent escalation.", gap, to)
		default:
			return fmt.Sprintf("Extended %s gap to %s. Time-sensitive communications may be delayed. Notification settings optimization could reduce response lag.", gap, to)
		}
	case models.CategoryTools, models.CategoryBrowser, models.CategoryDevelopment, models.CategoryTesting, models.CategoryOperations:
		switch {
		case avg < 5:
			return fmt.Sprintf("%s gap indicates seamless workflow integration between %s and %s. Well-optimized tool transitions.", gap, from, to)
		case avg < 15:
			return fmt.Sprintf("%s gap between %s and %s falls within normal context switching ranges.", gap, from, to)
		case avg < 60:
			return fmt.Sprintf("%s gap suggests cognitive switching overhead. Tool placement optimization or keyboard shortcuts may reduce friction.", gap)
		default:
			return fmt.Sprintf("%s gap indicates significant switching friction. Workflow streamlining opportunities exist for this transition pattern.", gap)
		}
	}
	return fmt.Sprintf("%d switches observed from %s to %s with %s average gap.", r.TotalSwitches, from, to, gap)
}
