package analyzers

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/j-veylop/activity-insights-tui/internal/classify"
	"github.com/j-veylop/activity-insights-tui/internal/models"
)

const (
	maxWorkflowInsights = 10
	transitionWindow    = 5.0   // minutes
	minBreakGap         = 5.0   // minutes
	maxBreakGap         = 120.0 // minutes
)

// appTransition is a switch between different apps within transitionWindow.
type appTransition struct {
	from, to string
}

// workflowFacts is everything the rules look at, computed in one pass over
// the completed days of the log.
type workflowFacts struct {
	days           map[string]map[models.Category]float64
	dayOrder       []string
	categoryTotals map[models.Category]float64
	categoryOrder  []models.Category
	hourly         map[int]float64
	hourOrder      []int
	weekday        []float64
	weekend        []float64
	startTimes     []float64 // fractional hours, per day in first-seen order
	endTimes       []float64
	transitions    []appTransition
	gaps           []float64 // minutes
	uniqueApps     int

	devHours, testHours, opsHours, totalHours float64
}

func (f *workflowFacts) hours(cat models.Category) float64 {
	return f.categoryTotals[cat] / 3600
}

func collectWorkflowFacts(records []models.ActivityRecord, now time.Time) *workflowFacts {
	f := &workflowFacts{
		days:           make(map[string]map[models.Category]float64),
		categoryTotals: make(map[models.Category]float64),
		hourly:         make(map[int]float64),
	}
	today := dayKey(now)
	starts := make(map[string]float64)
	ends := make(map[string]float64)
	apps := make(map[string]struct{})

	sorted := models.SortedByTime(records)
	for i, r := range sorted {
		apps[r.AppName] = struct{}{}
		key := dayKey(r.Timestamp)
		if key == today {
			continue
		}
		local := r.Timestamp.Local()
		cat := classify.CategorizeApp(r.AppName)

		day, ok := f.days[key]
		if !ok {
			day = make(map[models.Category]float64)
			f.days[key] = day
			f.dayOrder = append(f.dayOrder, key)
		}
		day[cat] += r.Duration

		if _, ok := f.categoryTotals[cat]; !ok {
			f.categoryOrder = append(f.categoryOrder, cat)
		}
		f.categoryTotals[cat] += r.Duration

		if _, ok := f.hourly[local.Hour()]; !ok {
			f.hourOrder = append(f.hourOrder, local.Hour())
		}
		f.hourly[local.Hour()] += r.Duration

		at := float64(local.Hour()) + float64(local.Minute())/60
		if s, ok := starts[key]; !ok || at < s {
			starts[key] = at
		}
		if e, ok := ends[key]; !ok || at > e {
			ends[key] = at
		}

		if models.IsWeekend(local.Weekday()) {
			f.weekend = append(f.weekend, r.Duration)
		} else {
			f.weekday = append(f.weekday, r.Duration)
		}

		if i > 0 {
			prev := sorted[i-1]
			diff := r.Timestamp.Sub(prev.Timestamp).Minutes()
			if diff <= transitionWindow && prev.AppName != r.AppName {
				f.transitions = append(f.transitions, appTransition{from: prev.AppName, to: r.AppName})
			}
			if diff >= minBreakGap && diff <= maxBreakGap {
				f.gaps = append(f.gaps, diff)
			}
		}
	}

	for _, key := range f.dayOrder {
		f.startTimes = append(f.startTimes, starts[key])
		f.endTimes = append(f.endTimes, ends[key])
	}
	f.uniqueApps = len(apps)
	f.devHours = f.hours(models.CategoryDevelopment)
	f.testHours = f.hours(models.CategoryTesting)
	f.opsHours = f.hours(models.CategoryOperations)
	for _, v := range f.categoryTotals {
		f.totalHours += v / 3600
	}
	return f
}

// workflowRule emits zero or more insights from the collected facts.
type workflowRule struct {
	name string
	eval func(f *workflowFacts) []models.Insight
}

// workflowRules run in order; each is independent of the others.
var workflowRules = []workflowRule{
	{"dev-test-ratio", ruleDevTestRatio},
	{"ops-overhead", ruleOpsOverhead},
	{"email-browser", ruleEmailBrowser},
	{"dev-test-transitions", ruleDevTestTransitions},
	{"browser-dev", ruleBrowserDev},
	{"peak-hours", rulePeakHours},
	{"weekend-weekday", ruleWeekendWeekday},
	{"start-time", ruleStartTime},
	{"micro-breaks", ruleMicroBreaks},
	{"end-time", ruleEndTime},
	{"deep-work", ruleDeepWork},
	{"ultradian", ruleUltradian},
	{"consistency", ruleConsistency},
	{"tool-diversity", ruleToolDiversity},
	{"category-dominance", ruleCategoryDominance},
	{"recovery", ruleRecovery},
}

// WorkflowRuleNames lists the rules in evaluation order.
func WorkflowRuleNames() []string {
	names := make([]string, len(workflowRules))
	for i, r := range workflowRules {
		names[i] = r.name
	}
	return names
}

// WorkflowInsights runs the rule battery over completed days and returns at
// most ten insights, most important first. Unique app counts include today.
func WorkflowInsights(records []models.ActivityRecord, now time.Time) []models.Insight {
	facts := collectWorkflowFacts(records, now)

	seen := make(map[string]bool)
	out := []models.Insight{}
	for _, rule := range workflowRules {
		for _, in := range rule.eval(facts) {
			if seen[in.ID] {
				continue
			}
			seen[in.ID] = true
			out = append(out, in)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	if len(out) > maxWorkflowInsights {
		out = out[:maxWorkflowInsights]
	}
	return out
}

func insight(id string, kind models.InsightType, icon, title string, priority int, format string, args ...any) []models.Insight {
	return []models.Insight{{
		ID:          id,
		Type:        kind,
		Icon:        icon,
		Title:       title,
		Description: fmt.Sprintf(format, args...),
		Priority:    priority,
	}}
}

// clockTime renders fractional hours as H:MM.
func clockTime(hours float64) string {
	return fmt.Sprintf("%d:%02d", int(math.Floor(hours)), round(math.Mod(hours, 1)*60))
}

func ruleDevTestRatio(f *workflowFacts) []models.Insight {
	if f.devHours <= 0 || f.testHours <= 0 {
		return nil
	}
	ratio := f.devHours / f.testHours
	switch {
	case ratio > 5:
		return insight("dev-test-high", models.InsightGeneral, "🔧", "Development-Testing Balance", 1,
			"Development at %.1fh vs Testing at %.1fh (%.1f:1 ratio). Industry standard is approximately 3:1 - current pattern suggests heavy development focus with lighter test coverage.",
			f.devHours, f.testHours, ratio)
	case ratio >= 2 && ratio <= 4:
		return insight("dev-test-balanced", models.InsightGeneral, "✅", "Healthy Dev-Test Balance", 4,
			"Development-to-Testing ratio of %.1f:1 aligns with industry best practices, indicating balanced approach to building and validating features.",
			ratio)
	}
	return nil
}

func ruleOpsOverhead(f *workflowFacts) []models.Insight {
	if f.devHours <= 0 {
		return nil
	}
	pct := f.opsHours / f.devHours * 100
	switch {
	case pct > 30:
		return insight("high-ops", models.InsightGeneral, "🚨", "Elevated Operations Activity", 1,
			"Operations at %.1fh (%.0f%% of development time). High maintenance overhead may indicate technical debt, infrastructure issues, or production incidents requiring attention.",
			f.opsHours, pct)
	case pct < 5 && f.opsHours > 0:
		return insight("low-ops", models.InsightGeneral, "💚", "Low Operations Overhead", 4,
			"Operations at %.1fh (<%.0f%% of development time). Minimal operational issues suggest stable codebase and infrastructure.",
			f.opsHours, pct)
	}
	return nil
}

func isMainBrowser(app string) bool {
	return app == "Microsoft Edge" || app == "Google Chrome"
}

func (f *workflowFacts) countTransitions(match func(t appTransition) bool) int {
	n := 0
	for _, t := range f.transitions {
		if match(t) {
			n++
		}
	}
	return n
}

func ruleEmailBrowser(f *workflowFacts) []models.Insight {
	n := f.countTransitions(func(t appTransition) bool {
		return t.from == "Email" && isMainBrowser(t.to)
	})
	if n < 3 {
		return nil
	}
	return insight("email-engagement", models.InsightWorkflow, "📧", "Active Email Engagement Pattern", 3,
		"Detected %d Email → Browser transitions, indicating consistent engagement with email links, external resources, and communication follow-through.", n)
}

func ruleDevTestTransitions(f *workflowFacts) []models.Insight {
	n := f.countTransitions(func(t appTransition) bool {
		return classify.CategorizeApp(t.from) == models.CategoryDevelopment &&
			classify.CategorizeApp(t.to) == models.CategoryTesting
	})
	if n < 5 {
		return nil
	}
	return insight("dev-test-workflow", models.InsightWorkflow, "🔗", "Efficient Dev-Test Workflow", 3,
		"Development → Testing transitions detected %d times. Rapid iteration cycle suggests agile development methodology and strong TDD practices.", n)
}

func ruleBrowserDev(f *workflowFacts) []models.Insight {
	n := f.countTransitions(func(t appTransition) bool {
		return isMainBrowser(t.from) && classify.CategorizeApp(t.to) == models.CategoryDevelopment
	})
	if n < 5 {
		return nil
	}
	return insight("research-pattern", models.InsightWorkflow, "📝", "Active Research Integration", 3,
		"Browser → Development pattern detected %d times. Frequent documentation/research usage during coding indicates continuous learning approach.", n)
}

func rulePeakHours(f *workflowFacts) []models.Insight {
	if len(f.hourOrder) == 0 {
		return nil
	}
	hours := make([]int, len(f.hourOrder))
	copy(hours, f.hourOrder)
	sort.SliceStable(hours, func(i, j int) bool { return f.hourly[hours[i]] > f.hourly[hours[j]] })
	if len(hours) > 3 {
		hours = hours[:3]
	}
	start, end := hours[0], hours[0]
	for _, h := range hours[1:] {
		start = min(start, h)
		end = max(end, h)
	}

	switch {
	case start >= 20 || end >= 22:
		return insight("late-night-pattern", models.InsightBalance, "🌙", "Evening Activity Pattern", 2,
			"Peak activity occurs %d:00-%d:00. Late evening work may indicate uninterrupted focus time or potential work-life balance considerations.", start, end)
	case start <= 9:
		return insight("early-bird", models.InsightHealth, "🌅", "Early Morning Productivity", 3,
			"Peak activity %d:00-%d:00. Morning hours show highest concentration - early bird pattern aligns with natural circadian rhythms for many individuals.", start, end)
	default:
		return insight("peak-hours", models.InsightOptimization, "⚡", "Optimize Peak Hours", 2,
			"Highest activity concentration: %d:00-%d:00. Schedule critical technical tasks during these high-energy windows for maximum efficiency.", start, end)
	}
}

func ruleWeekendWeekday(f *workflowFacts) []models.Insight {
	if len(f.weekday) == 0 || len(f.weekend) == 0 {
		return nil
	}
	weekdayAvg := mean(f.weekday)
	if weekdayAvg == 0 {
		return nil
	}
	diff := (mean(f.weekend)/weekdayAvg - 1) * 100
	switch {
	case diff > 50:
		return insight("weekend-productivity", models.InsightGeneral, "📅", "Weekend Productivity Spike", 2,
			"Weekend activity %.0f%% higher than weekdays. Pattern suggests uninterrupted time drives productivity - consider replicating these conditions on weekdays where feasible.", diff)
	case diff < -30:
		return insight("weekday-focus", models.InsightBalance, "💼", "Strong Weekday Focus", 3,
			"Weekday activity %.0f%% higher than weekends. Clear work-life boundary maintained with reduced weekend engagement.", math.Abs(diff))
	}
	return nil
}

func ruleStartTime(f *workflowFacts) []models.Insight {
	if len(f.startTimes) < 3 || stdDev(f.startTimes) >= 0.5 {
		return nil
	}
	return insight("consistent-start", models.InsightHealth, "🕐", "Consistent Start Time", 3,
		"Activity begins %s ±20min consistently. Regular morning routine supports circadian alignment and habit formation.", clockTime(mean(f.startTimes)))
}

func ruleMicroBreaks(f *workflowFacts) []models.Insight {
	if len(f.gaps) < 5 {
		return nil
	}
	short := 0
	for _, g := range f.gaps {
		if g >= 5 && g <= 10 {
			short++
		}
	}
	freq := float64(short) / float64(len(f.gaps)) * 100
	avg := mean(f.gaps)
	switch {
	case freq >= 30:
		return insight("good-microbreaks", models.InsightHealth, "🧘", "Healthy Micro-Break Pattern", 3,
			"Regular 5-10min breaks detected (%d instances). Pattern aligns with Pomodoro research showing 5-minute breaks every 25-50 minutes optimize sustained focus.", short)
	case avg > 90:
		return insight("need-microbreaks", models.InsightHealth, "⏸️", "Extended Sessions Without Breaks", 2,
			"Average %.0fmin between breaks. Research suggests 5-minute breaks every 50-60 minutes prevent mental fatigue and maintain cognitive performance.", avg)
	}
	return nil
}

func ruleEndTime(f *workflowFacts) []models.Insight {
	if len(f.endTimes) < 5 {
		return nil
	}
	var out []models.Insight
	avg := mean(f.endTimes)
	if stdDev(f.endTimes) < 0.75 {
		if int(math.Floor(avg)) <= 22 {
			out = append(out, insight("good-sleep-schedule", models.InsightHealth, "😴", "Healthy Sleep Boundary", 3,
				"Activity consistently ends %s ±30min. Regular schedule supports circadian rhythm and 7-9h sleep target if waking by 6-7am.", clockTime(avg))...)
		} else {
			out = append(out, insight("late-sleep-schedule", models.InsightHealth, "🌙", "Late Evening Activity Pattern", 2,
				"Activity consistently ends %s. Late-night work may impact sleep duration - consider earlier scheduling where feasible for optimal recovery.", clockTime(avg))...)
		}
	}

	if n := len(f.endTimes); n >= 10 {
		half := n / 2
		trend := (mean(f.endTimes[half:]) - mean(f.endTimes[:half])) * 60
		if math.Abs(trend) >= 30 {
			if trend > 0 {
				out = append(out, insight("sleep-trend", models.InsightHealth, "📈", "Sleep Schedule Shifting Later", 2,
					"End-of-day activity trending %.0fmin later over recent period. Gradual schedule shift may impact morning energy and sleep quality.", math.Abs(trend))...)
			} else {
				out = append(out, insight("sleep-trend", models.InsightHealth, "📉", "Sleep Schedule Improving", 2,
					"End-of-day activity trending %.0fmin earlier over recent period. Positive schedule improvement supports better sleep hygiene.", math.Abs(trend))...)
			}
		}
	}
	return out
}

func ruleDeepWork(f *workflowFacts) []models.Insight {
	if f.devHours <= 0 {
		return nil
	}
	devDays := 0
	for _, day := range f.days {
		if day[models.CategoryDevelopment] > 0 {
			devDays++
		}
	}
	avg := f.devHours / float64(devDays)
	switch {
	case avg < 2:
		return insight("short-sessions", models.InsightOptimization, "⏰", "Deep Work Opportunity", 2,
			"Average development session: %.1fh. Research suggests 3-4h uninterrupted blocks optimize flow state and complex problem-solving capacity.", avg)
	case avg >= 3:
		return insight("deep-work-strong", models.InsightOptimization, "🎯", "Strong Deep Work Sessions", 4,
			"Average development session: %.1fh. Extended focus blocks align with flow state research and indicate strong concentration capacity.", avg)
	}
	return nil
}

// ruleUltradian counts break gaps of three hours or more. Gaps are capped at
// two hours when collected, so this rule stays silent on real data.
func ruleUltradian(f *workflowFacts) []models.Insight {
	long := 0
	for _, g := range f.gaps {
		if g >= 180 {
			long++
		}
	}
	if long < 3 {
		return nil
	}
	return insight("ultradian-rhythm", models.InsightHealth, "⚡", "Ultradian Rhythm Alignment", 3,
		"%d sessions exceeding 3h detected. Pattern suggests strong capacity for extended focus, though research indicates 90-120min cycles with breaks optimize sustained performance.", long)
}

func ruleConsistency(f *workflowFacts) []models.Insight {
	productive := 0
	for _, day := range f.days {
		hours := 0.0
		for cat, secs := range day {
			if cat.IsProductive() {
				hours += secs / 3600
			}
		}
		if hours >= ProductiveDayHours {
			productive++
		}
	}
	total := len(f.days)
	rate := 0.0
	if total > 0 {
		rate = float64(productive) / float64(total) * 100
	}

	switch {
	case rate >= 70 && productive >= 3:
		return insight("strong-consistency", models.InsightHabit, "🔥", "Strong Consistency Pattern", 3,
			"%d of %d days meet 4+ hour productivity threshold (%.0f%%). Maintaining this cadence builds sustainable technical engagement habits.", productive, total, rate)
	case rate < 70 && total >= 3:
		return insight("build-consistency", models.InsightHabit, "🔄", "Consistency Opportunity", 2,
			"%d of %d days meet productivity threshold (%.0f%%). Focus on daily 4+ hour technical engagement to strengthen habit formation.", productive, total, rate)
	}
	return nil
}

func ruleToolDiversity(f *workflowFacts) []models.Insight {
	switch {
	case f.uniqueApps >= 15:
		return insight("context-switching", models.InsightOptimization, "🔄", "Application Diversity", 3,
			"%d different applications tracked. High diversity may indicate context switching - consider batching similar tasks to maintain focus depth.", f.uniqueApps)
	case f.uniqueApps <= 8:
		return insight("focused-toolset", models.InsightOptimization, "🎯", "Focused Tool Usage", 4,
			"%d core applications tracked. Limited tool diversity suggests focused workflow with minimal context switching overhead.", f.uniqueApps)
	}
	return nil
}

func ruleCategoryDominance(f *workflowFacts) []models.Insight {
	if len(f.categoryOrder) < 2 || f.totalHours <= 0 {
		return nil
	}
	cats := make([]models.Category, len(f.categoryOrder))
	copy(cats, f.categoryOrder)
	sort.SliceStable(cats, func(i, j int) bool { return f.categoryTotals[cats[i]] > f.categoryTotals[cats[j]] })

	top := cats[0]
	topHours := f.hours(top)
	pct := topHours / f.totalHours * 100
	switch {
	case pct >= 40 && pct <= 60 && top == models.CategoryDevelopment:
		return insight("focused-allocation", models.InsightGeneral, "🎯", "Well-Focused Time Allocation", 4,
			"%s at %.1fh (%.0f%% of tracked time). Strong focus on primary technical activities while maintaining balanced engagement.", top, topHours, pct)
	case pct > 70:
		return insight("category-dominance", models.InsightGeneral, "📊", "Single Category Dominance", 3,
			"%s represents %.0f%% of tracked time. Heavy concentration in one category - consider if diversification across %s or other areas would be beneficial.", top, pct, cats[1])
	}
	return nil
}

func ruleRecovery(f *workflowFacts) []models.Insight {
	if f.totalHours <= 0 {
		return nil
	}
	leisure := f.hours(models.CategoryEntertainment) + f.hours(models.CategoryOther)
	pct := leisure / f.totalHours * 100
	if leisure <= 2 || pct < 15 || pct > 35 {
		return nil
	}
	return insight("balanced-recovery", models.InsightHealth, "🎮", "Balanced Recovery Time", 4,
		"Entertainment & leisure activities at %.1fh (%.0f%% of total). Balanced leisure engagement supports sustainable productivity and cognitive recovery.", leisure, pct)
}
