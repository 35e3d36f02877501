package aggregate

import (
	"sort"
	"time"

	"github.com/j-veylop/activity-insights-tui/internal/classify"
	"github.com/j-veylop/activity-insights-tui/internal/models"
)

// languageSessionGap bounds the distance between consecutive entry starts
// within one language session.
const languageSessionGap = 10 * time.Minute

// LanguageTotal is the rollup for one language label.
type LanguageTotal struct {
	Language string    `json:"language" yaml:"language"`
	Seconds  float64   `json:"seconds" yaml:"seconds"`
	Days     int       `json:"days" yaml:"days"`
	Sessions []float64 `json:"sessions" yaml:"sessions"` // seconds per session
}

// AvgSession returns the mean session length in seconds.
func (l LanguageTotal) AvgSession() float64 {
	if len(l.Sessions) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range l.Sessions {
		total += s
	}
	return total / float64(len(l.Sessions))
}

// LanguageReport aggregates language usage for development apps.
type LanguageReport struct {
	Languages []LanguageTotal `json:"languages" yaml:"languages"` // by seconds, descending
	Detected  float64         `json:"detected" yaml:"detected"`   // seconds with a title
	Total     float64         `json:"total" yaml:"total"`         // all dev-app seconds
}

// Lookup returns the total for lang, or a zero value.
func (r LanguageReport) Lookup(lang string) LanguageTotal {
	for _, l := range r.Languages {
		if l.Language == lang {
			return l
		}
	}
	return LanguageTotal{Language: lang}
}

// DetectionRate is the share of dev-app time with a usable title, in percent.
func (r LanguageReport) DetectionRate() float64 {
	if r.Total <= 0 {
		return 0
	}
	return r.Detected / r.Total * 100
}

type languageAcc struct {
	seconds  float64
	days     map[string]struct{}
	sessions []float64
}

// Languages aggregates development-app records by language label. Records
// from non-development apps are ignored and records without a title count
// only toward Total. A session continues while the same language recurs
// within ten minutes of the previous entry's start.
func Languages(records []models.ActivityRecord) LanguageReport {
	var (
		report      LanguageReport
		accs        = make(map[string]*languageAcc)
		order       []string
		currentLang string
		lastStart   time.Time
		sessionSecs float64
	)

	get := func(lang string) *languageAcc {
		a, ok := accs[lang]
		if !ok {
			a = &languageAcc{days: make(map[string]struct{})}
			accs[lang] = a
			order = append(order, lang)
		}
		return a
	}
	flush := func(lang string) {
		if lang != "" && sessionSecs > 0 {
			a := get(lang)
			a.sessions = append(a.sessions, sessionSecs)
		}
	}

	for _, r := range models.SortedByTime(records) {
		if !classify.IsDevApp(r.AppName) {
			continue
		}
		report.Total += r.Duration
		if r.Title == "" {
			continue
		}

		lang := classify.LanguageFromActivity(r.Title, r.AppName)
		a := get(lang)
		a.seconds += r.Duration
		a.days[DayKey(r.Timestamp)] = struct{}{}
		report.Detected += r.Duration

		switch {
		case lang == currentLang && r.Timestamp.Sub(lastStart) <= languageSessionGap:
			sessionSecs += r.Duration
		default:
			flush(currentLang)
			sessionSecs = r.Duration
		}
		currentLang = lang
		lastStart = r.Timestamp
	}
	flush(currentLang)

	for _, lang := range order {
		a := accs[lang]
		report.Languages = append(report.Languages, LanguageTotal{
			Language: lang,
			Seconds:  a.seconds,
			Days:     len(a.days),
			Sessions: a.sessions,
		})
	}
	sort.SliceStable(report.Languages, func(i, j int) bool {
		return report.Languages[i].Seconds > report.Languages[j].Seconds
	})
	return report
}
