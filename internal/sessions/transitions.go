package sessions

import (
	"math"
	"sort"
	"strings"

	"github.com/j-veylop/activity-insights-tui/internal/classify"
	"github.com/j-veylop/activity-insights-tui/internal/models"
)

// DistractionCutoff is the most time in seconds an inner Entertainment step
// may take for a returning sequence to count as a distraction.
var DistractionCutoff = 300.0

const (
	keySeparator     = " → "
	rapidSequenceSec = 30.0
)

// TransitionParams tunes DetectTransitions.
type TransitionParams struct {
	Length         int     // steps per sequence, 2..5
	MinDuration    float64 // seconds; shorter records are ignored
	MinOccurrences int
	Limit          int
}

// DefaultTransitionParams returns the dashboard defaults.
func DefaultTransitionParams() TransitionParams {
	return TransitionParams{Length: 2, MinDuration: 3, MinOccurrences: 10, Limit: 12}
}

type sequenceEntry struct {
	apps      []string
	count     int
	durations [][]float64
}

// DetectTransitions slides a window of params.Length over the time-ordered
// records and counts each distinct app sequence. Windows that repeat an app
// back to back are skipped. Two-step sequences are undirected: B→A is
// counted under A→B when A→B was seen first.
func DetectTransitions(records []models.ActivityRecord, params TransitionParams) []models.TransitionSequence {
	if params.Length < 2 {
		params.Length = 2
	}
	if params.Limit <= 0 {
		params.Limit = 12
	}

	valid := make([]models.ActivityRecord, 0, len(records))
	for _, r := range records {
		if r.Duration >= params.MinDuration {
			valid = append(valid, r)
		}
	}
	if len(valid) < params.Length {
		return []models.TransitionSequence{}
	}
	sorted := models.SortedByTime(valid)

	entries := make(map[string]*sequenceEntry)
	var order []string

	for i := 0; i <= len(sorted)-params.Length; i++ {
		apps := make([]string, params.Length)
		durations := make([]float64, params.Length)
		repeated := false
		for j := 0; j < params.Length; j++ {
			apps[j] = sorted[i+j].AppName
			durations[j] = sorted[i+j].Duration
			if j > 0 && apps[j] == apps[j-1] {
				repeated = true
			}
		}
		if repeated {
			continue
		}

		key := strings.Join(apps, keySeparator)
		if params.Length == 2 {
			if reverse := apps[1] + keySeparator + apps[0]; entries[reverse] != nil {
				key = reverse
			}
		}

		entry, ok := entries[key]
		if !ok {
			entry = &sequenceEntry{apps: apps}
			entries[key] = entry
			order = append(order, key)
		}
		entry.count++
		entry.durations = append(entry.durations, durations)
	}

	result := make([]models.TransitionSequence, 0, len(order))
	for _, key := range order {
		entry := entries[key]
		if entry.count < params.MinOccurrences {
			continue
		}
		result = append(result, buildSequence(entry, params.Length))
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	if len(result) > params.Limit {
		result = result[:params.Limit]
	}
	return result
}

func buildSequence(entry *sequenceEntry, length int) models.TransitionSequence {
	apps := entry.apps
	categories := make([]models.Category, len(apps))
	for i, app := range apps {
		categories[i] = classify.CategorizeApp(app)
	}

	avg := make([]float64, len(apps))
	for _, d := range entry.durations {
		for i := range avg {
			avg[i] += d[i]
		}
	}
	for i := range avg {
		avg[i] /= float64(len(entry.durations))
	}

	seq := models.TransitionSequence{
		Apps:         apps,
		Count:        entry.count,
		Categories:   categories,
		IsLoop:       apps[0] == apps[len(apps)-1],
		AvgDurations: avg,
	}
	seq.Pattern = classifySequence(seq, length)
	return seq
}

func classifySequence(seq models.TransitionSequence, length int) models.SequencePattern {
	if length >= 3 && seq.IsLoop {
		inner := 0.0
		found := false
		for i := 1; i < len(seq.Categories)-1; i++ {
			if seq.Categories[i] == models.CategoryEntertainment {
				inner += seq.AvgDurations[i]
				found = true
			}
		}
		if found && inner <= DistractionCutoff {
			return models.PatternDistraction
		}
	}

	switch {
	case seq.IsLoop:
		return models.PatternLoop
	case sameCategory(seq.Categories):
		return models.PatternFocused
	default:
		return models.PatternWorkflow
	}
}

func sameCategory(cats []models.Category) bool {
	for _, c := range cats[1:] {
		if c != cats[0] {
			return false
		}
	}
	return true
}

// TransitionStats summarizes detected sequences.
type TransitionStats struct {
	TotalSequences     int                            `json:"totalSequences" yaml:"totalSequences"`
	UniqueApps         int                            `json:"uniqueApps" yaml:"uniqueApps"`
	AvgSequenceTime    float64                        `json:"avgSequenceTime" yaml:"avgSequenceTime"` // seconds
	RapidSwitches      int                            `json:"rapidSwitches" yaml:"rapidSwitches"`
	FlowDisruptionRate int                            `json:"flowDisruptionRate" yaml:"flowDisruptionRate"` // percent
	PatternCounts      map[models.SequencePattern]int `json:"patternCounts" yaml:"patternCounts"`
	DistractionTime    float64                        `json:"distractionTime" yaml:"distractionTime"` // seconds
}

// TransitionSummary computes headline numbers over sequences.
func TransitionSummary(seqs []models.TransitionSequence) TransitionStats {
	stats := TransitionStats{
		PatternCounts: map[models.SequencePattern]int{
			models.PatternLoop:        0,
			models.PatternFocused:     0,
			models.PatternWorkflow:    0,
			models.PatternDistraction: 0,
		},
	}
	if len(seqs) == 0 {
		return stats
	}

	apps := make(map[string]struct{})
	totalTime := 0.0
	for _, s := range seqs {
		stats.TotalSequences += s.Count
		for _, a := range s.Apps {
			apps[a] = struct{}{}
		}
		d := s.TotalDuration()
		totalTime += d
		if d < rapidSequenceSec {
			stats.RapidSwitches++
		}
		stats.PatternCounts[s.Pattern]++
		if s.Pattern == models.PatternDistraction {
			for i, c := range s.Categories {
				if c == models.CategoryEntertainment {
					stats.DistractionTime += s.AvgDurations[i] * float64(s.Count)
					break
				}
			}
		}
	}

	stats.UniqueApps = len(apps)
	stats.AvgSequenceTime = totalTime / float64(len(seqs))
	stats.FlowDisruptionRate = int(math.Round(float64(stats.RapidSwitches) / float64(len(seqs)) * 100))
	return stats
}
