package sessions

import (
	"sort"
	"time"

	"github.com/j-veylop/activity-insights-tui/internal/classify"
	"github.com/j-veylop/activity-insights-tui/internal/models"
)

// DefaultGap is the largest idle gap that still continues an activity block.
const DefaultGap = 10 * time.Minute

type openBlock struct {
	start  time.Time
	end    time.Time
	events []models.ActivityRecord
}

// DetectBlocks groups records into continuous activity blocks. A record joins
// the open block when it starts no later than gap after the block's end. A
// record contained in an earlier one never moves the end backward. Blocks are
// returned longest first.
func DetectBlocks(records []models.ActivityRecord, gap time.Duration) []models.ActivityBlock {
	if len(records) == 0 {
		return nil
	}
	if gap <= 0 {
		gap = DefaultGap
	}

	var (
		blocks  []models.ActivityBlock
		current *openBlock
	)

	for _, r := range models.SortedByTime(records) {
		if current != nil && r.Timestamp.Sub(current.end) <= gap {
			if end := r.End(); end.After(current.end) {
				current.end = end
			}
			current.events = append(current.events, r)
			continue
		}
		if current != nil {
			blocks = append(blocks, current.close())
		}
		current = &openBlock{start: r.Timestamp, end: r.End(), events: []models.ActivityRecord{r}}
	}
	blocks = append(blocks, current.close())

	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Duration > blocks[j].Duration
	})
	return blocks
}

func (b *openBlock) close() models.ActivityBlock {
	breakdown := make(map[models.Category]float64)
	var order []models.Category

	for _, e := range b.events {
		cat := classify.CategorizeApp(e.AppName)
		if _, seen := breakdown[cat]; !seen {
			order = append(order, cat)
		}
		breakdown[cat] += e.Duration / 60
	}

	dominant := models.CategoryOther
	maxMinutes := 0.0
	for _, cat := range order {
		if breakdown[cat] > maxMinutes {
			maxMinutes = breakdown[cat]
			dominant = cat
		}
	}

	return models.ActivityBlock{
		Start:             b.start,
		End:               b.end,
		Duration:          b.end.Sub(b.start).Minutes(),
		DominantCategory:  dominant,
		CategoryBreakdown: breakdown,
		BreakdownOrder:    order,
		EventCount:        len(b.events),
	}
}

// AvgBlocksPerWeek spreads the block count over the weeks spanned by the
// records, counting at least one week.
func AvgBlocksPerWeek(blocks []models.ActivityBlock, records []models.ActivityRecord) float64 {
	if len(blocks) == 0 || len(records) == 0 {
		return 0
	}
	first, last := records[0].Timestamp, records[0].Timestamp
	for _, r := range records[1:] {
		if r.Timestamp.Before(first) {
			first = r.Timestamp
		}
		if r.Timestamp.After(last) {
			last = r.Timestamp
		}
	}
	weeks := last.Sub(first).Hours() / 24 / 7
	if weeks < 1 {
		weeks = 1
	}
	return float64(len(blocks)) / weeks
}

// BlockStats summarizes a set of blocks in minutes.
type BlockStats struct {
	Count       int     `json:"count" yaml:"count"`
	PerWeek     float64 `json:"perWeek" yaml:"perWeek"`
	Longest     float64 `json:"longest" yaml:"longest"`
	AvgDuration float64 `json:"avgDuration" yaml:"avgDuration"`
}

// SummarizeBlocks computes headline numbers for blocks sorted longest first.
func SummarizeBlocks(blocks []models.ActivityBlock, records []models.ActivityRecord) BlockStats {
	stats := BlockStats{Count: len(blocks), PerWeek: AvgBlocksPerWeek(blocks, records)}
	if len(blocks) == 0 {
		return stats
	}
	total := 0.0
	for _, b := range blocks {
		total += b.Duration
		if b.Duration > stats.Longest {
			stats.Longest = b.Duration
		}
	}
	stats.AvgDuration = total / float64(len(blocks))
	return stats
}
