package ingest

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/j-veylop/activity-insights-tui/internal/models"
)

// readActivityWatch parses an ActivityWatch export. Both the bucket export
// ({"buckets": {id: {"events": [...]}}}) and a bare event array are read.
// Only window-watcher buckets are read from a bucket export, since afk and
// web buckets cover the same wall-clock time. Buckets are visited in name
// order.
func readActivityWatch(r io.Reader) ([]models.ActivityRecord, Stats, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to read activity export: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, Stats{}, fmt.Errorf("invalid JSON in activity export")
	}
	root := gjson.ParseBytes(data)

	var (
		records []models.ActivityRecord
		stats   Stats
	)
	collect := func(events gjson.Result) {
		events.ForEach(func(_, ev gjson.Result) bool {
			if rec, ok := stats.accept(eventRow(ev)); ok {
				records = append(records, rec)
			}
			return true
		})
	}

	switch {
	case root.IsArray():
		collect(root)
	case root.Get("buckets").IsObject():
		buckets := root.Get("buckets").Map()
		ids := make([]string, 0, len(buckets))
		for id, bucket := range buckets {
			if isWindowBucket(id, bucket) {
				ids = append(ids, id)
			}
		}
		sort.Strings(ids)
		for _, id := range ids {
			collect(buckets[id].Get("events"))
		}
	case root.Get("events").IsArray():
		collect(root.Get("events"))
	default:
		return nil, stats, fmt.Errorf("activity export has no events")
	}
	return records, stats, nil
}

// windowBucketType is the bucket type written by aw-watcher-window.
const windowBucketType = "currentwindow"

func isWindowBucket(id string, bucket gjson.Result) bool {
	if typ := bucket.Get("type"); typ.Exists() {
		return typ.String() == windowBucketType
	}
	return strings.HasPrefix(id, "aw-watcher-window")
}

func eventRow(ev gjson.Result) row {
	return row{
		timestamp: ev.Get("timestamp").String(),
		duration:  ev.Get("duration").String(),
		app:       ev.Get("data.app").String(),
		title:     ev.Get("data.title").String(),
	}
}
