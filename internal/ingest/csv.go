package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/j-veylop/activity-insights-tui/internal/models"
)

// csvColumns maps each field to its accepted header names, in preference
// order.
var csvColumns = map[string][]string{
	"timestamp": {"timestamp"},
	"duration":  {"duration"},
	"app":       {"AppName", "App"},
	"title":     {"Title"},
}

// columnIndex resolves headers exactly first and case-insensitively second.
func columnIndex(header []string, names []string) int {
	for _, name := range names {
		for i, h := range header {
			if strings.TrimSpace(h) == name {
				return i
			}
		}
	}
	for _, name := range names {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
	}
	return -1
}

func readCSV(r io.Reader) ([]models.ActivityRecord, Stats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, Stats{}, nil
	}
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	idx := make(map[string]int, len(csvColumns))
	for field, names := range csvColumns {
		idx[field] = columnIndex(header, names)
	}
	cell := func(rec []string, field string) string {
		i := idx[field]
		if i < 0 || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var (
		records []models.ActivityRecord
		stats   Stats
	)
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("failed to read csv row %d: %w", stats.Read+2, err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if r, ok := stats.accept(row{
			timestamp: cell(rec, "timestamp"),
			duration:  cell(rec, "duration"),
			app:       cell(rec, "app"),
			title:     cell(rec, "title"),
		}); ok {
			records = append(records, r)
		}
	}
	return records, stats, nil
}
