// Package analysis memoizes report builds keyed by a hash of the input log
// and the analysis parameters.
package analysis

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/j-veylop/activity-insights-tui/internal/logger"
	"github.com/j-veylop/activity-insights-tui/internal/models"
	"github.com/j-veylop/activity-insights-tui/internal/report"
)

const maxEntries = 32

type cacheKey struct {
	input  [sha256.Size]byte
	params string
}

// Stats counts cache lookups.
type Stats struct {
	Hits    int
	Misses  int
	Entries int
}

// Service caches report.Build results.
type Service struct {
	mu     sync.RWMutex
	cache  map[cacheKey]*report.Report
	order  []cacheKey
	hits   int
	misses int
}

func New() *Service {
	return &Service{
		cache: make(map[cacheKey]*report.Report),
	}
}

// Analyze returns the report for records under params. params.Now is
// truncated to the minute so repeated renders share one entry. The returned
// report is shared and must not be modified.
func (s *Service) Analyze(records []models.ActivityRecord, params report.Params) *report.Report {
	params.Now = params.Now.Truncate(time.Minute)
	key := cacheKey{input: HashRecords(records), params: paramsKey(params)}

	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		s.mu.Lock()
		s.hits++
		s.mu.Unlock()
		return cached
	}

	started := time.Now()
	r := report.Build(records, params)
	logger.Debug("Report built", "records", len(records), "took", time.Since(started))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.misses++
	if _, exists := s.cache[key]; !exists {
		s.cache[key] = &r
		s.order = append(s.order, key)
		if len(s.order) > maxEntries {
			delete(s.cache, s.order[0])
			s.order = s.order[1:]
		}
	}
	return s.cache[key]
}

// Stats returns cache counters.
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{Hits: s.hits, Misses: s.misses, Entries: len(s.cache)}
}

// Clear drops every cached report.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[cacheKey]*report.Report)
	s.order = nil
}

// HashRecords digests records independent of their order.
func HashRecords(records []models.ActivityRecord) [sha256.Size]byte {
	sorted := make([]models.ActivityRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		if a.AppName != b.AppName {
			return a.AppName < b.AppName
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.Duration < b.Duration
	})

	h := sha256.New()
	var buf [8]byte
	for _, r := range sorted {
		binary.LittleEndian.PutUint64(buf[:], uint64(r.Timestamp.UnixNano()))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(r.Duration))
		h.Write(buf[:])
		h.Write([]byte(r.AppName))
		h.Write([]byte{0})
		h.Write([]byte(r.Title))
		h.Write([]byte{0})
	}

	var sum [sha256.Size]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

func paramsKey(p report.Params) string {
	return fmt.Sprintf("%d|%s|%d|%d|%+v|%+v|%+v|%+v|%t",
		p.Now.UnixNano(),
		p.Filter.DayFilter,
		p.Filter.RangeDays,
		p.SessionGap,
		p.Transitions,
		p.ContextSwitch,
		p.Loyalty,
		p.Language,
		p.ExcludeShortSessions,
	)
}
