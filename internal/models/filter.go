package models

import (
	"fmt"
	"strings"
	"time"
)

// TimeRange represents the selected analysis window.
type TimeRange int

const (
	// TimeRange7Days keeps the last 7 days.
	TimeRange7Days TimeRange = iota
	// TimeRange14Days keeps the last 14 days.
	TimeRange14Days
	// TimeRange30Days keeps the last 30 days.
	TimeRange30Days
	// TimeRange90Days keeps the last 90 days.
	TimeRange90Days
	// TimeRangeAllTime keeps the full log.
	TimeRangeAllTime
)

// String returns the display name for a time range.
func (t TimeRange) String() string {
	switch t {
	case TimeRange7Days:
		return "7 Days"
	case TimeRange14Days:
		return "14 Days"
	case TimeRange30Days:
		return "30 Days"
	case TimeRange90Days:
		return "90 Days"
	case TimeRangeAllTime:
		return "All Time"
	default:
		return "Unknown"
	}
}

// Days returns the number of days for the time range (0 = unlimited).
func (t TimeRange) Days() int {
	switch t {
	case TimeRange7Days:
		return 7
	case TimeRange14Days:
		return 14
	case TimeRange30Days:
		return 30
	case TimeRange90Days:
		return 90
	case TimeRangeAllTime:
		return 0
	default:
		return 30
	}
}

// Next cycles to the next time range.
func (t TimeRange) Next() TimeRange {
	return (t + 1) % 5
}

// TimeRangeForDays maps a day count to the closest range, falling back to
// all time for zero or unknown values.
func TimeRangeForDays(days int) TimeRange {
	for _, r := range []TimeRange{TimeRange7Days, TimeRange14Days, TimeRange30Days, TimeRange90Days} {
		if r.Days() == days {
			return r
		}
	}
	return TimeRangeAllTime
}

// DayFilter restricts records to weekdays or weekends.
type DayFilter string

// Day filter modes.
const (
	DayFilterAll     DayFilter = "all"
	DayFilterWeekday DayFilter = "weekday"
	DayFilterWeekend DayFilter = "weekend"
)

// ParseDayFilter validates a day filter name.
func ParseDayFilter(s string) (DayFilter, error) {
	switch DayFilter(strings.ToLower(strings.TrimSpace(s))) {
	case "", DayFilterAll:
		return DayFilterAll, nil
	case DayFilterWeekday:
		return DayFilterWeekday, nil
	case DayFilterWeekend:
		return DayFilterWeekend, nil
	}
	return DayFilterAll, fmt.Errorf("invalid day filter %q (want all, weekday or weekend)", s)
}

// Next cycles all -> weekday -> weekend.
func (f DayFilter) Next() DayFilter {
	switch f {
	case DayFilterAll:
		return DayFilterWeekday
	case DayFilterWeekday:
		return DayFilterWeekend
	default:
		return DayFilterAll
	}
}

// Matches reports whether t falls on a day kept by the filter.
func (f DayFilter) Matches(t time.Time) bool {
	switch f {
	case DayFilterWeekday:
		return !IsWeekend(t.Weekday())
	case DayFilterWeekend:
		return IsWeekend(t.Weekday())
	default:
		return true
	}
}

// IsWeekend reports Saturday or Sunday.
func IsWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

// StartOfDay returns local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
