package models

import (
	"testing"
	"time"
)

func TestTimeRange_String(t *testing.T) {
	tests := []struct {
		name string
		tr   TimeRange
		want string
	}{
		{"7Days", TimeRange7Days, "7 Days"},
		{"14Days", TimeRange14Days, "14 Days"},
		{"30Days", TimeRange30Days, "30 Days"},
		{"90Days", TimeRange90Days, "90 Days"},
		{"AllTime", TimeRangeAllTime, "All Time"},
		{"Unknown", TimeRange(999), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tr.String(); got != tt.want {
				t.Errorf("TimeRange.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimeRange_Days(t *testing.T) {
	tests := []struct {
		name string
		tr   TimeRange
		want int
	}{
		{"7Days", TimeRange7Days, 7},
		{"14Days", TimeRange14Days, 14},
		{"30Days", TimeRange30Days, 30},
		{"90Days", TimeRange90Days, 90},
		{"AllTime", TimeRangeAllTime, 0},
		{"Unknown", TimeRange(999), 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tr.Days(); got != tt.want {
				t.Errorf("TimeRange.Days() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimeRange_Next(t *testing.T) {
	tests := []struct {
		name string
		tr   TimeRange
		want TimeRange
	}{
		{"7Days -> 14Days", TimeRange7Days, TimeRange14Days},
		{"30Days -> 90Days", TimeRange30Days, TimeRange90Days},
		{"AllTime -> 7Days", TimeRangeAllTime, TimeRange7Days},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tr.Next(); got != tt.want {
				t.Errorf("TimeRange.Next() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimeRangeForDays(t *testing.T) {
	tests := []struct {
		days int
		want TimeRange
	}{
		{7, TimeRange7Days},
		{14, TimeRange14Days},
		{30, TimeRange30Days},
		{90, TimeRange90Days},
		{0, TimeRangeAllTime},
		{45, TimeRangeAllTime},
	}
	for _, tt := range tests {
		if got := TimeRangeForDays(tt.days); got != tt.want {
			t.Errorf("TimeRangeForDays(%d) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestParseDayFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    DayFilter
		wantErr bool
	}{
		{"", DayFilterAll, false},
		{"all", DayFilterAll, false},
		{" Weekday ", DayFilterWeekday, false},
		{"WEEKEND", DayFilterWeekend, false},
		{"sometimes", DayFilterAll, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDayFilter(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDayFilter(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDayFilter(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDayFilter_Next(t *testing.T) {
	f := DayFilterAll
	want := []DayFilter{DayFilterWeekday, DayFilterWeekend, DayFilterAll}
	for _, w := range want {
		f = f.Next()
		if f != w {
			t.Fatalf("Next() = %v, want %v", f, w)
		}
	}
}

func TestDayFilter_Matches(t *testing.T) {
	saturday := time.Date(2024, 5, 18, 10, 0, 0, 0, time.Local)
	monday := time.Date(2024, 5, 20, 10, 0, 0, 0, time.Local)

	tests := []struct {
		filter  DayFilter
		t       time.Time
		matches bool
	}{
		{DayFilterAll, saturday, true},
		{DayFilterAll, monday, true},
		{DayFilterWeekday, saturday, false},
		{DayFilterWeekday, monday, true},
		{DayFilterWeekend, saturday, true},
		{DayFilterWeekend, monday, false},
	}
	for _, tt := range tests {
		if got := tt.filter.Matches(tt.t); got != tt.matches {
			t.Errorf("%s.Matches(%s) = %v, want %v", tt.filter, tt.t.Weekday(), got, tt.matches)
		}
	}
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2024, 5, 20, 23, 59, 59, 999, time.Local)
	want := time.Date(2024, 5, 20, 0, 0, 0, 0, time.Local)
	if got := StartOfDay(in); !got.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", got, want)
	}
}
