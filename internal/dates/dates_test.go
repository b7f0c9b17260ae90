package dates

import (
	"testing"
	"time"

	"restoran-pos/internal/apperr"
)

func TestDayBounds(t *testing.T) {
	noon := time.Date(2025, 3, 14, 12, 30, 0, 0, time.Local)

	start := StartOfDay(noon)
	if want := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local); !start.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", start, want)
	}

	end := EndOfDay(noon)
	nextDay := time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local)
	if got := nextDay.Sub(end); got != time.Millisecond {
		t.Errorf("EndOfDay() is %v before the next day, want 1ms", got)
	}
}

func TestRangeContains(t *testing.T) {
	start := time.UnixMilli(1000)
	end := time.UnixMilli(2000)

	tests := []struct {
		name string
		r    Range
		ms   int64
		want bool
	}{
		{"openRange", Range{}, 5, true},
		{"startInclusive", Range{Start: &start}, 1000, true},
		{"beforeStart", Range{Start: &start}, 999, false},
		{"endInclusive", Range{End: &end}, 2000, true},
		{"afterEnd", Range{End: &end}, 2001, false},
		{"inside", Range{Start: &start, End: &end}, 1500, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Contains(tt.ms); got != tt.want {
				t.Errorf("Contains(%d) = %v, want %v", tt.ms, got, tt.want)
			}
		})
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("2025-03-01", "2025-03-02")
	if err != nil {
		t.Fatalf("ParseRange() error = %v", err)
	}
	if r.Start == nil || r.End == nil {
		t.Fatal("ParseRange() should set both bounds")
	}
	if !r.Contains(time.Date(2025, 3, 2, 23, 59, 0, 0, time.Local).UnixMilli()) {
		t.Error("end bound should cover the whole end day")
	}

	open, err := ParseRange("", "")
	if err != nil || open.Start != nil || open.End != nil {
		t.Errorf("ParseRange(\"\", \"\") = %+v, %v; want open range", open, err)
	}

	if _, err := ParseRange("2025-03-05", "2025-03-01"); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("reversed range error = %v, want validation", err)
	}
	if _, err := ParseRange("03/01/2025", ""); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("bad layout error = %v, want validation", err)
	}
}
