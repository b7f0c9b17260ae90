// Package dates holds the calendar helpers used by reports, orders and
// expenses. Day boundaries always use the server's local time zone.
package dates

import (
	"strings"
	"time"

	"restoran-pos/internal/apperr"
)

const DayLayout = "2006-01-02"

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay is the last millisecond of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Millisecond)
}

func Millis(t time.Time) int64 { return t.UnixMilli() }

func FromMillis(ms int64) time.Time { return time.UnixMilli(ms) }

// Range is an inclusive timestamp filter. A nil bound is open.
type Range struct {
	Start *time.Time
	End   *time.Time
}

func (r Range) Validate() error {
	if r.Start != nil && r.End != nil && r.Start.After(*r.End) {
		return apperr.Validation("start date must not be after end date")
	}
	return nil
}

// Contains reports whether the epoch-ms timestamp ms falls inside r.
func (r Range) Contains(ms int64) bool {
	if r.Start != nil && ms < r.Start.UnixMilli() {
		return false
	}
	if r.End != nil && ms > r.End.UnixMilli() {
		return false
	}
	return true
}

// Day returns the range covering t's whole calendar day.
func Day(t time.Time) Range {
	start := StartOfDay(t)
	end := EndOfDay(t)
	return Range{Start: &start, End: &end}
}

// ParseRange builds a Range from two optional YYYY-MM-DD strings: start is
// the beginning of its day and end the last millisecond of its day.
func ParseRange(start, end string) (Range, error) {
	var r Range
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)

	if start != "" {
		t, err := time.ParseInLocation(DayLayout, start, time.Local)
		if err != nil {
			return Range{}, apperr.Validation("start date must be YYYY-MM-DD")
		}
		r.Start = &t
	}
	if end != "" {
		t, err := time.ParseInLocation(DayLayout, end, time.Local)
		if err != nil {
			return Range{}, apperr.Validation("end date must be YYYY-MM-DD")
		}
		t = EndOfDay(t)
		r.End = &t
	}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// ParseDay parses an optional YYYY-MM-DD value, falling back to now.
func ParseDay(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}
	t, err := time.ParseInLocation(DayLayout, s, time.Local)
	if err != nil {
		return time.Time{}, apperr.Validation("date must be YYYY-MM-DD")
	}
	return t, nil
}
