// Package clock handles the 12-hour wall-clock strings ("7:58 AM", "03:00 PM")
// stored in attendance records and settings.
package clock

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	layout     = "3:04 PM"
	minutesDay = 24 * 60
)

// TimeOfDay is a wall-clock time with minute precision, anchored to no particular day.
type TimeOfDay struct {
	minutes int // since midnight
}

// New returns the TimeOfDay for a 24-hour hour and minute. Out of range values wrap.
func New(hour, minute int) TimeOfDay {
	return TimeOfDay{}.Add(hour*60 + minute)
}

// FromTime returns the wall-clock part of t.
func FromTime(t time.Time) TimeOfDay {
	return New(t.Hour(), t.Minute())
}

// Parse parses a "HH:MM AM/PM" string. The hour may have one or two digits
// and the meridiem is case-insensitive. ok is false for empty or malformed input.
func Parse(s string) (tod TimeOfDay, ok bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return TimeOfDay{}, false
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return TimeOfDay{}, false
	}
	// time.Parse accepts hour 0 for the 12-hour layout; wall clocks don't.
	if h, err := strconv.Atoi(s[:strings.IndexByte(s, ':')]); err != nil || h == 0 {
		return TimeOfDay{}, false
	}
	return FromTime(t), true
}

// MustParse is like Parse but panics on malformed input. For constants and tests.
func MustParse(s string) TimeOfDay {
	tod, ok := Parse(s)
	if !ok {
		panic(fmt.Sprintf("clock: cannot parse %q", s))
	}
	return tod
}

func (t TimeOfDay) Hour() int    { return t.minutes / 60 }
func (t TimeOfDay) Minute() int  { return t.minutes % 60 }
func (t TimeOfDay) Minutes() int { return t.minutes }

// Add moves t by `minutes`, wrapping around midnight like a wall clock.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	m := (t.minutes + minutes) % minutesDay
	if m < 0 {
		m += minutesDay
	}
	return TimeOfDay{minutes: m}
}

func (t TimeOfDay) Before(u TimeOfDay) bool { return t.minutes < u.minutes }
func (t TimeOfDay) After(u TimeOfDay) bool  { return t.minutes > u.minutes }
func (t TimeOfDay) Equal(u TimeOfDay) bool  { return t.minutes == u.minutes }

func (t TimeOfDay) time() time.Time {
	return time.Date(2000, time.January, 1, t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// String formats t without a leading zero: "3:05 PM".
func (t TimeOfDay) String() string {
	return t.time().Format(layout)
}

// Padded formats t with a zero-padded hour: "03:05 PM".
func (t TimeOfDay) Padded() string {
	return t.time().Format("03:04 PM")
}

// AddGrace returns the end of the grace period starting at `start`.
func AddGrace(start TimeOfDay, minutes int) TimeOfDay {
	return start.Add(minutes)
}

// InWindow reports whether t lies in [start, end]. All three must parse;
// the comparison is same-day only.
func InWindow(t, start, end string) bool {
	tt, ok1 := Parse(t)
	st, ok2 := Parse(start)
	et, ok3 := Parse(end)
	if !(ok1 && ok2 && ok3) {
		return false
	}
	return !tt.Before(st) && !tt.After(et)
}

// FormatNow formats the wall-clock part of now the way scans are stamped: "7:58 AM".
func FormatNow(now time.Time) string {
	return now.Format(layout)
}
