// Package datekey handles the YYYY-MM-DD calendar keys used throughout the
// stores. A key names a local calendar date with no time zone attached, so
// fixed-width keys sort lexicographically in chronological order.
package datekey

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const Layout = "2006-01-02"

// isoLayout matches what browsers emit from Date.prototype.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

var ErrInvalid = errors.New("invalid date key")

var keyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Format returns the key for t's calendar date in t's own location.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Today returns the key for now's calendar date.
func Today(now time.Time) string {
	return Format(now)
}

// Normalize validates user input. Anything that is not exactly a real
// YYYY-MM-DD date is rejected rather than partially accepted.
func Normalize(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !keyPattern.MatchString(s) {
		return "", false
	}
	if _, err := time.Parse(Layout, s); err != nil {
		return "", false
	}
	return s, true
}

// Parse returns midnight UTC of the key's date. UTC keeps AddDate free of
// daylight-saving shifts.
func Parse(key string) (time.Time, error) {
	if !keyPattern.MatchString(key) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalid, key)
	}
	t, err := time.Parse(Layout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalid, key)
	}
	return t, nil
}

// AddDays shifts key by n days.
func AddDays(key string, n int) (string, error) {
	t, err := Parse(key)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, n)), nil
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthDay builds the date for day in the given month, clamping day to the
// month's last day. Month overflow is normalized first, so month 14 of 2024
// is February 2025.
func MonthDay(year int, month time.Month, day int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	if last := DaysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// FromISO truncates an ISO-8601 timestamp to its calendar date in loc.
func FromISO(s string, loc *time.Location) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return "", false
	}
	if loc == nil {
		loc = time.Local
	}
	return Format(t.In(loc)), true
}

// ToISO renders local midnight of key in loc as a UTC ISO-8601 timestamp.
func ToISO(key string, loc *time.Location) (string, bool) {
	d, err := Parse(key)
	if err != nil {
		return "", false
	}
	if loc == nil {
		loc = time.Local
	}
	midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	return midnight.UTC().Format(isoLayout), true
}

// Human renders a key for display, e.g. "Sat, Mar 2". Invalid keys are
// returned unchanged.
func Human(key string) string {
	t, err := Parse(key)
	if err != nil {
		return key
	}
	return t.Format("Mon, Jan 2")
}
