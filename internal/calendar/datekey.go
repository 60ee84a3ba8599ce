package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatKey renders a date as its canonical YYYY-MM-DD key using local
// calendar fields. Keys are the join values between grid cells and event
// records, so formatting must never route through UTC.
func FormatKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseKey builds a local-midnight date from the three numeric components of a
// YYYY-MM-DD key. The components are split and converted explicitly instead of
// handing the whole string to a generic parser; generic ISO parsing assumes
// UTC in several runtimes and skews the day for users west of UTC.
func ParseKey(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date key: %q", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 4 {
		return time.Time{}, fmt.Errorf("invalid year in date key: %q", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("invalid month in date key: %q", s)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid day in date key: %q", s)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, fmt.Errorf("no such date: %q", s)
	}
	return t, nil
}

// SameDay compares calendar fields only, ignoring clock time.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
