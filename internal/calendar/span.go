package calendar

import (
	"fmt"
	"time"

	"github.com/janeyeyey/mcal/internal/contract"
)

// CoveredDates returns every calendar date the event covers, start through end
// inclusive, in order. A single-day event yields exactly its start date.
func CoveredDates(ev contract.Event) ([]time.Time, error) {
	start, err := ParseKey(ev.Date)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", ev.ID, err)
	}
	end, err := ParseKey(ev.EndKey())
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", ev.ID, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("event %s: end date %s before start %s", ev.ID, ev.EndKey(), ev.Date)
	}
	dates := make([]time.Time, 0, daysBetween(start, end)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates, nil
}

// Covers reports whether the event's span contains the given date. Events
// whose date strings do not parse cover nothing.
func Covers(ev contract.Event, date time.Time) bool {
	start, err := ParseKey(ev.Date)
	if err != nil {
		return false
	}
	end, err := ParseKey(ev.EndKey())
	if err != nil {
		return false
	}
	return !date.Before(start) && !date.After(end)
}

// IsStartDay reports whether date is the event's start day, the day that
// renders the full card.
func IsStartDay(ev contract.Event, date time.Time) bool {
	start, err := ParseKey(ev.Date)
	if err != nil {
		return false
	}
	return SameDay(start, date)
}

// IsEndDay reports whether date is the event's effective end day. For a
// single-day event the start day is also the end day.
func IsEndDay(ev contract.Event, date time.Time) bool {
	end, err := ParseKey(ev.EndKey())
	if err != nil {
		return false
	}
	return SameDay(end, date)
}

// DurationDays is the inclusive day count of the span; single-day events have
// duration 1.
func DurationDays(ev contract.Event) (int, error) {
	start, err := ParseKey(ev.Date)
	if err != nil {
		return 0, fmt.Errorf("event %s: %w", ev.ID, err)
	}
	end, err := ParseKey(ev.EndKey())
	if err != nil {
		return 0, fmt.Errorf("event %s: %w", ev.ID, err)
	}
	if end.Before(start) {
		return 0, fmt.Errorf("event %s: end date %s before start %s", ev.ID, ev.EndKey(), ev.Date)
	}
	return daysBetween(start, end) + 1, nil
}

// daysBetween counts whole calendar days from a to b. Both are local
// midnights, but a DST transition between them makes the raw difference a
// non-multiple of 24h, so the division rounds to the nearest day.
func daysBetween(a, b time.Time) int {
	d := b.Sub(a)
	days := int((d + 12*time.Hour) / (24 * time.Hour))
	if d < 0 {
		days = -int((-d + 12*time.Hour) / (24 * time.Hour))
	}
	return days
}
