package calendar

import (
	"fmt"

	"github.com/janeyeyey/mcal/internal/contract"
)

// Reschedule moves an event's anchor to newStart while preserving its original
// calendar-day duration exactly. Single-day events move with EndDate cleared;
// ranged events keep their length, so only the anchor changes. The input event
// is not mutated; a copy is returned.
//
// Callers that already know newStart equals the current start should skip the
// mutation entirely; Reschedule itself still returns a valid copy in that case.
func Reschedule(ev contract.Event, newStart string) (contract.Event, error) {
	start, err := ParseKey(newStart)
	if err != nil {
		return contract.Event{}, fmt.Errorf("new start: %w", err)
	}
	out := ev
	out.Date = FormatKey(start)
	if !ev.MultiDay() {
		out.EndDate = ""
		return out, nil
	}
	oldStart, err := ParseKey(ev.Date)
	if err != nil {
		return contract.Event{}, fmt.Errorf("event %s: %w", ev.ID, err)
	}
	oldEnd, err := ParseKey(ev.EndDate)
	if err != nil {
		return contract.Event{}, fmt.Errorf("event %s: %w", ev.ID, err)
	}
	duration := daysBetween(oldStart, oldEnd)
	if duration < 0 {
		return contract.Event{}, fmt.Errorf("event %s: end date %s before start %s", ev.ID, ev.EndDate, ev.Date)
	}
	out.EndDate = FormatKey(start.AddDate(0, 0, duration))
	return out, nil
}
