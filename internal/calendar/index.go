package calendar

import (
	"sort"
	"time"

	"github.com/janeyeyey/mcal/internal/contract"
)

// EventsForDay filters the snapshot to events whose span covers date, sorted
// ascending by start date. The sort is stable so same-day events keep their
// snapshot order; there is no time-of-day tie-breaking. A linear scan per cell
// is the reference behavior and is fine for the list sizes this calendar
// carries.
func EventsForDay(events []contract.Event, date time.Time) []contract.Event {
	out := make([]contract.Event, 0, 4)
	for _, ev := range events {
		if Covers(ev, date) {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}
