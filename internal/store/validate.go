package store

import (
	"fmt"
	"strings"

	"github.com/janeyeyey/mcal/internal/calendar"
	"github.com/janeyeyey/mcal/internal/contract"
)

// ValidateEvent enforces the mutation-boundary invariants: required display
// fields, a known solution tag, canonical date keys, and endDate >= date.
// Reads never pass through here; hand-edited data is tolerated on the way out
// and rejected only on the way in.
func ValidateEvent(ev contract.Event) error {
	if strings.TrimSpace(ev.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(ev.Location) == "" {
		return fmt.Errorf("location is required")
	}
	if !contract.KnownSolution(ev.Solution) {
		return fmt.Errorf("unknown solution %q; valid values: %s", ev.Solution, solutionList())
	}
	start, err := calendar.ParseKey(ev.Date)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}
	if ev.EndDate != "" {
		end, err := calendar.ParseKey(ev.EndDate)
		if err != nil {
			return fmt.Errorf("end date: %w", err)
		}
		if end.Before(start) {
			return fmt.Errorf("end date %s is before start date %s", ev.EndDate, ev.Date)
		}
	}
	return nil
}

func solutionList() string {
	names := make([]string, 0, len(contract.Solutions))
	for _, s := range contract.Solutions {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
