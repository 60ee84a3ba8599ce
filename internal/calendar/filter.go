package calendar

import "github.com/janeyeyey/mcal/internal/contract"

// Selection is the solution filter state. The zero value selects everything;
// the "all" case is a named constructor rather than an empty set so that
// "no filter" can never be confused with "filter to nothing".
type Selection struct {
	solutions []contract.Solution
}

// AllSolutions selects every event.
func AllSolutions() Selection {
	return Selection{}
}

// SomeSolutions selects only events tagged with one of the given solutions.
// Passing no tags degenerates to AllSolutions, matching the UI convention
// where clearing every toggle shows the full calendar.
func SomeSolutions(tags ...contract.Solution) Selection {
	if len(tags) == 0 {
		return AllSolutions()
	}
	out := make([]contract.Solution, len(tags))
	copy(out, tags)
	return Selection{solutions: out}
}

// All reports whether the selection is the unfiltered state.
func (s Selection) All() bool {
	return len(s.solutions) == 0
}

// Solutions returns the selected tags, nil for the all state.
func (s Selection) Solutions() []contract.Solution {
	return s.solutions
}

// Apply filters the snapshot by tag membership. The all state returns the
// input slice unchanged, preserving identity and order. Unknown tags pass
// through a membership check like any other value.
func (s Selection) Apply(events []contract.Event) []contract.Event {
	if s.All() {
		return events
	}
	out := make([]contract.Event, 0, len(events))
	for _, ev := range events {
		if s.contains(ev.Solution) {
			out = append(out, ev)
		}
	}
	return out
}

func (s Selection) contains(tag contract.Solution) bool {
	for _, v := range s.solutions {
		if v == tag {
			return true
		}
	}
	return false
}
