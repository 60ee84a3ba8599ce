package app

import (
	"testing"

	"github.com/janeyeyey/mcal/internal/contract"
)

func TestParseTerm(t *testing.T) {
	tests := []struct {
		in   string
		want predicate
	}{
		{"title~launch", predicate{"title", "~", "launch"}},
		{"solution=Security", predicate{"solution", "=", "Security"}},
		{"location!=Seoul Office", predicate{"location", "!=", "Seoul Office"}},
		{"date>=2024-03-01", predicate{"date", ">=", "2024-03-01"}},
		{"date<2024-04-01", predicate{"date", "<", "2024-04-01"}},
		{"endDate<=2024-03-31", predicate{"enddate", "<=", "2024-03-31"}},
	}
	for _, tc := range tests {
		got, err := parseTerm(tc.in)
		if err != nil {
			t.Fatalf("parseTerm(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parseTerm(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestParseTermRejectsBadInput(t *testing.T) {
	for _, in := range []string{
		"title",           // no operator
		"=value",          // no field
		"title=",          // no value
		"priority=high",      // unknown field
		"title>launch",    // ordering on a non-date field
		"solution<2024-01", // ordering on a non-date field
	} {
		if _, err := parseTerm(in); err == nil {
			t.Fatalf("parseTerm(%q) accepted", in)
		}
	}
}

func TestMatchEvent(t *testing.T) {
	ev := contract.Event{
		ID:       "e1",
		Title:    "Security Workshop",
		Solution: contract.SolutionSecurity,
		Date:     "2024-03-01",
		EndDate:  "2024-03-03",
		Location: "Seoul Office",
	}

	tests := []struct {
		term string
		want bool
	}{
		{"title~workshop", true},
		{"title~WORKSHOP", true},
		{"title~launch", false},
		{"solution=security", true},
		{"solution!=Security", false},
		{"date>=2024-03-01", true},
		{"date>2024-03-01", false},
		{"date<2024-03-02", true},
		{"enddate<=2024-03-03", true},
		{"enddate>2024-03-03", false},
		{"location=Seoul Office", true},
		{"id=e1", true},
	}
	for _, tc := range tests {
		p, err := parseTerm(tc.term)
		if err != nil {
			t.Fatalf("parseTerm(%q): %v", tc.term, err)
		}
		got, err := matchEvent(ev, []predicate{p})
		if err != nil {
			t.Fatalf("matchEvent(%q): %v", tc.term, err)
		}
		if got != tc.want {
			t.Fatalf("matchEvent(%q) = %v, want %v", tc.term, got, tc.want)
		}
	}
}

func TestMatchEventTermsAreANDed(t *testing.T) {
	ev := contract.Event{Title: "Security Workshop", Solution: contract.SolutionSecurity, Date: "2024-03-01"}
	preds, err := parseQuery([]string{"title~workshop", "solution=Security", "date>=2024-04-01"})
	if err != nil {
		t.Fatal(err)
	}
	got, err := matchEvent(ev, preds)
	if err != nil {
		t.Fatal(err)
	}
	if got {
		t.Fatal("one failing term should fail the whole query")
	}
}

func TestMatchEventMalformedEventDateNeverMatches(t *testing.T) {
	ev := contract.Event{Title: "t", Date: "soon"}
	p, err := parseTerm("date>=2024-01-01")
	if err != nil {
		t.Fatal(err)
	}
	got, err := matchEvent(ev, []predicate{p})
	if err != nil {
		t.Fatal(err)
	}
	if got {
		t.Fatal("malformed date matched an ordering term")
	}
}

func TestMatchEventBadQueryDateIsAnError(t *testing.T) {
	ev := contract.Event{Title: "t", Date: "2024-03-01"}
	p, err := parseTerm("date>=sometime")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := matchEvent(ev, []predicate{p}); err == nil {
		t.Fatal("bad query date should be an error")
	}
}
