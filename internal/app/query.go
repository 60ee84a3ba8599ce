package app

import (
	"fmt"
	"strings"

	"github.com/janeyeyey/mcal/internal/calendar"
	"github.com/janeyeyey/mcal/internal/contract"
)

// A predicate is one term of an `events query` expression, like
// `solution=Security` or `date>=2024-03-01`. Terms are ANDed together.
type predicate struct {
	field string
	op    string
	value string
}

var queryOps = []string{"!=", ">=", "<=", "~", "=", ">", "<"}

func parseQuery(terms []string) ([]predicate, error) {
	preds := make([]predicate, 0, len(terms))
	for _, term := range terms {
		p, err := parseTerm(term)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return preds, nil
}

func parseTerm(term string) (predicate, error) {
	for _, op := range queryOps {
		idx := strings.Index(term, op)
		if idx <= 0 {
			continue
		}
		p := predicate{
			field: strings.ToLower(strings.TrimSpace(term[:idx])),
			op:    op,
			value: strings.TrimSpace(term[idx+len(op):]),
		}
		if p.value == "" {
			return predicate{}, fmt.Errorf("query term %q has no value", term)
		}
		switch p.field {
		case "id", "title", "solution", "location", "time", "date", "end-date", "enddate":
		default:
			return predicate{}, fmt.Errorf("unknown query field %q", p.field)
		}
		if (p.op == ">" || p.op == "<" || p.op == ">=" || p.op == "<=") && p.field != "date" && p.field != "end-date" && p.field != "enddate" {
			return predicate{}, fmt.Errorf("ordering operators only apply to date fields, not %q", p.field)
		}
		return p, nil
	}
	return predicate{}, fmt.Errorf("query term %q is not field<op>value", term)
}

func matchEvent(ev contract.Event, preds []predicate) (bool, error) {
	for _, p := range preds {
		ok, err := matchTerm(ev, p)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func matchTerm(ev contract.Event, p predicate) (bool, error) {
	field := fieldValue(ev, p.field)
	switch p.op {
	case "=":
		return strings.EqualFold(field, p.value), nil
	case "!=":
		return !strings.EqualFold(field, p.value), nil
	case "~":
		return strings.Contains(strings.ToLower(field), strings.ToLower(p.value)), nil
	}

	// Date ordering. An event with a malformed or missing date never matches.
	have, err := calendar.ParseKey(field)
	if err != nil {
		return false, nil
	}
	want, err := calendar.ParseKey(p.value)
	if err != nil {
		return false, fmt.Errorf("query value %q is not a date: %w", p.value, err)
	}
	switch p.op {
	case ">":
		return have.After(want), nil
	case "<":
		return have.Before(want), nil
	case ">=":
		return !have.Before(want), nil
	case "<=":
		return !have.After(want), nil
	}
	return false, fmt.Errorf("unknown operator %q", p.op)
}

func fieldValue(ev contract.Event, field string) string {
	switch field {
	case "id":
		return ev.ID
	case "title":
		return ev.Title
	case "solution":
		return string(ev.Solution)
	case "location":
		return ev.Location
	case "time":
		return ev.Time
	case "date":
		return ev.Date
	case "end-date", "enddate":
		return ev.EndKey()
	}
	return ""
}
