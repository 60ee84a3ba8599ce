package dateparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDay resolves a day selector to local midnight. Accepted forms: today,
// tomorrow, yesterday, signed relative days (+3d, -1d), and YYYY-MM-DD.
func ParseDay(input string, now time.Time, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return time.Time{}, fmt.Errorf("empty day selector")
	}

	switch s {
	case "today":
		y, m, d := now.In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
	case "tomorrow":
		v, _ := ParseDay("today", now, loc)
		return v.AddDate(0, 0, 1), nil
	case "yesterday":
		v, _ := ParseDay("today", now, loc)
		return v.AddDate(0, 0, -1), nil
	}

	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		sign := 1
		if strings.HasPrefix(s, "-") {
			sign = -1
		}
		raw := strings.TrimPrefix(strings.TrimPrefix(s, "+"), "-")
		if strings.HasSuffix(raw, "d") {
			n, err := strconv.Atoi(strings.TrimSuffix(raw, "d"))
			if err != nil {
				return time.Time{}, fmt.Errorf("invalid relative day: %s", input)
			}
			v, _ := ParseDay("today", now, loc)
			return v.AddDate(0, 0, sign*n), nil
		}
	}

	if ts, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(input), loc); err == nil {
		return ts, nil
	}
	return time.Time{}, fmt.Errorf("unsupported day selector: %s", input)
}

// ParseMonth resolves a month selector to a (year, month) cursor. Accepted
// forms: YYYY-MM, today, signed relative months (+1m, -2m), and anything
// ParseDay accepts (the day's month is used).
func ParseMonth(input string, now time.Time, loc *time.Location) (int, time.Month, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		s = "today"
	}

	if ts, err := time.ParseInLocation("2006-01", s, loc); err == nil {
		return ts.Year(), ts.Month(), nil
	}

	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		sign := 1
		if strings.HasPrefix(s, "-") {
			sign = -1
		}
		raw := strings.TrimPrefix(strings.TrimPrefix(s, "+"), "-")
		if strings.HasSuffix(raw, "m") {
			n, err := strconv.Atoi(strings.TrimSuffix(raw, "m"))
			if err != nil {
				return 0, 0, fmt.Errorf("invalid relative month: %s", input)
			}
			y, m, _ := now.In(loc).Date()
			t := time.Date(y, m, 1, 0, 0, 0, 0, loc).AddDate(0, sign*n, 0)
			return t.Year(), t.Month(), nil
		}
	}

	day, err := ParseDay(s, now, loc)
	if err != nil {
		return 0, 0, fmt.Errorf("unsupported month selector: %s", input)
	}
	return day.Year(), day.Month(), nil
}
