package dateparse

import (
	"testing"
	"time"
)

var testNow = time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)

func TestParseDay(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"today", "2024-03-15"},
		{"tomorrow", "2024-03-16"},
		{"yesterday", "2024-03-14"},
		{"+3d", "2024-03-18"},
		{"-14d", "2024-03-01"},
		{"+20d", "2024-04-04"},
		{"2024-12-31", "2024-12-31"},
	}
	for _, tc := range cases {
		got, err := ParseDay(tc.in, testNow, time.UTC)
		if err != nil {
			t.Fatalf("ParseDay(%q) failed: %v", tc.in, err)
		}
		if s := got.Format("2006-01-02"); s != tc.want {
			t.Fatalf("ParseDay(%q) mismatch: got=%s want=%s", tc.in, s, tc.want)
		}
		if got.Hour() != 0 || got.Minute() != 0 {
			t.Fatalf("ParseDay(%q) not at midnight: %s", tc.in, got)
		}
	}
}

func TestParseDayRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "soon", "+2w", "2024-3-1", "03/15/2024"} {
		if _, err := ParseDay(bad, testNow, time.UTC); err == nil {
			t.Fatalf("ParseDay(%q) unexpectedly succeeded", bad)
		}
	}
}

func TestParseMonth(t *testing.T) {
	cases := []struct {
		in        string
		wantYear  int
		wantMonth time.Month
	}{
		{"2024-03", 2024, time.March},
		{"", 2024, time.March},
		{"today", 2024, time.March},
		{"+1m", 2024, time.April},
		{"-3m", 2023, time.December},
		{"+10m", 2025, time.January},
		{"2024-12-31", 2024, time.December},
	}
	for _, tc := range cases {
		y, m, err := ParseMonth(tc.in, testNow, time.UTC)
		if err != nil {
			t.Fatalf("ParseMonth(%q) failed: %v", tc.in, err)
		}
		if y != tc.wantYear || m != tc.wantMonth {
			t.Fatalf("ParseMonth(%q) mismatch: got=%d-%02d want=%d-%02d", tc.in, y, m, tc.wantYear, tc.wantMonth)
		}
	}
}

func TestParseMonthRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"march", "2024/03", "+1w"} {
		if _, _, err := ParseMonth(bad, testNow, time.UTC); err == nil {
			t.Fatalf("ParseMonth(%q) unexpectedly succeeded", bad)
		}
	}
}
