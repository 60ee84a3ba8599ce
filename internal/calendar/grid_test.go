package calendar

import (
	"testing"
	"time"
)

func TestMonthGridAlwaysHas42Cells(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
	}{
		{2024, time.February}, // leap February
		{2023, time.February}, // 28 days starting Wednesday
		{2024, time.March},    // 31 days spanning 6 weeks
		{2026, time.February}, // starts on Sunday, fits 5 weeks
		{2024, time.December},
		{2025, time.January},
	}
	for _, tc := range cases {
		cells := MonthGrid(tc.year, tc.month)
		if len(cells) != GridSize {
			t.Fatalf("%d-%02d: cell count mismatch: got=%d want=%d", tc.year, tc.month, len(cells), GridSize)
		}
		for i := 1; i < len(cells); i++ {
			want := cells[i-1].Date.AddDate(0, 0, 1)
			if !SameDay(cells[i].Date, want) {
				t.Fatalf("%d-%02d: cells not consecutive at %d: got=%s want=%s",
					tc.year, tc.month, i, FormatKey(cells[i].Date), FormatKey(want))
			}
		}
		if cells[0].Date.Weekday() != time.Sunday {
			t.Fatalf("%d-%02d: grid does not start on Sunday: got=%s", tc.year, tc.month, cells[0].Date.Weekday())
		}
	}
}

func TestMonthGridFirstDayPosition(t *testing.T) {
	for _, tc := range []struct {
		year  int
		month time.Month
	}{
		{2024, time.March},
		{2024, time.September},
		{2023, time.January},
		{2025, time.June},
	} {
		cells := MonthGrid(tc.year, tc.month)
		first := time.Date(tc.year, tc.month, 1, 0, 0, 0, 0, time.Local)
		idx := int(first.Weekday())
		if !SameDay(cells[idx].Date, first) {
			t.Fatalf("%d-%02d: first of month not at index %d: got=%s", tc.year, tc.month, idx, FormatKey(cells[idx].Date))
		}
		if !cells[idx].InMonth {
			t.Fatalf("%d-%02d: first of month not flagged in-month", tc.year, tc.month)
		}
		if idx > 0 && cells[idx-1].InMonth {
			t.Fatalf("%d-%02d: previous-month padding flagged in-month", tc.year, tc.month)
		}
	}
}

func TestMonthGridInMonthCountMatchesMonthLength(t *testing.T) {
	cells := MonthGrid(2024, time.February)
	count := 0
	for _, c := range cells {
		if c.InMonth {
			count++
		}
	}
	if count != 29 {
		t.Fatalf("leap February in-month count mismatch: got=%d want=29", count)
	}
}

func TestWeeksSplitsIntoSixRows(t *testing.T) {
	rows := Weeks(MonthGrid(2024, time.March))
	if len(rows) != 6 {
		t.Fatalf("row count mismatch: got=%d want=6", len(rows))
	}
	for i, row := range rows {
		if len(row) != 7 {
			t.Fatalf("row %d length mismatch: got=%d want=7", i, len(row))
		}
	}
}

func TestMonthCursorRollsOverYears(t *testing.T) {
	y, m := NextMonth(2024, time.December)
	if y != 2025 || m != time.January {
		t.Fatalf("next of 2024-12 mismatch: got=%d-%02d want=2025-01", y, m)
	}
	y, m = PrevMonth(2025, time.January)
	if y != 2024 || m != time.December {
		t.Fatalf("prev of 2025-01 mismatch: got=%d-%02d want=2024-12", y, m)
	}
}
