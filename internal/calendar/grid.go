package calendar

import "time"

// GridSize is the fixed cell count of a month view: 6 Sunday-first weeks, so
// every month renders with uniform height regardless of where it starts.
const GridSize = 42

const daysPerWeek = 7

// Cell is one slot of the month surface: a concrete date plus whether it
// belongs to the displayed month or is adjacent-month padding.
type Cell struct {
	Date    time.Time
	InMonth bool
}

// MonthGrid produces the 42-cell calendar surface for a month: the leading
// tail of the previous month down to the nearest Sunday, the month's own days,
// then enough of the next month to fill 6 weeks. time.Date normalizes month
// arithmetic, so adjacent-month dates and out-of-range months both wrap
// correctly.
func MonthGrid(year int, month time.Month) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	lead := int(first.Weekday())

	cells := make([]Cell, 0, GridSize)
	for i := 0; i < lead; i++ {
		cells = append(cells, Cell{Date: first.AddDate(0, 0, i-lead)})
	}
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		cells = append(cells, Cell{Date: d, InMonth: true})
	}
	next := first.AddDate(0, 1, 0)
	for i := 0; len(cells) < GridSize; i++ {
		cells = append(cells, Cell{Date: next.AddDate(0, 0, i)})
	}
	return cells
}

// Weeks splits a grid into rows of seven for row-by-row rendering.
func Weeks(cells []Cell) [][]Cell {
	rows := make([][]Cell, 0, len(cells)/daysPerWeek)
	for i := 0; i+daysPerWeek <= len(cells); i += daysPerWeek {
		rows = append(rows, cells[i:i+daysPerWeek])
	}
	return rows
}

// PrevMonth and NextMonth move the navigation cursor, rolling over year
// boundaries.
func PrevMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.Local).AddDate(0, -1, 0)
	return t.Year(), t.Month()
}

func NextMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, 0)
	return t.Year(), t.Month()
}
