package app

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/janeyeyey/mcal/internal/calendar"
	"github.com/janeyeyey/mcal/internal/contract"
)

type placedEvent struct {
	contract.Event
	Placement calendar.Placement `json:"placement"`
	Days      int                `json:"days"`
}

type dayCell struct {
	Date    string        `json:"date"`
	InMonth bool          `json:"inMonth"`
	Events  []placedEvent `json:"events,omitempty"`
}

type monthView struct {
	Year  int         `json:"year"`
	Month string      `json:"month"`
	Weeks [][]dayCell `json:"weeks"`
}

type dayView struct {
	Date   string        `json:"date"`
	Events []placedEvent `json:"events"`
}

// buildMonthView lays the filtered events onto a 42-cell grid for the given
// month.
func buildMonthView(year int, month time.Month, events []contract.Event, sel calendar.Selection, continuationIncludesEnd bool) monthView {
	visible := sel.Apply(events)

	weeks := make([][]dayCell, 0, calendar.GridSize/7)
	for _, row := range calendar.Weeks(calendar.MonthGrid(year, month)) {
		week := make([]dayCell, 0, len(row))
		for _, c := range row {
			day := dayCell{Date: calendar.FormatKey(c.Date), InMonth: c.InMonth}
			for _, ev := range calendar.EventsForDay(visible, c.Date) {
				day.Events = append(day.Events, place(ev, c.Date, continuationIncludesEnd))
			}
			week = append(week, day)
		}
		weeks = append(weeks, week)
	}

	return monthView{
		Year:  year,
		Month: month.String(),
		Weeks: weeks,
	}
}

func buildDayView(date time.Time, events []contract.Event, sel calendar.Selection, continuationIncludesEnd bool) dayView {
	visible := sel.Apply(events)
	view := dayView{Date: calendar.FormatKey(date), Events: []placedEvent{}}
	for _, ev := range calendar.EventsForDay(visible, date) {
		view.Events = append(view.Events, place(ev, date, continuationIncludesEnd))
	}
	return view
}

func place(ev contract.Event, date time.Time, continuationIncludesEnd bool) placedEvent {
	days, err := calendar.DurationDays(ev)
	if err != nil {
		days = 1
	}
	return placedEvent{
		Event:     ev,
		Placement: calendar.Classify(ev, date, continuationIncludesEnd),
		Days:      days,
	}
}

var weekdayHeader = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

const cellWidth = 16

// renderMonthPlain draws the month as a text grid. Each cell shows the day
// number and up to three event titles; continuation days show the title
// prefixed with an ellipsis.
func renderMonthPlain(w io.Writer, view monthView) {
	fmt.Fprintf(w, "%s %d\n", view.Month, view.Year)

	var header strings.Builder
	for _, name := range weekdayHeader {
		header.WriteString(pad(name, cellWidth))
	}
	fmt.Fprintln(w, strings.TrimRight(header.String(), " "))

	for _, week := range view.Weeks {
		lines := renderWeek(week)
		for _, line := range lines {
			fmt.Fprintln(w, strings.TrimRight(line, " "))
		}
	}
}

func renderWeek(week []dayCell) []string {
	const maxRows = 3
	rows := 1
	for _, day := range week {
		if n := len(day.Events); n > rows {
			rows = n
		}
	}
	if rows > maxRows {
		rows = maxRows
	}
	lines := make([]string, rows+1)
	for _, day := range week {
		label := dayNumber(day)
		lines[0] += pad(label, cellWidth)
		for r := 0; r < rows; r++ {
			lines[r+1] += pad(eventLabel(day, r, rows), cellWidth)
		}
	}
	return lines
}

func dayNumber(day dayCell) string {
	num := strings.TrimPrefix(day.Date[8:], "0")
	if !day.InMonth {
		return "(" + num + ")"
	}
	return num
}

func eventLabel(day dayCell, row, rows int) string {
	if row >= len(day.Events) {
		return ""
	}
	if row == rows-1 && len(day.Events) > rows {
		return fmt.Sprintf("+%d more", len(day.Events)-rows+1)
	}
	ev := day.Events[row]
	title := ev.Title
	if ev.Placement == calendar.PlacementContinuation {
		title = "…" + title
	}
	return truncate(title, cellWidth-2)
}

func renderDayPlain(w io.Writer, view dayView) {
	fmt.Fprintln(w, view.Date)
	if len(view.Events) == 0 {
		fmt.Fprintln(w, "no events")
		return
	}
	for _, ev := range view.Events {
		line := ev.Title
		if ev.Time != "" {
			line = ev.Time + "  " + line
		}
		if ev.MultiDay() {
			line += fmt.Sprintf(" (%s to %s)", ev.Date, ev.EndDate)
		}
		line += "  [" + string(ev.Solution) + "]"
		if ev.Location != "" {
			line += "  @ " + ev.Location
		}
		fmt.Fprintln(w, line)
	}
}

func pad(s string, width int) string {
	if runeLen(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-runeLen(s))
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

func runeLen(s string) int { return len([]rune(s)) }
