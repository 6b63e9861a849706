package journal

import "time"

// Weekdays are the calendar column headers, Sunday first.
var Weekdays = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Cell is one square of the month grid. Blank cells pad the first week.
type Cell struct {
	Date  time.Time
	Blank bool
}

// Day returns the day of month, or 0 for a blank cell.
func (c Cell) Day() int {
	if c.Blank {
		return 0
	}
	return c.Date.Day()
}

// MonthGrid lays out the month containing t in Sunday-first weeks. Leading
// blanks fill the days before the 1st; the last week is not padded.
func MonthGrid(t time.Time) []Cell {
	y, m, _ := t.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	days := first.AddDate(0, 1, -1).Day()
	lead := int(first.Weekday())

	cells := make([]Cell, 0, lead+days)
	for i := 0; i < lead; i++ {
		cells = append(cells, Cell{Blank: true})
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, Cell{Date: time.Date(y, m, d, 0, 0, 0, 0, t.Location())})
	}
	return cells
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
