package ui

import (
	"strconv"

	"VisionBoard/internal/journal"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// journalPanel is the daily notes sidebar: a day picker above an
// autosaving text entry.
type journalPanel struct {
	j *journal.Journal

	prev, next, today *widget.Button
	title, month      *widget.Label
	saved             *widget.Label
	entry             *widget.Entry
	days              *fyne.Container

	syncing bool
}

func newJournalPanel(j *journal.Journal) *journalPanel {
	p := &journalPanel{
		j:     j,
		title: widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		month: widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{}),
		saved: widget.NewLabel(""),
		days:  container.NewGridWithColumns(7),
		entry: widget.NewMultiLineEntry(),
	}
	p.prev = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { j.Shift(-1) })
	p.next = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { j.Shift(1) })
	p.today = widget.NewButton("Today", j.Today)
	p.saved.TextStyle.Italic = true

	p.entry.Wrapping = fyne.TextWrapWord
	p.entry.SetPlaceHolder("How was today?")
	p.entry.OnChanged = func(text string) {
		if p.syncing {
			return
		}
		_ = j.SetText(text)
	}

	j.OnChange = p.refresh
	p.refresh()
	return p
}

func (p *journalPanel) refresh() {
	p.title.SetText(p.j.Title())
	p.month.SetText(p.j.Date().Format("January 2006"))
	p.saved.SetText("Autosaved: " + p.j.Key())
	if text := p.j.Text(); text != p.entry.Text {
		p.syncing = true
		p.entry.SetText(text)
		p.syncing = false
	}
	p.rebuildDays()
}

func (p *journalPanel) rebuildDays() {
	p.days.RemoveAll()
	for _, d := range journal.Weekdays {
		p.days.Add(widget.NewLabelWithStyle(d, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}))
	}
	open := p.j.Date()
	for _, c := range journal.MonthGrid(open) {
		if c.Blank {
			p.days.Add(widget.NewLabel(""))
			continue
		}
		day := c.Date
		b := widget.NewButton(strconv.Itoa(c.Day()), func() { p.j.SetDate(day) })
		switch {
		case journal.SameDay(day, open):
			b.Importance = widget.HighImportance
		case p.j.HasEntry(day):
			b.Importance = widget.MediumImportance
		default:
			b.Importance = widget.LowImportance
		}
		p.days.Add(b)
	}
}

func (p *journalPanel) Object() fyne.CanvasObject {
	nav := container.NewBorder(nil, nil, p.prev, container.NewHBox(p.today, p.next), p.title)
	top := container.NewVBox(nav, p.month, p.days)
	return container.NewBorder(top, p.saved, nil, nil, p.entry)
}
