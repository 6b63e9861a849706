package ui

import (
	"fmt"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

func statusText(items int, zoom float64) string {
	return fmt.Sprintf("Items: %d  Zoom: %d%%", items, int(math.Round(zoom*100)))
}

// statusBar shows the board counters on the right and the last message on
// the left.
type statusBar struct {
	counts  *widget.Label
	message *widget.Label
}

func newStatusBar() *statusBar {
	return &statusBar{
		counts:  widget.NewLabel(statusText(0, 1)),
		message: widget.NewLabel("Ready"),
	}
}

// Update is the board's OnStatus hook.
func (s *statusBar) Update(items int, zoom float64) {
	if t := statusText(items, zoom); t != s.counts.Text {
		s.counts.SetText(t)
	}
}

func (s *statusBar) SetMessage(msg string) { s.message.SetText(msg) }

func (s *statusBar) Object() fyne.CanvasObject {
	return container.NewHBox(s.message, layout.NewSpacer(), s.counts)
}
