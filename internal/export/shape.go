// Package export renders the board to PDF and PNG files.
package export

import (
	"errors"
	"math"

	"VisionBoard/internal/state"
)

// Margin pads the exported area around the items' bounding box.
const Margin = 24.0

// ErrEmptyBoard is returned when there is nothing to export.
var ErrEmptyBoard = errors.New("nothing to export")

const (
	cornerRadius = 16.0
	foldSize     = 64.0
	arcSegments  = 8
	ovalSegments = 48
)

type pt struct{ X, Y float64 }

// Area returns the region an export covers: every item plus Margin.
func Area(items []state.BoardItem) (state.Rect, error) {
	b, ok := state.BoundsOf(items)
	if !ok {
		return state.Rect{}, ErrEmptyBoard
	}
	return b.Expand(Margin), nil
}

// outline returns the closed polygon of an item's body.
func outline(v state.Variant, r state.Rect) []pt {
	switch v {
	case state.VariantRound, state.VariantCloud:
		return oval(r)
	case state.VariantTorn:
		return torn(r)
	}
	return roundedRect(r, cornerRadius)
}

func roundedRect(r state.Rect, radius float64) []pt {
	radius = min(radius, r.Width/2, r.Height/2)
	corners := []struct {
		cx, cy, from float64
	}{
		{r.X + r.Width - radius, r.Y + radius, -math.Pi / 2},
		{r.X + r.Width - radius, r.Y + r.Height - radius, 0},
		{r.X + radius, r.Y + r.Height - radius, math.Pi / 2},
		{r.X + radius, r.Y + radius, math.Pi},
	}
	pts := make([]pt, 0, 4*(arcSegments+1))
	for _, c := range corners {
		for i := 0; i <= arcSegments; i++ {
			a := c.from + float64(i)/arcSegments*math.Pi/2
			pts = append(pts, pt{c.cx + radius*math.Cos(a), c.cy + radius*math.Sin(a)})
		}
	}
	return pts
}

func oval(r state.Rect) []pt {
	cx, cy := r.X+r.Width/2, r.Y+r.Height/2
	pts := make([]pt, ovalSegments)
	for i := range pts {
		a := float64(i) / ovalSegments * 2 * math.Pi
		pts[i] = pt{cx + r.Width/2*math.Cos(a), cy + r.Height/2*math.Sin(a)}
	}
	return pts
}

// torn cuts the bottom edge into a zigzag alternating between 85% and 88%
// of the height every 5% of the width.
func torn(r state.Rect) []pt {
	pts := []pt{{r.X, r.Y}, {r.X + r.Width, r.Y}}
	for i := 20; i >= 0; i-- {
		f := 0.85
		if i%2 == 1 {
			f = 0.88
		}
		pts = append(pts, pt{r.X + r.Width*float64(i)/20, r.Y + r.Height*f})
	}
	return pts
}

// foldCorner is the shaded triangle of a folded note's top-right corner.
func foldCorner(r state.Rect) []pt {
	s := min(foldSize, r.Width/3, r.Height/3)
	x := r.X + r.Width
	return []pt{{x - s, r.Y}, {x, r.Y}, {x, r.Y + s}}
}
