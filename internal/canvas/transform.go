// Package canvas is the direct-manipulation engine of the board: coordinate
// transforms, the pan/zoom viewport, and the drag and resize wrappers that
// keep a transient value during a gesture and commit it on release.
package canvas

import (
	"math"

	"VisionBoard/internal/gesture"
	"VisionBoard/internal/state"
)

// Geometry collects the coordinate constants of the logical grid.
type Geometry struct {
	// OriginX and OriginY are the logical point shown at the viewport centre
	// when pan is (0,0).
	OriginX, OriginY float64
	// GridSize is the snapping cell used for placement.
	GridSize float64

	MinZoom, MaxZoom float64
	// ZoomInStep multiplies zoom per scroll-up event, ZoomOutStep per
	// scroll-down event.
	ZoomInStep, ZoomOutStep float64

	// PanModifier must be held with the primary button to pan.
	PanModifier gesture.Modifiers

	MinItemSize int
	// ResizeFollowsZoom divides resize deltas by zoom, like drag does.
	ResizeFollowsZoom bool
}

// DefaultGeometry returns the reference layout: a 24-unit grid centred on
// (2000,2000) with zoom limited to [0.1, 3.0].
func DefaultGeometry() Geometry {
	return Geometry{
		OriginX:     2000,
		OriginY:     2000,
		GridSize:    24,
		MinZoom:     0.1,
		MaxZoom:     3.0,
		ZoomInStep:  1.1,
		ZoomOutStep: 0.9,
		PanModifier: gesture.ModShift,
		MinItemSize: state.DefaultMinItemSize,
	}
}

// ClampZoom limits z to the geometry's zoom range.
func (g Geometry) ClampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return g.MinZoom
	}
	return math.Min(math.Max(g.MinZoom, z), g.MaxZoom)
}

// Snap rounds v to the nearest multiple of grid. A non-positive grid leaves
// v rounded to an integer.
func Snap(v, grid float64) float64 {
	if grid <= 0 {
		return math.Round(v)
	}
	return math.Round(v/grid) * grid
}

// Transform maps between screen pixels inside the board view and logical
// grid coordinates.
//
// The logical origin sits at the centre of the view, shifted by Pan and
// scaled by Zoom around that centre:
//
//	screen = centre + pan + (logical - origin) * zoom
type Transform struct {
	OriginX, OriginY float64
	PanX, PanY       float64
	Zoom             float64
	Width, Height    float64
}

func (t Transform) zoom() float64 {
	if t.Zoom <= 0 {
		return 1
	}
	return t.Zoom
}

// ScreenToLogical converts a point in view pixels to logical space.
func (t Transform) ScreenToLogical(sx, sy float64) (lx, ly float64) {
	z := t.zoom()
	lx = t.OriginX + (sx-t.Width/2-t.PanX)/z
	ly = t.OriginY + (sy-t.Height/2-t.PanY)/z
	return
}

// LogicalToScreen converts a logical point to view pixels.
func (t Transform) LogicalToScreen(lx, ly float64) (sx, sy float64) {
	z := t.zoom()
	sx = t.Width/2 + t.PanX + (lx-t.OriginX)*z
	sy = t.Height/2 + t.PanY + (ly-t.OriginY)*z
	return
}

// ScreenDelta converts a pixel displacement into logical units.
func (t Transform) ScreenDelta(dx, dy float64) (float64, float64) {
	z := t.zoom()
	return dx / z, dy / z
}

// Centre returns the logical point at the middle of the view.
func (t Transform) Centre() (lx, ly float64) {
	z := t.zoom()
	return t.OriginX - t.PanX/z, t.OriginY - t.PanY/z
}

// VisibleBounds returns the logical rectangle covered by the view.
func (t Transform) VisibleBounds() state.Rect {
	x0, y0 := t.ScreenToLogical(0, 0)
	x1, y1 := t.ScreenToLogical(t.Width, t.Height)
	return state.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
