package canvas

import (
	"VisionBoard/internal/gesture"
	"VisionBoard/internal/state"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ViewportState is the shared pan/zoom context read by every item wrapper.
type ViewportState struct {
	Zoom       float64
	PanX, PanY float64
	Panning    bool
}

// viewAnim holds the tweens of an in-flight AnimateTo.
type viewAnim struct {
	panX, panY, zoom *gween.Tween
}

// Viewport owns pan and zoom. Zoom is clamped to the geometry's range on
// every mutation.
type Viewport struct {
	geo Geometry

	zoom          float64
	panX, panY    float64
	width, height float64

	panning          bool
	panPointer       int
	panOffX, panOffY float64

	anim *viewAnim

	// OnChange runs after any change to pan, zoom or the panning flag.
	OnChange func(ViewportState)
}

// NewViewport creates a viewport at zoom 1 with no pan.
func NewViewport(geo Geometry) *Viewport {
	return &Viewport{geo: geo, zoom: geo.ClampZoom(1)}
}

// Geometry returns the grid constants the viewport was built with.
func (v *Viewport) Geometry() Geometry { return v.geo }

// State returns a copy of the pan/zoom context.
func (v *Viewport) State() ViewportState {
	return ViewportState{Zoom: v.zoom, PanX: v.panX, PanY: v.panY, Panning: v.panning}
}

// Zoom returns the current zoom factor.
func (v *Viewport) Zoom() float64 { return v.zoom }

// Panning reports whether a pan gesture is active.
func (v *Viewport) Panning() bool { return v.panning }

// SetViewSize records the pixel size of the board view.
func (v *Viewport) SetViewSize(w, h float64) {
	v.width, v.height = w, h
}

// Transform returns the screen/logical mapping for the current state.
func (v *Viewport) Transform() Transform {
	return Transform{
		OriginX: v.geo.OriginX, OriginY: v.geo.OriginY,
		PanX: v.panX, PanY: v.panY,
		Zoom:  v.zoom,
		Width: v.width, Height: v.height,
	}
}

func (v *Viewport) changed() {
	if v.OnChange != nil {
		v.OnChange(v.State())
	}
}

// SetZoom sets zoom, clamped to range.
func (v *Viewport) SetZoom(z float64) {
	z = v.geo.ClampZoom(z)
	if z == v.zoom {
		return
	}
	v.zoom = z
	v.changed()
}

// SetPan sets the pan offset directly.
func (v *Viewport) SetPan(x, y float64) {
	if x == v.panX && y == v.panY {
		return
	}
	v.panX, v.panY = x, y
	v.changed()
}

// HandleWheel zooms out for a positive (scroll down) delta and in for a
// negative one, stopping any running animation. It reports whether the
// event was consumed, in which case the host must not scroll.
func (v *Viewport) HandleWheel(deltaY float64) bool {
	if deltaY != 0 {
		v.anim = nil
	}
	switch {
	case deltaY > 0:
		v.SetZoom(v.zoom * v.geo.ZoomOutStep)
	case deltaY < 0:
		v.SetZoom(v.zoom * v.geo.ZoomInStep)
	default:
		return false
	}
	return true
}

// QualifiesPan reports whether a press starts a pan: the primary button with
// the pan modifier held, or the middle button.
func (v *Viewport) QualifiesPan(ev gesture.Event) bool {
	if ev.Button == gesture.ButtonMiddle {
		return true
	}
	return ev.Button == gesture.ButtonPrimary && ev.Modifiers.Has(v.geo.PanModifier)
}

// PanStart begins a pan if ev qualifies, remembering the offset between the
// pointer and the current pan.
func (v *Viewport) PanStart(ev gesture.Event) bool {
	if v.panning || !v.QualifiesPan(ev) {
		return false
	}
	v.anim = nil
	v.panning = true
	v.panPointer = ev.PointerID
	v.panOffX = ev.X - v.panX
	v.panOffY = ev.Y - v.panY
	v.changed()
	return true
}

// PanMove recomputes pan absolutely from the pointer position.
func (v *Viewport) PanMove(ev gesture.Event) bool {
	if !v.panning || ev.PointerID != v.panPointer {
		return false
	}
	v.panX = ev.X - v.panOffX
	v.panY = ev.Y - v.panOffY
	v.changed()
	return true
}

// PanEnd clears the panning flag. Pan is live state, so nothing commits.
func (v *Viewport) PanEnd() {
	if !v.panning {
		return
	}
	v.panning = false
	v.changed()
}

// PlacementAnchor returns the grid-snapped logical point at the centre of
// the view, where new items are placed.
func (v *Viewport) PlacementAnchor() state.Point {
	cx, cy := v.Transform().Centre()
	return state.RoundPoint(Snap(cx, v.geo.GridSize), Snap(cy, v.geo.GridSize))
}

// AnimateTo tweens pan and zoom to the target over duration seconds. A pan
// gesture cancels the animation.
func (v *Viewport) AnimateTo(panX, panY, zoom float64, duration float32) {
	zoom = v.geo.ClampZoom(zoom)
	v.anim = &viewAnim{
		panX: gween.New(float32(v.panX), float32(panX), duration, ease.OutCubic),
		panY: gween.New(float32(v.panY), float32(panY), duration, ease.OutCubic),
		zoom: gween.New(float32(v.zoom), float32(zoom), duration, ease.OutCubic),
	}
}

// Reset animates back to no pan at zoom 1.
func (v *Viewport) Reset(duration float32) {
	v.AnimateTo(0, 0, 1, duration)
}

// Animating reports whether an AnimateTo is still running.
func (v *Viewport) Animating() bool { return v.anim != nil }

// Step advances a running animation by dt seconds and reports whether it is
// still running.
func (v *Viewport) Step(dt float32) bool {
	a := v.anim
	if a == nil {
		return false
	}
	px, doneX := a.panX.Update(dt)
	py, doneY := a.panY.Update(dt)
	z, doneZ := a.zoom.Update(dt)
	v.panX, v.panY = float64(px), float64(py)
	v.zoom = v.geo.ClampZoom(float64(z))
	if doneX && doneY && doneZ {
		v.anim = nil
	}
	v.changed()
	return v.anim != nil
}
