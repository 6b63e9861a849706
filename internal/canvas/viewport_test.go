package canvas

import (
	"math"
	"testing"

	"VisionBoard/internal/gesture"
	"VisionBoard/internal/state"
)

func TestWheelZoomStaysInRange(t *testing.T) {
	v := NewViewport(DefaultGeometry())
	for i := 0; i < 100; i++ {
		v.HandleWheel(1)
	}
	if v.Zoom() != 0.1 {
		t.Errorf("after zooming out: %v", v.Zoom())
	}
	for i := 0; i < 100; i++ {
		v.HandleWheel(-3)
	}
	if v.Zoom() != 3 {
		t.Errorf("after zooming in: %v", v.Zoom())
	}
	v.HandleWheel(1)
	if !approx(v.Zoom(), 2.7) {
		t.Errorf("one step out of max: %v", v.Zoom())
	}
}

func TestWheelZeroIgnored(t *testing.T) {
	v := NewViewport(DefaultGeometry())
	calls := 0
	v.OnChange = func(ViewportState) { calls++ }
	if v.HandleWheel(0) {
		t.Error("zero delta consumed")
	}
	if v.Zoom() != 1 || calls != 0 {
		t.Errorf("zero delta changed state: zoom=%v calls=%d", v.Zoom(), calls)
	}
}

func TestPanQualification(t *testing.T) {
	v := NewViewport(DefaultGeometry())
	cases := []struct {
		name string
		ev   gesture.Event
		want bool
	}{
		{"primary", gesture.Event{Button: gesture.ButtonPrimary}, false},
		{"primary+shift", gesture.Event{Button: gesture.ButtonPrimary, Modifiers: gesture.ModShift}, true},
		{"primary+ctrl", gesture.Event{Button: gesture.ButtonPrimary, Modifiers: gesture.ModCtrl}, false},
		{"middle", gesture.Event{Button: gesture.ButtonMiddle}, true},
		{"secondary+shift", gesture.Event{Button: gesture.ButtonSecondary, Modifiers: gesture.ModShift}, false},
	}
	for _, c := range cases {
		if got := v.QualifiesPan(c.ev); got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestPanIsRecomputedAbsolutely(t *testing.T) {
	v := NewViewport(DefaultGeometry())
	v.SetPan(20, 10)
	if !v.PanStart(gesture.Event{X: 100, Y: 100, Button: gesture.ButtonMiddle}) {
		t.Fatal("pan did not start")
	}
	if !v.Panning() {
		t.Error("panning flag not set")
	}
	v.PanMove(gesture.Event{X: 150, Y: 130})
	v.PanMove(gesture.Event{X: 160, Y: 130})
	s := v.State()
	if s.PanX != 80 || s.PanY != 40 {
		t.Errorf("pan: got (%v,%v), want (80,40)", s.PanX, s.PanY)
	}
	if v.PanMove(gesture.Event{PointerID: 3, X: 0, Y: 0}) {
		t.Error("another pointer moved the pan")
	}
	v.PanEnd()
	if v.Panning() {
		t.Error("panning flag outlived PanEnd")
	}
	if v.PanMove(gesture.Event{X: 500, Y: 500}) {
		t.Error("move after PanEnd changed pan")
	}
}

func TestPlacementAnchor(t *testing.T) {
	v := NewViewport(DefaultGeometry())
	v.SetViewSize(800, 600)
	if got := v.PlacementAnchor(); got != (state.Point{X: 1992, Y: 1992}) {
		t.Errorf("anchor at rest: %+v", got)
	}
	v.SetPan(-240, -240)
	if got := v.PlacementAnchor(); got != (state.Point{X: 2232, Y: 2232}) {
		t.Errorf("anchor after pan: %+v", got)
	}
	v.SetZoom(2)
	if got := v.PlacementAnchor(); got != (state.Point{X: 2112, Y: 2112}) {
		t.Errorf("anchor zoomed: %+v", got)
	}
}

func TestResetAnimatesHome(t *testing.T) {
	v := NewViewport(DefaultGeometry())
	v.SetZoom(2.5)
	v.SetPan(300, -120)
	v.Reset(0.4)
	if !v.Animating() {
		t.Fatal("reset did not start an animation")
	}
	if !v.Step(0.1) {
		t.Error("animation finished after one short step")
	}
	mid := v.State()
	if mid.Zoom >= 2.5 || mid.Zoom <= 1 {
		t.Errorf("mid zoom not between endpoints: %v", mid.Zoom)
	}
	for i := 0; i < 100 && v.Step(0.1); i++ {
	}
	if v.Animating() {
		t.Fatal("animation never finished")
	}
	s := v.State()
	if math.Abs(s.Zoom-1) > 1e-3 || math.Abs(s.PanX) > 1e-3 || math.Abs(s.PanY) > 1e-3 {
		t.Errorf("end state: %+v", s)
	}
}

func TestPanStartCancelsAnimation(t *testing.T) {
	v := NewViewport(DefaultGeometry())
	v.SetPan(100, 100)
	v.Reset(1)
	v.PanStart(gesture.Event{Button: gesture.ButtonMiddle})
	if v.Animating() {
		t.Error("pan did not cancel the animation")
	}
	if v.Step(0.5) {
		t.Error("Step ran a cancelled animation")
	}
}

func TestWheelCancelsAnimation(t *testing.T) {
	v := NewViewport(DefaultGeometry())
	v.SetZoom(2)
	v.Reset(1)
	v.HandleWheel(-1)
	if v.Animating() {
		t.Fatal("wheel did not cancel the animation")
	}
	if v.Step(0.1) {
		t.Error("Step ran a cancelled animation")
	}
	if z := v.Zoom(); math.Abs(z-2.2) > 1e-9 {
		t.Errorf("zoom after wheel: got %v, want 2.2", z)
	}

	v.Reset(1)
	v.HandleWheel(0)
	if !v.Animating() {
		t.Error("an ignored wheel event stopped the animation")
	}
}
