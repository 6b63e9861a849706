package ui

import (
	"image"
	"time"

	engine "VisionBoard/internal/canvas"
	"VisionBoard/internal/gesture"
	"VisionBoard/internal/imageimport"
	"VisionBoard/internal/state"
	palette "VisionBoard/internal/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"
)

const resetSeconds = 0.35

// BoardWidget draws the board and feeds pointer input to the canvas
// controller. All geometry decisions live in the controller; the widget
// only translates Fyne events and paints what the controller reports.
type BoardWidget struct {
	widget.BaseWidget

	ctrl *engine.Controller
	pal  palette.Palette

	editor  *widget.Entry
	editID  string
	syncing bool

	images  map[string]*canvas.Image
	anim    *fyne.Animation
	lastPos fyne.Position

	// OnStatus receives the item count and zoom after every redraw.
	OnStatus func(items int, zoom float64)
	// OnBackground runs after a press on empty canvas cleared the selection.
	OnBackground func()
}

var (
	_ fyne.Widget         = (*BoardWidget)(nil)
	_ fyne.Draggable      = (*BoardWidget)(nil)
	_ fyne.Scrollable     = (*BoardWidget)(nil)
	_ fyne.DoubleTappable = (*BoardWidget)(nil)
	_ fyne.Focusable      = (*BoardWidget)(nil)
	_ desktop.Mouseable   = (*BoardWidget)(nil)
	_ desktop.Hoverable   = (*BoardWidget)(nil)
	_ desktop.Cursorable  = (*BoardWidget)(nil)
)

func NewBoardWidget(ctrl *engine.Controller, pal palette.Palette) *BoardWidget {
	b := &BoardWidget{
		ctrl:   ctrl,
		pal:    pal,
		images: make(map[string]*canvas.Image),
	}
	b.editor = widget.NewMultiLineEntry()
	b.editor.Wrapping = fyne.TextWrapWord
	b.editor.SetPlaceHolder("Write something…")
	b.editor.OnChanged = b.editorChanged
	// Shift+Enter finishes editing.
	b.editor.OnSubmitted = func(string) { ctrl.Store().SetEditing("") }
	b.editor.Hide()

	ctrl.SetRefresh(b.Refresh)
	ctrl.OnBackground = func() {
		if b.OnBackground != nil {
			b.OnBackground()
		}
	}
	b.ExtendBaseWidget(b)
	return b
}

// Controller returns the engine behind the widget.
func (b *BoardWidget) Controller() *engine.Controller { return b.ctrl }

// SetPalette switches the drawing colours.
func (b *BoardWidget) SetPalette(p palette.Palette) {
	b.pal = p
	b.Refresh()
}

// Palette returns the current drawing colours.
func (b *BoardWidget) Palette() palette.Palette { return b.pal }

// Cancel aborts any gesture in progress.
func (b *BoardWidget) Cancel() { b.ctrl.Cancel() }

// ResetView animates the view back to no pan at zoom 1.
func (b *BoardWidget) ResetView() {
	v := b.ctrl.Viewport()
	v.Reset(resetSeconds)
	if b.anim != nil {
		b.anim.Stop()
	}
	var last float32
	b.anim = fyne.NewAnimation(time.Duration(resetSeconds*float64(time.Second)), func(done float32) {
		v.Step((done - last) * resetSeconds)
		last = done
		if done >= 1 {
			for v.Step(resetSeconds) {
			}
		}
	})
	b.anim.Curve = fyne.AnimationLinear
	b.anim.Start()
}

// SetImage caches the display image of an image item.
func (b *BoardWidget) SetImage(id string, img image.Image) {
	ci := canvas.NewImageFromImage(img)
	ci.FillMode = canvas.ImageFillContain
	b.images[id] = ci
	b.Refresh()
}

func (b *BoardWidget) imageFor(it state.BoardItem) *canvas.Image {
	if ci, ok := b.images[it.ID]; ok {
		return ci
	}
	if it.Content.Image == nil {
		return nil
	}
	img, err := imageimport.Thumbnail(*it.Content.Image, state.Size{})
	if err != nil {
		log.WithError(err).WithField("id", it.ID).Warn("cannot draw image")
		return nil
	}
	ci := canvas.NewImageFromImage(img)
	ci.FillMode = canvas.ImageFillContain
	b.images[it.ID] = ci
	return ci
}

func (b *BoardWidget) editorChanged(text string) {
	if b.syncing || b.editID == "" {
		return
	}
	b.ctrl.Store().UpdateText(b.editID, text)
}

func (b *BoardWidget) focus(obj fyne.Focusable) {
	app := fyne.CurrentApp()
	if app == nil {
		return
	}
	if c := app.Driver().CanvasForObject(b); c != nil {
		c.Focus(obj)
	}
}

func pointerEvent(kind gesture.Kind, pos fyne.Position, btn desktop.MouseButton, mod fyne.KeyModifier) gesture.Event {
	return gesture.Event{
		Kind:      kind,
		X:         float64(pos.X),
		Y:         float64(pos.Y),
		Button:    button(btn),
		Modifiers: modifiers(mod),
	}
}

func button(b desktop.MouseButton) gesture.Button {
	switch b {
	case desktop.MouseButtonTertiary:
		return gesture.ButtonMiddle
	case desktop.MouseButtonSecondary:
		return gesture.ButtonSecondary
	}
	return gesture.ButtonPrimary
}

func modifiers(m fyne.KeyModifier) gesture.Modifiers {
	var out gesture.Modifiers
	if m&fyne.KeyModifierShift != 0 {
		out |= gesture.ModShift
	}
	if m&fyne.KeyModifierControl != 0 {
		out |= gesture.ModCtrl
	}
	if m&fyne.KeyModifierAlt != 0 {
		out |= gesture.ModAlt
	}
	if m&fyne.KeyModifierSuper != 0 {
		out |= gesture.ModSuper
	}
	return out
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	ev := pointerEvent(gesture.KindDown, e.Position, e.Button, e.Modifier)
	b.lastPos = e.Position
	hit := b.ctrl.HitTest(ev.X, ev.Y)
	if hit.Target != engine.TargetTextEdit {
		b.focus(b)
	}
	if hit.Target == engine.TargetDelete && ev.Button == gesture.ButtonPrimary && !b.ctrl.Viewport().QualifiesPan(ev) {
		b.ctrl.Delete(hit.ID)
		return
	}
	b.ctrl.PointerDown(ev, hit)
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	b.lastPos = e.Position
	b.ctrl.PointerUp(pointerEvent(gesture.KindUp, e.Position, e.Button, e.Modifier))
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.lastPos = e.Position
	b.ctrl.PointerMove(gesture.Event{Kind: gesture.KindMove, X: float64(e.Position.X), Y: float64(e.Position.Y)})
}

// DragEnd closes whatever the drag opened in case MouseUp was not
// delivered to the widget.
func (b *BoardWidget) DragEnd() {
	if b.ctrl.Router().Busy() || b.ctrl.Viewport().Panning() {
		b.ctrl.PointerUp(gesture.Event{Kind: gesture.KindUp, X: float64(b.lastPos.X), Y: float64(b.lastPos.Y)})
	}
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	b.lastPos = e.Position
	b.ctrl.PointerMove(pointerEvent(gesture.KindMove, e.Position, e.Button, e.Modifier))
}

func (b *BoardWidget) MouseOut() { b.ctrl.PointerLeave() }

func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	// Fyne reports scroll-up as positive DY; the viewport expects wheel
	// deltas where positive means scroll down.
	b.ctrl.Wheel(float64(-e.Scrolled.DY))
}

func (b *BoardWidget) DoubleTapped(e *fyne.PointEvent) {
	hit := b.ctrl.HitTest(float64(e.Position.X), float64(e.Position.Y))
	if hit.Background || hit.Target == engine.TargetDelete {
		return
	}
	it, ok := b.ctrl.Store().Item(hit.ID)
	if !ok || it.Variant == state.VariantImage {
		return
	}
	b.ctrl.Store().Select(hit.ID)
	b.ctrl.Store().SetEditing(hit.ID)
}

func (b *BoardWidget) Cursor() desktop.Cursor {
	if b.ctrl.Viewport().Panning() {
		return desktop.CrosshairCursor
	}
	return desktop.DefaultCursor
}

func (b *BoardWidget) FocusGained() {}
func (b *BoardWidget) FocusLost() {}
func (b *BoardWidget) TypedRune(rune) {}

func (b *BoardWidget) TypedKey(e *fyne.KeyEvent) {
	store := b.ctrl.Store()
	switch e.Name {
	case fyne.KeyDelete, fyne.KeyBackspace:
		if sel := store.Selected(); sel != "" && store.Editing() == "" {
			b.ctrl.Delete(sel)
		}
	case fyne.KeyEscape:
		if store.Editing() != "" {
			store.SetEditing("")
		} else {
			store.ClearSelection()
		}
	}
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardRenderer{board: b}
	r.background = canvas.NewRectangle(b.pal.Background)
	r.rebuild(b.Size())
	return r
}
