package ui

import (
	"image/color"
	"strings"

	engine "VisionBoard/internal/canvas"
	"VisionBoard/internal/state"
	palette "VisionBoard/internal/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
)

const (
	minGridPixels = 8
	notePadding   = 12
	noteRadius    = 16
	shadowOffset  = 4
	textSize      = 14
)

type boardRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.board.ctrl.Viewport().SetViewSize(float64(size.Width), float64(size.Height))
	r.rebuild(size)
}

func (r *boardRenderer) MinSize() fyne.Size { return fyne.NewSize(300, 300) }

func (r *boardRenderer) Refresh() {
	r.rebuild(r.board.Size())
	canvas.Refresh(r.board)
}

func (r *boardRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *boardRenderer) Destroy() {}

// rebuild regenerates every drawn object from the controller's current
// transient geometry.
func (r *boardRenderer) rebuild(size fyne.Size) {
	b := r.board
	pal := b.pal
	tr := b.ctrl.Viewport().Transform()
	zoom := float32(tr.Zoom)
	store := b.ctrl.Store()
	selected, editing := store.Selected(), store.Editing()

	r.background.FillColor = pal.Background
	r.background.Resize(size)
	objs := []fyne.CanvasObject{r.background}
	objs = append(objs, gridLines(tr, b.ctrl.Viewport().Geometry().GridSize, size, pal)...)

	view := tr.VisibleBounds()
	items := store.Items()
	live := make(map[string]bool, len(items))
	for _, it := range items {
		live[it.ID] = true
		bounds, ok := b.ctrl.Bounds(it.ID)
		if !ok || !bounds.Intersects(view) {
			continue
		}
		x, y := tr.LogicalToScreen(bounds.X, bounds.Y)
		box := rect{
			pos:  fyne.NewPos(float32(x), float32(y)),
			size: fyne.NewSize(float32(bounds.Width)*zoom, float32(bounds.Height)*zoom),
		}
		objs = append(objs, r.item(it, box, zoom, it.ID == editing)...)
		if it.ID == selected {
			objs = append(objs, r.selection(it, box, zoom, tr)...)
		}
	}
	for id := range b.images {
		if !live[id] {
			delete(b.images, id)
		}
	}

	b.syncEditor(editing, tr)
	objs = append(objs, b.editor)
	r.objects = objs

	if b.OnStatus != nil {
		b.OnStatus(store.Len(), tr.Zoom)
	}
}

type rect struct {
	pos  fyne.Position
	size fyne.Size
}

func gridLines(tr engine.Transform, grid float64, size fyne.Size, pal palette.Palette) []fyne.CanvasObject {
	if grid <= 0 {
		return nil
	}
	for grid*tr.Zoom < minGridPixels {
		grid *= 2
	}
	view := tr.VisibleBounds()
	var out []fyne.CanvasObject
	for lx := engine.Snap(view.X, grid) - grid; lx <= view.X+view.Width+grid; lx += grid {
		sx, _ := tr.LogicalToScreen(lx, 0)
		l := canvas.NewLine(pal.GridX)
		l.StrokeWidth = 1
		l.Position1 = fyne.NewPos(float32(sx), 0)
		l.Position2 = fyne.NewPos(float32(sx), size.Height)
		out = append(out, l)
	}
	for ly := engine.Snap(view.Y, grid) - grid; ly <= view.Y+view.Height+grid; ly += grid {
		_, sy := tr.LogicalToScreen(0, ly)
		l := canvas.NewLine(pal.GridY)
		l.StrokeWidth = 1
		l.Position1 = fyne.NewPos(0, float32(sy))
		l.Position2 = fyne.NewPos(size.Width, float32(sy))
		out = append(out, l)
	}
	return out
}

func place(o fyne.CanvasObject, pos fyne.Position, size fyne.Size) fyne.CanvasObject {
	o.Move(pos)
	o.Resize(size)
	return o
}

func (r *boardRenderer) item(it state.BoardItem, box rect, zoom float32, editing bool) []fyne.CanvasObject {
	pal := r.board.pal
	fill := palette.NoteColor(it.Color)
	radius := noteRadius * zoom
	shadowPos := box.pos.AddXY(0, shadowOffset*zoom)
	var out []fyne.CanvasObject

	switch it.Variant {
	case state.VariantImage:
		frame := canvas.NewRectangle(pal.ImageMatte)
		frame.CornerRadius = radius
		frame.StrokeColor = pal.NoteBorder
		frame.StrokeWidth = 1
		out = append(out, place(frame, box.pos, box.size))
		if img := r.board.imageFor(it); img != nil {
			out = append(out, place(img, box.pos, box.size))
		}
		return append(out, r.handle(box, zoom))

	case state.VariantRound, state.VariantCloud:
		shadow := canvas.NewCircle(pal.NoteShadow)
		body := canvas.NewCircle(fill)
		body.StrokeColor = pal.NoteBorder
		body.StrokeWidth = 1
		out = append(out, place(shadow, shadowPos, box.size), place(body, box.pos, box.size))

	case state.VariantTorn:
		h := box.size.Height * 0.865
		shadow := canvas.NewRectangle(pal.NoteShadow)
		shadow.CornerRadius = radius
		body := canvas.NewRectangle(fill)
		body.CornerRadius = radius
		out = append(out, place(shadow, shadowPos, fyne.NewSize(box.size.Width, h)),
			place(body, box.pos, fyne.NewSize(box.size.Width, h)))
		out = append(out, tornEdge(box, fill)...)

	default:
		shadow := canvas.NewRectangle(pal.NoteShadow)
		shadow.CornerRadius = radius
		body := canvas.NewRectangle(fill)
		body.CornerRadius = radius
		body.StrokeColor = pal.NoteBorder
		body.StrokeWidth = 1
		out = append(out, place(shadow, shadowPos, box.size), place(body, box.pos, box.size))
	}

	switch it.Variant {
	case state.VariantFold:
		s := min(64*zoom, box.size.Width/3, box.size.Height/3)
		crease := canvas.NewLine(color.NRGBA{A: 60})
		crease.StrokeWidth = 2
		crease.Position1 = box.pos.AddXY(box.size.Width-s, 0)
		crease.Position2 = box.pos.AddXY(box.size.Width, s)
		out = append(out, crease)
	case state.VariantTab:
		pill := canvas.NewRectangle(color.NRGBA{R: 255, G: 255, B: 255, A: 204})
		pill.CornerRadius = 8 * zoom
		pill.StrokeColor = pal.NoteBorder
		pill.StrokeWidth = 1
		w, h := 40*zoom, 16*zoom
		out = append(out, place(pill, box.pos.AddXY((box.size.Width-w)/2, -h/2), fyne.NewSize(w, h)))
		label := canvas.NewText("tab", color.NRGBA{R: 71, G: 85, B: 105, A: 255})
		label.TextSize = 10 * zoom
		label.Alignment = fyne.TextAlignCenter
		out = append(out, place(label, box.pos.AddXY((box.size.Width-w)/2, -h/2), fyne.NewSize(w, h)))
	}

	if !editing && it.Content.Text != "" {
		out = append(out, noteText(it.Content.Text, box, zoom, pal)...)
	}
	return append(out, r.handle(box, zoom))
}

// tornEdge draws the zigzag below a torn note's body.
func tornEdge(box rect, fill color.Color) []fyne.CanvasObject {
	var out []fyne.CanvasObject
	step := box.size.Width / 20
	for i := 0; i < 20; i++ {
		top, low := box.size.Height*0.85, box.size.Height*0.88
		a, c := top, low
		if i%2 == 1 {
			a, c = low, top
		}
		l := canvas.NewLine(fill)
		l.StrokeWidth = 2
		l.Position1 = box.pos.AddXY(step*float32(i), a)
		l.Position2 = box.pos.AddXY(step*float32(i+1), c)
		out = append(out, l)
	}
	return out
}

func noteText(text string, box rect, zoom float32, pal palette.Palette) []fyne.CanvasObject {
	size := textSize * zoom
	pad := notePadding * zoom
	style := fyne.TextStyle{Bold: true}
	width := box.size.Width - 2*pad
	lineHeight := size * 1.4
	maxLines := int((box.size.Height - 2*pad) / lineHeight)
	var out []fyne.CanvasObject
	for i, line := range wrapLines(text, width, size, style) {
		if i >= maxLines {
			break
		}
		t := canvas.NewText(line, pal.Text)
		t.TextSize = size
		t.TextStyle = style
		t.Move(box.pos.AddXY(pad, pad+float32(i)*lineHeight))
		out = append(out, t)
	}
	return out
}

// wrapLines breaks text into lines no wider than width, splitting on
// whitespace and keeping explicit newlines.
func wrapLines(text string, width, size float32, style fyne.TextStyle) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			next := cur + " " + w
			if fyne.MeasureText(next, size, style).Width > width {
				lines = append(lines, cur)
				cur = w
				continue
			}
			cur = next
		}
		lines = append(lines, cur)
	}
	return lines
}

func (r *boardRenderer) handle(box rect, zoom float32) fyne.CanvasObject {
	s := engine.HandleSize * zoom
	h := canvas.NewRectangle(r.board.pal.Handle)
	h.CornerRadius = 4 * zoom
	return place(h, box.pos.AddXY(box.size.Width-s, box.size.Height-s), fyne.NewSize(s, s))
}

func (r *boardRenderer) selection(it state.BoardItem, box rect, zoom float32, tr engine.Transform) []fyne.CanvasObject {
	pal := r.board.pal
	ring := canvas.NewRectangle(color.Transparent)
	ring.StrokeColor = pal.Selection
	ring.StrokeWidth = 2
	ring.CornerRadius = noteRadius * zoom
	out := []fyne.CanvasObject{place(ring, box.pos.SubtractXY(2, 2), box.size.AddWidthHeight(4, 4))}

	del, ok := r.board.ctrl.DeleteButtonBounds(it.ID)
	if !ok {
		return out
	}
	x, y := tr.LogicalToScreen(del.X, del.Y)
	pos := fyne.NewPos(float32(x), float32(y))
	size := fyne.NewSquareSize(float32(del.Width) * zoom)
	dot := canvas.NewCircle(pal.DeleteFill)
	icon := canvas.NewImageFromResource(theme.NewInvertedThemedResource(theme.CancelIcon()))
	icon.FillMode = canvas.ImageFillContain
	inset := size.Width / 5
	return append(out, place(dot, pos, size),
		place(icon, pos.AddXY(inset, inset), size.SubtractWidthHeight(2*inset, 2*inset)))
}

// syncEditor shows the text editor over the note being edited.
func (b *BoardWidget) syncEditor(editing string, tr engine.Transform) {
	it, ok := b.ctrl.Store().Item(editing)
	if editing == "" || !ok || it.Variant == state.VariantImage {
		if b.editID != "" {
			b.editID = ""
			b.editor.Hide()
		}
		return
	}
	if b.editID != editing {
		b.editID = editing
		b.syncing = true
		b.editor.SetText(it.Content.Text)
		b.syncing = false
		b.editor.Show()
		defer b.focus(b.editor)
	}
	bounds, _ := b.ctrl.Bounds(editing)
	zoom := float32(tr.Zoom)
	x, y := tr.LogicalToScreen(bounds.X, bounds.Y)
	pad := 6 * zoom
	handle := engine.HandleSize * zoom
	b.editor.Move(fyne.NewPos(float32(x)+pad, float32(y)+pad))
	b.editor.Resize(fyne.NewSize(
		max(float32(bounds.Width)*zoom-2*pad, 40),
		max(float32(bounds.Height)*zoom-2*pad-handle, 32),
	))
}
