package ui

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"slices"
	"strings"

	"VisionBoard/internal/export"
	"VisionBoard/internal/imageimport"
	"VisionBoard/internal/state"
	palette "VisionBoard/internal/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"
)

// exportScale is the pixel density of PNG exports.
const exportScale = 2.0

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".tif", ".tiff"}

// colorSwatch is a tappable square of one note colour.
type colorSwatch struct {
	widget.BaseWidget
	Hex      string
	OnTapped func(string)
}

func newColorSwatch(hex string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Hex: hex, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(palette.NoteColor(s.Hex))
	rect.SetMinSize(fyne.NewSize(32, 32))
	rect.CornerRadius = 6

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1
	border.CornerRadius = 6

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(*fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Hex)
	}
}

// addMenu builds the popup content for creating a note: a shape picker
// and one swatch per palette colour.
func (s *shell) addMenu() fyne.CanvasObject {
	names := make([]string, len(state.NoteVariants))
	for i, v := range state.NoteVariants {
		names[i] = string(v)
	}
	shape := widget.NewSelect(names, func(v string) { s.variant = state.Variant(v) })
	shape.SetSelected(string(s.variant))

	swatches := container.NewGridWithColumns(5)
	for _, hex := range palette.NotePalette {
		swatches.Add(newColorSwatch(hex, s.addNote))
	}
	return container.NewVBox(widget.NewLabel("Shape"), shape, widget.NewLabel("Colour"), swatches)
}

func (s *shell) addNote(hex string) {
	s.closeMenu()
	s.ctrl.AddNote(s.variant, hex)
}

func (s *shell) showMenu(anchor fyne.CanvasObject) {
	if s.menu == nil {
		s.menu = widget.NewPopUp(s.addMenu(), s.win.Canvas())
	}
	pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(anchor)
	s.menu.ShowAtPosition(pos.AddXY(0, anchor.Size().Height))
}

func (s *shell) closeMenu() {
	if s.menu != nil {
		s.menu.Hide()
	}
}

// importImage asks for an image file and adds it once decoded.
func (s *shell) importImage() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			s.fail("open image", err)
			return
		}
		if r == nil {
			return
		}
		s.loadImage(r, r.URI().Name())
	}, s.win)
	d.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	d.Show()
}

// loadImage decodes r off the UI goroutine. The import stays in
// s.pending until it lands or the window closes.
func (s *shell) loadImage(r io.ReadCloser, name string) {
	ctx, cancel := context.WithCancel(context.Background())
	key := s.nextImport
	s.nextImport++
	s.pending[key] = cancel
	s.status.SetMessage("Loading " + name + "…")
	imageimport.Start(ctx, r, s.cfg.Canvas.ImageMaxSize, func(res imageimport.Result, err error) {
		fyne.Do(func() { s.finishImport(key, name, res, err) })
	})
}

// finishImport drops a completed import from s.pending and adds it,
// unless the window closed meanwhile.
func (s *shell) finishImport(key int, name string, res imageimport.Result, err error) {
	cancel, ok := s.pending[key]
	if !ok {
		log.WithField("name", name).Debug("import finished after close")
		return
	}
	delete(s.pending, key)
	cancel()
	s.imported(name, res, err)
}

// dropFiles imports every image file dropped on the window.
func (s *shell) dropFiles(_ fyne.Position, uris []fyne.URI) {
	for _, u := range uris {
		if !slices.Contains(imageExtensions, strings.ToLower(u.Extension())) {
			log.WithField("uri", u.String()).Debug("ignoring dropped file")
			continue
		}
		r, err := storage.Reader(u)
		if err != nil {
			s.fail("open "+u.Name(), err)
			continue
		}
		s.loadImage(r, u.Name())
	}
}

func (s *shell) imported(name string, res imageimport.Result, err error) {
	if err != nil {
		s.fail("import "+name, err)
		return
	}
	id := s.ctrl.AddImage(res.Payload, res.Size)
	s.board.SetImage(id, res.Thumb)
	s.status.SetMessage("Added " + name)
}

// exportBoard asks for a destination and writes the board as PDF or PNG,
// depending on ext.
func (s *shell) exportBoard(ext string) {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			s.fail("export", err)
			return
		}
		if w == nil {
			return
		}
		name := w.URI().Name()
		if err := s.writeExport(w, ext); err != nil {
			s.fail("export "+name, err)
			return
		}
		s.status.SetMessage("Exported " + name)
	}, s.win)
	d.SetFileName("board" + ext)
	d.SetFilter(storage.NewExtensionFileFilter([]string{ext}))
	d.Show()
}

func (s *shell) writeExport(w io.WriteCloser, ext string) error {
	items := s.store.Items()
	pal := s.board.Palette()
	var err error
	switch strings.ToLower(ext) {
	case ".pdf":
		err = export.PDF(w, items, pal)
	case ".png":
		err = export.PNG(w, items, pal, exportScale)
	default:
		err = fmt.Errorf("unknown export format %q", ext)
	}
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}

func (s *shell) fail(op string, err error) {
	log.WithError(err).Error(op)
	s.status.SetMessage(op + " failed")
	dialog.ShowError(err, s.win)
}

func (s *shell) setTheme(name string) {
	n, err := palette.Parse(name)
	if err != nil {
		s.fail("theme", err)
		return
	}
	p := palette.Lookup(n)
	s.board.SetPalette(p)
	s.app.Settings().SetTheme(palette.Fyne(p))
}

func (s *shell) toolbar() fyne.CanvasObject {
	var add *widget.Button
	add = widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), func() { s.showMenu(add) })
	add.Importance = widget.HighImportance

	names := make([]string, len(palette.Names))
	for i, n := range palette.Names {
		names[i] = string(n)
	}
	themes := widget.NewSelect(names, s.setTheme)
	themes.SetSelected(string(s.board.Palette().Name))

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.FileImageIcon(), s.importImage),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ViewRestoreIcon(), s.board.ResetView),
		widget.NewToolbarAction(theme.ViewFullScreenIcon(), s.toggleFull),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { s.exportBoard(".pdf") }),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), func() { s.exportBoard(".png") }),
	)

	return container.NewHBox(
		add,
		tb,
		layout.NewSpacer(),
		widget.NewLabel("Theme:"),
		themes,
	)
}
