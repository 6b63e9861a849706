package export

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"VisionBoard/internal/imageimport"
	"VisionBoard/internal/state"
	"VisionBoard/internal/theme"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const gridStep = 24.0

// MaxPixels caps the longer side of a PNG export. Boards wider than that
// at the requested scale are rendered at a lower scale.
const MaxPixels = 8192

// PNG rasterises items at scale pixels per logical unit.
func PNG(w io.Writer, items []state.BoardItem, pal theme.Palette, scale float64) error {
	dc, err := render(items, pal, scale)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

func render(items []state.BoardItem, pal theme.Palette, scale float64) (*gg.Context, error) {
	area, err := Area(items)
	if err != nil {
		return nil, err
	}
	scale = fitScale(area, scale)
	w := int(math.Ceil(area.Width * scale))
	h := int(math.Ceil(area.Height * scale))
	dc := gg.NewContext(w, h)
	dc.SetColor(pal.Background)
	dc.Clear()

	dc.Scale(scale, scale)
	dc.Translate(-area.X, -area.Y)
	drawGrid(dc, area, pal)

	face, err := noteFace()
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(face)
	for _, it := range items {
		drawItem(dc, it, pal, scale)
	}
	return dc, nil
}

// fitScale returns scale, or a smaller one that keeps the longer side of
// area within MaxPixels.
func fitScale(area state.Rect, scale float64) float64 {
	if scale <= 0 {
		scale = 1
	}
	if long := max(area.Width, area.Height); long*scale > MaxPixels {
		// one pixel of slack for the ceil in render
		scale = (MaxPixels - 1) / long
		log.WithFields(log.Fields{"width": area.Width, "height": area.Height, "scale": scale}).Warn("png export scaled down")
	}
	return scale
}

func noteFace() (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: 14, DPI: 72, Hinting: font.HintingFull}), nil
}

func drawGrid(dc *gg.Context, area state.Rect, pal theme.Palette) {
	dc.SetLineWidth(1)
	dc.SetColor(pal.GridX)
	for x := math.Ceil(area.X/gridStep) * gridStep; x <= area.X+area.Width; x += gridStep {
		dc.DrawLine(x, area.Y, x, area.Y+area.Height)
	}
	dc.Stroke()
	dc.SetColor(pal.GridY)
	for y := math.Ceil(area.Y/gridStep) * gridStep; y <= area.Y+area.Height; y += gridStep {
		dc.DrawLine(area.X, y, area.X+area.Width, y)
	}
	dc.Stroke()
}

func path(dc *gg.Context, pts []pt) {
	dc.NewSubPath()
	for i, q := range pts {
		if i == 0 {
			dc.MoveTo(q.X, q.Y)
			continue
		}
		dc.LineTo(q.X, q.Y)
	}
	dc.ClosePath()
}

func drawItem(dc *gg.Context, it state.BoardItem, pal theme.Palette, scale float64) {
	r := it.Bounds()
	if it.Variant == state.VariantImage {
		drawImage(dc, it, r, scale)
		return
	}
	body := outline(it.Variant, r)

	dc.Push()
	dc.Translate(0, 4)
	path(dc, body)
	dc.SetColor(pal.NoteShadow)
	dc.Fill()
	dc.Pop()

	path(dc, body)
	dc.SetColor(theme.NoteColor(it.Color))
	dc.FillPreserve()
	dc.SetColor(pal.NoteBorder)
	dc.SetLineWidth(1)
	dc.Stroke()

	if it.Variant == state.VariantFold {
		path(dc, foldCorner(r))
		dc.SetColor(color.NRGBA{A: 38})
		dc.Fill()
	}
	if it.Content.Text != "" {
		dc.SetColor(theme.Lookup(theme.Classic).Text)
		dc.DrawStringWrapped(it.Content.Text, r.X+12, r.Y+12, 0, 0, r.Width-24, 1.4, gg.AlignLeft)
	}
}

func drawImage(dc *gg.Context, it state.BoardItem, r state.Rect, scale float64) {
	if it.Content.Image == nil {
		return
	}
	px := state.Size{
		Width:  int(math.Round(r.Width * scale)),
		Height: int(math.Round(r.Height * scale)),
	}
	img, err := imageimport.Thumbnail(*it.Content.Image, px)
	if err != nil {
		log.WithError(err).WithField("id", it.ID).Warn("skip image in png export")
		return
	}
	dc.Push()
	path(dc, roundedRect(r, cornerRadius))
	dc.Clip()
	dc.Scale(1/scale, 1/scale)
	dc.DrawImage(img, int(math.Round(r.X*scale)), int(math.Round(r.Y*scale)))
	dc.ResetClip()
	dc.Pop()
}
