package export

import (
	"bytes"
	"fmt"
	"image/png"
	"io"

	"VisionBoard/internal/imageimport"
	"VisionBoard/internal/state"
	"VisionBoard/internal/theme"

	"github.com/jung-kurt/gofpdf"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// PDF writes items as a single page sized to their bounding box, one point
// per logical unit.
func PDF(w io.Writer, items []state.BoardItem, pal theme.Palette) error {
	area, err := Area(items)
	if err != nil {
		return err
	}
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: area.Width, Ht: area.Height},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	bg := pal.Background
	p.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
	p.Rect(0, 0, area.Width, area.Height, "F")

	p.AddUTF8FontFromBytes(pdfFont, "", goregular.TTF)
	p.AddUTF8FontFromBytes(pdfFont, "B", gobold.TTF)
	p.SetFont(pdfFont, "B", 12)
	for _, it := range items {
		r := it.Bounds()
		r.X -= area.X
		r.Y -= area.Y
		if it.Variant == state.VariantImage {
			pdfImage(p, it, r)
			continue
		}
		c := theme.NoteColor(it.Color)
		b := pal.NoteBorder
		p.SetFillColor(int(c.R), int(c.G), int(c.B))
		p.SetDrawColor(int(b.R), int(b.G), int(b.B))
		p.SetLineWidth(1)
		p.Polygon(pdfPoints(outline(it.Variant, r)), "DF")
		if it.Variant == state.VariantFold {
			p.SetFillColor(int(c.R)*85/100, int(c.G)*85/100, int(c.B)*85/100)
			p.Polygon(pdfPoints(foldCorner(r)), "F")
		}
		if it.Content.Text != "" {
			// notes keep their light fill in every theme
			t := theme.Lookup(theme.Classic).Text
			p.SetTextColor(int(t.R), int(t.G), int(t.B))
			p.SetXY(r.X+12, r.Y+12)
			p.MultiCell(r.Width-24, 15, it.Content.Text, "", "L", false)
		}
	}
	if err := p.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return p.Output(w)
}

// pdfFont is the embedded UTF-8 family used for note text.
const pdfFont = "Go"

func pdfPoints(pts []pt) []gofpdf.PointType {
	out := make([]gofpdf.PointType, len(pts))
	for i, q := range pts {
		out[i] = gofpdf.PointType{X: q.X, Y: q.Y}
	}
	return out
}

// pdfImage embeds an image item. gofpdf reads PNG, JPEG and GIF natively;
// other formats are re-encoded as PNG first.
func pdfImage(p *gofpdf.Fpdf, it state.BoardItem, r state.Rect) {
	img := it.Content.Image
	if img == nil {
		return
	}
	data, kind := img.Data, ""
	switch img.Format {
	case "png":
		kind = "PNG"
	case "jpeg":
		kind = "JPG"
	case "gif":
		kind = "GIF"
	default:
		m, err := imageimport.Thumbnail(*img, it.Size)
		if err != nil {
			log.WithError(err).WithField("id", it.ID).Warn("skip image in pdf export")
			return
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, m); err != nil {
			log.WithError(err).WithField("id", it.ID).Warn("skip image in pdf export")
			return
		}
		data, kind = buf.Bytes(), "PNG"
	}
	opts := gofpdf.ImageOptions{ImageType: kind}
	p.RegisterImageOptionsReader(it.ID, opts, bytes.NewReader(data))
	p.ImageOptions(it.ID, r.X, r.Y, r.Width, r.Height, false, opts, 0, "")
}
