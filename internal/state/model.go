package state

import "math"

// Point is a location in logical grid space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a footprint in logical units.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RoundPoint rounds floating logical coordinates to the grid's integer space.
func RoundPoint(x, y float64) Point {
	return Point{X: int(math.Round(x)), Y: int(math.Round(y))}
}

type Variant string

const (
	VariantRect   Variant = "rect"
	VariantSquare Variant = "square"
	VariantRound  Variant = "round"
	VariantTorn   Variant = "torn"
	VariantFold   Variant = "fold"
	VariantCloud  Variant = "cloud"
	VariantTab    Variant = "tab"
	VariantImage  Variant = "image"
)

// NoteVariants lists the text variants in menu order.
var NoteVariants = []Variant{
	VariantRect, VariantSquare, VariantRound, VariantTorn,
	VariantFold, VariantCloud, VariantTab,
}

// Valid reports whether v is one of the known shape kinds.
func (v Variant) Valid() bool {
	if v == VariantImage {
		return true
	}
	for _, n := range NoteVariants {
		if n == v {
			return true
		}
	}
	return false
}

// DefaultSize is the footprint a freshly created note of this variant gets.
// Image notes are sized from their payload instead.
func (v Variant) DefaultSize() Size {
	if v == VariantRect {
		return Size{Width: 300, Height: 200}
	}
	return Size{Width: 200, Height: 200}
}

// ImagePayload is an embedded, already-encoded image.
type ImagePayload struct {
	Format string `json:"format"`
	Data   []byte `json:"data"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Content holds either text or an image, depending on the item's variant.
type Content struct {
	Text  string        `json:"text,omitempty"`
	Image *ImagePayload `json:"image,omitempty"`
}

// BoardItem is one sticky note or image on the board.
type BoardItem struct {
	ID       string  `json:"id"`
	Position Point   `json:"position"`
	Size     Size    `json:"size"`
	Color    string  `json:"color"`
	Content  Content `json:"content"`
	Variant  Variant `json:"variant"`
}

// Bounds returns the item's footprint as a logical-space rectangle.
func (it BoardItem) Bounds() Rect {
	return Rect{
		X:      float64(it.Position.X),
		Y:      float64(it.Position.Y),
		Width:  float64(it.Size.Width),
		Height: float64(it.Size.Height),
	}
}

// Equal compares two items by value, including image bytes.
func (it BoardItem) Equal(other BoardItem) bool {
	if it.ID != other.ID || it.Position != other.Position || it.Size != other.Size ||
		it.Color != other.Color || it.Variant != other.Variant ||
		it.Content.Text != other.Content.Text {
		return false
	}
	a, b := it.Content.Image, other.Content.Image
	if a == nil || b == nil {
		return a == b
	}
	return a.Format == b.Format && a.Width == b.Width && a.Height == b.Height &&
		string(a.Data) == string(b.Data)
}
