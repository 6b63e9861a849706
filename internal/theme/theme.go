// Package theme holds the board's visual styles and a Fyne theme built
// from them.
package theme

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Name identifies a built-in style.
type Name string

const (
	Classic Name = "classic"
	Pop     Name = "pop"
	Dark    Name = "dark"
)

// Names lists the styles in switcher order.
var Names = []Name{Pop, Classic, Dark}

// ErrUnknown is returned by Parse for a name that is not a built-in style.
var ErrUnknown = errors.New("unknown theme")

// Palette is the colour set a board style draws with.
type Palette struct {
	Name Name

	Background color.NRGBA
	// GridX and GridY colour the vertical and horizontal grid lines. Their
	// alpha is GridAlpha.
	GridX, GridY color.NRGBA
	GridAlpha    float64

	Text        color.NRGBA
	NoteBorder  color.NRGBA
	NoteShadow  color.NRGBA
	Selection   color.NRGBA
	Handle      color.NRGBA
	DeleteFill  color.NRGBA
	PaperRule   color.NRGBA
	ImageMatte  color.NRGBA
	StatusText  color.NRGBA
	DarkVariant bool
}

// NotePalette is the colour choice offered for new notes.
var NotePalette = []string{
	"#FFEFD5", "#FDE68A", "#BBF7D0", "#FBCFE8", "#BAE6FD",
	"#DDD6FE", "#FCA5A5", "#F5F5F4", "#E2E8F0", "#DCFCE7",
}

// Parse resolves a style name, case-insensitively.
func Parse(s string) (Name, error) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	switch n {
	case Classic, Pop, Dark:
		return n, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknown, s)
}

// Lookup returns the palette of a style. Unknown names get Classic.
func Lookup(n Name) Palette {
	switch n {
	case Pop:
		return Palette{
			Name:       Pop,
			Background: hex("#FFFBF5"),
			GridX:      withAlpha(hex("#FB7185"), 0.08),
			GridY:      withAlpha(hex("#93C5FD"), 0.08),
			GridAlpha:  0.08,
			Text:       hex("#000000"),
			NoteBorder: hex("#FFFFFF"),
			NoteShadow: color.NRGBA{A: 38},
			Selection:  hex("#EC4899"),
			Handle:     hex("#A855F7"),
			DeleteFill: hex("#EF4444"),
			PaperRule:  hex("#E2E8F0"),
			ImageMatte: hex("#FFFFFF"),
			StatusText: hex("#64748B"),
		}
	case Dark:
		return Palette{
			Name:        Dark,
			Background:  hex("#1A1F2E"),
			GridX:       withAlpha(hex("#64748B"), 0.25),
			GridY:       withAlpha(hex("#64748B"), 0.25),
			GridAlpha:   0.25,
			Text:        hex("#F1F5F9"),
			NoteBorder:  hex("#334155"),
			NoteShadow:  color.NRGBA{A: 90},
			Selection:   hex("#38BDF8"),
			Handle:      hex("#94A3B8"),
			DeleteFill:  hex("#DC2626"),
			PaperRule:   hex("#334155"),
			ImageMatte:  hex("#1E293B"),
			StatusText:  hex("#94A3B8"),
			DarkVariant: true,
		}
	}
	return Palette{
		Name:       Classic,
		Background: hex("#FFFFFF"),
		GridX:      withAlpha(hex("#94A3B8"), 0.12),
		GridY:      withAlpha(hex("#94A3B8"), 0.12),
		GridAlpha:  0.12,
		Text:       hex("#000000"),
		NoteBorder: hex("#E2E8F0"),
		NoteShadow: color.NRGBA{A: 50},
		Selection:  hex("#0EA5E9"),
		Handle:     hex("#64748B"),
		DeleteFill: hex("#EF4444"),
		PaperRule:  hex("#CBD5E1"),
		ImageMatte: hex("#FFFFFF"),
		StatusText: hex("#64748B"),
	}
}

// ParseColor reads #RGB, #RRGGBB or #RRGGBBAA.
func ParseColor(s string) (color.NRGBA, error) {
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, fmt.Errorf("color %q must start with #", s)
	}
	h := s[1:]
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q has invalid length", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// NoteColor parses an item colour, falling back to the first palette entry.
func NoteColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		c, _ = ParseColor(NotePalette[0])
	}
	return c
}

func hex(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(a*255 + 0.5)
	return c
}
