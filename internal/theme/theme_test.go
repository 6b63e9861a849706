package theme

import (
	"errors"
	"image/color"
	"testing"

	fynetheme "fyne.io/fyne/v2/theme"
)

func TestParse(t *testing.T) {
	for in, want := range map[string]Name{"pop": Pop, " Dark ": Dark, "CLASSIC": Classic} {
		got, err := Parse(in)
		if err != nil || got != want {
			t.Errorf("Parse(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := Parse("neon"); !errors.Is(err, ErrUnknown) {
		t.Errorf("unknown theme error: %v", err)
	}
}

func TestGridAlpha(t *testing.T) {
	cases := map[Name]float64{Pop: 0.08, Dark: 0.25, Classic: 0.12, "other": 0.12}
	for n, want := range cases {
		if got := Lookup(n).GridAlpha; got != want {
			t.Errorf("%s: got %v, want %v", n, got, want)
		}
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string]color.NRGBA{
		"#fff":      {255, 255, 255, 255},
		"#FFEFD5":   {0xFF, 0xEF, 0xD5, 0xFF},
		"#11223344": {0x11, 0x22, 0x33, 0x44},
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		if err != nil || got != want {
			t.Errorf("ParseColor(%q) = %v, %v", in, got, err)
		}
	}
	for _, bad := range []string{"fff", "#ff", "#gggggg"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) accepted", bad)
		}
	}
	if NoteColor("nope") != (color.NRGBA{0xFF, 0xEF, 0xD5, 0xFF}) {
		t.Error("NoteColor fallback")
	}
}

func TestFyneThemeFollowsPalette(t *testing.T) {
	dark := Fyne(Lookup(Dark))
	if got := dark.Color(fynetheme.ColorNameBackground, fynetheme.VariantLight); got != Lookup(Dark).Background {
		t.Errorf("dark background: %v", got)
	}
	pop := Fyne(Lookup(Pop))
	if got := pop.Color(fynetheme.ColorNamePrimary, fynetheme.VariantLight); got != Lookup(Pop).Selection {
		t.Errorf("pop primary: %v", got)
	}
}
