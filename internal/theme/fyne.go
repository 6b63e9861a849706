package theme

import (
	"image/color"

	"fyne.io/fyne/v2"
	fynetheme "fyne.io/fyne/v2/theme"
)

// boardTheme adapts a Palette to fyne.Theme; anything the palette does not
// cover comes from the default theme.
type boardTheme struct {
	p Palette
}

// Fyne returns a fyne.Theme for the palette.
func Fyne(p Palette) fyne.Theme {
	return &boardTheme{p: p}
}

func (t *boardTheme) variant() fyne.ThemeVariant {
	if t.p.DarkVariant {
		return fynetheme.VariantDark
	}
	return fynetheme.VariantLight
}

func (t *boardTheme) Color(n fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch n {
	case fynetheme.ColorNamePrimary, fynetheme.ColorNameFocus:
		return t.p.Selection
	case fynetheme.ColorNameBackground:
		if t.p.DarkVariant {
			return t.p.Background
		}
	}
	return fynetheme.DefaultTheme().Color(n, t.variant())
}

func (t *boardTheme) Font(s fyne.TextStyle) fyne.Resource {
	return fynetheme.DefaultTheme().Font(s)
}

func (t *boardTheme) Icon(n fyne.ThemeIconName) fyne.Resource {
	return fynetheme.DefaultTheme().Icon(n)
}

func (t *boardTheme) Size(n fyne.ThemeSizeName) float32 {
	return fynetheme.DefaultTheme().Size(n)
}
