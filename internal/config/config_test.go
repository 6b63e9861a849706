package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"VisionBoard/internal/canvas"
	"VisionBoard/internal/gesture"
	"VisionBoard/internal/theme"
)

func TestDefaultsMatchGeometry(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if got, want := c.Geometry(), canvas.DefaultGeometry(); got != want {
		t.Errorf("geometry: got %+v, want %+v", got, want)
	}
	if c.ThemeName() != theme.Pop {
		t.Errorf("theme: %q", c.ThemeName())
	}
}

func TestParse(t *testing.T) {
	input := `
[canvas]
grid_size = 32.0
max_zoom = 4.0
pan_modifier = "Ctrl"
resize_follows_zoom = true

[app]
theme = "dark"
window_width = 900.0
`
	c, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	g := c.Geometry()
	if g.GridSize != 32 || g.MaxZoom != 4 || g.PanModifier != gesture.ModCtrl || !g.ResizeFollowsZoom {
		t.Errorf("geometry: %+v", g)
	}
	if g.MinZoom != 0.1 || g.OriginX != 2000 {
		t.Errorf("unset keys lost their defaults: %+v", g)
	}
	if c.ThemeName() != theme.Dark || c.App.WindowWidth != 900 || c.App.WindowHeight != 800 {
		t.Errorf("app: %+v", c.App)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]string{
		"zero min zoom":  "[canvas]\nmin_zoom = 0.0",
		"inverted zoom":  "[canvas]\nmin_zoom = 5.0\nmax_zoom = 2.0",
		"zero grid":      "[canvas]\ngrid_size = 0.0",
		"negative item":  "[canvas]\nmin_item_size = -1",
		"bad modifier":   "[canvas]\npan_modifier = \"hyper\"",
		"bad theme":      "[app]\ntheme = \"neon\"",
		"flat zoom step": "[canvas]\nzoom_in_step = 1.0",
	}
	for name, input := range cases {
		if _, err := Parse(strings.NewReader(input)); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: got %v", name, err)
		}
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse(strings.NewReader("[canvas\n"))
	if err == nil || errors.Is(err, ErrInvalid) {
		t.Errorf("syntax error: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Canvas.GridSize != 24 {
		t.Errorf("grid: %v", c.Canvas.GridSize)
	}
}

func TestFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.toml")
	if err := os.WriteFile(path, []byte("[app]\ntheme = \"classic\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvPath, path)
	t.Setenv("DEBUG", "1")

	c, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if c.ThemeName() != theme.Classic || !c.App.Debug {
		t.Errorf("app: %+v", c.App)
	}
}
