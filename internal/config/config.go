// Package config loads the board's settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"VisionBoard/internal/canvas"
	"VisionBoard/internal/gesture"
	"VisionBoard/internal/theme"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
)

// EnvPath names the environment variable holding the config file path.
const EnvPath = "VISIONBOARD_CONFIG"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Canvas holds the geometry and interaction settings.
type Canvas struct {
	OriginX           float64 `toml:"origin_x"`
	OriginY           float64 `toml:"origin_y"`
	GridSize          float64 `toml:"grid_size"`
	MinZoom           float64 `toml:"min_zoom"`
	MaxZoom           float64 `toml:"max_zoom"`
	ZoomInStep        float64 `toml:"zoom_in_step"`
	ZoomOutStep       float64 `toml:"zoom_out_step"`
	MinItemSize       int     `toml:"min_item_size"`
	ImageMaxSize      int     `toml:"image_max_size"`
	PanModifier       string  `toml:"pan_modifier"`
	ResizeFollowsZoom bool    `toml:"resize_follows_zoom"`
}

// App holds window and appearance settings.
type App struct {
	Theme        string  `toml:"theme"`
	Debug        bool    `toml:"debug"`
	WindowWidth  float32 `toml:"window_width"`
	WindowHeight float32 `toml:"window_height"`
	AppID        string  `toml:"app_id"`
}

// Config is the whole settings file.
type Config struct {
	Canvas Canvas `toml:"canvas"`
	App    App    `toml:"app"`
}

// Default returns the built-in settings.
func Default() *Config {
	g := canvas.DefaultGeometry()
	return &Config{
		Canvas: Canvas{
			OriginX:      g.OriginX,
			OriginY:      g.OriginY,
			GridSize:     g.GridSize,
			MinZoom:      g.MinZoom,
			MaxZoom:      g.MaxZoom,
			ZoomInStep:   g.ZoomInStep,
			ZoomOutStep:  g.ZoomOutStep,
			MinItemSize:  g.MinItemSize,
			ImageMaxSize: 300,
			PanModifier:  "shift",
		},
		App: App{
			Theme:        string(theme.Pop),
			WindowWidth:  1280,
			WindowHeight: 800,
			AppID:        "io.visionboard.app",
		},
	}
}

// Parse decodes TOML from r over the defaults and validates the result.
func Parse(r io.Reader) (*Config, error) {
	c := Default()
	md, err := toml.NewDecoder(r).Decode(c)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	for _, k := range md.Undecoded() {
		log.WithField("key", k.String()).Warn("unknown config key")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		log.WithField("path", path).Debug("no config file, using defaults")
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// FromEnv loads the file named by VISIONBOARD_CONFIG, if any, and applies
// the DEBUG override.
func FromEnv() (*Config, error) {
	c := Default()
	if path := os.Getenv(EnvPath); path != "" {
		var err error
		if c, err = Load(path); err != nil {
			return nil, err
		}
	}
	if os.Getenv("DEBUG") != "" {
		c.App.Debug = true
	}
	return c, nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	cv := c.Canvas
	switch {
	case cv.MinZoom <= 0:
		return fmt.Errorf("%w: min_zoom must be positive, got %v", ErrInvalid, cv.MinZoom)
	case cv.MinZoom > cv.MaxZoom:
		return fmt.Errorf("%w: min_zoom %v exceeds max_zoom %v", ErrInvalid, cv.MinZoom, cv.MaxZoom)
	case cv.GridSize <= 0:
		return fmt.Errorf("%w: grid_size must be positive, got %v", ErrInvalid, cv.GridSize)
	case cv.MinItemSize <= 0:
		return fmt.Errorf("%w: min_item_size must be positive, got %d", ErrInvalid, cv.MinItemSize)
	case cv.ImageMaxSize < cv.MinItemSize:
		return fmt.Errorf("%w: image_max_size %d is below min_item_size %d", ErrInvalid, cv.ImageMaxSize, cv.MinItemSize)
	case cv.ZoomInStep <= 1 || cv.ZoomOutStep <= 0 || cv.ZoomOutStep >= 1:
		return fmt.Errorf("%w: zoom steps must satisfy in > 1 and 0 < out < 1", ErrInvalid)
	}
	if _, err := ParseModifier(cv.PanModifier); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := theme.Parse(c.App.Theme); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ParseModifier maps a key name to a modifier bit.
func ParseModifier(s string) (gesture.Modifiers, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shift":
		return gesture.ModShift, nil
	case "ctrl", "control":
		return gesture.ModCtrl, nil
	case "alt", "option":
		return gesture.ModAlt, nil
	case "super", "cmd", "meta":
		return gesture.ModSuper, nil
	}
	return 0, fmt.Errorf("unknown pan modifier %q", s)
}

// Geometry converts the canvas section for the viewport. Call it on a
// validated config.
func (c *Config) Geometry() canvas.Geometry {
	mod, err := ParseModifier(c.Canvas.PanModifier)
	if err != nil {
		mod = gesture.ModShift
	}
	return canvas.Geometry{
		OriginX:           c.Canvas.OriginX,
		OriginY:           c.Canvas.OriginY,
		GridSize:          c.Canvas.GridSize,
		MinZoom:           c.Canvas.MinZoom,
		MaxZoom:           c.Canvas.MaxZoom,
		ZoomInStep:        c.Canvas.ZoomInStep,
		ZoomOutStep:       c.Canvas.ZoomOutStep,
		PanModifier:       mod,
		MinItemSize:       c.Canvas.MinItemSize,
		ResizeFollowsZoom: c.Canvas.ResizeFollowsZoom,
	}
}

// ThemeName returns the configured style.
func (c *Config) ThemeName() theme.Name {
	n, err := theme.Parse(c.App.Theme)
	if err != nil {
		return theme.Classic
	}
	return n
}
