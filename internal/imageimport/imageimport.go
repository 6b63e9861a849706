// Package imageimport turns a picked image file into a board payload and a
// display thumbnail.
package imageimport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"

	"VisionBoard/internal/state"

	"github.com/nfnt/resize"
	log "github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxSize bounds the longer side of an imported image's footprint.
const DefaultMaxSize = 300

// ErrUnsupported is returned for data no registered decoder recognises.
var ErrUnsupported = errors.New("unsupported image")

// Result is a decoded import ready to be added to the board.
type Result struct {
	Payload state.ImagePayload
	// Size is the initial footprint: the natural size scaled down to fit
	// the max size, aspect preserved.
	Size state.Size
	// Thumb is the image resampled to Size for drawing.
	Thumb image.Image
}

// FitWithin scales (w, h) down so neither side exceeds limit, keeping the
// aspect ratio. Sizes already within bounds are returned unchanged.
func FitWithin(w, h, limit int) state.Size {
	if w <= 0 || h <= 0 || limit <= 0 || (w <= limit && h <= limit) {
		return state.Size{Width: w, Height: h}
	}
	fw, fh, fl := float64(w), float64(h), float64(limit)
	if w > h {
		return state.Size{Width: limit, Height: int(math.Round(fh / fw * fl))}
	}
	return state.Size{Width: int(math.Round(fw / fh * fl)), Height: limit}
}

// Decode reads an encoded image and builds its Result.
func Decode(r io.Reader, maxSize int) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("read image: %w", err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("decode %s: %w", format, err)
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	size := FitWithin(cfg.Width, cfg.Height, maxSize)
	thumb := img
	if size.Width != cfg.Width || size.Height != cfg.Height {
		thumb = resize.Resize(uint(size.Width), uint(size.Height), img, resize.Lanczos3)
	}
	log.WithFields(log.Fields{
		"format": format,
		"width":  cfg.Width,
		"height": cfg.Height,
	}).Debug("image decoded")
	return Result{
		Payload: state.ImagePayload{Format: format, Data: data, Width: cfg.Width, Height: cfg.Height},
		Size:    size,
		Thumb:   thumb,
	}, nil
}

// Thumbnail decodes a stored payload and resamples it to size. It is
// used to redraw images that came from the store rather than a fresh
// import.
func Thumbnail(p state.ImagePayload, size state.Size) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(p.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if size.Width <= 0 || size.Height <= 0 {
		return img, nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size.Width, size.Height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// Start decodes r on a new goroutine and hands the outcome to done. done
// runs on that goroutine; UI callers must marshal back themselves. A
// cancelled ctx suppresses the callback.
func Start(ctx context.Context, r io.ReadCloser, maxSize int, done func(Result, error)) {
	go func() {
		defer r.Close()
		res, err := Decode(r, maxSize)
		if ctx.Err() != nil {
			log.Debug("image import abandoned")
			return
		}
		done(res, err)
	}()
}
