// Package imaging normalizes vehicle photos for the storefront: every image
// is cover-fitted onto a fixed canvas, branded with the dealership logo and
// re-encoded as JPEG.
package imaging

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
)

const (
	// CanvasWidth and CanvasHeight are the uniform listing dimensions.
	CanvasWidth  = 800
	CanvasHeight = 600
	// watermarkWidth is the target logo width; taller/narrower logos keep
	// their aspect ratio and are never upscaled.
	watermarkWidth = 120
	// watermarkMargin is the offset of the logo from the right and bottom
	// canvas edges.
	watermarkMargin = 20
	jpegQuality     = 85
)

// Processor converts raw image bytes into normalized, watermarked listing
// images. It performs no I/O after construction; the logo is loaded once
// and never invalidated.
type Processor struct {
	watermark image.Image
	log       zerolog.Logger
}

// NewProcessor loads the watermark asset from path. A missing or unreadable
// asset is not fatal: the processor degrades to resize-only output.
func NewProcessor(watermarkPath string, log zerolog.Logger) *Processor {
	p := &Processor{log: log}
	if watermarkPath == "" {
		log.Warn().Msg("imaging: no watermark path configured, images will not be branded")
		return p
	}
	wm, err := imaging.Open(watermarkPath)
	if err != nil {
		log.Warn().Err(err).Str("path", watermarkPath).Msg("imaging: watermark unavailable, images will not be branded")
		return p
	}
	p.watermark = wm
	return p
}

// Normalize decodes data, cover-fits it onto the canvas (center anchored,
// overflow cropped), composites the watermark into the bottom-right corner
// and encodes the result as JPEG. The output always decodes to exactly
// CanvasWidth x CanvasHeight for any decodable input; watermark presence is
// best-effort.
func (p *Processor) Normalize(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}

	canvas := imaging.Fill(img, CanvasWidth, CanvasHeight, imaging.Center, imaging.Lanczos)
	if p.watermark != nil {
		canvas = p.applyWatermark(canvas)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("imaging: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *Processor) applyWatermark(base *image.NRGBA) *image.NRGBA {
	wm := p.watermark
	if wm.Bounds().Dx() > watermarkWidth {
		wm = imaging.Resize(wm, watermarkWidth, 0, imaging.Lanczos)
	}

	wmW, wmH := wm.Bounds().Dx(), wm.Bounds().Dy()
	if wmW <= 0 || wmH <= 0 {
		// Positioning falls back to the configured width rather than
		// skipping the composite outright.
		wmW, wmH = watermarkWidth, watermarkWidth
	}

	pos := image.Pt(CanvasWidth-wmW-watermarkMargin, CanvasHeight-wmH-watermarkMargin)
	return imaging.Overlay(base, wm, pos, 1.0)
}
