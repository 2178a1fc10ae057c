package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/bingocards/pkg/errors"
	"github.com/matzehuels/bingocards/pkg/fonts"
	"github.com/matzehuels/bingocards/pkg/layout"
	"github.com/matzehuels/bingocards/pkg/ticket"
)

const (
	// DefaultDPI is the raster resolution used when none is given.
	DefaultDPI = 150.0

	// MaxDPI bounds the raster resolution. An A3 page at 600 dpi is
	// roughly 9900x7000 pixels.
	MaxDPI = 600.0
)

// ValidateDPI checks that dpi is a finite resolution in (0, MaxDPI].
func ValidateDPI(dpi float64) error {
	if math.IsNaN(dpi) || dpi <= 0 || dpi > MaxDPI {
		return errors.New(errors.ErrCodeInvalidConfig, "dpi must be between 0 and %v, got %v", MaxDPI, dpi)
	}
	return nil
}

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	style Style
	dpi   float64
}

// WithDPI sets the raster resolution in dots per inch.
func WithDPI(dpi float64) PNGOption {
	return func(r *pngRenderer) {
		if dpi > 0 {
			r.dpi = dpi
		}
	}
}

// WithPNGStyle overrides the default card style.
func WithPNGStyle(s Style) PNGOption { return func(r *pngRenderer) { r.style = s } }

// RenderPNG rasterizes the page in-process.
func RenderPNG(p Page, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{style: DefaultStyle(), dpi: DefaultDPI}
	for _, opt := range opts {
		opt(&r)
	}
	if err := ValidateDPI(r.dpi); err != nil {
		return nil, err
	}

	px := func(mm float64) float64 { return layout.ToPixels(mm, r.dpi) }
	w := int(math.Ceil(px(p.Geometry.PageWidth)))
	h := int(math.Ceil(px(p.Geometry.PageHeight)))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("page too small to rasterize: %dx%d px", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetHexColor(r.style.Background)
	dc.Clear()
	dc.SetHexColor(r.style.Color)
	dc.SetLineWidth(r.style.StrokeWidthPt / 72 * r.dpi)

	for _, c := range p.cards() {
		dc.DrawRectangle(px(c.x), px(c.y), px(c.w), px(c.h))
		for row := 1; row < ticket.Rows; row++ {
			y := px(c.y + float64(row)*c.cellH)
			dc.DrawLine(px(c.x), y, px(c.x+c.w), y)
		}
		for col := 1; col < ticket.Cols; col++ {
			x := px(c.x + float64(col)*c.cellW)
			dc.DrawLine(x, px(c.y), x, px(c.y+c.h))
		}
		dc.Stroke()

		face, err := fonts.BoldFace(r.style.fontSizePt(c.cellW, c.cellH), r.dpi)
		if err != nil {
			return nil, fmt.Errorf("load font: %w", err)
		}
		dc.SetFontFace(face)
		for _, cl := range c.cells {
			dc.DrawStringAnchored(cl.glyph, px(cl.cx), px(cl.cy), 0.5, 0.5)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
