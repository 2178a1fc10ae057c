package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/bingocards/pkg/errors"
	"github.com/matzehuels/bingocards/pkg/observability"
	"github.com/matzehuels/bingocards/pkg/render"
)

// RenderFormat renders one format of a page.
func RenderFormat(ctx context.Context, page render.Page, format string, dpi float64) ([]byte, error) {
	start := time.Now()
	data, err := renderFormat(page, format, dpi)
	observability.Generation().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	return data, err
}

func renderFormat(page render.Page, format string, dpi float64) ([]byte, error) {
	switch format {
	case FormatSVG:
		return render.RenderSVG(page), nil
	case FormatJSON:
		return render.RenderJSON(page)
	case FormatPNG:
		return render.RenderPNG(page, render.WithDPI(dpi))
	case FormatPDF:
		if !render.HasConverter() {
			return nil, errors.New(errors.ErrCodeUnsupported, "pdf export requires rsvg-convert (librsvg)")
		}
		data, err := render.RenderPDF(page)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render pdf")
		}
		return data, nil
	default:
		return nil, ValidateFormat(format)
	}
}
