package layout

import (
	"strings"

	"github.com/matzehuels/bingocards/pkg/errors"
)

// PointsPerMM converts millimetres to PDF points (1/72 inch).
const PointsPerMM = 72 / 25.4

// ToPoints converts millimetres to points.
func ToPoints(mm float64) float64 { return mm * PointsPerMM }

// ToPixels converts millimetres to pixels at the given resolution.
func ToPixels(mm, dpi float64) float64 { return mm / 25.4 * dpi }

// PageSize is a paper size in millimetres, portrait orientation.
type PageSize struct {
	Width  float64
	Height float64
}

// Standard page sizes.
var (
	A3     = PageSize{297, 420}
	A4     = PageSize{210, 297}
	A5     = PageSize{148, 210}
	Letter = PageSize{215.9, 279.4}
	Legal  = PageSize{215.9, 355.6}
)

var pageSizes = map[string]PageSize{
	"a3":     A3,
	"a4":     A4,
	"a5":     A5,
	"letter": Letter,
	"legal":  Legal,
}

// Landscape returns the size with the long edge horizontal.
func (p PageSize) Landscape() PageSize {
	if p.Width < p.Height {
		return PageSize{p.Height, p.Width}
	}
	return p
}

// Portrait returns the size with the long edge vertical.
func (p PageSize) Portrait() PageSize {
	if p.Width > p.Height {
		return PageSize{p.Height, p.Width}
	}
	return p
}

// LookupPageSize resolves a case-insensitive paper name such as "a4".
func LookupPageSize(name string) (PageSize, error) {
	if p, ok := pageSizes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p, nil
	}
	return PageSize{}, errors.New(errors.ErrCodeInvalidConfig, "unknown page size %q (must be one of: a3, a4, a5, letter, legal)", name)
}
