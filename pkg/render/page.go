package render

import (
	"github.com/matzehuels/bingocards/pkg/layout"
	"github.com/matzehuels/bingocards/pkg/ticket"
)

// Page is one printed sheet: the geometry, the tickets and one rectangle
// per placed ticket. Rects[i] holds Tickets[i].
type Page struct {
	Geometry layout.Geometry
	Tickets  ticket.Strip
	Rects    []layout.Rect
}

// NewPage plans the layout of strip on a page.
func NewPage(strip ticket.Strip, g layout.Geometry) (Page, error) {
	rects, err := layout.PlanStrip(strip, g)
	if err != nil {
		return Page{}, err
	}
	return Page{Geometry: g, Tickets: strip, Rects: rects}, nil
}

// Placed returns the number of tickets that have a rectangle.
func (p Page) Placed() int { return min(len(p.Rects), len(p.Tickets)) }

// Style controls card appearance.
type Style struct {
	Color         string  // stroke and glyph color, CSS hex
	Background    string  // page color, CSS hex
	StrokeWidthPt float64 // border and grid line width in points
	MinFontPt     float64
	MaxFontPt     float64
	FontScale     float64 // glyph size relative to the smaller cell side
}

// DefaultStyle draws orange borders and glyphs on white.
func DefaultStyle() Style {
	return Style{
		Color:         "#FFA500",
		Background:    "#FFFFFF",
		StrokeWidthPt: 1.4,
		MinFontPt:     16,
		MaxFontPt:     34,
		FontScale:     0.70,
	}
}

// fontSizePt returns the glyph size for a cell of cellW×cellH millimetres.
func (s Style) fontSizePt(cellW, cellH float64) float64 {
	size := s.FontScale * layout.ToPoints(min(cellW, cellH))
	return max(s.MinFontPt, min(s.MaxFontPt, size))
}

// cell is one occupied ticket cell in page coordinates (millimetres,
// origin top-left).
type cell struct {
	cx, cy float64
	glyph  string
}

// card is one ticket resolved to top-left page coordinates.
type card struct {
	x, y, w, h   float64
	cellW, cellH float64
	cells        []cell
}

// cards converts the page's bottom-left rectangles into top-left cards.
func (p Page) cards() []card {
	out := make([]card, 0, p.Placed())
	for i := range p.Placed() {
		r := p.Rects[i]
		c := card{
			x:     r.X,
			y:     p.Geometry.PageHeight - r.Top(),
			w:     r.Width,
			h:     r.Height,
			cellW: r.Width / ticket.Cols,
			cellH: r.Height / ticket.Rows,
		}
		for row := range ticket.Rows {
			for col := range ticket.Cols {
				s, ok := p.Tickets[i].At(row, col)
				if !ok {
					continue
				}
				c.cells = append(c.cells, cell{
					cx:    c.x + (float64(col)+0.5)*c.cellW,
					cy:    c.y + (float64(row)+0.5)*c.cellH,
					glyph: s.Glyph,
				})
			}
		}
		out = append(out, c)
	}
	return out
}
