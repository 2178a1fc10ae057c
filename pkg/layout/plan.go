package layout

import (
	"math"

	"github.com/matzehuels/bingocards/pkg/errors"
	"github.com/matzehuels/bingocards/pkg/ticket"
)

// Grid limits for cards per row and rows per page.
const (
	MaxCols = 3
	MaxRows = 3
)

// cardAspect is the width/height ratio that keeps ticket cells square.
const cardAspect = float64(ticket.Cols) / float64(ticket.Rows)

// Geometry describes how cards are arranged on one page.
type Geometry struct {
	Cols       int     `json:"cols" toml:"cols"`
	Rows       int     `json:"rows" toml:"rows"`
	Margin     float64 `json:"margin_mm" toml:"margin_mm"`
	GapX       float64 `json:"gap_x_mm" toml:"gap_x_mm"`
	GapY       float64 `json:"gap_y_mm" toml:"gap_y_mm"`
	PageWidth  float64 `json:"page_width_mm" toml:"page_width_mm"`
	PageHeight float64 `json:"page_height_mm" toml:"page_height_mm"`
}

// DefaultGeometry is three cards across, two rows, on landscape A4 with
// 6 mm margins and gaps.
func DefaultGeometry() Geometry {
	page := A4.Landscape()
	return Geometry{
		Cols:       3,
		Rows:       2,
		Margin:     6,
		GapX:       6,
		GapY:       6,
		PageWidth:  page.Width,
		PageHeight: page.Height,
	}
}

// Slots returns the number of cards that fit on one page.
func (g Geometry) Slots() int { return g.Cols * g.Rows }

// Validate checks the grid bounds and that lengths are usable.
func (g Geometry) Validate() error {
	if g.Cols < 1 || g.Cols > MaxCols {
		return errors.New(errors.ErrCodeInvalidConfig, "cols must be between 1 and %d, got %d", MaxCols, g.Cols)
	}
	if g.Rows < 1 || g.Rows > MaxRows {
		return errors.New(errors.ErrCodeInvalidConfig, "rows must be between 1 and %d, got %d", MaxRows, g.Rows)
	}
	for _, v := range []struct {
		name string
		val  float64
	}{{"margin", g.Margin}, {"gap_x", g.GapX}, {"gap_y", g.GapY}} {
		if v.val < 0 || math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be a non-negative length, got %v", v.name, v.val)
		}
	}
	if !(g.PageWidth > 0) || !(g.PageHeight > 0) || math.IsInf(g.PageWidth, 0) || math.IsInf(g.PageHeight, 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "page size must be positive, got %vx%v", g.PageWidth, g.PageHeight)
	}
	return nil
}

// Rect is one card's position on the page, origin bottom-left.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Top returns the Y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y + r.Height }

// Overlaps reports whether r and o share interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Top() && o.Y < r.Top()
}

// Plan returns one rectangle per page slot in reading order: top row first,
// left to right. It fails with INVALID_CONFIG when fewer than Slots tickets
// are supplied or when the geometry leaves no room for a card. Tickets past
// Slots get no rectangle.
func Plan(tickets int, g Geometry) ([]Rect, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if tickets < g.Slots() {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "layout %dx%d needs %d tickets, got %d", g.Cols, g.Rows, g.Slots(), tickets)
	}

	cols, rows := float64(g.Cols), float64(g.Rows)
	availW := g.PageWidth - 2*g.Margin - (cols-1)*g.GapX
	availH := g.PageHeight - 2*g.Margin - (rows-1)*g.GapY
	cardW := availW / cols
	cardH := min(availH/rows, cardW/cardAspect)

	if !(cardW > 0) || !(cardH > 0) {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "geometry leaves no room for cards (%.2fx%.2f mm)", cardW, cardH)
	}

	contentH := rows*cardH + (rows-1)*g.GapY
	offsetY := (g.PageHeight - 2*g.Margin - contentH) / 2

	rects := make([]Rect, 0, g.Slots())
	for r := range g.Rows {
		for c := range g.Cols {
			rects = append(rects, Rect{
				X:      g.Margin + float64(c)*(cardW+g.GapX),
				Y:      g.Margin + offsetY + float64(g.Rows-1-r)*(cardH+g.GapY),
				Width:  cardW,
				Height: cardH,
			})
		}
	}
	return rects, nil
}

// PlanStrip is Plan for the tickets of a strip.
func PlanStrip(s ticket.Strip, g Geometry) ([]Rect, error) {
	return Plan(len(s), g)
}
