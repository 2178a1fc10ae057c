package render

import (
	"encoding/json"

	"github.com/matzehuels/bingocards/pkg/layout"
)

type jsonOutput struct {
	Unit     string          `json:"unit"`
	Width    float64         `json:"width"`
	Height   float64         `json:"height"`
	Geometry layout.Geometry `json:"geometry"`
	Cards    []jsonCard      `json:"cards"`
	Unplaced int             `json:"unplaced,omitempty"`
}

type jsonCard struct {
	Index int         `json:"index"`
	Rect  layout.Rect `json:"rect"`
	Rows  [][]*string `json:"rows"`
}

// RenderJSON serializes the page: one entry per placed ticket with its
// rectangle and glyph rows, null marking empty cells.
func RenderJSON(p Page) ([]byte, error) {
	out := jsonOutput{
		Unit:     "mm",
		Width:    p.Geometry.PageWidth,
		Height:   p.Geometry.PageHeight,
		Geometry: p.Geometry,
		Cards:    make([]jsonCard, 0, p.Placed()),
		Unplaced: len(p.Tickets) - p.Placed(),
	}
	for i := range p.Placed() {
		t := p.Tickets[i]
		rows := make([][]*string, len(t.Cells))
		for r := range t.Cells {
			rows[r] = make([]*string, len(t.Cells[r]))
			for c, s := range t.Cells[r] {
				if !s.IsZero() {
					g := s.Glyph
					rows[r][c] = &g
				}
			}
		}
		out.Cards = append(out.Cards, jsonCard{Index: i, Rect: p.Rects[i], Rows: rows})
	}
	return json.MarshalIndent(out, "", "  ")
}
