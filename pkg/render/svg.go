package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/bingocards/pkg/fonts"
	"github.com/matzehuels/bingocards/pkg/layout"
	"github.com/matzehuels/bingocards/pkg/ticket"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style Style
}

// WithSVGStyle overrides the default card style.
func WithSVGStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// RenderSVG draws the page as an SVG document measured in millimetres.
func RenderSVG(p Page, opts ...SVGOption) []byte {
	r := svgRenderer{style: DefaultStyle()}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := p.Geometry.PageWidth, p.Geometry.PageHeight
	stroke := r.style.StrokeWidthPt / layout.PointsPerMM

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%smm" height="%smm">`+"\n",
		num(w), num(h), num(w), num(h))
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n", num(w), num(h), r.style.Background)

	for i, c := range p.cards() {
		fmt.Fprintf(&buf, `  <g id="ticket-%d" fill="none" stroke="%s" stroke-width="%s">`+"\n", i+1, r.style.Color, num(stroke))
		fmt.Fprintf(&buf, `    <rect x="%s" y="%s" width="%s" height="%s"/>`+"\n", num(c.x), num(c.y), num(c.w), num(c.h))
		for row := 1; row < ticket.Rows; row++ {
			y := c.y + float64(row)*c.cellH
			fmt.Fprintf(&buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n", num(c.x), num(y), num(c.x+c.w), num(y))
		}
		for col := 1; col < ticket.Cols; col++ {
			x := c.x + float64(col)*c.cellW
			fmt.Fprintf(&buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n", num(x), num(c.y), num(x), num(c.y+c.h))
		}
		buf.WriteString("  </g>\n")

		size := r.style.fontSizePt(c.cellW, c.cellH) / layout.PointsPerMM
		fmt.Fprintf(&buf, `  <g font-family="%s" font-weight="bold" font-size="%s" fill="%s" text-anchor="middle">`+"\n",
			html.EscapeString(fonts.Family), num(size), r.style.Color)
		for _, cl := range c.cells {
			// Baseline sits below the cell center so the glyph looks centered.
			fmt.Fprintf(&buf, `    <text x="%s" y="%s">%s</text>`+"\n", num(cl.cx), num(cl.cy+size/2.8), html.EscapeString(cl.glyph))
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// num formats a length with two decimals.
func num(v float64) string { return fmt.Sprintf("%.2f", v) }
