// Package render turns a planned page of tickets into printable output.
//
// A [Page] pairs the tickets of a strip with the rectangles computed by
// layout.Plan. Each card is drawn as an outer border, the 3×9 cell grid and
// one bold glyph centered in every occupied cell.
//
// # Formats
//
//   - SVG: written directly, sized in millimetres ([RenderSVG])
//   - JSON: tickets and placements for other renderers ([RenderJSON])
//   - PNG: rasterized in-process with fogleman/gg ([RenderPNG])
//   - PDF: the SVG converted by rsvg-convert ([RenderPDF])
//
// PDF conversion requires librsvg: brew install librsvg (macOS),
// apt install librsvg2-bin (Linux).
package render
