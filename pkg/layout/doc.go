// Package layout places rendered tickets on a printed page.
//
// All lengths are millimetres. The page origin is the bottom-left corner, as
// in PDF, so the first reading row (top of the page) has the largest Y.
//
// [Plan] splits the printable area into a cols×rows grid of equal cards. A
// ticket has 9 columns and 3 rows of cells, so a card is never taller than a
// third of its width; when the page leaves more vertical room than that, the
// block of cards is centered vertically between the margins.
package layout
