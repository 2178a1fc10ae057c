package ticket

import (
	"slices"

	"github.com/matzehuels/bingocards/pkg/alphabet"
	"github.com/matzehuels/bingocards/pkg/errors"
)

// Ticket is a 3×9 grid; empty cells hold the zero Symbol.
type Ticket struct {
	Cells [Rows][Cols]alphabet.Symbol `json:"cells" bson:"cells"`
}

// At returns the symbol at (r, c) and whether the cell is occupied.
func (t Ticket) At(r, c int) (alphabet.Symbol, bool) {
	s := t.Cells[r][c]
	return s, !s.IsZero()
}

// Mask returns the occupancy pattern of t.
func (t Ticket) Mask() Mask {
	var m Mask
	for r := range Rows {
		for c := range Cols {
			m[r][c] = !t.Cells[r][c].IsZero()
		}
	}
	return m
}

// Symbols returns the occupied symbols in row-major order.
func (t Ticket) Symbols() []alphabet.Symbol {
	out := make([]alphabet.Symbol, 0, Cells)
	for r := range Rows {
		for c := range Cols {
			if s := t.Cells[r][c]; !s.IsZero() {
				out = append(out, s)
			}
		}
	}
	return out
}

// Validate checks the mask rules and that no symbol repeats within t.
func (t Ticket) Validate() error {
	if err := t.Mask().Validate(); err != nil {
		return err
	}
	seen := make(map[alphabet.Symbol]bool, Cells)
	for _, s := range t.Symbols() {
		if seen[s] {
			return errors.New(errors.ErrCodeInvalidInput, "symbol %q repeats within the ticket", s.Glyph)
		}
		seen[s] = true
	}
	return nil
}

// Build fills the occupied cells of mask with symbols in a random order,
// scanning row-major, and records every placement in usage. symbols must
// hold exactly one distinct symbol per occupied cell.
func Build(mask Mask, symbols []alphabet.Symbol, usage Usage, rng Rand) (Ticket, error) {
	if n := mask.Count(); len(symbols) != n {
		return Ticket{}, errors.New(errors.ErrCodeInvalidInput, "mask has %d cells, got %d symbols", n, len(symbols))
	}
	seen := make(map[alphabet.Symbol]bool, len(symbols))
	for _, s := range symbols {
		if s.IsZero() || seen[s] {
			return Ticket{}, errors.New(errors.ErrCodeInvalidInput, "symbols must be distinct and non-empty")
		}
		seen[s] = true
	}

	order := slices.Clone(symbols)
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	var t Ticket
	k := 0
	for r := range Rows {
		for c := range Cols {
			if !mask[r][c] {
				continue
			}
			t.Cells[r][c] = order[k]
			usage.Add(order[k])
			k++
		}
	}
	return t, nil
}
