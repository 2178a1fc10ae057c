package ticket

import (
	"cmp"
	"slices"

	"github.com/matzehuels/bingocards/pkg/errors"
)

// Ticket shape.
const (
	Rows         = 3
	Cols         = 9
	PerRow       = 5
	Cells        = Rows * PerRow
	MinPerColumn = 1
	MaxPerColumn = 3
)

// DefaultMaxAttempts bounds the number of mask attempts before giving up.
const DefaultMaxAttempts = 1000

// Mask marks which cells of a ticket hold a symbol.
type Mask [Rows][Cols]bool

// Count returns the number of occupied cells.
func (m Mask) Count() int {
	n := 0
	for r := range Rows {
		n += m.RowCount(r)
	}
	return n
}

// RowCount returns the number of occupied cells in row r.
func (m Mask) RowCount(r int) int {
	n := 0
	for c := range Cols {
		if m[r][c] {
			n++
		}
	}
	return n
}

// ColumnCount returns the number of occupied cells in column c.
func (m Mask) ColumnCount(c int) int {
	n := 0
	for r := range Rows {
		if m[r][c] {
			n++
		}
	}
	return n
}

// Validate checks the row and column capacity rules.
func (m Mask) Validate() error {
	for r := range Rows {
		if n := m.RowCount(r); n != PerRow {
			return errors.New(errors.ErrCodeInvalidInput, "row %d has %d cells, want %d", r, n, PerRow)
		}
	}
	for c := range Cols {
		if n := m.ColumnCount(c); n < MinPerColumn || n > MaxPerColumn {
			return errors.New(errors.ErrCodeInvalidInput, "column %d has %d cells, want %d-%d", c, n, MinPerColumn, MaxPerColumn)
		}
	}
	return nil
}

// ColumnCapacities holds how many cells each column must fill.
// Entries are in [MinPerColumn, MaxPerColumn] and sum to Cells.
type ColumnCapacities [Cols]int

// Sum returns the total capacity.
func (cc ColumnCapacities) Sum() int {
	n := 0
	for _, c := range cc {
		n += c
	}
	return n
}

// MaskGenerator draws random valid masks.
// It is not safe for concurrent use; the underlying Rand is shared state.
type MaskGenerator struct {
	rng          Rand
	maxAttempts  int
	lastAttempts int
	capacities   func() ColumnCapacities
}

// MaskOption configures a MaskGenerator.
type MaskOption func(*MaskGenerator)

// WithMaxAttempts sets the attempt budget. Values below 1 are ignored.
func WithMaxAttempts(n int) MaskOption {
	return func(g *MaskGenerator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// NewMaskGenerator returns a generator drawing from rng.
func NewMaskGenerator(rng Rand, opts ...MaskOption) *MaskGenerator {
	g := &MaskGenerator{rng: rng, maxAttempts: DefaultMaxAttempts}
	g.capacities = g.columnCapacities
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a valid mask, or a GENERATION_FAILED error once the
// attempt budget is spent.
func (g *MaskGenerator) Generate() (Mask, error) {
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		g.lastAttempts = attempt
		caps := g.capacities()
		if m, ok := g.assignRows(caps); ok {
			return m, nil
		}
	}
	return Mask{}, errors.New(errors.ErrCodeGeneration, "no valid mask after %d attempts", g.maxAttempts)
}

// LastAttempts returns how many attempts the previous Generate call used.
func (g *MaskGenerator) LastAttempts() int { return g.lastAttempts }

// columnCapacities starts every column at the minimum and hands out the
// remaining units one at a time to random columns that are not yet full.
func (g *MaskGenerator) columnCapacities() ColumnCapacities {
	var caps ColumnCapacities
	for c := range caps {
		caps[c] = MinPerColumn
	}
	open := make([]int, 0, Cols)
	for rem := Cells - caps.Sum(); rem > 0; rem-- {
		open = open[:0]
		for c, n := range caps {
			if n < MaxPerColumn {
				open = append(open, c)
			}
		}
		caps[open[g.rng.IntN(len(open))]]++
	}
	return caps
}

// assignRows visits the columns in random order and gives each column's
// cells to the least loaded rows, ties broken at random. It reports false
// when a column cannot be placed or a row ends up short.
func (g *MaskGenerator) assignRows(caps ColumnCapacities) (Mask, bool) {
	var (
		m      Mask
		counts [Rows]int
	)

	order := make([]int, Cols)
	for i := range order {
		order[i] = i
	}
	g.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	rows := make([]int, 0, Rows)
	for _, c := range order {
		need := caps[c]
		rows = rows[:0]
		for r := range Rows {
			if counts[r] < PerRow {
				rows = append(rows, r)
			}
		}
		if len(rows) < need {
			return Mask{}, false
		}
		g.rng.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
		slices.SortStableFunc(rows, func(a, b int) int { return cmp.Compare(counts[a], counts[b]) })
		for _, r := range rows[:need] {
			m[r][c] = true
			counts[r]++
		}
	}

	for _, n := range counts {
		if n != PerRow {
			return Mask{}, false
		}
	}
	return m, true
}
