package ticket

import (
	"fmt"

	"github.com/matzehuels/bingocards/pkg/alphabet"
	"github.com/matzehuels/bingocards/pkg/errors"
)

// DefaultStripSize is the number of tickets in a strip.
const DefaultStripSize = 6

// Strip is an ordered batch of tickets built under one usage counter.
type Strip []Ticket

// Occupied returns the number of filled cells across the strip.
func (s Strip) Occupied() int {
	n := 0
	for _, t := range s {
		n += len(t.Symbols())
	}
	return n
}

// Usage tallies how often each symbol appears across the strip.
func (s Strip) Usage() Usage {
	u := NewUsage()
	for _, t := range s {
		for _, sym := range t.Symbols() {
			u.Add(sym)
		}
	}
	return u
}

// Stats describes one Generate call.
type Stats struct {
	Tickets      int   // tickets built
	MaskAttempts int   // mask attempts summed over all tickets
	Usage        Usage // final usage counter
}

// Generator builds strips.
type Generator struct {
	rng      Rand
	masks    *MaskGenerator
	selector *Selector
}

// NewGenerator returns a strip generator over a drawing from rng.
func NewGenerator(a *alphabet.Alphabet, rng Rand, opts ...MaskOption) *Generator {
	return &Generator{
		rng:      rng,
		masks:    NewMaskGenerator(rng, opts...),
		selector: NewSelector(a, rng),
	}
}

// Generate builds n tickets sharing one fresh usage counter, so later
// tickets lean away from symbols the earlier ones used heavily.
func (g *Generator) Generate(n int) (Strip, Stats, error) {
	if n < 1 {
		return nil, Stats{}, errors.New(errors.ErrCodeInvalidInput, "strip size must be positive, got %d", n)
	}

	usage := NewUsage()
	stats := Stats{Usage: usage}
	strip := make(Strip, 0, n)
	for i := range n {
		t, err := g.next(usage)
		stats.MaskAttempts += g.masks.LastAttempts()
		if err != nil {
			return nil, stats, fmt.Errorf("ticket %d: %w", i+1, err)
		}
		strip = append(strip, t)
		stats.Tickets++
	}
	return strip, stats, nil
}

func (g *Generator) next(usage Usage) (Ticket, error) {
	mask, err := g.masks.Generate()
	if err != nil {
		return Ticket{}, err
	}
	symbols, err := g.selector.Choose(usage)
	if err != nil {
		return Ticket{}, err
	}
	return Build(mask, symbols, usage, g.rng)
}
