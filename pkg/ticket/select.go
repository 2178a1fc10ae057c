package ticket

import (
	"sort"

	"github.com/matzehuels/bingocards/pkg/alphabet"
	"github.com/matzehuels/bingocards/pkg/errors"
)

// Selector picks the symbols of one ticket.
type Selector struct {
	alphabet *alphabet.Alphabet
	rng      Rand
	size     int
}

// NewSelector returns a selector that picks Cells symbols per call.
func NewSelector(a *alphabet.Alphabet, rng Rand) *Selector {
	return &Selector{alphabet: a, rng: rng, size: Cells}
}

// Choose returns Cells distinct symbols drawn without replacement, each
// weighted by 1/(1+usage). The result order is the draw order and carries
// no meaning. It fails with ALLOCATION_FAILED when the alphabet is too small.
func (s *Selector) Choose(usage Usage) ([]alphabet.Symbol, error) {
	n := s.alphabet.Len()
	if n < s.size {
		return nil, errors.New(errors.ErrCodeAllocation, "alphabet has %d symbols, need %d distinct", n, s.size)
	}

	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1 / float64(1+usage.Count(s.alphabet.At(i)))
	}

	cum := make([]float64, n)
	picked := make([]alphabet.Symbol, 0, s.size)
	for len(picked) < s.size {
		total := 0.0
		for i, w := range weights {
			total += w
			cum[i] = total
		}
		if total <= 0 {
			return nil, errors.New(errors.ErrCodeAllocation, "no selectable symbols left after %d picks", len(picked))
		}

		r := s.rng.Float64() * total
		i := sort.Search(n, func(i int) bool { return cum[i] > r })
		if i == n || weights[i] == 0 {
			// r landed on the rounding edge; take the last selectable symbol.
			i = lastPositive(weights)
		}

		picked = append(picked, s.alphabet.At(i))
		weights[i] = 0
	}
	return picked, nil
}

func lastPositive(weights []float64) int {
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return 0
}
