package ticket

import (
	"maps"

	"github.com/matzehuels/bingocards/pkg/alphabet"
)

// Usage counts how many times each symbol has been placed so far while
// building one strip. The zero value is not usable; use NewUsage.
type Usage map[alphabet.Symbol]int

// NewUsage returns an empty counter.
func NewUsage() Usage { return make(Usage) }

// Add records one placement of s.
func (u Usage) Add(s alphabet.Symbol) { u[s]++ }

// Count returns the placements of s so far.
func (u Usage) Count(s alphabet.Symbol) int { return u[s] }

// Total returns the number of placements recorded.
func (u Usage) Total() int {
	n := 0
	for _, c := range u {
		n += c
	}
	return n
}

// Clone returns an independent copy.
func (u Usage) Clone() Usage { return maps.Clone(u) }
