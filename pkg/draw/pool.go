// Package draw implements the caller's draw pile: every symbol of an
// alphabet in shuffled order, drawn one at a time until none are left.
//
// A [Pool] is a plain value. Operations return a new Pool instead of
// mutating shared state, so the owner decides where the session lives
// (a TUI model, a test, a request handler).
package draw

import (
	"slices"

	"github.com/matzehuels/bingocards/pkg/alphabet"
)

// Shuffler is the random source used to order the pile.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Pool is the state of one drawing session.
type Pool struct {
	remaining []alphabet.Symbol
	drawn     []alphabet.Symbol
}

// New returns a freshly shuffled pool with nothing drawn.
func New(a *alphabet.Alphabet, rng Shuffler) Pool {
	remaining := a.Symbols()
	rng.Shuffle(len(remaining), func(i, j int) { remaining[i], remaining[j] = remaining[j], remaining[i] })
	return Pool{remaining: remaining}
}

// Reset is New: a full reshuffled pile and an empty draw log.
func Reset(a *alphabet.Alphabet, rng Shuffler) Pool {
	return New(a, rng)
}

// Draw takes the next symbol off the pile. ok is false once the pile is
// exhausted, in which case p is returned unchanged.
func Draw(p Pool) (next Pool, s alphabet.Symbol, ok bool) {
	if len(p.remaining) == 0 {
		return p, alphabet.Symbol{}, false
	}
	s = p.remaining[0]
	next = Pool{
		remaining: slices.Clone(p.remaining[1:]),
		drawn:     append(slices.Clone(p.drawn), s),
	}
	return next, s, true
}

// Remaining returns the number of symbols left on the pile.
func (p Pool) Remaining() int { return len(p.remaining) }

// Drawn returns the drawn symbols in draw order.
func (p Pool) Drawn() []alphabet.Symbol { return slices.Clone(p.drawn) }

// Last returns the most recent draw; ok is false before the first draw.
func (p Pool) Last() (alphabet.Symbol, bool) {
	if len(p.drawn) == 0 {
		return alphabet.Symbol{}, false
	}
	return p.drawn[len(p.drawn)-1], true
}

// IsDrawn reports whether s has been drawn in this session.
func (p Pool) IsDrawn(s alphabet.Symbol) bool {
	return slices.Contains(p.drawn, s)
}

// Exhausted reports whether every symbol has been drawn.
func (p Pool) Exhausted() bool { return len(p.remaining) == 0 }
