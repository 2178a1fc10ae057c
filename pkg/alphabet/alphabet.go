// Package alphabet defines the symbols printed on bingo tickets.
//
// The default alphabet is the Greek one: the 24 capital letters Α–Ω followed
// by the 24 lowercase letters α–ω, 48 symbols in total. Symbols are plain
// comparable values, so they can be used as map keys by usage counters and
// draw pools.
package alphabet

import (
	"slices"

	"github.com/matzehuels/bingocards/pkg/errors"
)

// Case is the letter-case class a symbol belongs to.
type Case uint8

const (
	CaseUpper Case = iota
	CaseLower
)

// String returns "upper" or "lower".
func (c Case) String() string {
	if c == CaseLower {
		return "lower"
	}
	return "upper"
}

// Symbol is a single printable glyph.
type Symbol struct {
	Glyph string `json:"glyph"`
	Case  Case   `json:"case"`
}

// String returns the glyph.
func (s Symbol) String() string { return s.Glyph }

// IsZero reports whether s is the zero Symbol (an empty ticket cell).
func (s Symbol) IsZero() bool { return s.Glyph == "" }

var (
	greekUpper = []string{"Α", "Β", "Γ", "Δ", "Ε", "Ζ", "Η", "Θ", "Ι", "Κ", "Λ", "Μ", "Ν", "Ξ", "Ο", "Π", "Ρ", "Σ", "Τ", "Υ", "Φ", "Χ", "Ψ", "Ω"}
	greekLower = []string{"α", "β", "γ", "δ", "ε", "ζ", "η", "θ", "ι", "κ", "λ", "μ", "ν", "ξ", "ο", "π", "ρ", "σ", "τ", "υ", "φ", "χ", "ψ", "ω"}
)

// Alphabet is an immutable, ordered set of distinct symbols.
type Alphabet struct {
	symbols []Symbol
	index   map[Symbol]int
}

// New builds an alphabet from symbols in the given order.
// It fails with INVALID_INPUT on empty glyphs or duplicates.
func New(symbols []Symbol) (*Alphabet, error) {
	index := make(map[Symbol]int, len(symbols))
	for i, s := range symbols {
		if s.IsZero() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "symbol %d has an empty glyph", i)
		}
		if _, dup := index[s]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate symbol %q", s.Glyph)
		}
		index[s] = i
	}
	return &Alphabet{symbols: slices.Clone(symbols), index: index}, nil
}

// Greek returns the default 48-symbol alphabet: capitals first, then lowercase.
func Greek() *Alphabet {
	symbols := make([]Symbol, 0, len(greekUpper)+len(greekLower))
	for _, g := range greekUpper {
		symbols = append(symbols, Symbol{Glyph: g, Case: CaseUpper})
	}
	for _, g := range greekLower {
		symbols = append(symbols, Symbol{Glyph: g, Case: CaseLower})
	}
	a, err := New(symbols)
	if err != nil {
		panic(err) // static table
	}
	return a
}

// Len returns the number of symbols.
func (a *Alphabet) Len() int { return len(a.symbols) }

// At returns the i-th symbol in enumeration order.
func (a *Alphabet) At(i int) Symbol { return a.symbols[i] }

// Symbols returns a copy of the symbols in enumeration order.
func (a *Alphabet) Symbols() []Symbol { return slices.Clone(a.symbols) }

// Index returns the position of s, or -1 if s is not in the alphabet.
func (a *Alphabet) Index(s Symbol) int {
	if i, ok := a.index[s]; ok {
		return i
	}
	return -1
}

// Contains reports whether s belongs to the alphabet.
func (a *Alphabet) Contains(s Symbol) bool {
	_, ok := a.index[s]
	return ok
}

// ByCase returns the symbols of one case class in enumeration order.
func (a *Alphabet) ByCase(c Case) []Symbol {
	var out []Symbol
	for _, s := range a.symbols {
		if s.Case == c {
			out = append(out, s)
		}
	}
	return out
}

// Lookup finds the symbol with the given glyph.
func (a *Alphabet) Lookup(glyph string) (Symbol, bool) {
	for _, s := range a.symbols {
		if s.Glyph == glyph {
			return s, true
		}
	}
	return Symbol{}, false
}
