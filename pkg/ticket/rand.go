package ticket

import "math/rand/v2"

// Rand is the random source used by the generators.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a PCG-backed source; equal seeds yield equal sequences.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// RandomSeed returns a fresh non-zero seed from the global source.
func RandomSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}
