package ticket

// scriptedRand replays a fixed sequence of values in [0, 1).
type scriptedRand struct {
	vals []float64
	pos  int
}

func newScriptedRand(vals ...float64) *scriptedRand {
	return &scriptedRand{vals: vals}
}

func (s *scriptedRand) Float64() float64 {
	v := s.vals[s.pos%len(s.vals)]
	s.pos++
	return v
}

func (s *scriptedRand) IntN(n int) int {
	return int(s.Float64() * float64(n))
}

func (s *scriptedRand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, s.IntN(i+1))
	}
}
