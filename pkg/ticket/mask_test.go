package ticket

import (
	"testing"

	"github.com/matzehuels/bingocards/pkg/errors"
)

func assertValidMask(t *testing.T, m Mask) {
	t.Helper()
	if got := m.Count(); got != Cells {
		t.Fatalf("Count() = %d, want %d", got, Cells)
	}
	for r := range Rows {
		if got := m.RowCount(r); got != PerRow {
			t.Errorf("RowCount(%d) = %d, want %d", r, got, PerRow)
		}
	}
	for c := range Cols {
		if got := m.ColumnCount(c); got < MinPerColumn || got > MaxPerColumn {
			t.Errorf("ColumnCount(%d) = %d, want %d-%d", c, got, MinPerColumn, MaxPerColumn)
		}
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestMaskGeneratorInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 500; seed++ {
		g := NewMaskGenerator(NewRand(seed))
		m, err := g.Generate()
		if err != nil {
			t.Fatalf("seed %d: Generate() error: %v", seed, err)
		}
		assertValidMask(t, m)
		if g.LastAttempts() < 1 || g.LastAttempts() > DefaultMaxAttempts {
			t.Errorf("seed %d: LastAttempts() = %d", seed, g.LastAttempts())
		}
	}
}

func TestMaskGeneratorDeterministic(t *testing.T) {
	a, err := NewMaskGenerator(NewRand(7)).Generate()
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewMaskGenerator(NewRand(7)).Generate()
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("same seed produced different masks:\n%v\n%v", a, b)
	}
}

func TestMaskGeneratorScriptedSequence(t *testing.T) {
	seq := []float64{0.13, 0.72, 0.05, 0.91, 0.44, 0.38, 0.66, 0.27, 0.84, 0.59, 0.02}

	first, err := NewMaskGenerator(newScriptedRand(seq...)).Generate()
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	assertValidMask(t, first)

	for i := range 5 {
		again, err := NewMaskGenerator(newScriptedRand(seq...)).Generate()
		if err != nil {
			t.Fatalf("run %d: Generate() error: %v", i, err)
		}
		if again != first {
			t.Fatalf("run %d: mask differs from first run", i)
		}
	}
}

func TestColumnCapacities(t *testing.T) {
	g := NewMaskGenerator(NewRand(3))
	for range 200 {
		caps := g.columnCapacities()
		if caps.Sum() != Cells {
			t.Fatalf("Sum() = %d, want %d", caps.Sum(), Cells)
		}
		for c, n := range caps {
			if n < MinPerColumn || n > MaxPerColumn {
				t.Fatalf("column %d capacity = %d", c, n)
			}
		}
	}
}

func TestAssignRowsInfeasible(t *testing.T) {
	g := NewMaskGenerator(NewRand(1))
	// Sixteen units cannot fit into three rows of five.
	caps := ColumnCapacities{3, 3, 3, 3, 3, 1, 0, 0, 0}
	if _, ok := g.assignRows(caps); ok {
		t.Error("assignRows() succeeded with over-full capacities")
	}
}

func TestMaskGeneratorExhaustsBudget(t *testing.T) {
	g := NewMaskGenerator(NewRand(1), WithMaxAttempts(4))
	g.capacities = func() ColumnCapacities { return ColumnCapacities{3, 3, 3, 3, 3, 3, 0, 0, 0} }

	_, err := g.Generate()
	if !errors.Is(err, errors.ErrCodeGeneration) {
		t.Fatalf("Generate() error = %v, want GENERATION_FAILED", err)
	}
	if g.LastAttempts() != 4 {
		t.Errorf("LastAttempts() = %d, want 4", g.LastAttempts())
	}
}

func TestWithMaxAttemptsIgnoresNonPositive(t *testing.T) {
	g := NewMaskGenerator(NewRand(1), WithMaxAttempts(0))
	if g.maxAttempts != DefaultMaxAttempts {
		t.Errorf("maxAttempts = %d, want %d", g.maxAttempts, DefaultMaxAttempts)
	}
}

func TestMaskValidate(t *testing.T) {
	var m Mask
	if err := m.Validate(); err == nil {
		t.Error("Validate() on empty mask should fail")
	}
}

func FuzzMaskGenerator(f *testing.F) {
	f.Add(uint64(0))
	f.Add(uint64(42))
	f.Add(uint64(1 << 63))
	f.Fuzz(func(t *testing.T, seed uint64) {
		m, err := NewMaskGenerator(NewRand(seed)).Generate()
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		if err := m.Validate(); err != nil {
			t.Fatalf("invalid mask: %v", err)
		}
	})
}
