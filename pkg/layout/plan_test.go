package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/bingocards/pkg/errors"
)

const eps = 1e-9

func TestPlanDefault(t *testing.T) {
	g := DefaultGeometry()
	rects, err := Plan(6, g)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if len(rects) != 6 {
		t.Fatalf("len(rects) = %d, want 6", len(rects))
	}

	for i, r := range rects {
		if r.X < g.Margin-eps || r.Right() > g.PageWidth-g.Margin+eps {
			t.Errorf("rect %d x-range [%v, %v] outside margins", i, r.X, r.Right())
		}
		if r.Y < g.Margin-eps || r.Top() > g.PageHeight-g.Margin+eps {
			t.Errorf("rect %d y-range [%v, %v] outside margins", i, r.Y, r.Top())
		}
		if math.Abs(r.Height-r.Width/3) > eps {
			t.Errorf("rect %d height = %v, want width/3 = %v", i, r.Height, r.Width/3)
		}
		for j := i + 1; j < len(rects); j++ {
			if r.Overlaps(rects[j]) {
				t.Errorf("rect %d overlaps rect %d", i, j)
			}
		}
	}

	if math.Abs(rects[0].Width-91) > eps {
		t.Errorf("card width = %v, want 91", rects[0].Width)
	}
}

func TestPlanReadingOrder(t *testing.T) {
	rects, err := Plan(6, DefaultGeometry())
	if err != nil {
		t.Fatal(err)
	}
	// Top row first: Y decreases between reading rows, X increases within a row.
	if !(rects[0].Y > rects[3].Y) {
		t.Errorf("first row Y = %v, second row Y = %v; first row must be higher", rects[0].Y, rects[3].Y)
	}
	for i := 0; i < 2; i++ {
		if !(rects[i].X < rects[i+1].X) || rects[i].Y != rects[i+1].Y {
			t.Errorf("rects %d and %d not left-to-right in one row", i, i+1)
		}
	}
}

func TestPlanCentersVertically(t *testing.T) {
	g := DefaultGeometry()
	rects, err := Plan(6, g)
	if err != nil {
		t.Fatal(err)
	}
	below := rects[3].Y - g.Margin
	above := (g.PageHeight - g.Margin) - rects[0].Top()
	if math.Abs(below-above) > eps {
		t.Errorf("space below = %v, above = %v; want equal", below, above)
	}
}

func TestPlanHeightCapped(t *testing.T) {
	g := DefaultGeometry()
	g.Cols, g.Rows = 1, 3
	rects, err := Plan(6, g)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if len(rects) != 3 {
		t.Fatalf("len(rects) = %d, want 3", len(rects))
	}
	for i, r := range rects {
		if !(r.Height < r.Width/3) {
			t.Errorf("rect %d height = %v, want < %v", i, r.Height, r.Width/3)
		}
		if r.Y < g.Margin-eps || r.Top() > g.PageHeight-g.Margin+eps {
			t.Errorf("rect %d outside vertical margins", i)
		}
	}
}

func TestPlanErrors(t *testing.T) {
	base := DefaultGeometry()

	tests := []struct {
		name    string
		tickets int
		mutate  func(*Geometry)
	}{
		{"too few tickets", 4, func(*Geometry) {}},
		{"zero cols", 6, func(g *Geometry) { g.Cols = 0 }},
		{"too many cols", 12, func(g *Geometry) { g.Cols = 4 }},
		{"too many rows", 12, func(g *Geometry) { g.Rows = 4 }},
		{"negative margin", 6, func(g *Geometry) { g.Margin = -1 }},
		{"margin eats page", 6, func(g *Geometry) { g.Margin = 150 }},
		{"gaps eat page", 6, func(g *Geometry) { g.GapX = 200 }},
		{"zero page", 6, func(g *Geometry) { g.PageWidth = 0 }},
		{"nan gap", 6, func(g *Geometry) { g.GapY = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := base
			tt.mutate(&g)
			rects, err := Plan(tt.tickets, g)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Plan() error = %v, want INVALID_CONFIG", err)
			}
			if rects != nil {
				t.Errorf("Plan() returned %d rects on error", len(rects))
			}
		})
	}
}

func TestPlanExtraTickets(t *testing.T) {
	g := DefaultGeometry()
	g.Cols, g.Rows = 2, 1
	rects, err := Plan(6, g)
	if err != nil {
		t.Fatal(err)
	}
	if len(rects) != 2 {
		t.Errorf("len(rects) = %d, want 2", len(rects))
	}
}

func TestPageSizes(t *testing.T) {
	p, err := LookupPageSize(" A4 ")
	if err != nil {
		t.Fatal(err)
	}
	if l := p.Landscape(); l.Width != 297 || l.Height != 210 {
		t.Errorf("A4 landscape = %v", l)
	}
	if pt := p.Landscape().Portrait(); pt != A4 {
		t.Errorf("Portrait() = %v, want %v", pt, A4)
	}
	if _, err := LookupPageSize("tabloid"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("LookupPageSize(tabloid) error = %v", err)
	}
}

func TestUnits(t *testing.T) {
	if got := ToPoints(25.4); math.Abs(got-72) > eps {
		t.Errorf("ToPoints(25.4) = %v, want 72", got)
	}
	if got := ToPixels(25.4, 150); math.Abs(got-150) > eps {
		t.Errorf("ToPixels(25.4, 150) = %v, want 150", got)
	}
}
