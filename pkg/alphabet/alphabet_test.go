package alphabet

import (
	"testing"

	"github.com/matzehuels/bingocards/pkg/errors"
)

func TestGreek(t *testing.T) {
	a := Greek()

	if a.Len() != 48 {
		t.Fatalf("Len() = %d, want 48", a.Len())
	}
	if got := len(a.ByCase(CaseUpper)); got != 24 {
		t.Errorf("upper count = %d, want 24", got)
	}
	if got := len(a.ByCase(CaseLower)); got != 24 {
		t.Errorf("lower count = %d, want 24", got)
	}
	if a.At(0).Glyph != "Α" || a.At(0).Case != CaseUpper {
		t.Errorf("At(0) = %+v, want upper alpha", a.At(0))
	}
	if a.At(47).Glyph != "ω" || a.At(47).Case != CaseLower {
		t.Errorf("At(47) = %+v, want lower omega", a.At(47))
	}
}

func TestIndexAndLookup(t *testing.T) {
	a := Greek()

	sigma, ok := a.Lookup("σ")
	if !ok {
		t.Fatal("Lookup(σ) not found")
	}
	if got := a.Index(sigma); got != 24+17 {
		t.Errorf("Index(σ) = %d, want %d", got, 24+17)
	}
	if a.Index(Symbol{Glyph: "ς", Case: CaseLower}) != -1 {
		t.Error("final sigma should not be in the alphabet")
	}
	if !a.Contains(sigma) {
		t.Error("Contains(σ) = false")
	}
}

func TestNewRejectsDuplicates(t *testing.T) {
	_, err := New([]Symbol{{Glyph: "A"}, {Glyph: "B"}, {Glyph: "A"}})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("New() error = %v, want INVALID_INPUT", err)
	}

	_, err = New([]Symbol{{Glyph: ""}})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("New() with empty glyph error = %v, want INVALID_INPUT", err)
	}
}

func TestSymbolsIsCopy(t *testing.T) {
	a := Greek()
	s := a.Symbols()
	s[0] = Symbol{Glyph: "X"}
	if a.At(0).Glyph != "Α" {
		t.Error("Symbols() must not expose internal storage")
	}
}

func TestCaseString(t *testing.T) {
	if CaseUpper.String() != "upper" || CaseLower.String() != "lower" {
		t.Errorf("Case strings = %q, %q", CaseUpper, CaseLower)
	}
}
