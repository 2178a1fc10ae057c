package fonts

import "testing"

func TestBoldFaceHasGreek(t *testing.T) {
	face, err := BoldFace(24, 72)
	if err != nil {
		t.Fatalf("BoldFace() error: %v", err)
	}
	defer face.Close()

	for _, r := range "ΑΩαω" {
		if _, ok := face.GlyphAdvance(r); !ok {
			t.Errorf("no glyph for %q", r)
		}
	}
}

func TestBoldCached(t *testing.T) {
	a, err := Bold()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Bold()
	if a != b {
		t.Error("Bold() should return the cached font")
	}
}
