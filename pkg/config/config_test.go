package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/bingocards/pkg/errors"
	"github.com/matzehuels/bingocards/pkg/layout"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	g, err := Default().Layout.Geometry()
	if err != nil {
		t.Fatal(err)
	}
	if g != layout.DefaultGeometry() {
		t.Errorf("default geometry = %+v, want %+v", g, layout.DefaultGeometry())
	}
}

func TestLoadMissingDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") = %v", err)
	}
	if cfg.Layout.Cols != Default().Layout.Cols {
		t.Errorf("Cols = %d, want default", cfg.Layout.Cols)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load(missing) error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[layout]
cols = 2
rows = 3
margin_mm = 10
page = "letter"
landscape = false

[generate]
formats = ["svg", "png"]
dpi = 300

[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl = "24h"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Layout.Cols != 2 || cfg.Layout.Rows != 3 || cfg.Layout.Margin != 10 {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Layout.GapX != Default().Layout.GapX {
		t.Errorf("GapX = %v, want default %v", cfg.Layout.GapX, Default().Layout.GapX)
	}
	if cfg.Generate.Tickets != Default().Generate.Tickets {
		t.Errorf("Tickets = %d, want default", cfg.Generate.Tickets)
	}
	if len(cfg.Generate.Formats) != 2 || cfg.Generate.DPI != 300 {
		t.Errorf("generate = %+v", cfg.Generate)
	}

	g, err := cfg.Layout.Geometry()
	if err != nil {
		t.Fatal(err)
	}
	if g.PageWidth != layout.Letter.Width || g.PageHeight != layout.Letter.Height {
		t.Errorf("page = %vx%v, want portrait letter", g.PageWidth, g.PageHeight)
	}

	ttl, err := cfg.Cache.TTLDuration()
	if err != nil || ttl != 24*time.Hour {
		t.Errorf("TTLDuration() = %v, %v; want 24h", ttl, err)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", `[layout`},
		{"unknown key", "[layout]\ncolumns = 3\n"},
		{"cols too large", "[layout]\ncols = 4\n"},
		{"negative margin", "[layout]\nmargin_mm = -1\n"},
		{"unknown page", "[layout]\npage = \"b5\"\n"},
		{"cache backend", "[cache]\nbackend = \"memcached\"\n"},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n"},
		{"bad ttl", "[cache]\nttl = \"soon\"\n"},
		{"archive backend", "[archive]\nbackend = \"s3\"\n"},
		{"mongo without uri", "[archive]\nbackend = \"mongo\"\n"},
		{"zero tickets", "[generate]\ntickets = 0\n"},
		{"dpi above max", "[generate]\ndpi = 5000\n"},
		{"negative dpi", "[generate]\ndpi = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "bingocards", "config.toml")
	if got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}
