// Package pipeline runs the generate → layout → render pipeline shared by
// the CLI and the HTTP server.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, store, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Seed:    42,
//	    Formats: []string{"svg", "pdf"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Archived strips are rendered again with [Runner.Reprint].
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bingocards/pkg/alphabet"
	"github.com/matzehuels/bingocards/pkg/cache"
	"github.com/matzehuels/bingocards/pkg/errors"
	"github.com/matzehuels/bingocards/pkg/layout"
	"github.com/matzehuels/bingocards/pkg/render"
	"github.com/matzehuels/bingocards/pkg/ticket"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultAlphabet names the 48-symbol Greek alphabet.
	DefaultAlphabet = "greek"

	// MaxTickets bounds a single request.
	MaxTickets = 100
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ContentTypes maps formats to their MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// Alphabets lists the named symbol sets.
var Alphabets = map[string]func() *alphabet.Alphabet{
	DefaultAlphabet: alphabet.Greek,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Generation options
	Seed        uint64 `json:"seed,omitempty"` // 0 picks a random seed
	Tickets     int    `json:"tickets,omitempty"`
	Alphabet    string `json:"alphabet,omitempty"`
	MaxAttempts int    `json:"max_attempts,omitempty"`

	// Layout options. Page, when set, replaces the page dimensions of
	// Geometry; Portrait selects its orientation.
	Geometry *layout.Geometry `json:"geometry,omitempty"`
	Page     string           `json:"page,omitempty"`
	Portrait bool             `json:"portrait,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	DPI     float64  `json:"dpi,omitempty"`
	Refresh bool     `json:"refresh,omitempty"` // skip cache reads

	// Logger, when set, replaces the runner's logger for this run.
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID is the archive record ID, empty when no store is configured.
	ID string

	// Seed reproduces Strip.
	Seed uint64

	Strip ticket.Strip

	// Page holds the geometry and placements.
	Page render.Page

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats Stats

	// CacheInfo tracks which formats came from the cache.
	CacheInfo CacheInfo
}

// Unplaced returns the number of tickets that did not fit on the page.
func (r *Result) Unplaced() int { return len(r.Strip) - r.Page.Placed() }

// Stats contains pipeline execution statistics.
type Stats struct {
	Tickets      int
	MaskAttempts int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	Hits   []string // formats served from cache
	Misses []string // formats rendered
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// LookupAlphabet returns the named alphabet.
func LookupAlphabet(name string) (*alphabet.Alphabet, error) {
	if name == "" {
		name = DefaultAlphabet
	}
	newAlphabet, ok := Alphabets[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown alphabet %q", name)
	}
	return newAlphabet(), nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and fills in defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Tickets == 0 {
		o.Tickets = ticket.DefaultStripSize
	}
	if o.Tickets < 1 || o.Tickets > MaxTickets {
		return errors.New(errors.ErrCodeInvalidInput, "tickets must be between 1 and %d, got %d", MaxTickets, o.Tickets)
	}
	if o.Alphabet == "" {
		o.Alphabet = DefaultAlphabet
	}
	if _, err := LookupAlphabet(o.Alphabet); err != nil {
		return err
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = ticket.DefaultMaxAttempts
	}
	if o.MaxAttempts < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_attempts must be positive, got %d", o.MaxAttempts)
	}

	if err := o.resolveGeometry(); err != nil {
		return err
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.DPI == 0 {
		o.DPI = render.DefaultDPI
	}
	if err := render.ValidateDPI(o.DPI); err != nil {
		return err
	}

	o.validated = true
	return nil
}

func (o *Options) resolveGeometry() error {
	g := layout.DefaultGeometry()
	if o.Geometry != nil {
		g = *o.Geometry
	}
	if o.Page != "" {
		page, err := layout.LookupPageSize(o.Page)
		if err != nil {
			return err
		}
		if o.Portrait {
			page = page.Portrait()
		} else {
			page = page.Landscape()
		}
		g.PageWidth, g.PageHeight = page.Width, page.Height
	} else if o.Portrait {
		g.PageWidth, g.PageHeight = min(g.PageWidth, g.PageHeight), max(g.PageWidth, g.PageHeight)
	}
	if err := g.Validate(); err != nil {
		return err
	}
	o.Geometry = &g
	return nil
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(seed uint64, format string) cache.ArtifactKeyOpts {
	return artifactKeyOpts(seed, o.Tickets, o.Alphabet, *o.Geometry, format, o.DPI)
}

func artifactKeyOpts(seed uint64, tickets int, alpha string, g layout.Geometry, format string, dpi float64) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Seed:     seed,
		Tickets:  tickets,
		Alphabet: alpha,
		Geometry: g,
		Format:   format,
	}
	if format == FormatPNG {
		k.DPI = dpi
	}
	return k
}
