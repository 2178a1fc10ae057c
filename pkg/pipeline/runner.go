package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bingocards/pkg/archive"
	"github.com/matzehuels/bingocards/pkg/cache"
	"github.com/matzehuels/bingocards/pkg/errors"
	"github.com/matzehuels/bingocards/pkg/observability"
	"github.com/matzehuels/bingocards/pkg/render"
	"github.com/matzehuels/bingocards/pkg/ticket"
)

// Runner encapsulates pipeline execution with caching and archiving.
//
// The Runner holds no per-run state. Multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  archive.Store // nil disables archiving
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, store archive.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Store:  store,
		Logger: logger,
		TTL:    cache.DefaultTTL,
	}
}

// Execute generates a strip, lays it out, renders every requested format
// and archives the strip when a store is configured. A strip is archived
// only after all of its formats rendered.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	seed := opts.Seed
	if seed == 0 {
		seed = ticket.RandomSeed()
	}
	result := &Result{Seed: seed}

	genStart := time.Now()
	strip, stats, err := r.generate(ctx, opts, seed)
	if err != nil {
		return nil, err
	}
	result.Strip = strip
	result.Stats.Tickets = stats.Tickets
	result.Stats.MaskAttempts = stats.MaskAttempts
	result.Stats.GenerateTime = time.Since(genStart)

	logger.Info("generated strip",
		"seed", seed,
		"tickets", stats.Tickets,
		"mask_attempts", stats.MaskAttempts,
		"duration", result.Stats.GenerateTime)

	page, err := render.NewPage(strip, *opts.Geometry)
	if err != nil {
		return nil, err
	}
	result.Page = page
	r.warnUnplaced(logger, page)

	renderStart := time.Now()
	keyFor := func(format string) string {
		return r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(seed, format))
	}
	result.Artifacts, result.CacheInfo, err = r.renderAll(ctx, page, opts, keyFor)
	if err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(result.CacheInfo.Hits),
		"duration", result.Stats.RenderTime)

	if r.Store != nil {
		rec := &archive.Record{
			Seed:     seed,
			Alphabet: opts.Alphabet,
			Geometry: *opts.Geometry,
			Strip:    strip,
		}
		if err := r.Store.Save(ctx, rec); err != nil {
			return nil, fmt.Errorf("archive strip: %w", err)
		}
		result.ID = rec.ID
		logger.Debug("archived strip", "id", rec.ID)
	}

	return result, nil
}

// Reprint renders an archived strip again. Only the render options of
// opts (formats, DPI, refresh) are used; the strip, alphabet and page
// geometry come from the record.
func (r *Runner) Reprint(ctx context.Context, id string, opts Options) (*Result, error) {
	if r.Store == nil {
		return nil, fmt.Errorf("reprint: no archive configured")
	}
	logger := r.logger(opts)

	rec, err := r.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkRecord(rec); err != nil {
		logger.Error("archived strip is corrupt", "id", rec.ID, "err", err)
		return nil, err
	}

	opts.Geometry = &rec.Geometry
	opts.Page = ""
	opts.Portrait = false
	opts.Alphabet = rec.Alphabet
	opts.Tickets = len(rec.Strip)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	page, err := render.NewPage(rec.Strip, rec.Geometry)
	if err != nil {
		return nil, err
	}
	r.warnUnplaced(logger, page)

	result := &Result{
		ID:    rec.ID,
		Seed:  rec.Seed,
		Strip: rec.Strip,
		Page:  page,
		Stats: Stats{Tickets: len(rec.Strip)},
	}

	renderStart := time.Now()
	keyFor := func(format string) string {
		return r.Keyer.ArtifactKey(artifactKeyOpts(rec.Seed, len(rec.Strip), rec.Alphabet, rec.Geometry, format, opts.DPI))
	}
	result.Artifacts, result.CacheInfo, err = r.renderAll(ctx, page, opts, keyFor)
	if err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("reprinted strip", "id", rec.ID, "formats", opts.Formats)
	return result, nil
}

// checkRecord verifies that an archived strip is well formed and only
// uses symbols of its alphabet.
func checkRecord(rec *archive.Record) error {
	a, err := LookupAlphabet(rec.Alphabet)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "archived strip %s", rec.ID)
	}
	for i, t := range rec.Strip {
		if err := t.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "archived strip %s: ticket %d", rec.ID, i)
		}
		for _, s := range t.Symbols() {
			if a.Index(s) >= 0 {
				continue
			}
			if _, ok := a.Lookup(s.Glyph); ok {
				return errors.New(errors.ErrCodeInternal, "archived strip %s: ticket %d: symbol %q has case %s", rec.ID, i, s.Glyph, s.Case)
			}
			return errors.New(errors.ErrCodeInternal, "archived strip %s: ticket %d: symbol %q is not in alphabet %q", rec.ID, i, s.Glyph, rec.Alphabet)
		}
	}
	return nil
}

// Generate builds a strip for seed without layout or rendering.
func Generate(ctx context.Context, opts Options, seed uint64) (ticket.Strip, ticket.Stats, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, ticket.Stats{}, err
	}
	a, err := LookupAlphabet(opts.Alphabet)
	if err != nil {
		return nil, ticket.Stats{}, err
	}

	observability.Generation().OnStripStart(ctx, opts.Tickets)
	start := time.Now()
	g := ticket.NewGenerator(a, ticket.NewRand(seed), ticket.WithMaxAttempts(opts.MaxAttempts))
	strip, stats, err := g.Generate(opts.Tickets)
	observability.Generation().OnStripComplete(ctx, stats.Tickets, stats.MaskAttempts, time.Since(start), err)
	return strip, stats, err
}

func (r *Runner) generate(ctx context.Context, opts Options, seed uint64) (ticket.Strip, ticket.Stats, error) {
	strip, stats, err := Generate(ctx, opts, seed)
	if err != nil {
		r.logger(opts).Error("strip generation failed", "seed", seed, "err", err)
	}
	return strip, stats, err
}

// renderAll renders each format, serving cached bytes unless opts.Refresh.
func (r *Runner) renderAll(ctx context.Context, page render.Page, opts Options, keyFor func(string) string) (map[string][]byte, CacheInfo, error) {
	var info CacheInfo
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, info, err
		}
		key := keyFor(format)

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				info.Hits = append(info.Hits, format)
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}

		data, err := RenderFormat(ctx, page, format, opts.DPI)
		if err != nil {
			return nil, info, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
		info.Misses = append(info.Misses, format)

		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.logger(opts).Warn("cache write failed", "format", format, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, info, nil
}

// logger returns opts.Logger when set, otherwise the runner's logger.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

func (r *Runner) warnUnplaced(logger *log.Logger, page render.Page) {
	if n := len(page.Tickets) - page.Placed(); n > 0 {
		logger.Warn("tickets left off the page",
			"unplaced", n,
			"slots", page.Geometry.Slots())
	}
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	var firstErr error
	if r.Cache != nil {
		firstErr = r.Cache.Close()
	}
	if r.Store != nil {
		if err := r.Store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
