package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/bingocards/pkg/config"
	"github.com/matzehuels/bingocards/pkg/errors"
	"github.com/matzehuels/bingocards/pkg/layout"
	"github.com/matzehuels/bingocards/pkg/pipeline"
)

// generateFlags holds the command-line flags for the generate command.
// Layout and generation flags override the config file only when set.
type generateFlags struct {
	output      string
	formats     string
	seed        uint64
	tickets     int
	cols        int
	rows        int
	margin      float64
	gapX        float64
	gapY        float64
	page        string
	portrait    bool
	dpi         float64
	maxAttempts int
	noCache     bool
	noArchive   bool
	refresh     bool
}

func (c *CLI) generateCommand() *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a strip of tickets and write it to disk",
		Long: `Generate a strip of bingo tickets and render it.

Each ticket is a 3×9 grid with 15 Greek letters, five per row. Letters
already used on the strip are less likely to be picked again, so a strip
spreads the alphabet evenly. The same --seed always produces the same strip.`,
		Example: `  bingocards generate
  bingocards generate --seed 42 -f svg,pdf -o bingo
  bingocards generate --cols 2 --rows 3 --page a4 --portrait`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := buildOptions(cmd, cfg, &f)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), cfg, opts, &f)
		},
	}

	bindGenerateFlags(cmd.Flags(), &f)
	return cmd
}

// bindGenerateFlags registers the generate flags on fl.
func bindGenerateFlags(fl *pflag.FlagSet, f *generateFlags) {
	fl.StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	fl.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), json, png, pdf (comma-separated)")
	fl.Uint64Var(&f.seed, "seed", 0, "random seed (0 picks one)")
	fl.IntVarP(&f.tickets, "tickets", "n", 0, "tickets per strip (default 6)")
	fl.IntVar(&f.cols, "cols", 0, "tickets across the page (1-3)")
	fl.IntVar(&f.rows, "rows", 0, "tickets down the page (1-3)")
	fl.Float64Var(&f.margin, "margin", 0, "page margin in mm")
	fl.Float64Var(&f.gapX, "gap-x", 0, "horizontal gap between tickets in mm")
	fl.Float64Var(&f.gapY, "gap-y", 0, "vertical gap between tickets in mm")
	fl.StringVar(&f.page, "page", "", "page size: a3, a4 (default), a5, letter, legal")
	fl.BoolVar(&f.portrait, "portrait", false, "portrait orientation (default landscape)")
	fl.Float64Var(&f.dpi, "dpi", 0, "PNG resolution (default 150, max 600)")
	fl.IntVar(&f.maxAttempts, "max-attempts", 0, "mask attempts per ticket before giving up")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
	fl.BoolVar(&f.noArchive, "no-archive", false, "do not archive the strip")
	fl.BoolVar(&f.refresh, "refresh", false, "re-render even when cached")
}

// buildOptions merges built-in defaults, the config file and changed flags.
func buildOptions(cmd *cobra.Command, cfg config.Config, f *generateFlags) (pipeline.Options, error) {
	changed := cmd.Flags().Changed

	lc := cfg.Layout
	if changed("cols") {
		lc.Cols = f.cols
	}
	if changed("rows") {
		lc.Rows = f.rows
	}
	if changed("margin") {
		lc.Margin = f.margin
	}
	if changed("gap-x") {
		lc.GapX = f.gapX
	}
	if changed("gap-y") {
		lc.GapY = f.gapY
	}
	if changed("page") {
		lc.Page = f.page
	}
	if changed("portrait") {
		lc.Landscape = !f.portrait
	}
	geom, err := lc.Geometry()
	if err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{
		Seed:        f.seed,
		Tickets:     cfg.Generate.Tickets,
		MaxAttempts: cfg.Generate.MaxAttempts,
		Geometry:    &geom,
		Formats:     cfg.Generate.Formats,
		DPI:         cfg.Generate.DPI,
		Refresh:     f.refresh,
	}
	if changed("tickets") {
		opts.Tickets = f.tickets
	}
	if changed("max-attempts") {
		opts.MaxAttempts = f.maxAttempts
	}
	if changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if changed("dpi") {
		opts.DPI = f.dpi
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

func (c *CLI) runGenerate(ctx context.Context, cfg config.Config, opts pipeline.Options, f *generateFlags) error {
	logger := loggerFromContext(ctx)
	opts.Logger = logger

	runner, err := c.newRunner(ctx, cfg, runnerOpts{noCache: f.noCache, noArchive: f.noArchive})
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	base := f.output
	if base == "" {
		base = "bingo-" + strconv.FormatUint(res.Seed, 10)
	}
	paths, err := writeArtifacts(res.Artifacts, opts.Formats, base)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d file(s)", len(paths)))

	printSuccess("Generated %d tickets", len(res.Strip))
	printStripStats(res.Stats.Tickets, res.Stats.MaskAttempts, res.CacheInfo.Hits, res.CacheInfo.Misses)
	printKeyValue("seed", strconv.FormatUint(res.Seed, 10))
	if res.ID != "" {
		printKeyValue("id", res.ID)
	}
	printKeyValue("page", describePage(res.Page.Geometry))
	if n := res.Unplaced(); n > 0 {
		printWarning("%d ticket(s) did not fit on the page (%d slots)", n, res.Page.Geometry.Slots())
	}
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// writeArtifacts writes each format to disk. A single format is written
// to output as given (adding the extension when it has none); several
// formats are written to output with its extension replaced.
func writeArtifacts(artifacts map[string][]byte, formats []string, output string) ([]string, error) {
	if err := errors.ValidatePath(output); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(output, format, len(formats) > 1)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return paths, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func outputPath(output, format string, multiple bool) string {
	ext := filepath.Ext(output)
	if multiple || ext == "" {
		return strings.TrimSuffix(output, ext) + "." + format
	}
	return output
}

func describePage(g layout.Geometry) string {
	orient := "landscape"
	if g.PageWidth < g.PageHeight {
		orient = "portrait"
	}
	return fmt.Sprintf("%d×%d tickets, %.0f×%.0f mm %s", g.Cols, g.Rows, g.PageWidth, g.PageHeight, orient)
}
