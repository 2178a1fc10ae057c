package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bingocards/pkg/config"
	"github.com/matzehuels/bingocards/pkg/errors"
	"github.com/matzehuels/bingocards/pkg/pipeline"
)

func (c *CLI) reprintCommand() *cobra.Command {
	var output, formats string
	var dpi float64
	var noCache bool

	cmd := &cobra.Command{
		Use:   "reprint <id>",
		Short: "Render an archived strip again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := errors.ValidateStripID(id); err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Archive.Backend == config.BackendNone || cfg.Archive.Backend == config.BackendMemory {
				return errors.New(errors.ErrCodeInvalidConfig, "reprint needs a persistent archive (archive.backend = %q)", cfg.Archive.Backend)
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cfg, runnerOpts{noCache: noCache})
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := pipeline.Options{
				Formats: parseFormats(formats),
				DPI:     dpi,
				Logger:  loggerFromContext(ctx),
			}
			if len(opts.Formats) == 0 {
				opts.Formats = cfg.Generate.Formats
			}
			res, err := runner.Reprint(ctx, id, opts)
			if err != nil {
				return err
			}

			if output == "" {
				output = "bingo-" + strconv.FormatUint(res.Seed, 10)
			}
			paths, err := writeArtifacts(res.Artifacts, sortedFormats(res.Artifacts), output)
			if err != nil {
				return err
			}
			printSuccess("Reprinted strip %s", res.ID)
			printStripStats(len(res.Strip), 0, res.CacheInfo.Hits, res.CacheInfo.Misses)
			for _, p := range paths {
				printFile(p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): svg, json, png, pdf (comma-separated)")
	cmd.Flags().Float64Var(&dpi, "dpi", 0, "PNG resolution (default 150, max 600)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) listCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived strips, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			store, err := newStore(ctx, cfg.Archive)
			if err != nil {
				return err
			}
			if store == nil {
				printInfo("Archive is disabled")
				return nil
			}
			defer store.Close()

			records, err := store.List(ctx, limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				printInfo("No archived strips")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{
					r.ID,
					strconv.FormatUint(r.Seed, 10),
					strconv.Itoa(len(r.Strip)),
					r.CreatedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			fmt.Println(renderRecordTable(rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of strips to show (0 for all)")
	return cmd
}

func renderRecordTable(rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Seed", "Tickets", "Created").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorOrange)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		String()
}

// sortedFormats returns the artifact formats in a stable order.
func sortedFormats(artifacts map[string][]byte) []string {
	var out []string
	for _, f := range []string{pipeline.FormatSVG, pipeline.FormatJSON, pipeline.FormatPNG, pipeline.FormatPDF} {
		if _, ok := artifacts[f]; ok {
			out = append(out, f)
		}
	}
	return out
}
