// Package cli implements the bingocards command-line interface.
//
// # Commands
//
//   - generate: build a strip of tickets and write SVG, JSON, PNG or PDF
//   - reprint: render an archived strip again
//   - list: show recently archived strips
//   - draw: interactive draw pool for the caller
//   - serve: HTTP API
//   - cache: manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// travels in context.Context (see withLogger).
//
// # Configuration
//
// Defaults come from $XDG_CONFIG_HOME/bingocards/config.toml or the file
// named by --config; flags override the file.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bingocards/pkg/archive"
	"github.com/matzehuels/bingocards/pkg/buildinfo"
	"github.com/matzehuels/bingocards/pkg/cache"
	"github.com/matzehuels/bingocards/pkg/config"
	"github.com/matzehuels/bingocards/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "bingocards"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Bingocards prints bingo tickets of Greek letters",
		Long:         `Bingocards generates strips of 3×9 bingo tickets filled with Greek letters, spreads letter usage evenly across a strip, and lays the tickets out on printable pages.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/bingocards/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.reprintCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.drawCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file selected by --config.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	c.Logger.Debug("loaded config", "path", c.configPath, "cache", cfg.Cache.Backend, "archive", cfg.Archive.Backend)
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// runnerOpts turns off backends for a single invocation.
type runnerOpts struct {
	noCache   bool
	noArchive bool
}

// newRunner creates a pipeline runner with the configured backends.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, ro runnerOpts) (*pipeline.Runner, error) {
	ch, err := newCache(ctx, cfg.Cache, ro.noCache)
	if err != nil {
		return nil, err
	}
	var store archive.Store
	if !ro.noArchive {
		store, err = newStore(ctx, cfg.Archive)
		if err != nil {
			ch.Close()
			return nil, err
		}
	}

	runner := pipeline.NewRunner(ch, nil, store, c.Logger)
	if ttl, _ := cfg.Cache.TTLDuration(); ttl > 0 {
		runner.TTL = ttl
	}
	return runner, nil
}

func newCache(ctx context.Context, cfg config.CacheConfig, disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		dir := cfg.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}
}

func newStore(ctx context.Context, cfg config.ArchiveConfig) (archive.Store, error) {
	switch cfg.Backend {
	case config.BackendNone:
		return nil, nil
	case config.BackendMemory:
		return archive.NewMemoryStore(), nil
	case config.BackendMongo:
		return archive.NewMongoStore(ctx, archive.MongoConfig{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDatabase,
		})
	default:
		return archive.NewFileStore(cfg.Dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/bingocards/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
