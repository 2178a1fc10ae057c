// Package config loads the bingocards TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/bingocards/config.toml (falling back to
// ~/.config/bingocards/config.toml). Every key is optional; absent keys keep
// the values from [Default].
//
//	[layout]
//	cols = 3
//	rows = 2
//	margin_mm = 6
//	page = "a4"
//	landscape = true
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/bingocards/pkg/errors"
	"github.com/matzehuels/bingocards/pkg/layout"
	"github.com/matzehuels/bingocards/pkg/render"
	"github.com/matzehuels/bingocards/pkg/ticket"
)

// Backend names shared by the cache and archive sections.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
	BackendNone   = "none"
)

// Config is the full configuration file.
type Config struct {
	Layout   LayoutConfig   `toml:"layout"`
	Generate GenerateConfig `toml:"generate"`
	Cache    CacheConfig    `toml:"cache"`
	Archive  ArchiveConfig  `toml:"archive"`
	Server   ServerConfig   `toml:"server"`
}

// LayoutConfig describes the printed page.
type LayoutConfig struct {
	Cols      int     `toml:"cols"`
	Rows      int     `toml:"rows"`
	Margin    float64 `toml:"margin_mm"`
	GapX      float64 `toml:"gap_x_mm"`
	GapY      float64 `toml:"gap_y_mm"`
	Page      string  `toml:"page"`
	Landscape bool    `toml:"landscape"`
}

// GenerateConfig holds generation and output defaults.
type GenerateConfig struct {
	Tickets     int      `toml:"tickets"`
	MaxAttempts int      `toml:"max_attempts"`
	Formats     []string `toml:"formats"`
	DPI         float64  `toml:"dpi"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	TTL           string `toml:"ttl"`
}

// ArchiveConfig selects where generated strips are kept.
type ArchiveConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// ServerConfig configures `bingocards serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	g := layout.DefaultGeometry()
	return Config{
		Layout: LayoutConfig{
			Cols:      g.Cols,
			Rows:      g.Rows,
			Margin:    g.Margin,
			GapX:      g.GapX,
			GapY:      g.GapY,
			Page:      "a4",
			Landscape: true,
		},
		Generate: GenerateConfig{
			Tickets:     ticket.DefaultStripSize,
			MaxAttempts: ticket.DefaultMaxAttempts,
			Formats:     []string{"svg"},
			DPI:         150,
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     "168h",
		},
		Archive: ArchiveConfig{
			Backend:       BackendFile,
			MongoDatabase: "bingocards",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// DefaultPath returns the config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "bingocards", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "bingocards", "config.toml"), nil
}

// Load reads the configuration at path on top of [Default].
// An empty path means [DefaultPath], where a missing file is not an error.
// An explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s", path)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks backend names, durations, the raster resolution and the
// page geometry.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	if _, err := c.Cache.TTLDuration(); err != nil {
		return err
	}

	switch c.Archive.Backend {
	case BackendFile, BackendMongo, BackendMemory, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "archive.backend %q (want file, mongo, memory or none)", c.Archive.Backend)
	}
	if c.Archive.Backend == BackendMongo && c.Archive.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "archive.mongo_uri is required for the mongo backend")
	}

	if c.Generate.Tickets < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "generate.tickets must be at least 1, got %d", c.Generate.Tickets)
	}
	if c.Generate.DPI != 0 {
		if err := render.ValidateDPI(c.Generate.DPI); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "generate.dpi")
		}
	}

	_, err := c.Layout.Geometry()
	return err
}

// TTLDuration parses the cache TTL. An empty string means the cache default.
func (c CacheConfig) TTLDuration() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.ttl %q", c.TTL)
	}
	return d, nil
}

// Geometry resolves the page name and orientation into a validated
// layout.Geometry.
func (l LayoutConfig) Geometry() (layout.Geometry, error) {
	page, err := layout.LookupPageSize(l.Page)
	if err != nil {
		return layout.Geometry{}, err
	}
	if l.Landscape {
		page = page.Landscape()
	} else {
		page = page.Portrait()
	}
	g := layout.Geometry{
		Cols:       l.Cols,
		Rows:       l.Rows,
		Margin:     l.Margin,
		GapX:       l.GapX,
		GapY:       l.GapY,
		PageWidth:  page.Width,
		PageHeight: page.Height,
	}
	if err := g.Validate(); err != nil {
		return layout.Geometry{}, err
	}
	return g, nil
}
