// Package config loads sigdoc settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/sigdoc/config.toml unless --config
// names another one. Every key is optional; missing keys keep the value from
// [Default]. Command-line flags override the file.
//
//	[render]
//	format = "ansi"
//	threshold = 80
//	links = true
//
//	[theme]
//	keyword = "36"
//	link = "#5fafff"
//
//	[cache]
//	backend = "redis"
//	ttl = "24h"
//	redis_addr = "localhost:6379"
//
//	[serve]
//	addr = ":8080"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sigdoc/pkg/cache"
	"github.com/matzehuels/sigdoc/pkg/errors"
	"github.com/matzehuels/sigdoc/pkg/printer"
	"github.com/matzehuels/sigdoc/pkg/sink"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full configuration file.
type Config struct {
	Render RenderConfig `toml:"render"`
	Theme  sink.Colors  `toml:"theme"`
	Cache  CacheConfig  `toml:"cache"`
	Serve  ServeConfig  `toml:"serve"`
}

// RenderConfig holds the defaults for `sigdoc render`.
type RenderConfig struct {
	Format    string `toml:"format"`
	Threshold int    `toml:"threshold"`
	Links     bool   `toml:"links"`
	Title     string `toml:"title"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	TTL           Duration `toml:"ttl"`
	Prefix        string   `toml:"prefix"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
}

// ServeConfig configures `sigdoc serve`.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string ("12h", "90m").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: RenderConfig{
			Format:    sink.FormatANSI,
			Threshold: printer.DefaultThreshold,
			Links:     true,
			Title:     "Documentation",
		},
		Theme: sink.DefaultColors(),
		Cache: CacheConfig{
			Backend:   BackendFile,
			Dir:       DefaultCacheDir(),
			TTL:       Duration{cache.TTLOutput},
			Prefix:    "sigdoc:",
			RedisAddr: "localhost:6379",
		},
		Serve: ServeConfig{Addr: ":8080"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/sigdoc/config.toml, falling back to
// the platform config directory.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "sigdoc", "config.toml")
}

// DefaultCacheDir returns $XDG_CACHE_HOME/sigdoc, or ~/.cache/sigdoc.
func DefaultCacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "sigdoc")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "sigdoc-cache")
	}
	return filepath.Join(home, ".cache", "sigdoc")
}

// Load reads the configuration at path on top of Default.
// An empty path loads DefaultPath, and a missing default file is not an
// error. A missing explicit path is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if err := sink.ValidateFormat(c.Render.Format); err != nil {
		return err
	}
	if c.Render.Threshold <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.threshold must be positive, got %d", c.Render.Threshold)
	}
	switch c.Cache.Backend {
	case BackendFile:
		if c.Cache.Dir == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.dir is required for the file backend")
		}
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	case BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.Serve.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "serve.addr is required")
	}
	return nil
}
