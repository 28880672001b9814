package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sigdoc/pkg/buildinfo"
	"github.com/matzehuels/sigdoc/pkg/cache"
	"github.com/matzehuels/sigdoc/pkg/config"
	"github.com/matzehuels/sigdoc/pkg/errors"
	"github.com/matzehuels/sigdoc/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "sigdoc"

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
	Logger *log.Logger
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "sigdoc renders type signatures from docs.json files",
		Long: `sigdoc reads package documentation in the docs.json format and prints every
declaration with readable signatures: qualifiers stripped, long signatures
broken one argument per line, records one field per line.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/sigdoc/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", c.configPath, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, keyer, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(ch, keyer, c.Logger)
	r.TTL = c.Config.Cache.TTL.Duration
	return r, nil
}

// newCache opens the configured cache backend. A file cache that cannot be
// created falls back to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, cache.Keyer, error) {
	cfg := c.Config.Cache
	if noCache || cfg.Backend == config.BackendNone {
		return cache.NewNullCache(), nil, nil
	}

	keyer := cache.NewScopedKeyer(nil, cfg.Prefix)
	switch cfg.Backend {
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to redis at %s", cfg.RedisAddr)
		}
		return rc, keyer, nil
	default:
		fc, err := cache.NewFileCache(cacheDir(c.Config))
		if err != nil {
			c.Logger.Warn("cache disabled", "error", err)
			return cache.NewNullCache(), nil, nil
		}
		return fc, keyer, nil
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the file cache directory from the configuration.
func cacheDir(cfg config.Config) string {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir
	}
	return config.DefaultCacheDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// renderFlags are the flags shared by commands that render documentation.
type renderFlags struct {
	modules   []string
	threshold int
	noLinks   bool
	refresh   bool
	noCache   bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.modules, "module", "m", nil, "only these modules (repeatable or comma-separated)")
	cmd.Flags().IntVar(&f.threshold, "threshold", 0, "line width at which signatures break (default from config)")
	cmd.Flags().BoolVar(&f.noLinks, "no-links", false, "do not link type names")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached output")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")

	cmd.ValidArgsFunction = completeDocsFile
	_ = cmd.RegisterFlagCompletionFunc("module", completeModules)
}

// options merges flags over the configuration. Flags win when set.
func (c *CLI) options(f renderFlags, format string) pipeline.Options {
	opts := pipeline.Options{
		Format:    c.Config.Render.Format,
		Modules:   f.modules,
		Threshold: c.Config.Render.Threshold,
		NoLinks:   !c.Config.Render.Links || f.noLinks,
		Theme:     c.Config.Theme,
		Title:     c.Config.Render.Title,
		Refresh:   f.refresh,
		Logger:    c.Logger,
	}
	if format != "" {
		opts.Format = format
	}
	if f.threshold > 0 {
		opts.Threshold = f.threshold
	}
	return opts
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
