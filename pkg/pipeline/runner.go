package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/sigdoc/pkg/cache"
	"github.com/matzehuels/sigdoc/pkg/docs"
	"github.com/matzehuels/sigdoc/pkg/errors"
	"github.com/matzehuels/sigdoc/pkg/observability"
	"github.com/matzehuels/sigdoc/pkg/printer"
	"github.com/matzehuels/sigdoc/pkg/sink"
	"github.com/matzehuels/sigdoc/pkg/xref"
)

// Runner executes the pipeline with caching.
//
// The Runner holds no per-render state, so the CLI and every request of
// the HTTP server can share one instance.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration // Output TTL; zero means cache.TTLOutput
}

// NewRunner creates a runner. A nil keyer means DefaultKeyer, a nil cache
// disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
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
		Logger: logger,
	}
}

// Execute loads path and renders it.
func (r *Runner) Execute(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	src, err := r.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return r.Render(ctx, src, opts)
}

// Load reads and decodes a docs.json file.
func (r *Runner) Load(ctx context.Context, path string) (*Source, error) {
	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx, path)
	start := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Wrap(errors.ErrCodeFileNotFound, err, "docs file %s", path)
		} else {
			err = errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
		}
		hooks.OnDecodeComplete(ctx, path, 0, time.Since(start), err)
		return nil, err
	}

	src, err := r.LoadBytes(ctx, path, data)
	hooks.OnDecodeComplete(ctx, path, moduleCount(src), time.Since(start), err)
	return src, err
}

// LoadBytes decodes documentation already in memory. name labels the
// source in logs and errors.
func (r *Runner) LoadBytes(ctx context.Context, name string, data []byte) (*Source, error) {
	start := time.Now()
	modules, err := docs.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	r.Logger.Debug("decoded docs",
		"source", name,
		"modules", len(modules),
		"duration", time.Since(start))

	return &Source{
		Path:    name,
		Hash:    cache.Hash(data),
		Modules: modules,
	}, nil
}

func moduleCount(src *Source) int {
	if src == nil {
		return 0
	}
	return len(src.Modules)
}

// Render renders the selected modules of src in opts.Format.
func (r *Runner) Render(ctx context.Context, src *Source, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	modules, err := src.Select(opts.Modules)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	result.Stats.ModuleCount = len(modules)
	for _, m := range modules {
		result.Stats.EntryCount += len(m.Entries())
	}

	key := r.Keyer.OutputKey(src.Hash, opts.OutputKeyOpts())
	if data, ok := r.cached(ctx, "output", key, opts.Refresh); ok {
		result.Output = data
		result.CacheHit = true
		return result, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Format, len(modules))
	start := time.Now()

	pages, err := r.Pages(ctx, modules, opts.PrinterOptions())
	if err == nil {
		result.Pages = pages
		result.Output, err = sink.Render(opts.Format, pages, opts.SinkOptions()...)
	}
	result.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, opts.Format, len(result.Output), result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	r.Logger.Info("rendered documentation",
		"format", opts.Format,
		"modules", result.Stats.ModuleCount,
		"entries", result.Stats.EntryCount,
		"duration", result.Stats.RenderTime)

	r.store(ctx, "output", key, result.Output, r.outputTTL())
	return result, nil
}

// Pages lays out every module concurrently. The result keeps the order of
// modules.
func (r *Runner) Pages(ctx context.Context, modules []docs.Module, opts printer.Options) ([]sink.Page, error) {
	pages := make([]sink.Page, len(modules))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, m := range modules {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pages[i] = sink.NewPage(m, printer.RenderModule(m, opts))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

// Graph renders the reference graph of the selected modules of src.
// It returns the DOT or SVG bytes and whether they came from the cache.
func (r *Runner) Graph(ctx context.Context, src *Source, opts GraphOptions) ([]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	modules, err := src.Select(opts.Modules)
	if err != nil {
		return nil, false, err
	}

	key := r.Keyer.GraphKey(src.Hash, cache.GraphKeyOpts{Format: opts.Format, Modules: opts.Modules})
	if data, ok := r.cached(ctx, "graph", key, opts.Refresh); ok {
		return data, true, nil
	}

	pages, err := r.Pages(ctx, modules, printer.Options{Links: true})
	if err != nil {
		return nil, false, err
	}
	graph := xref.Build(pages)
	out := []byte(graph.ToDOT())
	if opts.Format == GraphFormatSVG {
		start := time.Now()
		if out, err = xref.RenderSVG(ctx, string(out)); err != nil {
			return nil, false, fmt.Errorf("render graph: %w", err)
		}
		r.Logger.Debug("rendered svg",
			"nodes", len(graph.Nodes),
			"edges", len(graph.Edges),
			"duration", time.Since(start))
	}

	r.store(ctx, "graph", key, out, cache.TTLGraph)
	return out, false, nil
}

// cached reads key unless refresh is set. Cache errors count as misses.
func (r *Runner) cached(ctx context.Context, keyType, key string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	r.Logger.Debug("cache hit", "type", keyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) outputTTL() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLOutput
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
