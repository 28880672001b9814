package pipeline

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sigdoc/pkg/cache"
	"github.com/matzehuels/sigdoc/pkg/errors"
	"github.com/matzehuels/sigdoc/pkg/observability"
	"github.com/matzehuels/sigdoc/pkg/printer"
	"github.com/matzehuels/sigdoc/pkg/sink"
)

const testdata = "../docs/testdata/core.json"

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	return NewRunner(c, nil, nil)
}

func loadSource(t *testing.T, r *Runner) *Source {
	t.Helper()
	src, err := r.Load(context.Background(), testdata)
	require.NoError(t, err)
	return src
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	require.NoError(t, opts.ValidateAndSetDefaults())

	assert.Equal(t, DefaultFormat, opts.Format)
	assert.Equal(t, printer.DefaultThreshold, opts.Threshold)
	assert.Equal(t, DefaultTitle, opts.Title)
	assert.NotNil(t, opts.Logger, "logger defaults to a discard logger")
	assert.True(t, opts.PrinterOptions().Links, "links are on by default")
}

func TestOptionsInvalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"format", Options{Format: "pdf"}, errors.ErrCodeInvalidFormat},
		{"threshold", Options{Threshold: -1}, errors.ErrCodeInvalidInput},
		{"module", Options{Modules: []string{"maybe"}}, errors.ErrCodeInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			assert.True(t, errors.Is(err, tt.code), "got %v, want code %s", err, tt.code)
		})
	}
}

func TestOutputKeyOpts(t *testing.T) {
	ansi := Options{Format: sink.FormatANSI, Theme: sink.Colors{Keyword: "1"}}
	require.NoError(t, ansi.ValidateAndSetDefaults())
	assert.NotEmpty(t, ansi.OutputKeyOpts().Theme, "ansi key includes the theme")

	text := Options{Format: sink.FormatText, Theme: sink.Colors{Keyword: "1"}, Title: "x"}
	require.NoError(t, text.ValidateAndSetDefaults())
	k := text.OutputKeyOpts()
	assert.Empty(t, k.Theme)
	assert.Empty(t, k.Title)

	html := Options{Format: sink.FormatHTML, Theme: sink.Colors{Keyword: "1"}, Title: "Core"}
	require.NoError(t, html.ValidateAndSetDefaults())
	assert.Empty(t, html.OutputKeyOpts().Theme, "html output does not use the theme")
	assert.Equal(t, "Core", html.OutputKeyOpts().Title)
}

func TestGraphOptions(t *testing.T) {
	var opts GraphOptions
	require.NoError(t, opts.ValidateAndSetDefaults())
	assert.Equal(t, GraphFormatDOT, opts.Format)

	bad := GraphOptions{Format: "png"}
	assert.True(t, errors.Is(bad.ValidateAndSetDefaults(), errors.ErrCodeInvalidFormat))
}

func TestLoad(t *testing.T) {
	r := newTestRunner(t)
	src := loadSource(t, r)
	assert.Len(t, src.Modules, 2)
	assert.Len(t, src.Hash, 64)

	_, err := r.Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)
}

func TestLoadBytesInvalid(t *testing.T) {
	_, err := newTestRunner(t).LoadBytes(context.Background(), "inline", []byte("{"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidDocs), "got %v", err)
}

func TestExecute(t *testing.T) {
	result, err := newTestRunner(t).Execute(context.Background(), testdata, Options{Format: sink.FormatText})
	require.NoError(t, err)

	out := string(result.Output)
	assert.Contains(t, out, "type Maybe a\n    = Just a\n    | Nothing")
	assert.Contains(t, out, "type alias Point =\n    { x : Float\n    , y : Float }")
	assert.Contains(t, out, "(|>>) : Shape -> (Shape -> Shape) -> Shape    infixr 0")

	assert.Equal(t, 2, result.Stats.ModuleCount)
	assert.Equal(t, 10, result.Stats.EntryCount)
	assert.False(t, result.CacheHit, "first render misses the cache")
}

func TestExecuteHTMLQualifiesAnchors(t *testing.T) {
	result, err := newTestRunner(t).Execute(context.Background(), testdata, Options{Format: sink.FormatHTML})
	require.NoError(t, err)

	out := string(result.Output)
	assert.Contains(t, out, `id="Maybe.Maybe"`)
	assert.Contains(t, out, `href="#Geometry.Shape.Point"`)
}

func TestRenderCache(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	src := loadSource(t, r)

	first, err := r.Render(ctx, src, Options{Format: sink.FormatJSON})
	require.NoError(t, err)
	second, err := r.Render(ctx, src, Options{Format: sink.FormatJSON})
	require.NoError(t, err)
	assert.True(t, second.CacheHit, "second render hits the cache")
	assert.Equal(t, first.Output, second.Output)

	refreshed, err := r.Render(ctx, src, Options{Format: sink.FormatJSON, Refresh: true})
	require.NoError(t, err)
	assert.False(t, refreshed.CacheHit, "refresh bypasses the cache")

	other, err := r.Render(ctx, src, Options{Format: sink.FormatJSON, Threshold: 40})
	require.NoError(t, err)
	assert.False(t, other.CacheHit, "a different threshold misses the cache")
}

func TestRenderSelectModules(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	src := loadSource(t, r)

	result, err := r.Render(ctx, src, Options{Format: sink.FormatText, Modules: []string{"Geometry.Shape"}})
	require.NoError(t, err)
	assert.NotContains(t, string(result.Output), "withDefault")
	require.Len(t, result.Pages, 1)
	assert.Equal(t, "Geometry.Shape", result.Pages[0].Module)

	_, err = r.Render(ctx, src, Options{Modules: []string{"Missing"}})
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound), "got %v", err)
}

func TestPagesKeepOrder(t *testing.T) {
	r := newTestRunner(t)
	src := loadSource(t, r)

	pages, err := r.Pages(context.Background(), src.Modules, printer.Options{})
	require.NoError(t, err)
	require.Len(t, pages, len(src.Modules))
	for i, p := range pages {
		assert.Equal(t, src.Modules[i].Name, p.Module)
	}
}

func TestPagesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newTestRunner(t)
	_, err := r.Pages(ctx, loadSource(t, r).Modules, printer.Options{})
	assert.Error(t, err)
}

func TestGraphDOT(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	src := loadSource(t, r)

	out, hit, err := r.Graph(ctx, src, GraphOptions{})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Contains(t, string(out), `"Maybe.map" -> "Maybe.Maybe";`)

	_, hit, err = r.Graph(ctx, src, GraphOptions{})
	require.NoError(t, err)
	assert.True(t, hit, "second graph hits the cache")
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	mu     sync.Mutex
	hits   int
	misses int
	sets   int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *countingCacheHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sets++
}

func TestRenderReportsCacheEvents(t *testing.T) {
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	t.Cleanup(observability.Reset)

	r := newTestRunner(t)
	for i := 0; i < 2; i++ {
		_, err := r.Execute(context.Background(), testdata, Options{Format: sink.FormatText})
		require.NoError(t, err)
	}

	assert.Equal(t, 1, hooks.hits)
	assert.Equal(t, 1, hooks.misses)
	assert.Equal(t, 1, hooks.sets)
}
