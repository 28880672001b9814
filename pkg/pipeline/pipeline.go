// Package pipeline provides the documentation pipeline shared by the CLI and
// the HTTP server.
//
// The pipeline has two stages:
//
//  1. Load: read and decode a docs.json file into modules
//  2. Render: lay out every entry with the printer and write the result
//     through a sink (ansi, text, html, json)
//
// Rendered output is cached by the hash of the input bytes and the options
// that shape the output, so repeated renders of an unchanged file are served
// from the cache. The reference graph ([Runner.Graph]) follows the same path.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, "docs.json", pipeline.Options{
//	    Format:  sink.FormatHTML,
//	    Modules: []string{"Maybe"},
//	})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.Output)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sigdoc/pkg/cache"
	"github.com/matzehuels/sigdoc/pkg/docs"
	"github.com/matzehuels/sigdoc/pkg/errors"
	"github.com/matzehuels/sigdoc/pkg/printer"
	"github.com/matzehuels/sigdoc/pkg/sink"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultFormat is the output format when none is given.
	DefaultFormat = sink.FormatANSI

	// DefaultTitle is the HTML page title when none is given.
	DefaultTitle = "Documentation"
)

// Reference graph formats.
const (
	GraphFormatDOT = "dot"
	GraphFormatSVG = "svg"
)

// ValidGraphFormats is the set of supported reference graph formats.
var ValidGraphFormats = map[string]bool{
	GraphFormatDOT: true,
	GraphFormatSVG: true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures a render.
type Options struct {
	Format    string      `json:"format,omitempty"`
	Modules   []string    `json:"modules,omitempty"` // Empty means every module
	Threshold int         `json:"threshold,omitempty"`
	NoLinks   bool        `json:"no_links,omitempty"`
	Theme     sink.Colors `json:"theme,omitempty"`
	Title     string      `json:"title,omitempty"`
	Refresh   bool        `json:"refresh,omitempty"` // Bypass cache reads

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := sink.ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Threshold < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "threshold must not be negative, got %d", o.Threshold)
	}
	if o.Threshold == 0 {
		o.Threshold = printer.DefaultThreshold
	}
	if err := validateModules(o.Modules); err != nil {
		return err
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// PrinterOptions returns the printer configuration.
func (o *Options) PrinterOptions() printer.Options {
	return printer.Options{Threshold: o.Threshold, Links: !o.NoLinks}
}

// SinkOptions returns the sink configuration.
func (o *Options) SinkOptions() []sink.Option {
	return []sink.Option{
		sink.WithTheme(sink.NewTheme(o.Theme)),
		sink.WithTitle(o.Title),
	}
}

// OutputKeyOpts returns the cache key options. Theme and title only
// change the bytes of some formats and are left out otherwise.
func (o *Options) OutputKeyOpts() cache.OutputKeyOpts {
	k := cache.OutputKeyOpts{
		Format:    o.Format,
		Modules:   o.Modules,
		Threshold: o.Threshold,
		Links:     !o.NoLinks,
	}
	switch o.Format {
	case sink.FormatANSI:
		k.Theme = themeKey(o.Theme)
	case sink.FormatHTML:
		k.Title = o.Title
	}
	return k
}

func themeKey(c sink.Colors) string {
	return strings.Join([]string{c.Keyword, c.Link, c.Type, c.Comment, c.Heading}, ",")
}

// GraphOptions configures a reference graph render.
type GraphOptions struct {
	Format  string   `json:"format,omitempty"`
	Modules []string `json:"modules,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *GraphOptions) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = GraphFormatDOT
	}
	if !ValidGraphFormats[o.Format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid graph format: %q (must be one of: dot, svg)", o.Format)
	}
	return validateModules(o.Modules)
}

func validateModules(names []string) error {
	for _, name := range names {
		if err := errors.ValidateModuleName(name); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Results
// =============================================================================

// Source is a decoded documentation file.
type Source struct {
	Path    string
	Hash    string // SHA-256 of the raw bytes
	Modules []docs.Module
}

// Select returns the named modules in the order given, or every module
// when names is empty.
func (s *Source) Select(names []string) ([]docs.Module, error) {
	if len(names) == 0 {
		return s.Modules, nil
	}
	out := make([]docs.Module, 0, len(names))
	for _, name := range names {
		m, err := docs.Find(s.Modules, name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Result contains the outputs of a render.
type Result struct {
	// Output is the rendered documentation in the requested format.
	Output []byte

	// Pages holds the laid-out modules. It is nil when Output came from
	// the cache.
	Pages []sink.Page

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether Output came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ModuleCount int
	EntryCount  int
	DecodeTime  time.Duration
	RenderTime  time.Duration
}
