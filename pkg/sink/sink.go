// Package sink writes rendered documentation in its final output format.
//
// A sink receives [Page] values, one per module, whose entries have already
// been laid out by the printer, and only decides presentation:
//
//   - ANSI: colored terminal output styled with lipgloss
//   - Text: the same layout without any styling
//   - HTML: a standalone page with anchors and cross-reference links
//   - JSON: the token stream, for external layout tools
//
// Basic usage:
//
//	pages := []sink.Page{sink.NewPage(module, printer.RenderModule(module, opts))}
//	out, err := sink.Render(sink.FormatANSI, pages, sink.WithTheme(theme))
package sink

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matzehuels/sigdoc/pkg/docs"
	"github.com/matzehuels/sigdoc/pkg/errors"
	"github.com/matzehuels/sigdoc/pkg/printer"
)

// Output formats.
const (
	FormatANSI = "ansi"
	FormatText = "text"
	FormatHTML = "html"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatANSI: true,
	FormatText: true,
	FormatHTML: true,
	FormatJSON: true,
}

// Formats returns the supported formats in sorted order.
func Formats() []string {
	out := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(Formats(), ", "))
	}
	return nil
}

// Page is the rendered documentation of one module.
type Page struct {
	Module  string
	Comment string
	Entries []printer.Rendered
}

// NewPage builds a page for m from its rendered entries.
func NewPage(m docs.Module, entries []printer.Rendered) Page {
	return Page{Module: m.Name, Comment: m.Comment, Entries: entries}
}

// Option configures rendering.
type Option func(*config)

type config struct {
	theme Theme
	title string
}

// WithTheme sets the color theme of the ANSI sink.
func WithTheme(t Theme) Option { return func(c *config) { c.theme = t } }

// WithTitle sets the HTML page title.
func WithTitle(title string) Option { return func(c *config) { c.title = title } }

func newConfig(opts []Option) config {
	c := config{theme: DefaultTheme(), title: "Documentation"}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// Render writes pages in the given format.
func Render(format string, pages []Page, opts ...Option) ([]byte, error) {
	switch format {
	case FormatANSI:
		return RenderANSI(pages, opts...), nil
	case FormatText:
		return RenderText(pages), nil
	case FormatHTML:
		return RenderHTML(pages, opts...)
	case FormatJSON:
		return RenderJSON(pages)
	}
	return nil, ValidateFormat(format)
}

// CleanComment removes the "@docs" directives that only order the original
// documentation and trims surrounding blank lines.
func CleanComment(comment string) string {
	lines := strings.Split(comment, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "@docs") {
			continue
		}
		kept = append(kept, l)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// indentLines prefixes every non-empty line of s.
func indentLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}

func fixityText(f *docs.Fixity) string {
	if f == nil {
		return ""
	}
	return fmt.Sprintf("    %s", f)
}
