// Package pkg provides the core libraries for sigdoc.
//
// # Overview
//
// sigdoc turns package documentation in the docs.json format into readable
// signatures. Module qualifiers are stripped, long function signatures are
// broken one argument per line, and records are printed one field per line.
//
// # Architecture
//
// The typical data flow:
//
//	docs.json
//	    ↓
//	[docs] package (decode modules)
//	    ↓
//	[printer] package (styled signatures, built on [signature])
//	    ↓
//	[sink] package (ANSI, text, HTML, JSON)
//
// [pipeline] wires these steps together with caching and is shared by the
// CLI and the HTTP server.
//
// # Quick Start
//
//	modules, _ := docs.Load("docs.json")
//	pages := make([]sink.Page, len(modules))
//	for i, m := range modules {
//	    pages[i] = sink.NewPage(m, printer.RenderModule(m, printer.Options{Links: true}))
//	}
//	out, _ := sink.Render("text", pages)
//
// # Main Packages
//
// [signature] - Depth scanning, argument and record splitting, qualifier
// stripping. Pure string functions.
//
// [styled] - Token documents with keyword and link roles.
//
// [printer] - Pretty printer for values, aliases and unions.
//
// [xref] - Cross-reference graph between entries, exported as DOT or SVG.
//
// [cache] - Output cache with file, Redis and null backends.
//
// [config] - TOML configuration.
//
// [observability] - Hooks for decode, render, cache and HTTP events.
//
// [docs]: https://pkg.go.dev/github.com/matzehuels/sigdoc/pkg/docs
// [signature]: https://pkg.go.dev/github.com/matzehuels/sigdoc/pkg/signature
// [styled]: https://pkg.go.dev/github.com/matzehuels/sigdoc/pkg/styled
// [printer]: https://pkg.go.dev/github.com/matzehuels/sigdoc/pkg/printer
// [sink]: https://pkg.go.dev/github.com/matzehuels/sigdoc/pkg/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sigdoc/pkg/pipeline
// [xref]: https://pkg.go.dev/github.com/matzehuels/sigdoc/pkg/xref
// [cache]: https://pkg.go.dev/github.com/matzehuels/sigdoc/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/sigdoc/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/sigdoc/pkg/observability
package pkg
