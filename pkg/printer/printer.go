// Package printer turns documented declarations into styled documents.
//
// The printer works on the flattened text of a signature. It strips module
// qualifiers, marks ":" and "->" as keywords, links type names the module
// defines, and decides the layout: value signatures that fit under the width
// threshold stay on one line, longer ones are broken into one argument per
// line with the arrows aligned under the colon:
//
//	transform
//	    :  { dx : Float, dy : Float, scale : Float }
//	    -> (Point -> Bool)
//	    -> Shape
//	    -> ( Shape, List Point )
//
// Record aliases print one field per line, union types one constructor per
// line. Every top-level name is a bold anchor ("#" + name) so sinks can make
// it a link target.
package printer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/sigdoc/pkg/docs"
	"github.com/matzehuels/sigdoc/pkg/signature"
	"github.com/matzehuels/sigdoc/pkg/styled"
)

// DefaultThreshold is the line width, in runes, at which a value signature
// switches from inline to one argument per line.
const DefaultThreshold = 80

// indent prefixes every continuation line.
const indent = "    "

// Options configures a Printer.
type Options struct {
	// Threshold is the single-line width limit. Zero means DefaultThreshold.
	Threshold int
	// Links enables links from type names to the module's own declarations.
	Links bool
}

// Printer renders signatures. It holds no mutable state and is safe for
// concurrent use.
type Printer struct {
	threshold int
	known     map[string]bool
}

// New returns a printer that links the given type names when opts.Links is set.
func New(opts Options, typeNames ...string) *Printer {
	p := &Printer{threshold: opts.Threshold}
	if p.threshold <= 0 {
		p.threshold = DefaultThreshold
	}
	if opts.Links {
		p.known = make(map[string]bool, len(typeNames))
		for _, n := range typeNames {
			p.known[n] = true
		}
	}
	return p
}

// ForModule returns a printer that links to the types declared in m.
func ForModule(m docs.Module, opts Options) *Printer {
	return New(opts, m.TypeNames()...)
}

// Threshold returns the configured width limit.
func (p *Printer) Threshold() int { return p.threshold }

// Type renders a type signature on a single line.
func (p *Printer) Type(sig string) styled.Document {
	var b styled.Builder
	p.writeType(&b, signature.Normalize(sig))
	return b.Document()
}

func (p *Printer) writeType(b *styled.Builder, norm string) {
	for i, part := range strings.Split(norm, ":") {
		if i > 0 {
			b.Keyword(":")
		}
		for j, piece := range strings.Split(part, signature.Arrow) {
			if j > 0 {
				b.Keyword(signature.Arrow)
			}
			p.writeWords(b, piece)
		}
	}
}

// writeWords emits text, turning identifiers that name a known type into links.
func (p *Printer) writeWords(b *styled.Builder, text string) {
	if len(p.known) == 0 {
		b.Plain(text)
		return
	}

	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		word := text[start:end]
		if p.known[word] {
			b.Append(styled.Link(word, "#"+word))
		} else {
			b.Plain(word)
		}
		start = -1
	}
	for i, r := range text {
		if signature.IsIdentRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
		b.Plain(string(r))
	}
	flush(len(text))
}

// Arg renders a constructor argument, parenthesizing compound types.
func (p *Printer) Arg(sig string) styled.Document {
	norm := signature.Normalize(sig)
	if signature.NeedsParens(norm) {
		norm = "(" + norm + ")"
	}
	var b styled.Builder
	p.writeType(&b, norm)
	return b.Document()
}

// Value renders "name : type", breaking the signature into one argument
// per line when the single-line form reaches the threshold.
func (p *Printer) Value(name, sig string) styled.Document {
	var b styled.Builder
	ref := signature.OperatorRef(name)
	b.Append(styled.Anchor(ref, name))

	norm := signature.Normalize(sig)
	if p.Inline(name, sig) {
		b.Plain(" ").Keyword(":").Plain(" ")
		p.writeType(&b, norm)
		return b.Document()
	}

	for i, arg := range signature.SplitArgs(norm) {
		b.Plain("\n" + indent)
		if i == 0 {
			b.Keyword(":").Plain("  ")
		} else {
			b.Keyword(signature.Arrow).Plain(" ")
		}
		p.writeType(&b, arg)
	}
	return b.Document()
}

// Inline reports whether the value signature fits on a single line.
func (p *Printer) Inline(name, sig string) bool {
	return Width(name, sig) < p.threshold
}

// Width is the rune width of the single-line form "name : type".
func Width(name, sig string) int {
	return utf8.RuneCountInString(signature.OperatorRef(name)) +
		len(" : ") +
		utf8.RuneCountInString(signature.Normalize(sig))
}

// Alias renders a type alias. Record bodies get one field per line.
func (p *Printer) Alias(a docs.Alias) styled.Document {
	var b styled.Builder
	b.Keyword("type alias").Plain(" ").Append(styled.Anchor(a.Name, a.Name))
	writeArgs(&b, a.Args)
	b.Plain(" ").Keyword("=")

	norm := signature.Normalize(a.Type)
	if !signature.IsRecord(norm) {
		b.Plain("\n" + indent)
		p.writeType(&b, norm)
		return b.Document()
	}
	for _, field := range signature.SplitRecord(norm) {
		b.Plain("\n" + indent)
		p.writeType(&b, field)
	}
	return b.Document()
}

// Union renders a union type with one constructor per line.
func (p *Printer) Union(u docs.Union) styled.Document {
	var b styled.Builder
	b.Keyword("type").Plain(" ").Append(styled.Anchor(u.Name, u.Name))
	writeArgs(&b, u.Args)

	for i, c := range u.Cases {
		b.Plain("\n" + indent)
		if i == 0 {
			b.Keyword("=")
		} else {
			b.Keyword("|")
		}
		b.Plain(" " + c.Tag)
		for _, arg := range c.Args {
			b.Plain(" ").Doc(p.Arg(arg))
		}
	}
	return b.Document()
}

func writeArgs(b *styled.Builder, args []string) {
	for _, a := range args {
		b.Plain(" " + a)
	}
}

// Rendered is the printed form of one entry, ready for a sink.
type Rendered struct {
	Name      string
	Kind      docs.Kind
	Signature styled.Document
	Fixity    *docs.Fixity
	Comment   string
}

// Render prints a single entry.
func (p *Printer) Render(e docs.Entry) Rendered {
	r := Rendered{
		Name:    e.EntryName(),
		Kind:    e.EntryKind(),
		Comment: strings.TrimSpace(e.EntryComment()),
	}
	switch e := e.(type) {
	case docs.Alias:
		r.Signature = p.Alias(e)
	case docs.Union:
		r.Signature = p.Union(e)
	case docs.Value:
		r.Signature = p.Value(e.Name, e.Type)
		r.Fixity = e.Fixity()
	case docs.Binop:
		r.Signature = p.Value(e.Name, e.Type)
		r.Fixity = e.Fixity()
	}
	return r
}

// RenderModule prints every entry of m in the order of [docs.Module.Entries].
func RenderModule(m docs.Module, opts Options) []Rendered {
	p := ForModule(m, opts)
	entries := m.Entries()
	out := make([]Rendered, len(entries))
	for i, e := range entries {
		out[i] = p.Render(e)
	}
	return out
}

// Summary returns the first sentence of a comment, used in listings.
func Summary(comment string) string {
	comment = strings.TrimSpace(comment)
	if i := strings.IndexAny(comment, "\n"); i >= 0 {
		comment = comment[:i]
	}
	if i := strings.Index(comment, ". "); i >= 0 {
		comment = comment[:i+1]
	}
	return strings.TrimRightFunc(comment, unicode.IsSpace)
}
