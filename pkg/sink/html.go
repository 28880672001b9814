package sink

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/matzehuels/sigdoc/pkg/styled"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, sans-serif; max-width: 56rem; margin: 2rem auto; color: #333; }
pre.sig { font-family: "SF Mono", Menlo, monospace; background: #f7f7f7; padding: 0.75rem; overflow-x: auto; }
.kw { color: #1b8a8a; }
a.ref { color: #3b82c4; }
a.anchor { color: #3b82c4; text-decoration: none; }
.fixity { color: #888; font-style: italic; }
.comment { white-space: pre-wrap; }
</style>
</head>
<body>
{{range .Modules}}<section class="module" id="module-{{.Name}}">
<h1>{{.Name}}</h1>
{{if .Comment}}<div class="comment">{{.Comment}}</div>
{{end}}{{range .Entries}}<div class="entry" id="{{.ID}}">
<pre class="sig">{{.Signature}}{{if .Fixity}}<span class="fixity">{{.Fixity}}</span>{{end}}</pre>
{{if .Comment}}<div class="comment">{{.Comment}}</div>
{{end}}</div>
{{end}}</section>
{{end}}</body>
</html>
`))

type htmlPage struct {
	Title   string
	Modules []htmlModule
}

type htmlModule struct {
	Name    string
	Comment string
	Entries []htmlEntry
}

type htmlEntry struct {
	ID        string
	Signature template.HTML
	Fixity    string
	Comment   string
}

// RenderHTML renders pages as a standalone HTML document. Entry ids are
// qualified by module (see [EntryID]) so that several modules declaring the
// same name can share one page.
func RenderHTML(pages []Page, opts ...Option) ([]byte, error) {
	c := newConfig(opts)
	data := htmlPage{Title: c.title, Modules: make([]htmlModule, len(pages))}
	for i, p := range pages {
		m := htmlModule{Name: p.Module, Comment: CleanComment(p.Comment)}
		for _, e := range p.Entries {
			entry := htmlEntry{
				ID:        EntryID(p.Module, e.Name),
				Signature: SignatureHTML(e.Signature, p.Module),
				Comment:   e.Comment,
			}
			if e.Fixity != nil {
				entry.Fixity = fixityText(e.Fixity)
			}
			m.Entries = append(m.Entries, entry)
		}
		data.Modules[i] = m
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// EntryID is the element id of an entry on an HTML page.
func EntryID(module, name string) string {
	if module == "" {
		return name
	}
	return module + "." + name
}

// SignatureHTML renders a styled document as an HTML fragment. Link targets
// of the form "#name" point at entries of module.
func SignatureHTML(d styled.Document, module string) template.HTML {
	var b strings.Builder
	for _, tok := range d.Tokens() {
		text := html.EscapeString(tok.Text)
		href := html.EscapeString(qualifyTarget(tok.Target, module))
		switch {
		case tok.Role == styled.RoleLink && tok.Strong:
			fmt.Fprintf(&b, `<a class="anchor" href="%s"><strong>%s</strong></a>`, href, text)
		case tok.Role == styled.RoleLink:
			fmt.Fprintf(&b, `<a class="ref" href="%s">%s</a>`, href, text)
		case tok.Role == styled.RoleKeyword:
			fmt.Fprintf(&b, `<span class="kw">%s</span>`, text)
		default:
			b.WriteString(text)
		}
	}
	return template.HTML(b.String())
}

func qualifyTarget(target, module string) string {
	name, ok := strings.CutPrefix(target, "#")
	if !ok {
		return target
	}
	return "#" + EntryID(module, name)
}
