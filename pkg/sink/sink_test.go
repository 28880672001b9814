package sink

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sigdoc/pkg/docs"
	"github.com/matzehuels/sigdoc/pkg/errors"
	"github.com/matzehuels/sigdoc/pkg/printer"
	"github.com/matzehuels/sigdoc/pkg/styled"
)

func testPages(t *testing.T) []Page {
	t.Helper()
	modules, err := docs.Load("../docs/testdata/core.json")
	require.NoError(t, err)

	pages := make([]Page, len(modules))
	for i, m := range modules {
		pages[i] = NewPage(m, printer.RenderModule(m, printer.Options{Links: true}))
	}
	return pages
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"ansi", "text", "html", "json"} {
		assert.NoError(t, ValidateFormat(f))
	}
	err := ValidateFormat("pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
	assert.Equal(t, []string{"ansi", "html", "json", "text"}, Formats())
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render("svg", nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestCleanComment(t *testing.T) {
	in := "Intro text.\n\n# Definition\n@docs Maybe\n\n  @docs withDefault, map\n"
	assert.Equal(t, "Intro text.\n\n# Definition", CleanComment(in))
	assert.Equal(t, "", CleanComment("@docs a"))
}

func TestRenderText(t *testing.T) {
	out := string(RenderText(testPages(t)))

	assert.Contains(t, out, "Maybe\nRepresent values that may or may not exist.")
	assert.Contains(t, out, "type Maybe a\n    = Just a\n    | Nothing\n")
	assert.Contains(t, out, "withDefault : a -> Maybe a -> a\n    Provide a default value")
	assert.Contains(t, out, "(<+>) : Point -> Point -> Point    infixl 6\n")
	assert.Contains(t, out, "transform\n    :  { dx : Float, dy : Float, scale : Float }\n    -> (Point -> Bool)")
	assert.NotContains(t, out, "@docs")
}

func TestRenderANSIKeepsLayout(t *testing.T) {
	out := string(RenderANSI(testPages(t)))

	// Styling may or may not emit escape codes depending on the terminal,
	// but the text and line structure must survive either way.
	for _, want := range []string{"Geometry.Shape", "type alias", "Point", "infixr 0"} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, strings.Count(string(RenderText(testPages(t))), "\n"), strings.Count(out, "\n"))
}

func TestThemeStyleByRole(t *testing.T) {
	theme := NewTheme(Colors{Keyword: "1"})
	assert.Equal(t, theme.Anchor, theme.Style(styled.Anchor("x", "x")))
	assert.Equal(t, theme.Link, theme.Style(styled.Link("x", "#x")))
	assert.Equal(t, theme.Keyword, theme.Style(styled.Keyword("->")))
	assert.Equal(t, theme.Type, theme.Style(styled.Plain("Int")))
}

func TestRenderHTML(t *testing.T) {
	out, err := RenderHTML(testPages(t), WithTitle("Core"))
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "<title>Core</title>")
	assert.Contains(t, html, `id="module-Geometry.Shape"`)
	assert.Contains(t, html, `<div class="entry" id="Geometry.Shape.Point">`)
	assert.Contains(t, html, `<a class="ref" href="#Geometry.Shape.Point">Point</a>`)
	assert.Contains(t, html, `<a class="anchor" href="#Maybe.withDefault"><strong>withDefault</strong></a>`)
	assert.Contains(t, html, `<span class="kw">-&gt;</span>`)
	assert.Contains(t, html, `<span class="fixity">    infixl 6</span>`)
}

func TestSignatureHTMLEscapes(t *testing.T) {
	doc := styled.NewDocument(styled.Anchor("(<+>)", "<+>"), styled.Plain(" a<b"))
	got := string(SignatureHTML(doc, ""))
	assert.Equal(t, `<a class="anchor" href="#&lt;+&gt;"><strong>(&lt;+&gt;)</strong></a> a&lt;b`, got)
}

func TestRenderHTMLIgnoresTheme(t *testing.T) {
	pages := testPages(t)
	plain, err := RenderHTML(pages)
	require.NoError(t, err)
	themed, err := RenderHTML(pages, WithTheme(NewTheme(Colors{Keyword: "1", Link: "2"})))
	require.NoError(t, err)
	assert.Equal(t, plain, themed)
}

func TestRenderHTMLSameNameInTwoModules(t *testing.T) {
	modules, err := docs.Parse([]byte(`[
  {"name": "A", "comment": "", "aliases": [{"name": "Point", "comment": "", "args": [], "type": "{ x : Int }"}], "unions": [], "values": [], "binops": []},
  {"name": "B", "comment": "", "aliases": [{"name": "Point", "comment": "", "args": [], "type": "{ y : Int }"}], "unions": [],
   "values": [{"name": "origin", "comment": "", "type": "B.Point"}], "binops": []}
]`))
	require.NoError(t, err)

	pages := make([]Page, len(modules))
	for i, m := range modules {
		pages[i] = NewPage(m, printer.RenderModule(m, printer.Options{Links: true}))
	}
	out, err := RenderHTML(pages)
	require.NoError(t, err)
	html := string(out)

	assert.Equal(t, 1, strings.Count(html, `id="A.Point"`))
	assert.Equal(t, 1, strings.Count(html, `id="B.Point"`))
	assert.NotContains(t, html, `id="Point"`)
	assert.Contains(t, html, `<a class="ref" href="#B.Point">Point</a>`)
	assert.NotContains(t, html, `href="#Point"`)

	// The token stream keeps the bare target.
	assert.Equal(t, []string{"#Point"}, pages[1].Entries[1].Signature.Links())
}

func TestEntryID(t *testing.T) {
	assert.Equal(t, "Geometry.Shape.<+>", EntryID("Geometry.Shape", "<+>"))
	assert.Equal(t, "map", EntryID("", "map"))
}

func TestRenderJSON(t *testing.T) {
	out, err := RenderJSON(testPages(t))
	require.NoError(t, err)

	var decoded []jsonPage
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded, 2)

	first := decoded[0].Entries[0]
	assert.Equal(t, "Maybe", first.Name)
	assert.Equal(t, "union", first.Kind)
	assert.Equal(t, "type Maybe a\n    = Just a\n    | Nothing", first.Text)
	assert.Equal(t, styled.RoleKeyword, first.Signature[0].Role)

	assert.Contains(t, string(out), `"role": "link"`)
}

func TestRenderEntryJSON(t *testing.T) {
	pages := testPages(t)
	out, err := RenderEntryJSON(pages[1].Entries[5])
	require.NoError(t, err)

	var decoded jsonEntry
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "<+>", decoded.Name)
	assert.Equal(t, "value", decoded.Kind)
	require.NotNil(t, decoded.Fixity)
	assert.Equal(t, "infixl 6", decoded.Fixity.String())
}
