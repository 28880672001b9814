package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sigdoc/pkg/docs"
	"github.com/matzehuels/sigdoc/pkg/styled"
)

func TestTypeColorsColonsAndArrows(t *testing.T) {
	p := New(Options{})
	doc := p.Type("{ f : Basics.Int -> Basics.Int }")

	assert.Equal(t, "{ f : Int -> Int }", doc.Text())

	var keywords []string
	for _, tok := range doc.Tokens() {
		if tok.Role == styled.RoleKeyword {
			keywords = append(keywords, tok.Text)
		}
	}
	assert.Equal(t, []string{":", "->"}, keywords)
}

func TestTypeLinksKnownNames(t *testing.T) {
	p := New(Options{Links: true}, "Point", "Shape")
	doc := p.Type("List.List Geometry.Point -> Shape -> Shapes")

	assert.Equal(t, "List Point -> Shape -> Shapes", doc.Text())
	assert.Equal(t, []string{"#Point", "#Shape"}, doc.Links())
}

func TestTypeWithoutLinks(t *testing.T) {
	p := New(Options{}, "Point")
	assert.Empty(t, p.Type("Point").Links())
}

func TestArg(t *testing.T) {
	p := New(Options{})
	tests := []struct {
		in, want string
	}{
		{"Maybe Int", "(Maybe Int)"},
		{"Int", "Int"},
		{"(Maybe Int)", "(Maybe Int)"},
		{"Maybe.Maybe Basics.Int", "(Maybe Int)"},
		{"{ x : Int }", "{ x : Int }"},
		{"(a) -> (b)", "((a) -> (b))"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Arg(tt.in).Text(), "Arg(%q)", tt.in)
	}
}

func TestValueInline(t *testing.T) {
	p := New(Options{})
	doc := p.Value("map", "(a -> b) -> Maybe.Maybe a -> Maybe.Maybe b")

	assert.Equal(t, "map : (a -> b) -> Maybe a -> Maybe b", doc.Text())

	tokens := doc.Tokens()
	require.NotEmpty(t, tokens)
	assert.Equal(t, styled.Anchor("map", "map"), tokens[0])
}

func TestValueOperatorName(t *testing.T) {
	p := New(Options{})
	doc := p.Value("+", "number -> number -> number")

	assert.Equal(t, "(+) : number -> number -> number", doc.Text())
	first := doc.Tokens()[0]
	assert.Equal(t, "(+)", first.Text)
	assert.Equal(t, "#+", first.Target)
	assert.True(t, first.Strong)
}

func TestValueThreshold(t *testing.T) {
	p := New(Options{})
	// "f" + " : " + sig is 4 + len(sig) runes wide.
	below := "Int -> " + strings.Repeat("x", 68)
	at := "Int -> " + strings.Repeat("x", 69)
	require.Equal(t, 79, 4+len(below))
	require.Equal(t, 80, 4+len(at))

	assert.True(t, p.Inline("f", below))
	assert.Equal(t, "f : "+below, p.Value("f", below).Text())

	assert.False(t, p.Inline("f", at))
	assert.Equal(t, "f\n    :  Int\n    -> "+strings.Repeat("x", 69), p.Value("f", at).Text())
}

func TestValueCustomThreshold(t *testing.T) {
	p := New(Options{Threshold: 10})
	assert.Equal(t, 10, p.Threshold())
	assert.Equal(t, "f\n    :  a\n    -> b\n    -> c", p.Value("f", "a -> b -> c").Text())
	assert.Equal(t, DefaultThreshold, New(Options{Threshold: -1}).Threshold())
}

func TestValueMultiLineKeepsNestedArrows(t *testing.T) {
	p := New(Options{Links: true}, "Point", "Shape")
	sig := "{ dx : Basics.Float, dy : Basics.Float, scale : Basics.Float } -> (Geometry.Shape.Point -> Basics.Bool) -> Geometry.Shape.Shape -> ( Geometry.Shape.Shape, List.List Geometry.Shape.Point )"

	want := strings.Join([]string{
		"transform",
		"    :  { dx : Float, dy : Float, scale : Float }",
		"    -> (Point -> Bool)",
		"    -> Shape",
		"    -> ( Shape, List Point )",
	}, "\n")
	assert.Equal(t, want, p.Value("transform", sig).Text())
}

func TestAliasRecord(t *testing.T) {
	p := New(Options{})
	doc := p.Alias(docs.Alias{Name: "Point", Type: "{ x : Basics.Float, y : Basics.Float }"})

	assert.Equal(t, "type alias Point =\n    { x : Float\n    , y : Float }", doc.Text())
}

func TestAliasPlain(t *testing.T) {
	p := New(Options{Links: true}, "Point")
	doc := p.Alias(docs.Alias{Name: "Path", Type: "List.List Geometry.Shape.Point"})

	assert.Equal(t, "type alias Path =\n    List Point", doc.Text())
	assert.Equal(t, []string{"#Point"}, doc.Links())
}

func TestAliasArgs(t *testing.T) {
	p := New(Options{})
	doc := p.Alias(docs.Alias{Name: "Pair", Args: []string{"a", "b"}, Type: "( a, b )"})
	assert.Equal(t, "type alias Pair a b =\n    ( a, b )", doc.Text())
}

func TestUnion(t *testing.T) {
	p := New(Options{})
	doc := p.Union(docs.Union{
		Name: "Maybe",
		Args: []string{"a"},
		Cases: []docs.Case{
			{Tag: "Just", Args: []string{"a"}},
			{Tag: "Nothing"},
		},
	})
	assert.Equal(t, "type Maybe a\n    = Just a\n    | Nothing", doc.Text())
}

func TestUnionWrapsCompoundArgs(t *testing.T) {
	p := New(Options{Links: true}, "Point", "Shape")
	doc := p.Union(docs.Union{
		Name: "Shape",
		Cases: []docs.Case{
			{Tag: "Circle", Args: []string{"Geometry.Shape.Point", "Basics.Float"}},
			{Tag: "Polygon", Args: []string{"List.List Geometry.Shape.Point"}},
			{Tag: "Labeled", Args: []string{"{ label : String.String, shape : Geometry.Shape.Shape }"}},
		},
	})

	want := "type Shape\n    = Circle Point Float\n    | Polygon (List Point)\n    | Labeled { label : String, shape : Shape }"
	assert.Equal(t, want, doc.Text())
	assert.Equal(t, []string{"#Point", "#Point", "#Shape"}, doc.Links())
}

func TestRenderModule(t *testing.T) {
	modules, err := docs.Load("../docs/testdata/core.json")
	require.NoError(t, err)

	rendered := RenderModule(modules[1], Options{Links: true})
	require.Len(t, rendered, 7)

	byName := make(map[string]Rendered, len(rendered))
	for _, r := range rendered {
		byName[r.Name] = r
	}

	op := byName["<+>"]
	require.NotNil(t, op.Fixity)
	assert.Equal(t, "infixl 6", op.Fixity.String())
	assert.Equal(t, "(<+>) : Point -> Point -> Point", op.Signature.Text())

	binop := byName["|>>"]
	assert.Equal(t, docs.KindBinop, binop.Kind)
	assert.Equal(t, "infixr 0", binop.Fixity.String())

	assert.Nil(t, byName["origin"].Fixity)
	assert.Equal(t, "origin : Point", byName["origin"].Signature.Text())
	assert.Equal(t, "A point on the plane.", byName["Point"].Comment)
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "First sentence.", Summary("First sentence. Second one."))
	assert.Equal(t, "Line one", Summary("  Line one\nLine two"))
	assert.Equal(t, "", Summary(""))
}

func TestWidth(t *testing.T) {
	assert.Equal(t, 4+len("a -> b"), Width("f", "a -> b"))
	assert.Equal(t, len("(<+>) : Point"), Width("<+>", "Geometry.Point"))
	assert.Equal(t, len("f : ")+3, Width("f", "λ→α"))
}
