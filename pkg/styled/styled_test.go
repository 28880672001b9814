package styled

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderMergesPlainText(t *testing.T) {
	var b Builder
	b.Plain("Maybe").Plain(" ").Plain("a").Keyword("->").Plain("b")

	doc := b.Document()
	assert.Equal(t, []Token{Plain("Maybe a"), Keyword("->"), Plain("b")}, doc.Tokens())
	assert.Equal(t, "Maybe a->b", doc.Text())
}

func TestBuilderDropsEmptyTokens(t *testing.T) {
	doc := NewDocument(Plain(""), Keyword(""), Plain("x"))
	assert.Equal(t, 1, doc.Len())
}

func TestDocumentIsImmutable(t *testing.T) {
	var b Builder
	b.Plain("a")
	first := b.Document()
	b.Plain("b")

	assert.Equal(t, "a", first.Text())
	assert.Equal(t, "ab", b.Document().Text())

	tokens := first.Tokens()
	tokens[0].Text = "changed"
	assert.Equal(t, "a", first.Text())
}

func TestAnchorAndLinks(t *testing.T) {
	doc := NewDocument(Anchor("(+)", "+"), Keyword(" : "), Link("Maybe", "#Maybe"))
	tokens := doc.Tokens()

	assert.Equal(t, "#+", tokens[0].Target)
	assert.True(t, tokens[0].Strong)
	assert.Equal(t, []string{"#Maybe"}, doc.Links())
}

func TestWidthCountsRunes(t *testing.T) {
	assert.Equal(t, 3, NewDocument(Plain("a→b")).Width())
}

func TestConcat(t *testing.T) {
	a := NewDocument(Plain("a"))
	b := NewDocument(Plain("b"), Keyword("->"))
	assert.Equal(t, []Token{Plain("ab"), Keyword("->")}, a.Concat(b).Tokens())
	assert.Equal(t, "a", a.Text())
}

func TestRoleString(t *testing.T) {
	for _, r := range []Role{RolePlain, RoleKeyword, RoleLink} {
		got, ok := ParseRole(r.String())
		assert.True(t, ok)
		assert.Equal(t, r, got)
	}
	assert.Equal(t, "unknown", Role(42).String())
}

func TestRoleText(t *testing.T) {
	b, err := RoleLink.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "link", string(b))

	var r Role
	assert.NoError(t, r.UnmarshalText([]byte("keyword")))
	assert.Equal(t, RoleKeyword, r)
	assert.Error(t, r.UnmarshalText([]byte("bogus")))
}
