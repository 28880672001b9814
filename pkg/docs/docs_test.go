package docs

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sigdoc/pkg/errors"
)

func TestLoad(t *testing.T) {
	modules, err := Load("testdata/core.json")
	require.NoError(t, err)
	require.Len(t, modules, 2)

	maybe := modules[0]
	assert.Equal(t, "Maybe", maybe.Name)
	require.Len(t, maybe.Unions, 1)
	assert.Equal(t, []Case{{Tag: "Just", Args: []string{"a"}}, {Tag: "Nothing", Args: []string{}}}, maybe.Unions[0].Cases)

	shape := modules[1]
	assert.Equal(t, []string{"Point", "Path", "Shape"}, shape.TypeNames())
	assert.Len(t, shape.Entries(), 7)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/missing.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestParseSingleModule(t *testing.T) {
	modules, err := Parse([]byte(`{"name": "Basics", "values": [{"name": "identity", "type": "a -> a"}]}`))
	require.NoError(t, err)
	require.Len(t, modules, 1)
	assert.Equal(t, "identity", modules[0].Values[0].Name)
}

func TestParseRejectsInvalidDocs(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"not json", "nope"},
		{"unnamed module", `[{"name": ""}]`},
		{"lower case module", `[{"name": "basics"}]`},
		{"unnamed value", `[{"name": "Basics", "values": [{"name": "", "type": "a"}]}]`},
		{"bad case", `[{"name": "Basics", "unions": [{"name": "Bool", "cases": [["True"]]}]}]`},
		{"unnamed case", `[{"name": "Basics", "unions": [{"name": "Bool", "cases": [["", []]]}]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidDocs), "got %v", err)
		})
	}
}

func TestCaseRoundTrip(t *testing.T) {
	data, err := json.Marshal(Case{Tag: "Nothing"})
	require.NoError(t, err)
	assert.JSONEq(t, `["Nothing", []]`, string(data))
}

func TestFixity(t *testing.T) {
	prec := 6
	v := Value{Name: "+", Associativity: "left", Precedence: &prec}
	require.NotNil(t, v.Fixity())
	assert.Equal(t, "infixl 6", v.Fixity().String())

	assert.Nil(t, Value{Name: "map"}.Fixity())

	b := Binop{Name: "<|", Associativity: "right", Precedence: 0}
	assert.Equal(t, "infixr 0", b.Fixity().String())
	assert.Equal(t, "infix 4", Fixity{Associativity: "non", Precedence: 4}.String())
}

func TestFind(t *testing.T) {
	modules, err := Read(strings.NewReader(`[{"name": "A"}, {"name": "B.C"}]`))
	require.NoError(t, err)

	m, err := Find(modules, "B.C")
	require.NoError(t, err)
	assert.Equal(t, "B.C", m.Name)

	_, err = Find(modules, "D")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestModuleEntry(t *testing.T) {
	m := Module{Name: "A", Values: []Value{{Name: "f", Type: "Int"}}}
	e, ok := m.Entry("f")
	require.True(t, ok)
	assert.Equal(t, KindValue, e.EntryKind())

	_, ok = m.Entry("g")
	assert.False(t, ok)
}
