// Package docs decodes package documentation in the docs.json format.
//
// A docs.json file is a JSON array of modules. Every module lists its type
// aliases, union types, values and binary operators, each with a markdown
// comment and a flattened type signature:
//
//	[{
//	  "name": "Maybe",
//	  "comment": "...",
//	  "aliases": [],
//	  "unions": [{"name": "Maybe", "args": ["a"], "cases": [["Just", ["a"]], ["Nothing", []]]}],
//	  "values": [{"name": "withDefault", "type": "a -> Maybe.Maybe a -> a"}],
//	  "binops": []
//	}]
//
// This package is the validation boundary: structurally invalid documents are
// rejected here, so everything downstream can assume named entries and
// string signatures.
package docs

import "fmt"

// Kind identifies the sort of a documented entry.
type Kind int

const (
	KindAlias Kind = iota
	KindUnion
	KindValue
	KindBinop
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindAlias:
		return "alias"
	case KindUnion:
		return "union"
	case KindValue:
		return "value"
	case KindBinop:
		return "binop"
	}
	return "unknown"
}

// Entry is a single documented declaration.
type Entry interface {
	EntryName() string
	EntryComment() string
	EntryKind() Kind
}

// Module is the documentation of one module.
type Module struct {
	Name    string  `json:"name"`
	Comment string  `json:"comment"`
	Aliases []Alias `json:"aliases"`
	Unions  []Union `json:"unions"`
	Values  []Value `json:"values"`
	Binops  []Binop `json:"binops"`
}

// Entries returns all entries of m: aliases, unions, values, then binops,
// each group in declaration order.
func (m Module) Entries() []Entry {
	out := make([]Entry, 0, len(m.Aliases)+len(m.Unions)+len(m.Values)+len(m.Binops))
	for _, a := range m.Aliases {
		out = append(out, a)
	}
	for _, u := range m.Unions {
		out = append(out, u)
	}
	for _, v := range m.Values {
		out = append(out, v)
	}
	for _, b := range m.Binops {
		out = append(out, b)
	}
	return out
}

// Entry returns the entry called name, if any.
func (m Module) Entry(name string) (Entry, bool) {
	for _, e := range m.Entries() {
		if e.EntryName() == name {
			return e, true
		}
	}
	return nil, false
}

// TypeNames returns the names of all aliases and unions. These are the names
// a type signature can link to.
func (m Module) TypeNames() []string {
	names := make([]string, 0, len(m.Aliases)+len(m.Unions))
	for _, a := range m.Aliases {
		names = append(names, a.Name)
	}
	for _, u := range m.Unions {
		names = append(names, u.Name)
	}
	return names
}

// Alias is a type alias.
type Alias struct {
	Name    string   `json:"name"`
	Comment string   `json:"comment"`
	Args    []string `json:"args"`
	Type    string   `json:"type"`
}

func (a Alias) EntryName() string    { return a.Name }
func (a Alias) EntryComment() string { return a.Comment }
func (a Alias) EntryKind() Kind      { return KindAlias }

// Union is a union (custom) type.
type Union struct {
	Name    string   `json:"name"`
	Comment string   `json:"comment"`
	Args    []string `json:"args"`
	Cases   []Case   `json:"cases"`
}

func (u Union) EntryName() string    { return u.Name }
func (u Union) EntryComment() string { return u.Comment }
func (u Union) EntryKind() Kind      { return KindUnion }

// Case is one constructor of a union type. In JSON it is the pair
// [tag, [argType...]].
type Case struct {
	Tag  string
	Args []string
}

// Value is a documented value or function. Older docs.json files attach
// operator fixity directly to values.
type Value struct {
	Name          string `json:"name"`
	Comment       string `json:"comment"`
	Type          string `json:"type"`
	Associativity string `json:"associativity,omitempty"`
	Precedence    *int   `json:"precedence,omitempty"`
}

func (v Value) EntryName() string    { return v.Name }
func (v Value) EntryComment() string { return v.Comment }
func (v Value) EntryKind() Kind      { return KindValue }

// Fixity returns the operator fixity of v, or nil when it has none.
func (v Value) Fixity() *Fixity {
	if v.Associativity == "" || v.Precedence == nil {
		return nil
	}
	return &Fixity{Associativity: v.Associativity, Precedence: *v.Precedence}
}

// Binop is an infix operator.
type Binop struct {
	Name          string `json:"name"`
	Comment       string `json:"comment"`
	Type          string `json:"type"`
	Associativity string `json:"associativity"`
	Precedence    int    `json:"precedence"`
}

func (b Binop) EntryName() string    { return b.Name }
func (b Binop) EntryComment() string { return b.Comment }
func (b Binop) EntryKind() Kind      { return KindBinop }

// Fixity returns the operator fixity of b.
func (b Binop) Fixity() *Fixity {
	return &Fixity{Associativity: b.Associativity, Precedence: b.Precedence}
}

// Fixity is the associativity and precedence of an infix operator.
type Fixity struct {
	Associativity string `json:"associativity"`
	Precedence    int    `json:"precedence"`
}

// String renders the fixity as a declaration keyword, e.g. "infixl 6".
func (f Fixity) String() string {
	kw := "infix"
	switch f.Associativity {
	case "left":
		kw = "infixl"
	case "right":
		kw = "infixr"
	}
	return fmt.Sprintf("%s %d", kw, f.Precedence)
}
