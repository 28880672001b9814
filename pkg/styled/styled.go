// Package styled holds the rich-text model produced by the printer.
//
// A [Document] is an ordered, immutable sequence of [Token] values. Each token
// carries its text and a [Role] that tells a sink how to present it; sinks
// decide what a role looks like (ANSI colors, HTML classes, nothing at all).
package styled

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Role describes what a token is, not how it looks.
type Role int

const (
	// RolePlain is ordinary type text.
	RolePlain Role = iota
	// RoleKeyword marks syntax such as ":", "->", "type" and "=".
	RoleKeyword
	// RoleLink marks a reference to another entry. Target holds the anchor.
	RoleLink
)

var roleNames = [...]string{
	RolePlain:   "plain",
	RoleKeyword: "keyword",
	RoleLink:    "link",
}

// String returns the lowercase role name.
func (r Role) String() string {
	if r >= 0 && int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "unknown"
}

// ParseRole is the inverse of Role.String.
func ParseRole(s string) (Role, bool) {
	for i, name := range roleNames {
		if name == s {
			return Role(i), true
		}
	}
	return RolePlain, false
}

// MarshalText encodes the role by name.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a role name.
func (r *Role) UnmarshalText(b []byte) error {
	role, ok := ParseRole(string(b))
	if !ok {
		return fmt.Errorf("unknown role %q", b)
	}
	*r = role
	return nil
}

// Token is a run of text with a single role.
type Token struct {
	Text   string `json:"text"`
	Role   Role   `json:"role"`
	Target string `json:"target,omitempty"`
	Strong bool   `json:"strong,omitempty"`
}

// Plain returns a plain token.
func Plain(text string) Token { return Token{Text: text} }

// Keyword returns a keyword token.
func Keyword(text string) Token { return Token{Text: text, Role: RoleKeyword} }

// Link returns a token referring to target.
func Link(text, target string) Token {
	return Token{Text: text, Role: RoleLink, Target: target}
}

// Anchor returns the bold link used for an entry's own name.
func Anchor(text, name string) Token {
	return Token{Text: text, Role: RoleLink, Target: "#" + name, Strong: true}
}

// Document is an immutable token sequence.
type Document struct {
	tokens []Token
}

// NewDocument builds a document from tokens. Adjacent plain tokens are merged.
func NewDocument(tokens ...Token) Document {
	var b Builder
	b.Append(tokens...)
	return b.Document()
}

// Tokens returns a copy of the document's tokens.
func (d Document) Tokens() []Token {
	out := make([]Token, len(d.tokens))
	copy(out, d.tokens)
	return out
}

// Len returns the number of tokens.
func (d Document) Len() int { return len(d.tokens) }

// Text returns the document with all styling removed.
func (d Document) Text() string {
	var b strings.Builder
	for _, t := range d.tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Width returns the rune length of the unstyled text.
func (d Document) Width() int {
	return utf8.RuneCountInString(d.Text())
}

// Concat returns a new document holding d followed by others.
func (d Document) Concat(others ...Document) Document {
	var b Builder
	b.Append(d.tokens...)
	for _, o := range others {
		b.Append(o.tokens...)
	}
	return b.Document()
}

// Links returns the targets of all non-anchor links, in order.
func (d Document) Links() []string {
	var out []string
	for _, t := range d.tokens {
		if t.Role == RoleLink && !t.Strong {
			out = append(out, t.Target)
		}
	}
	return out
}

// Builder accumulates tokens. The zero value is ready to use.
type Builder struct {
	tokens []Token
}

// Append adds tokens, dropping empty ones and merging adjacent plain text.
func (b *Builder) Append(tokens ...Token) *Builder {
	for _, t := range tokens {
		if t.Text == "" {
			continue
		}
		if n := len(b.tokens); n > 0 && t.Role == RolePlain && !t.Strong {
			if last := &b.tokens[n-1]; last.Role == RolePlain && !last.Strong {
				last.Text += t.Text
				continue
			}
		}
		b.tokens = append(b.tokens, t)
	}
	return b
}

// Plain appends plain text.
func (b *Builder) Plain(text string) *Builder { return b.Append(Plain(text)) }

// Keyword appends a keyword.
func (b *Builder) Keyword(text string) *Builder { return b.Append(Keyword(text)) }

// Doc appends all tokens of d.
func (b *Builder) Doc(d Document) *Builder { return b.Append(d.tokens...) }

// Document returns the built document. The builder can keep being used;
// later appends do not affect documents already returned.
func (b *Builder) Document() Document {
	tokens := make([]Token, len(b.tokens))
	copy(tokens, b.tokens)
	return Document{tokens: tokens}
}
