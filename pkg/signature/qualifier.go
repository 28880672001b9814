package signature

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsIdentRune reports whether r can be part of an identifier.
func IsIdentRune(r rune) bool {
	return r == '_' || r == '\'' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// DropQualifier removes module qualification from the dotted names in token.
// Every run of identifier characters and dots is reduced to its last
// component, so surrounding punctuation survives:
//
//	DropQualifier("List.List")    // "List"
//	DropQualifier("(Maybe.Maybe") // "(Maybe"
//	DropQualifier("Int")          // "Int"
//
// A run ending in a dot is left alone. DropQualifier is idempotent.
func DropQualifier(token string) string {
	if !strings.Contains(token, ".") {
		return token
	}

	var b strings.Builder
	b.Grow(len(token))

	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		run := token[start:end]
		if i := strings.LastIndexByte(run, '.'); i >= 0 && i < len(run)-1 {
			run = run[i+1:]
		}
		b.WriteString(run)
		start = -1
	}

	for i, r := range token {
		if r == '.' || IsIdentRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
		b.WriteRune(r)
	}
	flush(len(token))
	return b.String()
}

// Normalize strips qualifiers from every word of sig and collapses runs of
// whitespace to a single space.
func Normalize(sig string) string {
	words := strings.Fields(sig)
	for i, w := range words {
		words[i] = DropQualifier(w)
	}
	return strings.Join(words, " ")
}

// IsOperator reports whether name is an infix operator such as "+" or "<|".
func IsOperator(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return name != "" && !IsIdentRune(r)
}

// OperatorRef returns name as it is referenced in prefix position:
// operators are parenthesized ("+" becomes "(+)"), identifiers are unchanged.
func OperatorRef(name string) string {
	if IsOperator(name) {
		return "(" + name + ")"
	}
	return name
}

// IsGrouped reports whether sig is wrapped in a single pair of parentheses
// or braces, that is, its first rune opens a group closed by its last rune.
// "(a -> b)" is grouped, "(a) -> (b)" is not.
func IsGrouped(sig string) bool {
	sig = strings.TrimSpace(sig)
	if sig == "" || (sig[0] != '(' && sig[0] != '{') {
		return false
	}
	var d Depth
	for i, r := range sig {
		if d = d.Step(r); d.TopLevel() {
			return i+utf8.RuneLen(r) == len(sig)
		}
	}
	return false
}

// NeedsParens reports whether a constructor argument must be parenthesized
// to read unambiguously: compound types containing a space do, single
// tokens and already grouped types do not.
func NeedsParens(arg string) bool {
	arg = strings.TrimSpace(arg)
	return strings.ContainsRune(arg, ' ') && !IsGrouped(arg)
}
