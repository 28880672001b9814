package signature

import "strings"

// Arrow is the function-type separator in flattened signatures.
const Arrow = "->"

// sentinel stands in for Arrow while scanning so that the separator is a
// single rune. It never occurs in signatures emitted by the compiler.
const sentinel = '\x00'

// SplitArgs splits a function signature into its arguments at top-level
// arrows. Arrows nested inside parentheses or braces are kept as part of the
// enclosing argument:
//
//	SplitArgs("(a -> b) -> List a -> c") // ["(a -> b)", "List a", "c"]
//
// A signature without a top-level arrow yields a single element.
func SplitArgs(sig string) []string {
	marked := strings.ReplaceAll(sig, Arrow, string(sentinel))

	final := Fold(marked, ScanState{}, func(s ScanState, r rune) ScanState {
		if r == sentinel {
			if s.TopLevel() {
				return s.Close()
			}
			s.Chunk += Arrow
			return s
		}
		s.Depth = s.Depth.Step(r)
		return s.Push(r)
	}).Close()

	args := make([]string, len(final.Chunks))
	for i, c := range final.Chunks {
		args[i] = strings.TrimSpace(c)
	}
	return args
}

// SplitRecord splits a record type into its top-level fields. Every field
// keeps its leading delimiter ("{" for the first, "," for the rest) and the
// last one keeps the closing brace, so each piece can be printed on its own
// line:
//
//	SplitRecord("{ x : Int, y : String }") // ["{ x : Int", ", y : String }"]
//
// Commas inside nested records or parenthesized types do not split. Any text
// after the closing brace is returned as a trailing element.
func SplitRecord(sig string) []string {
	final := Fold(strings.TrimSpace(sig), ScanState{}, func(s ScanState, r rune) ScanState {
		next := s.Depth.Step(r)
		switch {
		case r == ',' && s.Paren == 0 && s.Brace == 1:
			s = s.Close()
			s.Depth = next
			return s.Push(r)
		case r == '}' && s.Brace == 1 && next.Brace == 0:
			s.Depth = next
			return s.Push(r).Close()
		}
		s.Depth = next
		return s.Push(r)
	}).Close()

	fields := make([]string, 0, len(final.Chunks))
	for _, c := range final.Chunks {
		if c = strings.TrimSpace(c); c != "" {
			fields = append(fields, c)
		}
	}
	return fields
}

// IsRecord reports whether sig is a record type.
func IsRecord(sig string) bool {
	return strings.HasPrefix(strings.TrimSpace(sig), "{")
}
