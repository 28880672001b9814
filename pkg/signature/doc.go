// Package signature scans and splits flattened type signatures.
//
// Signatures arrive as plain text exactly as the compiler prints them into
// docs.json: module qualifiers joined with ".", arguments separated by "->",
// records delimited by braces. This package never builds an AST. It tracks
// parenthesis and brace depth one rune at a time and uses that to find the
// top-level split points:
//
//	SplitArgs("(a -> b) -> List a -> List b")
//	// ["(a -> b)", "List a", "List b"]
//
//	SplitRecord("{ x : Int, y : { a : Int, b : Int } }")
//	// ["{ x : Int", ", y : { a : Int, b : Int } }"]
//
// Malformed input is never rejected. Unmatched closing brackets are clamped
// so depth cannot go negative, and the result is the best-effort split.
package signature
