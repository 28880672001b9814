package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxNameLength bounds module and entry names accepted from docs.json.
const maxNameLength = 256

// ValidateModuleName checks that name looks like a dotted module path such
// as "Json.Decode": non-empty segments, each starting with an upper-case
// letter and containing only letters, digits and underscores.
func ValidateModuleName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "module name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "module name too long (max %d characters)", maxNameLength)
	}

	for _, part := range strings.Split(name, ".") {
		first, _ := utf8.DecodeRuneInString(part)
		if part == "" || !unicode.IsUpper(first) {
			return New(ErrCodeInvalidName, "invalid module name: %q", name)
		}
		for _, r := range part {
			if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return New(ErrCodeInvalidName, "invalid module name: %q", name)
			}
		}
	}
	return nil
}

// ValidateEntryName checks a value, alias, union or operator name. Names may
// be identifiers or operators, but never empty, blank or containing control
// characters.
func ValidateEntryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidName, "entry name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "entry name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidName, "entry name contains invalid characters: %q", name)
		}
	}
	return nil
}
