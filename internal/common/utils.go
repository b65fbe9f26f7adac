package common

import (
	"unicode"
	"unicode/utf8"
)

// CapitalizeFirst upper-cases the first letter of s, leaving the rest untouched.
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
