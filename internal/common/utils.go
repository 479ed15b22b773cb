package common

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// HasAny returns true if s contains any of the substrings, case-insensitively.
func HasAny(s string, subs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// Capitalize upper-cases the first rune of s, leaving the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
