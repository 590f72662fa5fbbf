package headline

import (
	"strings"
	"unicode"
)

// tokenStripChars are trimmed from both ends of a token before boundary
// classification. Raw token spelling is preserved in output.
const tokenStripChars = " ,.;()/[]{}"

// normalizeToken strips surrounding punctuation from a raw token.
func normalizeToken(token string) string {
	return strings.Trim(token, tokenStripChars)
}

// normalizeKey produces a comparable key for catalog lookups: lowercase with
// every non-alphanumeric character removed.
func normalizeKey(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripNonAlnum removes every character that is not an ASCII letter or digit,
// preserving case.
func stripNonAlnum(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// containsLetter reports whether any rune in s is a letter.
func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// containsDigit reports whether any rune in s is a digit.
func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
