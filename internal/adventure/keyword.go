package adventure

import (
	"regexp"
	"strings"
)

var validKeyword = regexp.MustCompile(`^\w+(?:[ \t]+\w+)*$`)

// MakeKeyword wraps a record or name identifier in the bracket form used
// inside story text and expressions.
func MakeKeyword(raw string) string {
	return "[" + strings.TrimSpace(raw) + "]"
}

// IsKeywordValid reports whether raw can serve as a record or name
// identifier. Letters, digits and underscores are allowed, with single
// spaces between words.
func IsKeywordValid(raw string) bool {
	return validKeyword.MatchString(raw)
}

// keywordPattern compiles a matcher for the bracketed form of raw.
// Internal whitespace is tolerated, so "[ confidence ]" and "[confidence]"
// both match the keyword "confidence".
func keywordPattern(raw string) *regexp.Regexp {
	return regexp.MustCompile(`\[\s*` + regexp.QuoteMeta(strings.TrimSpace(raw)) + `\s*\]`)
}

// IsKeywordPresent reports whether the bracketed form of raw appears in text.
func IsKeywordPresent(text, raw string) bool {
	return keywordPattern(raw).MatchString(text)
}

// RenameKeyword replaces every bracketed occurrence of old in text with the
// bracketed form of new. Replacement follows the match ranges of the
// compiled pattern, so bare substrings that merely spell the old identifier
// are left untouched. Expressions mix keywords with raw numbers, which is
// why whole-string replacement would be wrong here.
func RenameKeyword(text, old, new string) string {
	return keywordPattern(old).ReplaceAllLiteralString(text, MakeKeyword(new))
}
