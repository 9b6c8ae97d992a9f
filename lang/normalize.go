package lang

import (
	"regexp"
	"strings"
)

// collapseExpr matches a run of whitespace followed by another whitespace
// character, a sentence punctuation mark, or the end of input. The follower
// is captured so it can be kept.
var collapseExpr = regexp.MustCompile(`\s+(?:(\s|[.?!;:,])|$)`)

// Normalize collapses incidental whitespace left behind by elements that
// resolved to nothing.
//
// Each run of whitespace followed by whitespace, one of . ? ! ; : , or the end
// of input is replaced by its follower, repeatedly until nothing changes.
// Leading and trailing whitespace is then trimmed. Normalize is idempotent.
func Normalize(s string) string {
	for {
		collapsed := collapseExpr.ReplaceAllString(s, "$1")
		if collapsed == s {
			break
		}

		s = collapsed
	}

	return strings.TrimSpace(s)
}
