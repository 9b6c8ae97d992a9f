package lang

import (
	"strings"
	"unicode/utf8"
)

// Scanner is a cursor over the remaining text of a formula.
//
// A Scanner is an immutable value: every operation returns the resulting
// Scanner instead of modifying the receiver. Operations that slice the input
// also return the text that was cut off ahead of the cursor.
type Scanner struct {
	input string // text from the last cut onward
	pos   int    // cursor offset into input
}

// NewScanner returns a Scanner positioned at the start of input.
func NewScanner(input string) Scanner {
	return Scanner{input: input}
}

// CanContinue reports whether the cursor has not reached the end of input.
func (s Scanner) CanContinue() bool {
	return s.pos < len(s.input)
}

// Remaining returns the input from the last cut onward, ignoring the cursor.
func (s Scanner) Remaining() string { return s.input }

// Offset returns the cursor offset into [Scanner.Remaining].
func (s Scanner) Offset() int { return s.pos }

// DetectAndSlice tests whether needle begins exactly at the cursor.
//
// On a match, last holds the input preceding the cursor and next is a
// Scanner over the text following needle. Otherwise last is empty, next is
// the receiver, and ok is false. This never searches forward.
func (s Scanner) DetectAndSlice(needle string) (last string, next Scanner, ok bool) {
	if needle == "" || !strings.HasPrefix(s.input[s.pos:], needle) {
		return "", s, false
	}

	return s.input[:s.pos], NewScanner(s.input[s.pos+len(needle):]), true
}

// DetectAndExtract scans forward from the cursor for a balanced span
// delimited by opener and closer.
//
// The first opener opens the span and every further opener nests one level
// deeper; each closer returns one level. When the depth returns to zero,
// payload holds the text strictly between the outermost tokens and next is a
// Scanner over the text following the final closer.
//
// A closer found before any opener, or a span that never closes, yields an
// empty payload and ok false.
func (s Scanner) DetectAndExtract(opener, closer string) (payload string, next Scanner, ok bool) {
	if opener == "" || closer == "" {
		return "", s, false
	}

	since, depth := 0, 0

	for i := s.pos; i < len(s.input); {
		switch rest := s.input[i:]; {
		case strings.HasPrefix(rest, closer):
			if depth == 0 {
				return "", s, false
			}

			depth--
			if depth == 0 {
				return s.input[since:i], NewScanner(s.input[i+len(closer):]), true
			}

			i += len(closer)

		case strings.HasPrefix(rest, opener):
			if depth == 0 {
				since = i + len(opener)
			}

			depth++
			i += len(opener)

		default:
			i++
		}
	}

	return "", s, false
}

// LookBy advances the cursor by n bytes without cutting the input.
// The cursor never moves past the end of input.
func (s Scanner) LookBy(n int) Scanner {
	s.pos = min(s.pos+max(n, 0), len(s.input))

	return s
}

// Step advances the cursor past the rune under it.
func (s Scanner) Step() Scanner {
	if !s.CanContinue() {
		return s
	}

	_, size := utf8.DecodeRuneInString(s.input[s.pos:])

	return s.LookBy(size)
}

// SkipBy cuts the input n bytes past the cursor. The text before the cut is
// returned as last and next is a Scanner over the text after it.
func (s Scanner) SkipBy(n int) (last string, next Scanner) {
	at := min(s.pos+max(n, 0), len(s.input))

	return s.input[:at], NewScanner(s.input[at:])
}

// Current returns the rune under the cursor, or utf8.RuneError at the end.
func (s Scanner) Current() rune {
	if !s.CanContinue() {
		return utf8.RuneError
	}

	r, _ := utf8.DecodeRuneInString(s.input[s.pos:])

	return r
}
