package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/pure/lang"
)

// completion identifies the kind of name expected at the cursor.
type completion int

const (
	completeNone completion = iota
	completeVariable
	completeAlias
	completeCommand
)

// isNameRune reports whether r may appear in a variable or alias name.
func isNameRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// wordBounds returns the name at the cursor position and its byte
// boundaries within input. The word is empty when the cursor is not
// adjacent to a name character.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = max(0, min(cursor, len(input)))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if !isNameRune(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if !isNameRune(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// formulaCompletion determines what kind of name is expected at wordStart
// within a formula: a variable directly after the element token, or an alias
// after an unmatched alias token.
func formulaCompletion(input string, wordStart int, tokens lang.Tokens) completion {
	prefix := input[:wordStart]

	switch {
	case tokens.Element != "" && strings.HasSuffix(prefix, tokens.Element):
		return completeVariable

	case tokens.Alias != "" && strings.HasSuffix(prefix, tokens.Alias) &&
		strings.Count(prefix, tokens.Alias)%2 == 1:
		return completeAlias

	default:
		return completeNone
	}
}

// commandCompletion determines what kind of name is expected at wordStart
// within a control-mode command line.
func commandCompletion(input string, wordStart int, tokens lang.Tokens) completion {
	prefix := input[:wordStart]
	if strings.TrimSpace(prefix) == "" {
		return completeCommand
	}

	fields := strings.Fields(prefix)
	argIndex := len(fields)

	switch fields[0] {
	case "set":
		if argIndex == 1 {
			return completeVariable
		}

	case "unset":
		return completeVariable

	case "on", "off":
		return completeAlias

	case "tree":
		rest := strings.TrimLeft(strings.TrimPrefix(input, fields[0]), " ")
		offset := len(input) - len(rest)

		return formulaCompletion(rest, wordStart-offset, tokens)
	}

	return completeNone
}

// candidates returns the names offered for a completion kind.
func (s *session) candidates(kind completion) []string {
	switch kind {
	case completeVariable:
		return s.variables()

	case completeAlias:
		return s.aliases()

	case completeCommand:
		return commandNames()

	default:
		return nil
	}
}

// findMatches ranks candidates against word. An empty word matches every
// candidate in order, so that typing a token alone lists what may follow.
func findMatches(word string, candidates []string) fuzzy.Matches {
	if len(candidates) == 0 {
		return nil
	}

	if word == "" {
		matches := make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches
	}

	return fuzzy.Find(word, candidates)
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor and returns them with the word boundaries.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	word, start, end := wordBounds(input, m.input.Position())
	tokens := m.session.engine.Tokens()

	var kind completion
	if m.mode == modeCtrl {
		kind = commandCompletion(input, start, tokens)
		if kind == completeCommand && word == "" {
			return nil, start, end
		}
	} else {
		kind = formulaCompletion(input, start, tokens)
	}

	return findMatches(word, m.session.candidates(kind)), start, end
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if i > 0 && used+entryWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
