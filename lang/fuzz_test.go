package lang

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzParse checks that recognition and resolution never panic and that
// formulas free of element, separator, and alias tokens render verbatim.
func FuzzParse(f *testing.F) {
	f.Add("Hello world")
	f.Add("Hello, $name")
	f.Add(formulaPleaseWait)
	f.Add(formulaSaved)
	f.Add(formulaReminder)
	f.Add(formulaCoupons)
	f.Add("$[$[$[")
	f.Add("]]]$]")
	f.Add("$[:x")
	f.Add("$[## ## ##]")

	tokens := DefaultTokens()
	b := MapBindings{
		Variables: map[string]string{"name": "Stan", "date": "today", "a": "1"},
		Aliases:   map[string]bool{"one": true, "target": true},
	}

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		root, err := Parse(context.Background(), input, tokens)
		if err != nil {
			t.Fatalf("parse error: %v", err)
		}

		got := Resolve(root, b)

		if !strings.Contains(input, tokens.Element) &&
			!strings.Contains(input, tokens.Separator) &&
			!strings.Contains(input, tokens.Alias) {
			if got != input {
				t.Errorf("literal formula %q resolved to %q", input, got)
			}
		}

		_ = Normalize(got)
	})
}
