package lang

import (
	"testing"
	"unicode/utf8"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"unchanged", "no change", "no change"},
		{"trim", "  a  ", "a"},
		{"inner run", "a   b", "a b"},
		{"mixed whitespace", "a\t\n b", "a b"},
		{"before comma", "a , b", "a, b"},
		{"before period", "end .", "end."},
		{"before each punctuation", "a ? b ! c ; d : e", "a? b! c; d: e"},
		{"run before punctuation", "x  ,  y", "x, y"},
		{"trailing run", "You saved it   ", "You saved it"},
		{"only whitespace", " \t\n ", ""},
		{"punctuation only", " . ", "."},
		{"multi-byte text", "«a»  «b» .", "«a» «b»."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func FuzzNormalize_Idempotent(f *testing.F) {
	f.Add("")
	f.Add("  a  b  ")
	f.Add("Congrats! You saved it .")
	f.Add("a \t, ; b")
	f.Add("\v   .")

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		once := Normalize(input)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", input, once, twice)
		}
	})
}
