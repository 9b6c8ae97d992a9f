package lang

import (
	"log/slog"
	"strings"
)

// Default token strings.
const (
	DefaultElementToken   = "$"
	DefaultOpenerToken    = "["
	DefaultCloserToken    = "]"
	DefaultSeparatorToken = "##"
	DefaultAliasToken     = ":"
)

// Tokens holds the five token strings recognized in a formula.
// Tokens are compared literally; there is no escaping mechanism.
type Tokens struct {
	// Element introduces a variable or a block: $name, $[...].
	Element string `json:"element" yaml:"element"`
	// Opener and Closer delimit the payload of a block.
	Opener string `json:"opener" yaml:"opener"`
	Closer string `json:"closer" yaml:"closer"`
	// Separator divides the alternatives of a block.
	Separator string `json:"separator" yaml:"separator"`
	// Alias delimits the alias name guarding a frame: :name:.
	Alias string `json:"alias" yaml:"alias"`
}

// DefaultTokens returns the default token configuration.
func DefaultTokens() Tokens {
	return Tokens{
		Element:   DefaultElementToken,
		Opener:    DefaultOpenerToken,
		Closer:    DefaultCloserToken,
		Separator: DefaultSeparatorToken,
		Alias:     DefaultAliasToken,
	}
}

// named returns the tokens paired with their names, in recognition priority
// order.
func (t Tokens) named() [5][2]string {
	return [5][2]string{
		{"alias", t.Alias},
		{"element", t.Element},
		{"separator", t.Separator},
		{"opener", t.Opener},
		{"closer", t.Closer},
	}
}

// Validate reports whether the token configuration can be recognized
// unambiguously.
//
// Every token must be non-empty, and no token may equal or be a prefix of
// another token.
func (t Tokens) Validate() error {
	tokens := t.named()

	for _, tok := range tokens {
		if tok[1] == "" {
			return ErrEmptyToken.With(slog.String("token", tok[0]))
		}
	}

	for i, a := range tokens {
		for _, b := range tokens[i+1:] {
			if strings.HasPrefix(a[1], b[1]) || strings.HasPrefix(b[1], a[1]) {
				return ErrOverlappingTokens.With(
					slog.String(a[0], a[1]),
					slog.String(b[0], b[1]),
				)
			}
		}
	}

	return nil
}

// LogValue implements slog.LogValuer.
func (t Tokens) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("element", t.Element),
		slog.String("opener", t.Opener),
		slog.String("closer", t.Closer),
		slog.String("separator", t.Separator),
		slog.String("alias", t.Alias),
	)
}
