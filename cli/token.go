package cli

import (
	"github.com/alecthomas/kong"

	"github.com/ardnew/pure/lang"
)

type tokenConfig struct {
	Element   string `default:"${tokenElement}"   help:"Token introducing a variable or block"`
	Opener    string `default:"${tokenOpener}"    help:"Token opening a block"`
	Closer    string `default:"${tokenCloser}"    help:"Token closing a block"`
	Separator string `default:"${tokenSeparator}" help:"Token separating block alternatives"`
	Alias     string `default:"${tokenAlias}"     help:"Token delimiting an alias name"`
}

func (*tokenConfig) vars() kong.Vars {
	return kong.Vars{
		"tokenElement":   lang.DefaultElementToken,
		"tokenOpener":    lang.DefaultOpenerToken,
		"tokenCloser":    lang.DefaultCloserToken,
		"tokenSeparator": lang.DefaultSeparatorToken,
		"tokenAlias":     lang.DefaultAliasToken,
	}
}

func (*tokenConfig) group() kong.Group {
	return kong.Group{Key: "token", Title: "Formula tokens"}
}

func (t *tokenConfig) tokens() lang.Tokens {
	return lang.Tokens{
		Element:   t.Element,
		Opener:    t.Opener,
		Closer:    t.Closer,
		Separator: t.Separator,
		Alias:     t.Alias,
	}
}
