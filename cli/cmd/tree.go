package cmd

import (
	"context"
	"strings"

	"github.com/ardnew/pure/lang"
	"github.com/ardnew/pure/log"
)

// Tree prints the element tree recognized in a formula.
type Tree struct {
	Formula []string `arg:""                          help:"Formula to parse; words are joined with a space" optional:""`
	Format  string   `default:"text"                  enum:"${treeFormatEnum}"                               help:"Output format (${enum})" short:"o"`
	Indent  int      `default:"2"                     help:"Indentation for json and yaml output; 0 for compact"`
}

// Run executes the tree command.
func (t *Tree) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	tokens := engineFrom(ctx).Tokens()

	formula := strings.Join(t.Formula, " ")
	if len(t.Formula) == 0 {
		read, err := readFormulas(inputFrom(ctx), false)
		if err != nil {
			return ErrReadFormula.Wrap(err)
		}

		formula = read[0]
	}

	root, err := lang.ParseWithLogger(ctx, formula, tokens, log.Default())
	if err != nil {
		return ErrReadFormula.Wrap(err)
	}

	err = lang.Write(ctx, outputFrom(ctx), root,
		lang.OutputFormat(t.Format), tokens, t.Indent)
	if err != nil {
		return lang.WrapError(err)
	}

	return nil
}

// TreeFormatEnum is the kong variable identifier listing the tree formats.
const TreeFormatEnum = "treeFormatEnum"
