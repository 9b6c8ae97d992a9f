package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/ardnew/pure/lang"
	"github.com/ardnew/pure/log"
)

// Exec renders formulas against the session bindings.
type Exec struct {
	Formulas []string          `arg:""                     help:"Formula(s) to render"                                             optional:""`
	File     []string          `help:"Read formulas from file(s) or '-' for stdin" short:"f" type:"existingfile"`
	Var      map[string]string `help:"Assign a variable (name=value)"              short:"v"`
	Alias    []string          `help:"Enable an alias"                             short:"a"`
	Collapse bool              `help:"Collapse incidental whitespace"              default:"true"                                  negatable:""`
	Reset    bool              `help:"Clear all bindings after each formula"`
	Lines    bool              `help:"Render each input line as its own formula"   short:"l"`
}

// Run executes the exec command.
func (x *Exec) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	e := engineFrom(ctx)

	for _, name := range slices.Sorted(maps.Keys(x.Var)) {
		e.Assign(name, x.Var[name])
	}

	for _, alias := range x.Alias {
		e.Enable(alias)
	}

	formulas, err := x.formulas(ctx)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(outputFrom(ctx))

	for _, formula := range formulas {
		result := e.Execute(ctx, formula,
			lang.WithCollapse(x.Collapse),
			lang.WithReset(x.Reset),
		)

		log.TraceContext(ctx, "rendered formula",
			slog.String("formula", formula),
			slog.String("result", result),
		)

		if _, err := fmt.Fprintln(w, result); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	if err := w.Flush(); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// formulas collects the formulas to render: arguments first, then each file
// in order. With no arguments and no files, standard input is read.
func (x *Exec) formulas(ctx context.Context) ([]string, error) {
	formulas := slices.Clone(x.Formulas)

	files := x.File
	if len(files) == 0 && len(formulas) == 0 {
		files = []string{stdinSource}
	}

	srcs, closeAll, err := openSources(files, inputFrom(ctx))
	if err != nil {
		return nil, ErrReadFormula.Wrap(err)
	}
	defer closeAll()

	for _, src := range srcs {
		read, err := readFormulas(src, x.Lines)
		if err != nil {
			return nil, ErrReadFormula.Wrap(err).With(slog.String("file", src.name))
		}

		formulas = append(formulas, read...)
	}

	return formulas, nil
}

// maxFormulaLine is the longest line accepted in --lines mode.
const maxFormulaLine = 16 << 20

// readFormulas reads r as a single formula, or one formula per line if lines
// is set. A single trailing newline is not part of the formula.
func readFormulas(r io.Reader, lines bool) ([]string, error) {
	if lines {
		var out []string

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxFormulaLine)

		for scanner.Scan() {
			out = append(out, scanner.Text())
		}

		return out, scanner.Err()
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSuffix(string(data), "\n")
	text = strings.TrimSuffix(text, "\r")

	return []string{text}, nil
}
