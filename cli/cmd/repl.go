package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/x/term"

	"github.com/ardnew/pure/cli/cmd/repl"
	"github.com/ardnew/pure/log"
)

// Repl starts an interactive session.
type Repl struct {
	History  int  `default:"1000" help:"Maximum number of history entries kept; 0 keeps all"`
	Collapse bool `default:"true" help:"Collapse incidental whitespace"                  negatable:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if !term.IsTerminal(os.Stdin.Fd()) {
		return ErrNoTTY
	}

	var history string
	if ktx := kongContextFrom(ctx); ktx != nil {
		if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok {
			history = filepath.Join(dir, repl.HistoryFile)
		}
	}

	log.DebugContext(ctx, "starting interactive session",
		slog.String("history", history),
	)

	return repl.Run(ctx, engineFrom(ctx),
		repl.WithHistory(history, r.History),
		repl.WithLogger(log.Default()),
		repl.WithCollapse(r.Collapse),
	)
}
