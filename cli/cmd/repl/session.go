package repl

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/ardnew/pure/lang"
	"github.com/ardnew/pure/log"
)

// command is a control-mode command.
type command struct {
	name  string
	args  string
	about string
}

// commands are the available control-mode commands, in help order.
var commands = []command{
	{"set", "name value", "Assign value to variable name"},
	{"unset", "name...", "Remove variables"},
	{"on", "alias...", "Enable aliases"},
	{"off", "alias...", "Disable aliases"},
	{"reset", "", "Clear all variables and aliases"},
	{"vars", "", "List variables and enabled aliases"},
	{"tree", "formula", "Print the element tree of a formula"},
	{"help", "", "Print this help"},
	{"clear", "", "Clear screen"},
	{"quit", "", "Exit"},
}

// commandNames returns the names of all control-mode commands.
func commandNames() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}

	return names
}

// reply is the outcome of a single line of input.
type reply struct {
	text  string
	err   error
	quit  bool
	clear bool
}

// session holds the bindings of an interactive session and executes input
// lines against them.
type session struct {
	engine   *lang.Engine
	logger   log.Logger
	collapse bool

	// seen collects the variable and alias names referenced by rendered
	// formulas so they can be offered as completions later.
	seenVars    []string
	seenAliases []string
}

func newSession(e *lang.Engine, logger log.Logger, collapse bool) *session {
	return &session{engine: e, logger: logger, collapse: collapse}
}

// render renders a formula line.
func (s *session) render(ctx context.Context, formula string) reply {
	if root, err := lang.ParseWithLogger(ctx, formula, s.engine.Tokens(), s.logger); err == nil {
		vars, aliases := lang.Names(root)
		s.seenVars = merge(s.seenVars, vars)
		s.seenAliases = merge(s.seenAliases, aliases)
	}

	result := s.engine.Execute(ctx, formula, lang.WithCollapse(s.collapse))

	s.logger.TraceContext(ctx, "repl render",
		slog.String("formula", formula),
		slog.String("result", result),
	)

	return reply{text: result}
}

// exec executes a control-mode command line.
func (s *session) exec(ctx context.Context, input string) reply {
	name, rest, _ := strings.Cut(strings.TrimSpace(input), " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	s.logger.TraceContext(ctx, "repl command",
		slog.String("command", name),
		slog.Any("args", args),
	)

	switch name {
	case "q", "quit", "exit":
		return reply{quit: true}

	case "h", "help":
		return reply{text: helpMessage()}

	case "c", "clear":
		return reply{clear: true}

	case "set":
		if len(args) == 0 {
			return usage("set")
		}

		value := strings.TrimSpace(strings.TrimPrefix(rest, args[0]))
		s.engine.Assign(args[0], value)
		s.seenVars = merge(s.seenVars, args[:1])

		return reply{}

	case "unset":
		if len(args) == 0 {
			return usage("unset")
		}

		for _, v := range args {
			s.engine.Discard(v)
		}

		return reply{}

	case "on":
		if len(args) == 0 {
			return usage("on")
		}

		for _, a := range args {
			s.engine.Enable(a)
		}

		s.seenAliases = merge(s.seenAliases, args)

		return reply{}

	case "off":
		if len(args) == 0 {
			return usage("off")
		}

		for _, a := range args {
			s.engine.Disable(a)
		}

		return reply{}

	case "reset":
		s.engine.Reset()

		return reply{}

	case "vars":
		return reply{text: s.listBindings()}

	case "tree":
		root, err := lang.ParseWithLogger(ctx, rest, s.engine.Tokens(), s.logger)
		if err != nil {
			return reply{err: err}
		}

		var b strings.Builder
		if err := lang.PrintTree(ctx, &b, root); err != nil {
			return reply{err: err}
		}

		return reply{text: strings.TrimSuffix(b.String(), "\n")}

	default:
		return reply{err: fmt.Errorf("unknown command: %s (try 'help')", name)}
	}
}

// listBindings renders the current variables and enabled aliases.
func (s *session) listBindings() string {
	vars := s.engine.Variables()
	names := slices.Sorted(maps.Keys(vars))

	var b strings.Builder

	for _, name := range names {
		fmt.Fprintf(&b, "  %s = %q\n", name, vars[name])
	}

	for _, alias := range s.engine.Aliases() {
		fmt.Fprintf(&b, "  %s%s%s\n", s.engine.Tokens().Alias, alias, s.engine.Tokens().Alias)
	}

	if b.Len() == 0 {
		return "  (no bindings)"
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// variables returns the names offered as variable completions.
func (s *session) variables() []string {
	return merge(s.seenVars, slices.Collect(maps.Keys(s.engine.Variables())))
}

// aliases returns the names offered as alias completions.
func (s *session) aliases() []string {
	return merge(s.seenAliases, s.engine.Aliases())
}

func usage(name string) reply {
	for _, c := range commands {
		if c.name == name {
			return reply{err: fmt.Errorf("%w: %s %s", ErrUsage, c.name, c.args)}
		}
	}

	return reply{err: ErrUsage}
}

func helpMessage() string {
	var b strings.Builder

	b.WriteString("\n: Commands (press Esc to toggle mode):\n\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "  %-20s %s\n", strings.TrimSpace(c.name+" "+c.args), c.about)
	}

	b.WriteString(`
Usage:
  Type a formula to render it against the session bindings
  Completions appear after the element and alias tokens
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to toggle between formula and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`)

	return b.String()
}

// merge returns the sorted union of a and b.
func merge(a, b []string) []string {
	out := slices.Concat(a, b)
	slices.Sort(out)

	return slices.Compact(out)
}
