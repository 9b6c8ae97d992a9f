package lang

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/ardnew/pure/log"
)

// Engine renders formulas against its own binding context: a set of
// assigned variables and a set of enabled aliases.
//
// An Engine performs no locking. Callers that share one Engine between
// goroutines must synchronize access; independent sessions should each use
// their own Engine (see [Engine.Clone]).
type Engine struct {
	tokens  Tokens
	vars    map[string]string
	aliases map[string]struct{}
	logger  log.Logger
}

// Option configures an [Engine].
type Option func(*Engine)

// WithTokens sets the token configuration used to recognize formulas.
func WithTokens(tokens Tokens) Option {
	return func(e *Engine) {
		e.tokens = tokens
	}
}

// WithLogger sets the logger used to trace parsing and resolution.
func WithLogger(logger log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New returns an Engine with empty bindings and the [DefaultTokens], as
// modified by opts. It fails if the resulting tokens are invalid.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		tokens:  DefaultTokens(),
		vars:    make(map[string]string),
		aliases: make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(e)
	}

	if err := e.tokens.Validate(); err != nil {
		return nil, err
	}

	return e, nil
}

// Configure installs a new token configuration. Invalid tokens are rejected
// and the current configuration is kept.
func (e *Engine) Configure(tokens Tokens) error {
	if err := tokens.Validate(); err != nil {
		return err
	}

	e.tokens = tokens

	return nil
}

// Tokens returns the current token configuration.
func (e *Engine) Tokens() Tokens { return e.tokens }

// Assign binds value to the named variable, replacing any previous value.
func (e *Engine) Assign(name, value string) {
	e.vars[name] = value
}

// Discard removes the named variable. Discarding an unassigned name is a
// no-op.
func (e *Engine) Discard(name string) {
	delete(e.vars, name)
}

// Enable turns the named alias on.
func (e *Engine) Enable(alias string) {
	e.aliases[alias] = struct{}{}
}

// Disable turns the named alias off. Disabling an alias that is not enabled
// is a no-op.
func (e *Engine) Disable(alias string) {
	delete(e.aliases, alias)
}

// Reset discards all variables and disables all aliases.
func (e *Engine) Reset() {
	clear(e.vars)
	clear(e.aliases)
}

// Lookup implements [Bindings].
func (e *Engine) Lookup(name string) (string, bool) {
	v, ok := e.vars[name]

	return v, ok
}

// Enabled implements [Bindings].
func (e *Engine) Enabled(alias string) bool {
	_, ok := e.aliases[alias]

	return ok
}

// Variables returns a copy of the assigned variables.
func (e *Engine) Variables() map[string]string {
	return maps.Clone(e.vars)
}

// Aliases returns the enabled aliases in sorted order.
func (e *Engine) Aliases() []string {
	return slices.Sorted(maps.Keys(e.aliases))
}

// Clone returns an independent Engine with the same tokens, logger, and a
// copy of the current bindings.
func (e *Engine) Clone() *Engine {
	return &Engine{
		tokens:  e.tokens,
		vars:    maps.Clone(e.vars),
		aliases: maps.Clone(e.aliases),
		logger:  e.logger,
	}
}

// execConfig holds per-call options for [Engine.Execute].
type execConfig struct {
	collapse bool
	reset    bool
}

// ExecOption configures a single call to [Engine.Execute].
type ExecOption func(execConfig) execConfig

// WithCollapse controls whether incidental whitespace is collapsed in the
// output (see [Normalize]).
func WithCollapse(collapse bool) ExecOption {
	return func(c execConfig) execConfig {
		c.collapse = collapse

		return c
	}
}

// WithReset controls whether [Engine.Reset] is called once the formula has
// been rendered.
func WithReset(reset bool) ExecOption {
	return func(c execConfig) execConfig {
		c.reset = reset

		return c
	}
}

// Execute parses formula and renders it against the current bindings.
//
// The formula is parsed anew on every call. Execute never fails: text that
// is not a construct renders literally, and an invalid root renders as the
// empty string.
func (e *Engine) Execute(ctx context.Context, formula string, opts ...ExecOption) string {
	var cfg execConfig
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	if cfg.reset {
		defer e.Reset()
	}

	root, err := ParseWithLogger(ctx, formula, e.tokens, e.logger)
	if err != nil {
		// Tokens are validated on installation, so this is unreachable
		// unless the Engine was not created with New.
		e.logger.WarnContext(ctx, "parse failed", slog.Any("error", err))

		return ""
	}

	result := Resolve(root, e)

	if e.logger.Enabled(ctx, log.LevelTrace) {
		e.logger.TraceContext(ctx, "resolve complete",
			slog.Int("result_bytes", len(result)),
			slog.Int("variables", len(e.vars)),
			slog.Int("aliases", len(e.aliases)),
			slog.Bool("collapse", cfg.collapse),
			slog.Bool("reset", cfg.reset),
		)
	}

	if cfg.collapse {
		return Normalize(result)
	}

	return result
}
