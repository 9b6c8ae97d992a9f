package bind

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Rule enables an alias when its condition holds.
type Rule struct {
	Alias   string
	Source  string
	program *vm.Program
}

// Rules is a set of compiled rules, ordered by alias name.
type Rules []Rule

// Compile compiles each condition in rules, keyed by alias, as a boolean
// expr-lang expression over env. Identifiers missing from env evaluate to
// nil.
func Compile(rules map[string]string, env map[string]any) (Rules, error) {
	if env == nil {
		env = map[string]any{}
	}

	out := make(Rules, 0, len(rules))

	for _, alias := range slices.Sorted(maps.Keys(rules)) {
		source := rules[alias]

		program, err := expr.Compile(source,
			expr.Env(env),
			expr.AllowUndefinedVariables(),
			expr.AsBool(),
		)
		if err != nil {
			return nil, ErrRuleCompile.Wrap(err).With(
				slog.String("alias", alias),
				slog.String("source", source),
			)
		}

		out = append(out, Rule{Alias: alias, Source: source, program: program})
	}

	return out, nil
}

// Eval runs every rule against env and returns the aliases whose condition
// holds, in order.
func (r Rules) Eval(env map[string]any) ([]string, error) {
	var enabled []string

	for _, rule := range r {
		ok, err := rule.Eval(env)
		if err != nil {
			return nil, err
		}

		if ok {
			enabled = append(enabled, rule.Alias)
		}
	}

	return enabled, nil
}

// Eval reports whether the rule's condition holds for env.
func (r Rule) Eval(env map[string]any) (bool, error) {
	if env == nil {
		env = map[string]any{}
	}

	out, err := expr.Run(r.program, env)
	if err != nil {
		return false, ErrRuleRun.Wrap(err).With(
			slog.String("alias", r.Alias),
			slog.String("source", r.Source),
		)
	}

	ok, _ := out.(bool)

	return ok, nil
}
