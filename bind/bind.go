package bind

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/mung"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/pure/lang"
	"github.com/ardnew/pure/log"
)

// DefaultDelim joins the items of a sequence variable.
const DefaultDelim = ", "

// Predefined errors (sentinel values).
var (
	ErrDecode      = lang.NewError("failed to decode bindings")
	ErrOpen        = lang.NewError("failed to open bindings")
	ErrRuleCompile = lang.NewError("failed to compile rule")
	ErrRuleRun     = lang.NewError("failed to evaluate rule")
	ErrTokens      = lang.NewError("invalid tokens in bindings")
)

// Document is a single bindings document.
type Document struct {
	Delim     string            `yaml:"delim,omitempty"     json:"delim,omitempty"`
	Tokens    *lang.Tokens      `yaml:"tokens,omitempty"    json:"tokens,omitempty"`
	Variables map[string]any    `yaml:"variables,omitempty" json:"variables,omitempty"`
	Aliases   []string          `yaml:"aliases,omitempty"   json:"aliases,omitempty"`
	Rules     map[string]string `yaml:"rules,omitempty"     json:"rules,omitempty"`
}

// Load decodes a bindings document from r. Unknown fields are rejected.
func Load(ctx context.Context, r io.Reader) (*Document, error) {
	var doc Document

	dec := yaml.NewDecoder(r, yaml.DisallowUnknownField())
	if err := dec.DecodeContext(ctx, &doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}

		return nil, ErrDecode.Wrap(err)
	}

	doc.Variables = flatten(doc.Variables)

	log.DebugContext(ctx, "bindings loaded",
		slog.Int("variables", len(doc.Variables)),
		slog.Int("aliases", len(doc.Aliases)),
		slog.Int("rules", len(doc.Rules)),
	)

	return &doc, nil
}

// LoadFile decodes the bindings document at path, or standard input if path
// is "-".
func LoadFile(ctx context.Context, path string) (*Document, error) {
	if path == "-" {
		return Load(ctx, os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ErrOpen.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	doc, err := Load(ctx, f)
	if err != nil {
		return nil, lang.WrapError(err).With(slog.String("path", path))
	}

	return doc, nil
}

// Merge layers docs in order and returns the combined document.
//
// Later documents override the delimiter, tokens, scalar variables, and rules
// of earlier ones. A sequence variable is prefixed onto a value an earlier
// document assigned to the same name. Aliases accumulate without duplicates.
func Merge(docs ...*Document) *Document {
	out := &Document{
		Variables: make(map[string]any),
		Rules:     make(map[string]string),
	}

	for _, doc := range docs {
		if doc == nil {
			continue
		}

		if doc.Delim != "" {
			out.Delim = doc.Delim
		}

		if doc.Tokens != nil {
			tokens := *doc.Tokens
			out.Tokens = &tokens
		}

		delim := out.delim()

		for name, value := range doc.Variables {
			items, isList := value.([]any)
			prev, exists := out.Variables[name]

			if isList && exists {
				out.Variables[name] = mung.Make(
					mung.WithSubjectItems(Stringify(prev, delim)),
					mung.WithDelim(delim),
					mung.WithPrefixItems(itemStrings(items, delim)...),
				).String()

				continue
			}

			out.Variables[name] = value
		}

		for _, alias := range doc.Aliases {
			if !slices.Contains(out.Aliases, alias) {
				out.Aliases = append(out.Aliases, alias)
			}
		}

		maps.Copy(out.Rules, doc.Rules)
	}

	return out
}

func (d *Document) delim() string {
	if d.Delim == "" {
		return DefaultDelim
	}

	return d.Delim
}

// Strings returns the string form of every variable.
func (d *Document) Strings() map[string]string {
	delim := d.delim()

	out := make(map[string]string, len(d.Variables))
	for name, value := range d.Variables {
		out[name] = Stringify(value, delim)
	}

	return out
}

// Apply installs the document into e: tokens, if present, then every
// variable and alias, then every rule whose condition holds.
//
// Rules are evaluated in alias name order against the native variable
// values. A rule that fails to compile or run aborts Apply.
func (d *Document) Apply(ctx context.Context, e *lang.Engine) error {
	if d.Tokens != nil {
		if err := e.Configure(*d.Tokens); err != nil {
			return ErrTokens.Wrap(err)
		}
	}

	for name, value := range d.Strings() {
		e.Assign(name, value)
	}

	for _, alias := range d.Aliases {
		e.Enable(alias)
	}

	rules, err := Compile(d.Rules, d.Variables)
	if err != nil {
		return err
	}

	enabled, err := rules.Eval(d.Variables)
	if err != nil {
		return err
	}

	for _, alias := range enabled {
		e.Enable(alias)
	}

	log.DebugContext(ctx, "bindings applied",
		slog.Int("variables", len(d.Variables)),
		slog.Any("aliases", e.Aliases()),
	)

	return nil
}

// Stringify returns the string assigned to a variable for a decoded YAML
// value. Sequences are joined with delim.
func Stringify(value any, delim string) string {
	switch v := value.(type) {
	case nil:
		return ""

	case string:
		return v

	case []any:
		return strings.Join(itemStrings(v, delim), delim)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	default:
		return fmt.Sprint(v)
	}
}

// itemStrings stringifies each item of a sequence.
func itemStrings(items []any, delim string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, Stringify(item, delim))
	}

	return out
}

// flatten collapses nested mappings into underscore-joined names and
// normalizes integers decoded as uint64.
func flatten(vars map[string]any) map[string]any {
	if len(vars) == 0 {
		return vars
	}

	out := make(map[string]any, len(vars))

	var walk func(prefix string, m map[string]any)

	walk = func(prefix string, m map[string]any) {
		for key, value := range m {
			name := key
			if prefix != "" {
				name = prefix + "_" + key
			}

			switch v := value.(type) {
			case map[string]any:
				walk(name, v)

			default:
				out[name] = normalize(v)
			}
		}
	}

	walk("", vars)

	return out
}

func normalize(value any) any {
	switch v := value.(type) {
	case uint64:
		if v <= math.MaxInt64 {
			return int(v)
		}

		return v

	case int64:
		return int(v)

	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalize(item)
		}

		return out

	default:
		return v
	}
}
