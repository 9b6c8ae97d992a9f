package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/pure/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config.yaml")
//
// The document is a mapping from flag names to values. Nested mappings are
// joined with hyphens, and underscores may be used in place of hyphens:
//
//	log:
//	  level: debug
//	  pretty: false
//	token_alias: "@"
//	bind: [base.yaml, local.yaml]
//
// This configuration will be applied to Kong flags:
//
//	--log-level=debug
//	--no-log-pretty
//	--token-alias=@
//	--bind=base.yaml,local.yaml
//
// Command-line flags override config file values. A file that cannot be
// decoded is logged and ignored.
func resolve(ctx context.Context) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		err := yaml.NewDecoder(r).DecodeContext(ctx, &doc)
		if err != nil && !errors.Is(err, io.EOF) {
			log.WarnContext(ctx, "ignoring invalid configuration",
				slog.Any("error", err),
			)

			return config{}, nil
		}

		cfg := make(config)
		cfg.flatten("", doc)

		return cfg, nil
	}
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// flatten stores each leaf of m under its hyphen-joined path, converting
// values to the forms kong decodes.
func (r config) flatten(prefix string, m map[string]any) {
	for key, value := range m {
		name := strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			name = prefix + "-" + name
		}

		if sub, ok := value.(map[string]any); ok && !isFlagMap(name) {
			r.flatten(name, sub)

			continue
		}

		r[name] = flagValue(value)
	}
}

// isFlagMap reports whether the flag name takes a map value, so its mapping
// is kept whole rather than flattened.
func isFlagMap(name string) bool {
	return name == "var"
}

// flagValue converts a decoded YAML value to a form kong can parse. Kong
// requires numbers as strings, joins sequences with commas, and reads maps
// as semicolon-separated key=value pairs.
func flagValue(value any) any {
	switch v := value.(type) {
	case nil, bool, string:
		return v

	case uint64:
		return strconv.FormatUint(v, 10)

	case int64:
		return strconv.FormatInt(v, 10)

	case int:
		return strconv.Itoa(v)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = fmt.Sprint(flagValue(item))
		}

		return strings.Join(items, ",")

	case map[string]any:
		pairs := make([]string, 0, len(v))
		for _, k := range slices.Sorted(maps.Keys(v)) {
			pairs = append(pairs, k+"="+fmt.Sprint(flagValue(v[k])))
		}

		return strings.Join(pairs, ";")

	default:
		return fmt.Sprint(v)
	}
}
