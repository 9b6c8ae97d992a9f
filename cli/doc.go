// Package cli contains the command line interface for pure.
//
// # Usage
//
// Formulas given as arguments are rendered by the default exec command:
//
//	pure -v name=Stan 'Hello, $name.'
//	pure exec -a expiring -f notice.txt
//	pure -b bindings.yaml tree --format yaml '$[:one:one##many]'
//	pure repl
//
// # Configuration
//
// Flag defaults are read from config.json and config.yaml in the user
// configuration directory, and command-line flags override them. The YAML
// file maps flag names to values; see [resolve]. Running pure init writes
// the current flag values to config.yaml.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Token Options
//
// The five formula tokens can be replaced with --token-element,
// --token-opener, --token-closer, --token-separator, and --token-alias.
// Tokens must be non-empty and no token may be a prefix of another.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o pure .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/pure/pprof)
//   - --[no-]pprof-quiet: Suppress profiler status messages (default: true)
package cli
