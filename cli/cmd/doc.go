// Package cmd implements the pure subcommands: exec, tree, init, and repl.
//
// Commands receive their [lang.Engine], output writer, and standard input
// through the [context.Context] passed to Run, populated with [WithEngine],
// [WithOutput], and [WithInput].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
