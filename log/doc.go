// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// A [Logger] is configured at creation time with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("kitchen"),
//		log.WithCaller(true))
//
// The zero value of [Logger] discards all messages. The formula engine and
// the command line tools accept a Logger and trace through it at
// [LevelTrace], below the levels [log/slog] defines.
//
// Text output is colorized with lipgloss when [WithPretty] is enabled and
// the output is a terminal. [FormatJSON] always uses [slog.JSONHandler].
//
// The package-level functions ([Info], [DebugContext], ...) log through a
// default logger writing to standard error, reconfigured with [Config].
package log
