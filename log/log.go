package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Logger is a leveled structured logger safe for concurrent use.
//
// The zero value discards everything, so a component may hold a Logger
// field that nobody configured.
type Logger struct {
	*slog.Logger
	config
}

// Make returns a [Logger] writing to w. Without options it uses
// [DefaultFormat], [DefaultLevel], [DefaultTimeLayout], [DefaultPretty], and
// no caller info.
func Make(w io.Writer, opts ...Option) Logger {
	cfg := makeConfig(w, opts...)

	return Logger{Logger: slog.New(cfg.handler()), config: cfg}
}

// Wrap returns a Logger configured like l and then by opts. Attributes added
// with [Logger.With] are dropped because the handler is rebuilt.
func (l Logger) Wrap(opts ...Option) Logger {
	if l.mutex == nil {
		return Make(io.Discard, opts...)
	}

	cfg := l.derive(opts...)

	return Logger{Logger: slog.New(cfg.handler()), config: cfg}
}

// With returns a Logger that adds attrs to every record.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.Logger == nil {
		return l
	}

	return Logger{
		Logger: slog.New(l.Handler().WithAttrs(attrs)),
		config: l.derive(),
	}
}

// derive copies the configuration under the read lock.
func (l Logger) derive(opts ...Option) config {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.clone(opts...)
}

// read returns get(config) under the read lock, or def for a Logger that
// was never configured.
func read[T any](l Logger, def T, get func(config) T) T {
	if l.Logger == nil || l.mutex == nil {
		return def
	}

	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return get(l.config)
}

// Level returns the minimum level logged.
func (l Logger) Level() Level {
	return read(l, DefaultLevel, func(c config) Level { return c.level })
}

// Format returns the output format.
func (l Logger) Format() Format {
	return read(l, DefaultFormat, func(c config) Format { return c.format })
}

// Enabled reports whether a record at level would be written. Callers use it
// to skip building expensive attributes.
func (l Logger) Enabled(ctx context.Context, level Level) bool {
	if l.Logger == nil {
		return false
	}

	if ctx == nil {
		ctx = DefaultContextProvider()
	}

	return l.Handler().Enabled(ctx, slog.Level(level))
}

func (l Logger) TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, LevelTrace, msg, attrs)
}

func (l Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, LevelDebug, msg, attrs)
}

func (l Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, LevelInfo, msg, attrs)
}

func (l Logger) WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, LevelWarn, msg, attrs)
}

func (l Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, LevelError, msg, attrs)
}

// Trace, Debug, Info, Warn, and Error log with [DefaultContextProvider].
func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.emit(DefaultContextProvider(), LevelTrace, msg, attrs)
}

func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.emit(DefaultContextProvider(), LevelDebug, msg, attrs)
}

func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.emit(DefaultContextProvider(), LevelInfo, msg, attrs)
}

func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.emit(DefaultContextProvider(), LevelWarn, msg, attrs)
}

func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.emit(DefaultContextProvider(), LevelError, msg, attrs)
}

// emit writes one record. It must be called directly from an exported
// method so the recorded source is that method's caller.
func (l Logger) emit(ctx context.Context, level Level, msg string, attrs []slog.Attr) {
	if !l.Enabled(ctx, level) {
		return
	}

	if ctx == nil {
		ctx = DefaultContextProvider()
	}

	var pcs [1]uintptr

	// skip runtime.Callers, emit, and the exported method
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pcs[0])
	r.AddAttrs(attrs...)
	_ = l.Handler().Handle(ctx, r)
}
