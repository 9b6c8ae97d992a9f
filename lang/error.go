package lang

import (
	"errors"
	"log/slog"
	"slices"
)

// Sentinel errors. Errors returned by this module are derived from a
// sentinel with [Error.Wrap] or [Error.With] and match it with [errors.Is].
var (
	ErrEmptyToken        = NewError("empty token")
	ErrOverlappingTokens = NewError("overlapping tokens")
	ErrReadInput         = NewError("failed to read input")
	ErrUnknownFormat     = NewError("unknown output format")
	ErrWriteOutput       = NewError("failed to write output")
)

// Error is an error carrying a fixed message, an optional cause, and
// attributes for structured logging. It implements [slog.LogValuer].
//
// An Error is never modified after it is created.
type Error struct {
	msg   string
	cause error
	attrs []slog.Attr
}

// NewError returns a sentinel Error with message msg.
func NewError(msg string) *Error { return &Error{msg: msg} }

// WrapError returns err as an *Error. If err is or wraps an *Error, that
// Error is returned; otherwise err becomes the cause of an Error with no
// message.
func WrapError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{cause: err}
}

func (e *Error) Error() string {
	switch {
	case e.cause == nil:
		return e.msg
	case e.msg == "":
		return e.cause.Error()
	default:
		return e.msg + ": " + e.cause.Error()
	}
}

func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is an *Error with the same non-empty message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg != "" && t.msg == e.msg
}

// Attrs returns a copy of the attributes attached with [Error.With].
func (e *Error) Attrs() []slog.Attr { return slices.Clone(e.attrs) }

// LogValue groups the message, the cause, and the attributes.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.cause != nil {
		attrs = append(attrs, slog.String("cause", e.cause.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e caused by err.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, cause: err, attrs: slices.Clip(e.attrs)}
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	return &Error{msg: e.msg, cause: e.cause, attrs: slices.Concat(e.attrs, attrs)}
}
