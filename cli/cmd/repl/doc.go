// Package repl implements an interactive formula session on a terminal.
//
// Lines typed in formula mode are rendered against the session bindings.
// Pressing Esc toggles command mode, where the bindings are edited with
// set, unset, on, off, and reset. Variable and alias names are completed
// after the element and alias tokens.
package repl
