package cmd

import "github.com/ardnew/pure/lang"

// Command errors. Each is a [lang.Error] sentinel matched with [errors.Is].
var (
	ErrReadFormula = lang.NewError("read formula")
	ErrWriteOutput = lang.ErrWriteOutput
	ErrBindings    = lang.NewError("load bindings")
	ErrYAMLMarshal = lang.NewError("marshal YAML")
	ErrWriteConfig = lang.NewError("write configuration file")
	ErrFileExists  = lang.NewError("file exists (use --force to overwrite)")
	ErrNoTTY       = lang.NewError("interactive session requires a terminal")
)
