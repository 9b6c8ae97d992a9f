// Package pkg holds project-wide identity and filesystem locations.
package pkg

import (
	_ "embed"
	"strings"
)

// version is the semantic version embedded at build time.
//
//go:embed VERSION
var version string

// Version returns the semantic version of the module.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the canonical command and module identifier. It appears in help
	// text and in the default config and cache paths.
	Name = "pure"
	// Description is a short summary of the project used in help output.
	Description = "Render text formulas with variables, fallback blocks, and aliases"
)
