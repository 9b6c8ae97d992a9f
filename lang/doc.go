// Package lang implements the pure formula language: a scanner, a
// recursive-descent recognizer that builds an element tree, and a resolver
// that renders the tree against assigned variables and enabled aliases.
//
// # Syntax
//
// With the default tokens:
//
//	Hello, $name                       variable
//	$[$nickname ## $name ## stranger]  block of alternatives
//	$[:expiring: expiring on $date]    alias-guarded frame
//
// A variable is the element token followed by the longest run of ASCII
// letters, digits, and underscores. A block is the element token followed by
// a balanced opener/closer pair; its payload is split into alternative
// frames by the separator. A frame may begin with an alias name enclosed in
// alias delimiters; only whitespace may precede it.
//
// Anything that does not form a construct is literal text. There is no
// escaping mechanism.
//
// # Resolution
//
// A frame renders as the concatenation of its children, or is invalid if
// its alias is disabled or any child is invalid. A block renders as its
// first valid alternative, or the empty string if none is valid. A variable
// is invalid when unassigned. An invalid formula renders as the empty
// string.
//
// Optionally, [Normalize] then collapses the whitespace left behind by
// elements that rendered as nothing:
//
//	e, _ := lang.New()
//	e.Assign("name", "Stan")
//	e.Execute(ctx, "Hello, $name $[($nickname)]!", lang.WithCollapse(true))
//	// "Hello, Stan!"
//
// # Tokens
//
// All five tokens are configurable (see [Tokens]). Tokens must be non-empty
// and no token may be a prefix of another.
package lang
