// Package bind loads variable and alias bindings for the formula engine from
// YAML documents.
//
// A bindings document looks like:
//
//	delim: ", "
//	tokens:
//	  element: "%"
//	variables:
//	  name: Stan
//	  number: 1
//	  tags: [red, green]
//	  user:
//	    first: Paul
//	aliases: [expiring]
//	rules:
//	  one: number == 1
//	  none: number == 0 || number == nil
//
// Scalars become their string form. Sequences are joined with the document
// delimiter. Mappings are flattened with underscores, so the example above
// assigns user_first. Every alias listed under aliases is enabled, and each
// rule enables its alias when the expr-lang condition holds.
//
// Several documents can be layered with [Merge]. A sequence given for a
// variable that an earlier document already assigned is prefixed to the
// earlier value rather than replacing it, like entries added to the front of
// a PATH list.
package bind
