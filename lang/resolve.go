package lang

import "strings"

// Bindings provides the variable values and enabled aliases an element tree
// is resolved against.
type Bindings interface {
	// Lookup returns the value assigned to the named variable, if any.
	Lookup(name string) (string, bool)
	// Enabled reports whether the named alias is enabled.
	Enabled(alias string) bool
}

// MapBindings is a [Bindings] backed by plain maps.
type MapBindings struct {
	Variables map[string]string
	Aliases   map[string]bool
}

// Lookup implements [Bindings].
func (b MapBindings) Lookup(name string) (string, bool) {
	v, ok := b.Variables[name]

	return v, ok
}

// Enabled implements [Bindings].
func (b MapBindings) Enabled(alias string) bool { return b.Aliases[alias] }

// Resolve renders the tree rooted at root against b. An invalid root
// resolves to the empty string.
func Resolve(root *Frame, b Bindings) string {
	if root == nil {
		return ""
	}

	s, _ := resolveFrame(root, b)

	return s
}

// ResolveElement renders a single element against b. The second result is
// false when the element is invalid: it references an unassigned variable or
// a disabled alias that no enclosing block absorbed.
func ResolveElement(el Element, b Bindings) (string, bool) {
	switch e := el.(type) {
	case *Frame:
		return resolveFrame(e, b)

	case *Block:
		return resolveBlock(e, b), true

	case *Variable:
		return b.Lookup(e.Name)

	case *Slice:
		return e.Text, true

	default:
		return "", false
	}
}

// resolveFrame concatenates the resolution of each child. The frame is
// invalid if its alias is disabled or if any child is invalid.
func resolveFrame(f *Frame, b Bindings) (string, bool) {
	if f.Alias != "" && !b.Enabled(f.Alias) {
		return "", false
	}

	var sb strings.Builder

	for _, child := range f.Children {
		s, ok := ResolveElement(child, b)
		if !ok {
			return "", false
		}

		sb.WriteString(s)
	}

	return sb.String(), true
}

// resolveBlock returns the first alternative that resolves, or the empty
// string when none does. A block is never invalid.
func resolveBlock(blk *Block, b Bindings) string {
	for _, frame := range blk.Frames {
		if s, ok := resolveFrame(frame, b); ok {
			return s
		}
	}

	return ""
}
