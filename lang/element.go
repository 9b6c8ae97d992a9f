package lang

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Kind identifies the variant of an [Element].
type Kind int

const (
	// KindFrame is an optionally alias-guarded sequence of elements that
	// resolves as a single all-or-nothing unit.
	KindFrame Kind = iota

	// KindBlock is an ordered set of alternative frames.
	KindBlock

	// KindVariable is a reference to an assigned variable.
	KindVariable

	// KindSlice is literal text.
	KindSlice
)

// String returns a string representation of the element kind.
func (k Kind) String() string {
	switch k {
	case KindFrame:
		return "Frame"

	case KindBlock:
		return "Block"

	case KindVariable:
		return "Variable"

	case KindSlice:
		return "Slice"

	default:
		return "Unknown"
	}
}

// Element is a node of the tree produced by [Parse].
// The set of implementations is closed: [*Frame], [*Block], [*Variable],
// and [*Slice].
type Element interface {
	Kind() Kind
	element()
}

// Frame is a sequence of elements, optionally guarded by an alias.
// An empty Alias means the frame is unguarded.
type Frame struct {
	Alias    string
	Children []Element
}

// Block holds mutually exclusive alternatives in declaration order.
type Block struct {
	Frames []*Frame
}

// Variable references an assigned variable by name.
type Variable struct {
	Name string
}

// Slice is literal text.
type Slice struct {
	Text string
}

func (*Frame) Kind() Kind    { return KindFrame }
func (*Block) Kind() Kind    { return KindBlock }
func (*Variable) Kind() Kind { return KindVariable }
func (*Slice) Kind() Kind    { return KindSlice }

func (*Frame) element()    {}
func (*Block) element()    {}
func (*Variable) element() {}
func (*Slice) element()    {}

// Walk calls visit for el and each of its descendants in depth-first order.
// Descent stops early when visit returns false.
func Walk(el Element, visit func(Element) bool) bool {
	if el == nil {
		return true
	}

	if !visit(el) {
		return false
	}

	switch e := el.(type) {
	case *Frame:
		for _, child := range e.Children {
			if !Walk(child, visit) {
				return false
			}
		}

	case *Block:
		for _, frame := range e.Frames {
			if !Walk(frame, visit) {
				return false
			}
		}
	}

	return true
}

// Names returns the distinct variable and alias names referenced in the tree
// rooted at el, each in order of first appearance.
func Names(el Element) (variables, aliases []string) {
	seenVar := make(map[string]struct{})
	seenAlias := make(map[string]struct{})

	Walk(el, func(e Element) bool {
		switch e := e.(type) {
		case *Variable:
			if _, ok := seenVar[e.Name]; !ok {
				seenVar[e.Name] = struct{}{}
				variables = append(variables, e.Name)
			}

		case *Frame:
			if _, ok := seenAlias[e.Alias]; e.Alias != "" && !ok {
				seenAlias[e.Alias] = struct{}{}
				aliases = append(aliases, e.Alias)
			}
		}

		return true
	})

	return variables, aliases
}

// ToNative converts an element to plain Go maps and slices suitable for
// JSON or YAML encoding.
func ToNative(el Element) any {
	switch e := el.(type) {
	case *Frame:
		children := make([]any, 0, len(e.Children))
		for _, child := range e.Children {
			children = append(children, ToNative(child))
		}

		frame := map[string]any{"children": children}
		if e.Alias != "" {
			frame["alias"] = e.Alias
		}

		return map[string]any{"frame": frame}

	case *Block:
		frames := make([]any, 0, len(e.Frames))
		for _, frame := range e.Frames {
			frames = append(frames, ToNative(frame))
		}

		return map[string]any{"block": frames}

	case *Variable:
		return map[string]any{"variable": e.Name}

	case *Slice:
		return map[string]any{"slice": e.Text}

	default:
		return nil
	}
}

// PrintTree writes an indented, human-readable dump of the tree rooted at el.
func PrintTree(_ context.Context, w io.Writer, el Element) error {
	return printElement(w, el, 0)
}

func printElement(w io.Writer, el Element, depth int) error {
	pad := strings.Repeat("  ", depth)

	var err error

	switch e := el.(type) {
	case *Frame:
		if e.Alias != "" {
			_, err = fmt.Fprintf(w, "%s%s :%s:\n", pad, e.Kind(), e.Alias)
		} else {
			_, err = fmt.Fprintf(w, "%s%s\n", pad, e.Kind())
		}

		for _, child := range e.Children {
			if err != nil {
				break
			}

			err = printElement(w, child, depth+1)
		}

	case *Block:
		_, err = fmt.Fprintf(w, "%s%s\n", pad, e.Kind())

		for _, frame := range e.Frames {
			if err != nil {
				break
			}

			err = printElement(w, frame, depth+1)
		}

	case *Variable:
		_, err = fmt.Fprintf(w, "%s%s %s\n", pad, e.Kind(), e.Name)

	case *Slice:
		_, err = fmt.Fprintf(w, "%s%s %q\n", pad, e.Kind(), e.Text)
	}

	return err
}
