package lang

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/ardnew/pure/log"
)

// ParseReader parses a formula read from r.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	tokens Tokens,
	logger log.Logger,
) (*Frame, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return ParseWithLogger(ctx, string(data), tokens, logger)
}

// Parse recognizes formula into a tree rooted at a [Frame].
//
// Parsing never fails on the formula itself: text that does not match a
// construct is kept as literal [Slice] elements. An error is returned only
// when tokens is not a valid configuration.
func Parse(ctx context.Context, formula string, tokens Tokens) (*Frame, error) {
	return ParseWithLogger(ctx, formula, tokens, log.Logger{})
}

// ParseWithLogger is like [Parse] but traces to the given logger.
func ParseWithLogger(
	ctx context.Context,
	formula string,
	tokens Tokens,
	logger log.Logger,
) (*Frame, error) {
	if err := tokens.Validate(); err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}

	root := p.parseRoot(formula)

	logger.TraceContext(ctx, "parse complete",
		slog.Int("formula_bytes", len(formula)),
		slog.Int("root_children", len(root.Children)),
		slog.Int("blocks", p.blocks),
		slog.Int("variables", p.variables),
	)

	return root, nil
}

// parser holds the recognizer state for a single formula.
type parser struct {
	tokens    Tokens
	blocks    int
	variables int
}

// parseRoot recognizes the root frame at the start of formula. Like any
// frame it ends at the first separator on its level, so the text after a
// root-level separator is not part of the tree.
func (p *parser) parseRoot(formula string) *Frame {
	frame, _ := p.recognizeFrame(formula)

	return frame
}

// recognizeFrame recognizes a frame at the start of input and returns it
// along with the number of bytes it spans. A frame ends before the first
// separator found at its own nesting level.
//
// When an alias delimiter opens at the start of the frame but never closes,
// the frame is recognized again with the delimiter taken as literal text.
func (p *parser) recognizeFrame(input string) (*Frame, int) {
	frame, n, ok := p.scanFrame(input, true)
	if !ok {
		frame, n, _ = p.scanFrame(input, false)
	}

	return frame, n
}

// scanFrame runs the frame scanning loop. At each cursor position tokens are
// tested in the fixed priority order alias, element, separator.
// It returns false only if an alias name was opened but never closed.
func (p *parser) scanFrame(input string, allowAlias bool) (*Frame, int, bool) {
	var (
		frame     Frame
		sc        = NewScanner(input)
		capturing bool // inside the alias name
		aliased   bool // an alias delimiter was already consumed
		scanned   bool // a non-space character was already scanned
	)

	for sc.CanContinue() {
		if capturing {
			name, next, ok := sc.DetectAndSlice(p.tokens.Alias)
			if !ok {
				sc = sc.Step()

				continue
			}

			frame.Alias, capturing, sc = name, false, next

			continue
		}

		if allowAlias && !aliased && !scanned && len(frame.Children) == 0 {
			if last, next, ok := sc.DetectAndSlice(p.tokens.Alias); ok {
				frame.appendText(last)

				aliased, capturing, sc = true, true, next

				continue
			}
		}

		if last, next, ok := sc.DetectAndSlice(p.tokens.Element); ok {
			frame.appendText(last)

			el, n, ok := p.recognizeElement(next.Remaining())
			if ok {
				frame.Children = append(frame.Children, el)
				_, sc = next.SkipBy(n)
			} else {
				frame.appendText(p.tokens.Element)
				sc = next
			}

			continue
		}

		if last, next, ok := sc.DetectAndSlice(p.tokens.Separator); ok {
			frame.appendText(last)

			return &frame, len(input) - len(next.Remaining()) - len(p.tokens.Separator), true
		}

		if !scanned {
			scanned = !unicode.IsSpace(sc.Current())
		}

		sc = sc.Step()
	}

	if capturing {
		return nil, 0, false
	}

	frame.appendText(sc.Remaining())

	return &frame, len(input), true
}

// appendText appends literal text to the frame, merging it with a trailing
// slice. Empty text is dropped.
func (f *Frame) appendText(text string) {
	if text == "" {
		return
	}

	if n := len(f.Children); n > 0 {
		if s, ok := f.Children[n-1].(*Slice); ok {
			f.Children[n-1] = &Slice{Text: s.Text + text}

			return
		}
	}

	f.Children = append(f.Children, &Slice{Text: text})
}

// recognizeElement recognizes the element following an element token,
// trying a block first and then a variable.
func (p *parser) recognizeElement(input string) (Element, int, bool) {
	if block, n, ok := p.recognizeBlock(input); ok {
		p.blocks++

		return block, n, true
	}

	if variable, n, ok := p.recognizeVariable(input); ok {
		p.variables++

		return variable, n, true
	}

	return nil, 0, false
}

// recognizeBlock recognizes opener, a balanced payload, and closer at the
// start of input. The payload is divided into alternative frames by the
// separator. An empty or unbalanced payload is not a block.
func (p *parser) recognizeBlock(input string) (*Block, int, bool) {
	if !strings.HasPrefix(input, p.tokens.Opener) {
		return nil, 0, false
	}

	payload, rest, ok := NewScanner(input).DetectAndExtract(p.tokens.Opener, p.tokens.Closer)
	if !ok || payload == "" {
		return nil, 0, false
	}

	var (
		block Block
		sc    = NewScanner(payload)
	)

	for sc.CanContinue() {
		frame, n := p.recognizeFrame(sc.Remaining())
		if n > 0 {
			block.Frames = append(block.Frames, frame)
			_, sc = sc.SkipBy(n)
		}

		_, next, ok := sc.DetectAndSlice(p.tokens.Separator)
		if !ok {
			break
		}

		sc = next
	}

	return &block, len(input) - len(rest.Remaining()), true
}

// recognizeVariable recognizes the longest run of ASCII letters, digits, and
// underscores at the start of input as a variable name.
func (p *parser) recognizeVariable(input string) (*Variable, int, bool) {
	n := 0
	for n < len(input) && isNameByte(input[n]) {
		n++
	}

	if n == 0 {
		return nil, 0, false
	}

	return &Variable{Name: input[:n]}, n, true
}

func isNameByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
