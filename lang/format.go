package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the tree rooted at el back in formula syntax using tokens.
func Format(_ context.Context, w io.Writer, el Element, tokens Tokens) error {
	var sb strings.Builder

	formatElement(&sb, el, tokens)

	_, err := io.WriteString(w, sb.String())

	return err
}

// FormatString returns the tree rooted at el in formula syntax.
func FormatString(el Element, tokens Tokens) string {
	var sb strings.Builder

	formatElement(&sb, el, tokens)

	return sb.String()
}

func formatElement(sb *strings.Builder, el Element, tokens Tokens) {
	switch e := el.(type) {
	case *Frame:
		if e.Alias != "" {
			sb.WriteString(tokens.Alias)
			sb.WriteString(e.Alias)
			sb.WriteString(tokens.Alias)
		}

		for _, child := range e.Children {
			formatElement(sb, child, tokens)
		}

	case *Block:
		sb.WriteString(tokens.Element)
		sb.WriteString(tokens.Opener)

		for i, frame := range e.Frames {
			if i > 0 {
				sb.WriteString(tokens.Separator)
			}

			formatElement(sb, frame, tokens)
		}

		sb.WriteString(tokens.Closer)

	case *Variable:
		sb.WriteString(tokens.Element)
		sb.WriteString(e.Name)

	case *Slice:
		sb.WriteString(e.Text)
	}
}

// FormatJSON writes the tree rooted at el as JSON.
func FormatJSON(_ context.Context, w io.Writer, el Element, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(ToNative(el), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(ToNative(el))
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the tree rooted at el as YAML.
func FormatYAML(ctx context.Context, w io.Writer, el Element, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, ToNative(el), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

// OutputFormat names a representation of an element tree.
type OutputFormat string

// Supported output formats.
const (
	FormatText    OutputFormat = "text"
	FormatJSONOut OutputFormat = "json"
	FormatYAMLOut OutputFormat = "yaml"
	FormatFormula OutputFormat = "formula"
)

// OutputFormats returns the names of all supported output formats.
func OutputFormats() []string {
	return []string{
		string(FormatText),
		string(FormatJSONOut),
		string(FormatYAMLOut),
		string(FormatFormula),
	}
}

// Write writes the tree rooted at el in the given format. A failure to
// encode or write the tree is derived from [ErrWriteOutput].
func Write(
	ctx context.Context,
	w io.Writer,
	el Element,
	format OutputFormat,
	tokens Tokens,
	indent int,
) error {
	var err error

	switch format {
	case FormatText:
		err = PrintTree(ctx, w, el)

	case FormatJSONOut:
		err = FormatJSON(ctx, w, el, indent)

	case FormatYAMLOut:
		err = FormatYAML(ctx, w, el, indent)

	case FormatFormula:
		if err = Format(ctx, w, el, tokens); err == nil {
			_, err = fmt.Fprintln(w)
		}

	default:
		return ErrUnknownFormat.Wrap(fmt.Errorf("%q", format))
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("format", string(format)))
	}

	return nil
}
