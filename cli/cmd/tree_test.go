package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/pure/lang"
)

func TestTreeRun(t *testing.T) {
	tests := []struct {
		name    string
		tree    Tree
		stdin   string
		want    string
		wantErr bool
	}{
		{
			name: "formula",
			tree: Tree{Formula: []string{"Hi", "$[:a:$x##y]"}, Format: "formula"},
			want: "Hi $[:a:$x##y]\n",
		},
		{
			name:  "formula_stdin",
			tree:  Tree{Format: "formula"},
			stdin: "$name!\n",
			want:  "$name!\n",
		},
		{
			name: "text",
			tree: Tree{Formula: []string{"$v"}, Format: "text"},
			want: "Frame\n  Variable v\n",
		},
		{
			name:    "unknown",
			tree:    Tree{Formula: []string{"x"}, Format: "xml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			ctx := WithOutput(context.Background(), &out)
			ctx = WithInput(ctx, strings.NewReader(tt.stdin))

			err := tt.tree.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}

			if !tt.wantErr && out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestTreeRun_JSON(t *testing.T) {
	var out bytes.Buffer

	e, err := lang.New(lang.WithTokens(lang.Tokens{
		Element: "%", Opener: "(", Closer: ")", Separator: "|", Alias: "@",
	}))
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithEngine(WithOutput(context.Background(), &out), e)

	tree := Tree{Formula: []string{"%(@a@%x|y)"}, Format: "json", Indent: 0}
	if err := tree.Run(ctx); err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output %q is not JSON: %v", out.String(), err)
	}

	if _, ok := got["frame"]; !ok {
		t.Errorf("output %q has no root frame", out.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestTreeRun_WriteFailure(t *testing.T) {
	ctx := WithOutput(context.Background(), failingWriter{})

	tree := Tree{Formula: []string{"$[a ## b]"}, Format: "formula", Indent: 2}

	err := tree.Run(ctx)
	if !errors.Is(err, ErrWriteOutput) {
		t.Fatalf("Run() error = %v, want %v", err, ErrWriteOutput)
	}

	if !errors.Is(err, lang.ErrWriteOutput) {
		t.Errorf("Run() error = %v, want lang.ErrWriteOutput", err)
	}
}
