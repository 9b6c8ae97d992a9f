package lang

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"slices"
	"strings"
	"testing"
)

func frame(alias string, children ...Element) *Frame {
	return &Frame{Alias: alias, Children: children}
}

func block(frames ...*Frame) *Block { return &Block{Frames: frames} }

func variable(name string) *Variable { return &Variable{Name: name} }

func slice(text string) *Slice { return &Slice{Text: text} }

func dump(t *testing.T, el Element) string {
	t.Helper()

	var buf bytes.Buffer
	if err := PrintTree(context.Background(), &buf, el); err != nil {
		t.Fatalf("print tree: %v", err)
	}

	return buf.String()
}

func TestParse_Tree(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Frame
	}{
		{
			name:  "empty formula",
			input: "",
			want:  frame(""),
		},
		{
			name:  "plain text",
			input: "Hello world",
			want:  frame("", slice("Hello world")),
		},
		{
			name:  "trailing variable",
			input: "Hello, $name",
			want:  frame("", slice("Hello, "), variable("name")),
		},
		{
			name:  "leading variable",
			input: "$name!",
			want:  frame("", variable("name"), slice("!")),
		},
		{
			name:  "greedy variable name",
			input: "$first_name2x!",
			want:  frame("", variable("first_name2x"), slice("!")),
		},
		{
			name:  "adjacent variables",
			input: "$a$b",
			want:  frame("", variable("a"), variable("b")),
		},
		{
			name:  "lone element token",
			input: "$ alone",
			want:  frame("", slice("$ alone")),
		},
		{
			name:  "element token at end",
			input: "price: 5$",
			want:  frame("", slice("price: 5$")),
		},
		{
			name:  "block with two alternatives",
			input: "$[a ## b]",
			want:  frame("", block(frame("", slice("a ")), frame("", slice(" b")))),
		},
		{
			name:  "empty block payload",
			input: "x $[] y",
			want:  frame("", slice("x $[] y")),
		},
		{
			name:  "unterminated block",
			input: "$[abc",
			want:  frame("", slice("$[abc")),
		},
		{
			name:  "stray closer",
			input: "a]$b",
			want:  frame("", slice("a]"), variable("b")),
		},
		{
			name:  "aliased frame",
			input: "$[:one: x]",
			want:  frame("", block(frame("one", slice(" x")))),
		},
		{
			name:  "alias after whitespace",
			input: "$[ :one: x]",
			want:  frame("", block(frame("one", slice("  x")))),
		},
		{
			name:  "alias after text is literal",
			input: "$[a :b: c]",
			want:  frame("", block(frame("", slice("a :b: c")))),
		},
		{
			name:  "unterminated alias is literal",
			input: "$[:abc]",
			want:  frame("", block(frame("", slice(":abc")))),
		},
		{
			name:  "empty alias",
			input: "$[::x]",
			want:  frame("", block(frame("", slice("x")))),
		},
		{
			name:  "root alias",
			input: ":vip: Dear $name",
			want:  frame("vip", slice(" Dear "), variable("name")),
		},
		{
			name:  "root separator ends formula",
			input: "a ## b",
			want:  frame("", slice("a ")),
		},
		{
			name:  "root separator after element",
			input: "$a ## $b",
			want:  frame("", variable("a"), slice(" ")),
		},
		{
			name:  "leading separator skips empty alternative",
			input: "$[## b]",
			want:  frame("", block(frame("", slice(" b")))),
		},
		{
			name:  "blank alternative",
			input: "$[a ## ## b]",
			want: frame("", block(
				frame("", slice("a ")),
				frame("", slice(" ")),
				frame("", slice(" b")),
			)),
		},
		{
			name:  "nested blocks",
			input: "$[$[$a ## b] ## c]",
			want: frame("", block(
				frame("",
					block(
						frame("", variable("a"), slice(" ")),
						frame("", slice(" b")),
					),
					slice(" "),
				),
				frame("", slice(" c")),
			)),
		},
		{
			name:  "multi-byte text",
			input: "$[«$comment»]",
			want:  frame("", block(frame("", slice("«"), variable("comment"), slice("»")))),
		},
		{
			name:  "coupons",
			input: "You have $[:none: no coupons ## :one: one coupon ## $number coupons] $[:expiring: expiring on $date]",
			want: frame("",
				slice("You have "),
				block(
					frame("none", slice(" no coupons ")),
					frame("one", slice("  one coupon ")),
					frame("", slice(" "), variable("number"), slice(" coupons")),
				),
				slice(" "),
				block(
					frame("expiring", slice(" expiring on "), variable("date")),
				),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(context.Background(), tt.input, DefaultTokens())
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tree mismatch\ngot:\n%s\nwant:\n%s", dump(t, got), dump(t, tt.want))
			}
		})
	}
}

func TestParse_CustomTokens(t *testing.T) {
	tokens := Tokens{
		Element:   "%",
		Opener:    "{",
		Closer:    "}",
		Separator: "|",
		Alias:     "@",
	}

	got, err := Parse(context.Background(), "%{@vip@ Dear %name | Hi} $[x]", tokens)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	want := frame("",
		block(
			frame("vip", slice(" Dear "), variable("name"), slice(" ")),
			frame("", slice(" Hi")),
		),
		slice(" $[x]"),
	)

	if !reflect.DeepEqual(got, want) {
		t.Errorf("tree mismatch\ngot:\n%s\nwant:\n%s", dump(t, got), dump(t, want))
	}
}

func TestParse_InvalidTokens(t *testing.T) {
	tests := []struct {
		name   string
		tokens Tokens
		want   error
	}{
		{
			name:   "empty element",
			tokens: Tokens{Opener: "[", Closer: "]", Separator: "##", Alias: ":"},
			want:   ErrEmptyToken,
		},
		{
			name: "identical tokens",
			tokens: Tokens{
				Element: "$", Opener: "|", Closer: "|", Separator: "##", Alias: ":",
			},
			want: ErrOverlappingTokens,
		},
		{
			name: "alias is prefix of separator",
			tokens: Tokens{
				Element: "$", Opener: "[", Closer: "]", Separator: "::", Alias: ":",
			},
			want: ErrOverlappingTokens,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(context.Background(), "x", tt.tokens)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseReader(t *testing.T) {
	r := strings.NewReader("Hi $name")

	got, err := ParseReader(context.Background(), r, DefaultTokens(), testLogger(t))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	want := frame("", slice("Hi "), variable("name"))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tree mismatch\ngot:\n%s\nwant:\n%s", dump(t, got), dump(t, want))
	}
}

func TestNames(t *testing.T) {
	root, err := Parse(
		context.Background(),
		"$[:a: $x ## :b: $y $x] $[$z ## :a: $y]",
		DefaultTokens(),
	)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	vars, aliases := Names(root)

	if want := []string{"x", "y", "z"}; !slices.Equal(vars, want) {
		t.Errorf("variables = %v, want %v", vars, want)
	}

	if want := []string{"a", "b"}; !slices.Equal(aliases, want) {
		t.Errorf("aliases = %v, want %v", aliases, want)
	}
}

func TestWalk_StopsEarly(t *testing.T) {
	root := frame("", slice("a"), variable("b"), slice("c"))

	var kinds []Kind

	Walk(root, func(el Element) bool {
		kinds = append(kinds, el.Kind())

		return el.Kind() != KindVariable
	})

	if want := []Kind{KindFrame, KindSlice, KindVariable}; !slices.Equal(kinds, want) {
		t.Errorf("visited %v, want %v", kinds, want)
	}
}

func TestPrintTree(t *testing.T) {
	root, err := Parse(context.Background(), "Hi $[:vip: $name ## friend]", DefaultTokens())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	want := strings.Join([]string{
		"Frame",
		`  Slice "Hi "`,
		"  Block",
		"    Frame :vip:",
		`      Slice " "`,
		"      Variable name",
		`      Slice " "`,
		"    Frame",
		`      Slice " friend"`,
		"",
	}, "\n")

	if got := dump(t, root); got != want {
		t.Errorf("PrintTree()\ngot:\n%s\nwant:\n%s", got, want)
	}
}
