package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolve(t *testing.T) {
	src := `
log:
  level: debug
  pretty: false
token_alias: "@"
bind: [a.yaml, b.yaml]
count: 3
ratio: 0.5
var:
  name: Stan
  number: 1
`

	resolver, err := resolve(context.Background())(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	cfg, ok := resolver.(config)
	if !ok {
		t.Fatalf("resolver is %T, want config", resolver)
	}

	want := map[string]any{
		"log-level":   "debug",
		"log-pretty":  false,
		"token-alias": "@",
		"bind":        "a.yaml,b.yaml",
		"count":       "3",
		"ratio":       "0.5",
		"var":         "name=Stan;number=1",
	}

	for name, value := range want {
		if got := cfg[name]; got != value {
			t.Errorf("config[%q] = %#v, want %#v", name, got, value)
		}
	}

	if len(cfg) != len(want) {
		t.Errorf("config has %d entries, want %d: %v", len(cfg), len(want), cfg)
	}
}

func TestResolve_Invalid(t *testing.T) {
	for _, src := range []string{"", "- not\n- a mapping\n", "key: [unterminated\n"} {
		resolver, err := resolve(context.Background())(strings.NewReader(src))
		if err != nil {
			t.Fatalf("resolve(%q) error = %v", src, err)
		}

		if cfg, _ := resolver.(config); len(cfg) != 0 {
			t.Errorf("resolve(%q) = %v, want empty", src, cfg)
		}
	}
}

func TestResolve_Kong(t *testing.T) {
	var cli struct {
		Log struct {
			Level  string `default:"info"`
			Pretty bool   `default:"true" negatable:""`
		} `embed:"" prefix:"log-"`
		Count int
		Tags  []string
		Var   map[string]string
	}

	src := "log_level: warn\nlog:\n  pretty: false\ncount: 4\ntags: [x, y]\nvar: {k: v}\n"

	resolver, err := resolve(context.Background())(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	parser, err := kong.New(&cli, kong.Resolvers(resolver))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"--count=5"}); err != nil {
		t.Fatal(err)
	}

	if cli.Log.Level != "warn" || cli.Log.Pretty {
		t.Errorf("log = %+v, want level warn without pretty", cli.Log)
	}

	if cli.Count != 5 {
		t.Errorf("count = %d, want command line value 5", cli.Count)
	}

	if strings.Join(cli.Tags, ",") != "x,y" {
		t.Errorf("tags = %v, want [x y]", cli.Tags)
	}

	if cli.Var["k"] != "v" {
		t.Errorf("var = %v, want k=v", cli.Var)
	}
}
