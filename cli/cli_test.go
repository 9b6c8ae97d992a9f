package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/pure/cli/cmd"
	"github.com/ardnew/pure/pkg"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "pure-cli-test-*")
	if err != nil {
		panic(err)
	}

	for _, env := range []string{"HOME", "XDG_CONFIG_HOME", "XDG_CACHE_HOME"} {
		_ = os.Setenv(env, filepath.Join(dir, env))
	}

	code := m.Run()

	_ = os.RemoveAll(dir)

	os.Exit(code)
}

func run(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer

	exited := -1
	ctx := cmd.WithOutput(context.Background(), &out)

	if err := Run(ctx, func(code int) { exited = code }, args...); err != nil {
		t.Fatalf("Run(%q) error = %v", args, err)
	}

	if exited != -1 {
		t.Fatalf("Run(%q) exited with code %d", args, exited)
	}

	return out.String()
}

func writeConfig(t *testing.T, content string) {
	t.Helper()

	path := pkg.ConfigPath(baseConfig + ".yaml")
	if err := os.MkdirAll(filepath.Dir(path), pkg.DirMode); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { _ = os.Remove(path) })
}

func TestRun_Exec(t *testing.T) {
	got := run(t, "Hello, $name.", "$[:vip:Gold##Standard]", "-v", "name=Stan")
	if want := "Hello, Stan.\nStandard\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	got = run(t, "exec", "-a", "vip", "--no-collapse", "$[:vip:Gold  ##Standard]")
	if want := "Gold  \n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRun_Tokens(t *testing.T) {
	got := run(t, "--token-element=%", "--token-opener=(", "--token-closer=)",
		"--token-separator=|", "tree", "--format=formula", "%(a|$b)")
	if want := "%(a|$b)\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRun_Bindings(t *testing.T) {
	dir := t.TempDir()

	base := filepath.Join(dir, "base.yaml")
	local := filepath.Join(dir, "local.yaml")

	if err := os.WriteFile(base, []byte("variables:\n  name: Stan\n  number: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(local, []byte("variables:\n  number: 2\nrules:\n  many: number > 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got := run(t, "-b", base, "-b", local, "$name has $[:many:several##one]")
	if want := "Stan has several\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRun_BindingsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("rules:\n  x: number +\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	err := Run(context.Background(), func(int) {}, "-b", path, "x")
	if err == nil {
		t.Error("Run() with invalid rule succeeded, want error")
	}
}

func TestRun_InvalidTokens(t *testing.T) {
	err := Run(context.Background(), func(int) {}, "--token-opener=$", "x")
	if err == nil {
		t.Error("Run() with overlapping tokens succeeded, want error")
	}
}

func TestRun_Config(t *testing.T) {
	writeConfig(t, "token:\n  element: \"%\"\nlog_level: warn\n")

	got := run(t, "exec", "-v", "name=X", "%name and $name")
	if want := "X and $name\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRun_Init(t *testing.T) {
	path := pkg.ConfigPath(baseConfig + ".yaml")
	t.Cleanup(func() { _ = os.Remove(path) })

	run(t, "--token-alias=@", "init", "--force")

	got := run(t, "tree", "--format=formula", "$[@a@x]")
	if want := "$[@a@x]\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Contains(data, []byte("token-alias: '@'")) &&
		!bytes.Contains(data, []byte(`token-alias: "@"`)) {
		t.Errorf("config does not record token-alias:\n%s", data)
	}
}
