package main

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/krow/internal/errors"
)

// run executes the CLI with a config file written from toml and returns
// what the command printed to stdout.
func run(t *testing.T, toml string, args ...string) (string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "krow.toml")
	if err := os.WriteFile(path, []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--no-color", "--config", path}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func wantCode(t *testing.T, err error, code string) {
	t.Helper()
	var ke *errors.KrowError
	if !stderrors.As(err, &ke) {
		t.Fatalf("err = %v, want *KrowError %s", err, code)
	}
	if ke.Code != code {
		t.Fatalf("code = %s, want %s (%v)", ke.Code, code, err)
	}
}

func TestVersionShort(t *testing.T) {
	out, err := run(t, "", "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "dev" {
		t.Errorf("version = %q, want dev", out)
	}
}

func TestDemos(t *testing.T) {
	out, err := run(t, "", "demos")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"counter", "todos", "tictactoe"} {
		if !strings.Contains(out, name) {
			t.Errorf("demos output missing %q:\n%s", name, out)
		}
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"markup", []string{"render", "counter"}, "<p>Count: 0</p><button>Increment</button>"},
		{"document", []string{"render", "counter", "--document"}, "<!DOCTYPE html>"},
		{"ops", []string{"render", "counter", "--ops"}, "create-element"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "", tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestRenderUnknownDemo(t *testing.T) {
	_, err := run(t, "", "render", "nope")
	wantCode(t, err, "K201")
}

func TestDiffSequence(t *testing.T) {
	out, err := run(t, "", "diff", "a,b,c", "c,a,d")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`~ move "c" 2 -> 0`,
		`noop "a" at 1`,
		`- remove "b" at 2`,
		`+ add "d" at 2`,
		"1 added, 1 removed, 1 moved, 1 unchanged",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("diff output missing %q:\n%s", want, out)
		}
	}
}

func TestDiffObjects(t *testing.T) {
	out, err := run(t, "", "diff", "--objects", "id=1,title=old,tag=x", "id=1,title=new,done=true")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"+ done=true", "- tag=x", "~ title=old -> new"} {
		if !strings.Contains(out, want) {
			t.Errorf("diff output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "id=") {
		t.Errorf("unchanged key reported:\n%s", out)
	}
}

func TestDiffObjectsRejectsBadPairs(t *testing.T) {
	_, err := run(t, "", "diff", "--objects", "id", "id=1")
	wantCode(t, err, "K202")
}

func TestExportToDirectory(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "", "export", "counter", "list", "--dir", dir)
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"counter.html", "counter.ops", "list.html", "list.ops"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
		if !strings.Contains(out, name) {
			t.Errorf("output does not mention %s:\n%s", name, out)
		}
	}

	html, err := os.ReadFile(filepath.Join(dir, "counter.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(html), "Count: 0") {
		t.Errorf("counter.html = %s", html)
	}
}

func TestExportBucketNeedsRegion(t *testing.T) {
	_, err := run(t, "", "export", "counter", "--bucket", "previews")
	wantCode(t, err, "K105")
}

func TestBadConfig(t *testing.T) {
	_, err := run(t, `log_level = "loud"`, "demos")
	wantCode(t, err, "K103")
}

func TestLogLevelFlagOverridesConfig(t *testing.T) {
	_, err := run(t, "", "--log-level", "loud", "demos")
	wantCode(t, err, "K103")
}

func TestServeUnknownDemo(t *testing.T) {
	_, err := run(t, "", "serve", "--demo", "nope")
	wantCode(t, err, "K201")
}
