package build

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stormlang/storm/compiler/internal/diag"
	"github.com/stormlang/storm/compiler/internal/ir"
	"github.com/stormlang/storm/compiler/internal/runner"
)

func TestCompileEndToEnd(t *testing.T) {
	res, err := Compile("set x to 5\nset y to x + 2", Options{Optimize: true})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	want := "let x_1 = 5;\nlet y_2 = (x_1 + 2);\n"
	if res.JS != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, res.JS)
	}
	if ir.Dump(res.IR) != ir.Dump(res.Optimized) {
		t.Fatalf("nothing to optimize, IR should be unchanged")
	}
	names := []string{"parse", "analyze", "optimize", "generate"}
	if len(res.Stages) != len(names) {
		t.Fatalf("want %d stages, got %d", len(names), len(res.Stages))
	}
	for i, n := range names {
		if res.Stages[i].Name != n {
			t.Fatalf("stage %d: want %s, got %s", i, n, res.Stages[i].Name)
		}
	}
}

func TestCompileWithoutOptimize(t *testing.T) {
	res, err := Compile("say 1 + 2", Options{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if res.JS != "console.log((1 + 2));\n" {
		t.Fatalf("unexpected output %q", res.JS)
	}
	if res.IR != res.Optimized {
		t.Fatalf("optimized program should be the analyzed one")
	}

	res, err = Compile("say 1 + 2", Options{Optimize: true})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if res.JS != "console.log(3);\n" {
		t.Fatalf("unexpected output %q", res.JS)
	}
}

func TestForeverLoopEndToEnd(t *testing.T) {
	res, err := Compile("start lap forever\n  stop running\nlap", Options{Optimize: true})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if res.JS != "while (true) {\n  break;\n}\n" {
		t.Fatalf("unexpected output %q", res.JS)
	}
}

func TestCompileErrors(t *testing.T) {
	if _, err := Compile("set x to", Options{}); !errors.Is(err, diag.Syntax) {
		t.Fatalf("want syntax error, got %v", err)
	}
	if _, err := Compile("say y", Options{}); !errors.Is(err, diag.UndeclaredName) {
		t.Fatalf("want undeclared name, got %v", err)
	}
}

func TestCompileFileAndWrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "hello.storm")
	if err := os.WriteFile(src, []byte(`say "hello"`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	res, data, err := CompileFile(src, Options{Optimize: true})
	if err != nil {
		t.Fatalf("compile file: %v", err)
	}
	if string(data) != `say "hello"` {
		t.Fatalf("source not returned")
	}
	out := OutputPath(filepath.Join(dir, "gen", "out"), src)
	if filepath.Base(out) != "hello.js" {
		t.Fatalf("unexpected output path %s", out)
	}
	if err := WriteOutput(out, res.JS); err != nil {
		t.Fatalf("write output: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "console.log(\"hello\");\n" {
		t.Fatalf("unexpected file contents %q", got)
	}
}

func TestCompileFileMissing(t *testing.T) {
	if _, _, err := CompileFile(filepath.Join(t.TempDir(), "nope.storm"), Options{}); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestOperatorsAgreeWithFolding(t *testing.T) {
	cases := []struct {
		literal, viaVar, want string
	}{
		{"say 2 ^ 3", "set x to 2\nsay x ^ 3", "(x_1 ** 3)"},
		{"say true and false", "set b to true\nsay b and false", "(b_1 && false)"},
		{"say false or true", "set b to false\nsay b or true", "(b_1 || true)"},
	}
	for _, tc := range cases {
		res, err := Compile(tc.viaVar, Options{Optimize: true})
		if err != nil {
			t.Fatalf("%q: %v", tc.viaVar, err)
		}
		if !strings.Contains(res.JS, tc.want) {
			t.Fatalf("%q: want %s in\n%s", tc.viaVar, tc.want, res.JS)
		}
	}

	res, err := Compile("say 2 ^ 3", Options{Optimize: true})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if res.JS != "console.log(8);\n" {
		t.Fatalf("unexpected folded output %q", res.JS)
	}

	if _, err := runner.PickRuntime(""); err != nil {
		t.Skip("no JavaScript runtime installed")
	}
	for _, tc := range cases {
		if got, want := execJS(t, tc.viaVar), execJS(t, tc.literal); got != want {
			t.Fatalf("%q printed %q, literal form printed %q", tc.viaVar, got, want)
		}
	}
}

func execJS(t *testing.T, src string) string {
	t.Helper()
	res, err := Compile(src, Options{Optimize: true})
	if err != nil {
		t.Fatalf("compile %q: %v", src, err)
	}
	script := filepath.Join(t.TempDir(), "prog.js")
	if err := WriteOutput(script, res.JS); err != nil {
		t.Fatalf("write: %v", err)
	}
	var out bytes.Buffer
	if err := runner.Run(context.Background(), runner.Options{Script: script, Stdout: &out}); err != nil {
		t.Fatalf("run %q: %v", src, err)
	}
	return out.String()
}
