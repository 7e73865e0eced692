// Package build drives one compilation: source → CST → IR → optimized IR →
// JavaScript.
package build

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/stormlang/storm/compiler/internal/check"
	js "github.com/stormlang/storm/compiler/internal/codegen/js"
	"github.com/stormlang/storm/compiler/internal/cst"
	"github.com/stormlang/storm/compiler/internal/ir"
	"github.com/stormlang/storm/compiler/internal/opt"
	"github.com/stormlang/storm/compiler/internal/parser"
)

type Options struct {
	Optimize bool
	Indent   int // spaces per level in the emitted JavaScript
}

// Stage is the wall time spent in one pipeline step.
type Stage struct {
	Name string
	Took time.Duration
}

// Result holds every intermediate product of a successful compilation.
type Result struct {
	CST       *cst.Node
	IR        *ir.Program // as analyzed
	Optimized *ir.Program // same as IR when optimization is off
	JS        string
	Stages    []Stage
}

// Compile runs the whole pipeline over src. Errors are diagnostics from the
// parser or the analyzer; later stages cannot fail.
func Compile(src string, opts Options) (*Result, error) {
	res := &Result{}
	timed := func(name string, f func() error) error {
		start := time.Now()
		err := f()
		res.Stages = append(res.Stages, Stage{Name: name, Took: time.Since(start)})
		return err
	}

	err := timed("parse", func() (err error) {
		res.CST, err = parser.Parse(src)
		return err
	})
	if err != nil {
		return nil, err
	}
	err = timed("analyze", func() (err error) {
		res.IR, err = check.Analyze(res.CST)
		return err
	})
	if err != nil {
		return nil, err
	}
	res.Optimized = res.IR
	if opts.Optimize {
		_ = timed("optimize", func() error {
			res.Optimized = opt.Optimize(res.IR)
			return nil
		})
	}
	_ = timed("generate", func() error {
		res.JS = js.GenerateWith(res.Optimized, js.Options{Indent: opts.Indent})
		return nil
	})
	return res, nil
}

// CompileFile reads and compiles path. The source is returned alongside the
// result so callers can render diagnostics against it.
func CompileFile(path string, opts Options) (*Result, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	res, err := Compile(string(data), opts)
	return res, data, err
}

// OutputPath is <outDir>/<basename of src without extension>.js.
func OutputPath(outDir, src string) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(outDir, base+".js")
}

// WriteOutput writes generated code, creating parent directories.
func WriteOutput(path, code string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
