package main

import (
	"errors"
	"flag"
	"strings"

	"github.com/stormlang/storm/compiler/internal/build"
	"github.com/stormlang/storm/compiler/internal/config"
	"github.com/stormlang/storm/compiler/internal/diag"
	"github.com/stormlang/storm/compiler/internal/term"
)

const (
	flagOut     = "out"
	flagJS      = "js"
	flagNoOpt   = "no-opt"
	flagVerbose = "verbose"
)

var valueFlags = map[string]bool{flagOut: true, flagJS: true}

/* ---------- flags anywhere ---------- */

type cliArgs struct {
	file    string
	out     string
	js      string
	noOpt   bool
	verbose bool
	cfg     config.Config
}

// parseArgs accepts --name=value, --name value and boolean --name flags
// before or after the file; "--" ends flag parsing. Only flags named in
// allowed are accepted.
func parseArgs(argv []string, allowed ...string) (cliArgs, error) {
	a := cliArgs{cfg: config.Load()}
	ok := map[string]bool{}
	for _, f := range allowed {
		ok[f] = true
	}
	for i := 0; i < len(argv); i++ {
		s := argv[i]
		if s == "--" {
			for _, rest := range argv[i+1:] {
				if err := a.setFile(rest); err != nil {
					return a, err
				}
			}
			break
		}
		if !strings.HasPrefix(s, "-") || s == "-" {
			if err := a.setFile(s); err != nil {
				return a, err
			}
			continue
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(s, "-"), "=")
		if !ok[name] {
			return a, flag.ErrHelp
		}
		if valueFlags[name] && !hasValue {
			if i+1 >= len(argv) {
				return a, flag.ErrHelp
			}
			i++
			value = argv[i]
		}
		switch name {
		case flagOut:
			a.out = value
		case flagJS:
			a.js = value
		case flagNoOpt:
			a.noOpt = true
		case flagVerbose:
			a.verbose = true
		}
	}
	return a, nil
}

func (a *cliArgs) setFile(s string) error {
	if a.file != "" {
		return errors.New("more than one input file")
	}
	a.file = s
	return nil
}

func (a cliArgs) buildOptions() build.Options {
	return build.Options{Optimize: a.cfg.Optimize && !a.noOpt, Indent: a.cfg.Indent}
}

// outPath is --out if given, else <STORM_OUT_DIR>/<base>.js.
func (a cliArgs) outPath() string {
	if a.out != "" {
		return a.out
	}
	return build.OutputPath(a.cfg.OutDir, a.file)
}

func compileFile(a cliArgs) (*build.Result, []byte, error) {
	res, data, err := build.CompileFile(a.file, a.buildOptions())
	if err == nil && a.verbose {
		for _, st := range res.Stages {
			term.Eprintf("%s %-9s %s\n", term.Dim("stage"), st.Name, st.Took)
		}
	}
	return res, data, err
}

// report prints err against the source it came from, headline in red.
func report(err error, file string, src []byte) {
	out := diag.Render(err, file, src)
	if head, rest, found := strings.Cut(out, "\n"); found {
		out = term.Red(head) + "\n" + rest
	}
	term.Eprintf("%s", out)
}
