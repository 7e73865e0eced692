package main

import (
	"os"

	"github.com/stormlang/storm/compiler/internal/cst"
	"github.com/stormlang/storm/compiler/internal/ir"
	"github.com/stormlang/storm/compiler/internal/parser"
	"github.com/stormlang/storm/compiler/internal/term"
)

/* ---------- parse ---------- */

func cmdParse(args []string) int {
	a, err := parseArgs(args)
	if err != nil || a.file == "" {
		term.Eprintln("usage: stormc parse <file.storm>")
		return 2
	}
	data, err := os.ReadFile(a.file)
	if err != nil {
		term.Eprintf("read %s: %v\n", a.file, err)
		return 1
	}
	root, err := parser.Parse(string(data))
	if err != nil {
		report(err, a.file, data)
		return 1
	}
	term.Printf("%s", cst.Dump(root))
	return 0
}

/* ---------- ir ---------- */

func cmdIR(args []string) int {
	a, err := parseArgs(args, flagNoOpt)
	if err != nil || a.file == "" {
		term.Eprintln("usage: stormc ir [--no-opt] <file.storm>")
		return 2
	}
	res, data, err := compileFile(a)
	if err != nil {
		report(err, a.file, data)
		return 1
	}
	term.Printf("%s\n", ir.Dump(res.Optimized))
	return 0
}
