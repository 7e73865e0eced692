package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/stormlang/storm/compiler/internal/build"
	"github.com/stormlang/storm/compiler/internal/runner"
	"github.com/stormlang/storm/compiler/internal/term"
	"github.com/stormlang/storm/compiler/internal/watch"
)

/* ---------- build (flags anywhere) ---------- */

func cmdBuild(args []string) int {
	a, err := parseArgs(args, flagOut, flagNoOpt, flagVerbose)
	if err != nil || a.file == "" {
		term.Eprintln("usage: stormc build [--out=path] [--no-opt] [--verbose] <file.storm>")
		return 2
	}
	_, code := buildOnce(a)
	return code
}

// buildOnce compiles a.file and writes the JavaScript, returning its path.
func buildOnce(a cliArgs) (string, int) {
	res, data, err := compileFile(a)
	if err != nil {
		report(err, a.file, data)
		return "", 1
	}
	out := a.outPath()
	if err := build.WriteOutput(out, res.JS); err != nil {
		term.Eprintf("%v\n", err)
		return "", 1
	}
	term.Eprintf("wrote %s\n", out)
	return out, 0
}

/* ---------- run ---------- */

func cmdRun(args []string) int {
	a, err := parseArgs(args, flagJS, flagOut, flagNoOpt, flagVerbose)
	if err != nil || a.file == "" {
		term.Eprintln("usage: stormc run [--js=node] [--no-opt] <file.storm>")
		return 2
	}
	out, code := buildOnce(a)
	if code != 0 {
		return code
	}
	rt := a.js
	if rt == "" {
		rt = a.cfg.JS
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := runner.Run(ctx, runner.Options{Script: out, Runtime: rt}); err != nil {
		term.Eprintf("%v\n", err)
		return 1
	}
	return 0
}

/* ---------- watch ---------- */

func cmdWatch(args []string) int {
	a, err := parseArgs(args, flagOut, flagNoOpt, flagVerbose)
	if err != nil || a.file == "" {
		term.Eprintln("usage: stormc watch [--out=path] [--no-opt] <file.storm>")
		return 2
	}
	buildOnce(a)

	w, err := watch.New(a.file, func(string) {
		if _, code := buildOnce(a); code == 0 {
			term.Eprintf("%s\n", term.Green("ok"))
		}
	})
	if err != nil {
		term.Eprintf("watch %s: %v\n", a.file, err)
		return 1
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	term.Eprintf("watching %s (Ctrl+C to stop)\n", a.file)
	if err := w.Run(ctx); err != nil {
		term.Eprintf("watch: %v\n", err)
		return 1
	}
	return 0
}
