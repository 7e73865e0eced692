package main

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/stormlang/storm/compiler/internal/build"
	"github.com/stormlang/storm/compiler/internal/ir"
	"github.com/stormlang/storm/compiler/internal/parser"
	"github.com/stormlang/storm/compiler/internal/term"
	"github.com/stormlang/storm/compiler/internal/version"
)

const (
	promptMain = "storm> "
	promptCont = "  ...> "
)

/* ---------- session ---------- */

// session accumulates accepted entries into one program. Every entry is
// compiled together with what came before, so names declared earlier stay
// visible; only the JavaScript the entry adds is shown.
type session struct {
	opts build.Options
	src  string
	last *build.Result
}

// eval compiles src plus code. On success the entry is kept and the newly
// generated JavaScript is returned; on error the session is unchanged.
func (s *session) eval(code string) (string, error) {
	candidate := s.join(code)
	res, err := build.Compile(candidate, s.opts)
	if err != nil {
		return "", err
	}
	prev := ""
	if s.last != nil {
		prev = s.last.JS
	}
	s.src, s.last = candidate, res
	return strings.TrimPrefix(res.JS, prev), nil
}

// join is the program the session would hold after accepting code.
func (s *session) join(code string) string {
	if s.src == "" {
		return code
	}
	return s.src + "\n" + code
}

func (s *session) reset() { s.src, s.last = "", nil }

func (s *session) dumpIR() string {
	if s.last == nil {
		return ir.Dump(&ir.Program{})
	}
	return ir.Dump(s.last.Optimized)
}

/* ---------- repl ---------- */

func cmdRepl(args []string) int {
	a, err := parseArgs(args, flagNoOpt)
	if err != nil || a.file != "" {
		term.Eprintln("usage: stormc repl [--no-opt]")
		return 2
	}
	s := &session{opts: a.buildOptions()}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	hist := a.cfg.History
	if f, err := os.Open(hist); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(hist); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	term.Printf("%s\n", version.String())
	term.Printf("Ctrl+C cancels input, Ctrl+D exits. Commands: :ir, :reset, :quit\n")
	for {
		code, ok := readEntry(ln)
		if !ok {
			term.Println()
			return 0
		}
		trimmed := strings.TrimSpace(code)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, ":"):
			switch strings.ToLower(trimmed) {
			case ":quit", ":q":
				return 0
			case ":reset":
				s.reset()
				term.Printf("%s\n", term.Dim("session cleared"))
			case ":ir":
				term.Printf("%s\n", s.dumpIR())
			default:
				term.Printf("unknown command. Try :ir, :reset or :quit.\n")
			}
			continue
		}

		js, err := s.eval(code)
		if err != nil {
			report(err, "", []byte(s.join(code)))
			continue
		}
		term.Printf("%s", js)
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readEntry keeps prompting while the input so far ends mid-construct.
func readEntry(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := parser.Parse(src); perr != nil && parser.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
