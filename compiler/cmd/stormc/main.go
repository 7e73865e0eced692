package main

import (
	"flag"
	"os"

	"github.com/stormlang/storm/compiler/internal/config"
	"github.com/stormlang/storm/compiler/internal/term"
	"github.com/stormlang/storm/compiler/internal/version"
)

/* ---------- main ---------- */

func main() {
	flag.Usage = usage
	if config.Load().NoColor {
		term.SetColor(false)
	}
	if len(os.Args) < 2 {
		usage()
		return
	}
	switch os.Args[1] {
	case "version", "--version", "-v":
		term.Printf("%s\n", version.String())
	case "help", "--help", "-h":
		usage()
	case "lex":
		if len(os.Args) != 3 {
			term.Eprintln("usage: stormc lex <file.storm>")
			os.Exit(2)
		}
		os.Exit(cmdLex(os.Args[2]))
	case "parse":
		os.Exit(cmdParse(os.Args[2:]))
	case "ir":
		os.Exit(cmdIR(os.Args[2:]))
	case "build":
		os.Exit(cmdBuild(os.Args[2:]))
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "watch":
		os.Exit(cmdWatch(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	default:
		term.Eprintf("unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}
