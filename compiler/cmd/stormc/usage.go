package main

import "github.com/stormlang/storm/compiler/internal/term"

func usage() {
	term.Eprintln("stormc — Storm to JavaScript compiler")
	term.Eprintln("")
	term.Eprintln("Usage:")
	term.Eprintln("  stormc <command> [args]")
	term.Eprintln("")
	term.Eprintln("Commands:")
	term.Eprintln("  version                                   Print version")
	term.Eprintln("  help                                      Show this help")
	term.Eprintln("  lex <file>                                Print the token stream")
	term.Eprintln("  parse <file>                              Print the syntax tree outline")
	term.Eprintln("  ir [--no-opt] <file>                      Print the (optimized) IR")
	term.Eprintln("  build [--out=path] [--no-opt] [--verbose] <file>")
	term.Eprintln("                                            Write JavaScript (flags may appear before or after the file)")
	term.Eprintln("  run [--js=node] [--no-opt] <file>         Build, then execute with a JavaScript runtime")
	term.Eprintln("  watch [--out=path] [--no-opt] <file>      Rebuild on every save until interrupted")
	term.Eprintln("  repl                                      Interactive session (:ir, :reset, :quit)")
	term.Eprintln("")
	term.Eprintln("Environment:")
	term.Eprintln("  STORM_OPTIMIZE  run the optimizer (default true)")
	term.Eprintln("  STORM_INDENT    spaces per indentation level (default 2)")
	term.Eprintln("  STORM_OUT_DIR   output directory (default gen/out)")
	term.Eprintln("  STORM_JS        JavaScript runtime for run (default: node, bun, deno)")
	term.Eprintln("  STORM_HISTORY   REPL history file (default ~/.storm_history)")
	term.Eprintln("  NO_COLOR        disable coloured diagnostics")
	term.Eprintln("")
	term.Eprintln("Outputs:")
	term.Eprintln("  generated JavaScript: gen/out/<basename>.js")
}
