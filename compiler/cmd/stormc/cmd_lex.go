package main

import (
	"io"
	"os"

	"github.com/stormlang/storm/compiler/internal/lexer"
	"github.com/stormlang/storm/compiler/internal/term"
)

/* ---------- lex ---------- */

func cmdLex(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		term.Eprintf("read %s: %v\n", path, err)
		return 1
	}
	writeTokens(os.Stdout, string(data))
	return 0
}

// writeTokens lists one token per line as "line:col  KIND  lexeme".
func writeTokens(w io.Writer, src string) {
	lx := lexer.New(src)
	for {
		t := lx.Next()
		if t.Kind == lexer.TokEOF {
			term.Wprintf(w, "%d:%d  %s\n", t.Line, t.Col, t.Kind)
			return
		}
		lex := t.Lex
		if len(lex) > 40 {
			lex = lex[:37] + "..."
		}
		term.Wprintf(w, "%d:%d  %-8s  %q\n", t.Line, t.Col, t.Kind, lex)
	}
}
