package diag

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

/* =============================================================================
   Rendering
   ========================================================================== */

// Render formats err in rustc style against the source it was reported in:
//
//	error[SE0001]: Already declared: x
//	 --> demo.storm:2:5
//	  |
//	2 | set x to 2
//	  |     ^ name already declared
//
// Errors that are not diagnostics render as a single "error: ..." line.
func Render(err error, file string, src []byte) string {
	if err == nil {
		return ""
	}
	var d *Diagnostic
	if !errors.As(err, &d) {
		return fmt.Sprintf("error: %v\n", err)
	}

	var b strings.Builder
	if d.Code != "" {
		fmt.Fprintf(&b, "error[%s]: %s\n", d.Code, d.Msg)
	} else {
		fmt.Fprintf(&b, "error: %s\n", d.Msg)
	}
	pos := d.Span.Start
	if pos.Line <= 0 {
		return b.String()
	}
	if file != "" {
		fmt.Fprintf(&b, " --> %s:%d:%d\n", file, pos.Line, pos.Col)
	} else {
		fmt.Fprintf(&b, " --> %d:%d\n", pos.Line, pos.Col)
	}
	if src == nil {
		return b.String()
	}

	lineText := getLineText(src, pos.Line)
	lnStr := fmt.Sprintf("%d", pos.Line)
	gutter := " " + strings.Repeat(" ", len(lnStr)) + " | "
	fmt.Fprintf(&b, "%s\n", strings.TrimRight(gutter, " "))
	fmt.Fprintf(&b, " %s | %s\n", lnStr, lineText)
	b.WriteString(gutter)
	writeCaret(&b, lineText, pos.Col)
	domain, key := d.Kind.catalogKey()
	if ce, ok := Lookup(domain, key); ok && ce.Title != "" {
		b.WriteString(" ")
		b.WriteString(ce.Title)
	}
	b.WriteByte('\n')
	if ce, ok := Lookup(domain, key); ok && strings.TrimSpace(ce.Help) != "" {
		fmt.Fprintf(&b, "help: %s\n", ce.Help)
	}
	return b.String()
}

// writeCaret pads up to col (1-based, in runes) keeping tabs so the caret
// lines up with the echoed source line.
func writeCaret(b *strings.Builder, line string, col int) {
	i := 1
	for len(line) > 0 && i < col {
		r, sz := utf8.DecodeRuneInString(line)
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
		line = line[sz:]
		i++
	}
	b.WriteString("^")
}

func getLineText(src []byte, line int) string {
	if line <= 0 {
		return ""
	}
	cur := 1
	start := 0
	for i, c := range src {
		if c == '\n' {
			if cur == line {
				return strings.TrimRight(string(src[start:i]), "\r")
			}
			cur++
			start = i + 1
		}
	}
	if cur == line && start <= len(src) {
		return string(src[start:])
	}
	return ""
}
