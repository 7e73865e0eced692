package lexer

import (
	"unicode"
)

// Lexer scans Storm source into tokens. Newlines are plain whitespace in
// Storm; statements are delimited by their keywords.
type Lexer struct {
	src []rune
	i   int

	line int
	col  int

	spaced bool // whitespace seen since the previous token
}

func New(src string) *Lexer {
	return &Lexer{
		src:  []rune(src),
		line: 1,
		col:  0,
	}
}

func (lx *Lexer) make(kind TokKind, lex string, line, col int) Token {
	t := Token{Kind: kind, Lex: lex, Line: line, Col: col, SpaceBefore: lx.spaced}
	lx.spaced = false
	return t
}

func (lx *Lexer) peek() (rune, bool) {
	if lx.i >= len(lx.src) {
		return 0, false
	}
	return lx.src[lx.i], true
}

func (lx *Lexer) peekAt(off int) (rune, bool) {
	if lx.i+off >= len(lx.src) {
		return 0, false
	}
	return lx.src[lx.i+off], true
}

func (lx *Lexer) advance() (rune, bool) {
	ch, ok := lx.peek()
	if !ok {
		return 0, false
	}
	lx.i++
	if ch == '\n' {
		lx.line++
		lx.col = 0
	} else {
		lx.col++
	}
	return ch, true
}

func (lx *Lexer) match(expect rune) bool {
	ch, ok := lx.peek()
	if ok && ch == expect {
		lx.advance()
		return true
	}
	return false
}

func (lx *Lexer) atEOF() bool { return lx.i >= len(lx.src) }

// Next returns the next token. It never panics on user input; characters it
// cannot place are returned as TokIllegal for the parser to report.
func (lx *Lexer) Next() Token {
	// Skip spaces, tabs and newlines
	for {
		ch, ok := lx.peek()
		if !ok || !unicode.IsSpace(ch) {
			break
		}
		lx.advance()
		lx.spaced = true
	}

	startLine, startCol := lx.line, lx.col+1

	if lx.atEOF() {
		return lx.make(TokEOF, "", startLine, startCol)
	}

	// Comment: consume to EOL (newline left for the whitespace skipper)
	if ch, _ := lx.peek(); ch == '#' {
		start := lx.i
		for {
			ch, ok := lx.peek()
			if !ok || ch == '\n' {
				break
			}
			lx.advance()
		}
		return lx.make(TokComment, string(lx.src[start:lx.i]), startLine, startCol)
	}

	// Identifiers / keywords
	if ch, _ := lx.peek(); isIdentStart(ch) {
		lex := lx.scanIdent()
		if kind, ok := keywordKind(lex); ok {
			return lx.make(kind, lex, startLine, startCol)
		}
		return lx.make(TokIdent, lex, startLine, startCol)
	}

	// Numbers: digits ("." digits)?
	if ch, _ := lx.peek(); unicode.IsDigit(ch) {
		lex := lx.scanNumber()
		return lx.make(TokNumber, lex, startLine, startCol)
	}

	// Strings: "..." on a single line, no escapes
	if ch, _ := lx.peek(); ch == '"' {
		lex, ok := lx.scanString()
		if !ok {
			return lx.make(TokIllegal, lex, startLine, startCol)
		}
		return lx.make(TokStr, lex, startLine, startCol)
	}

	// Multi-char operators first
	if lx.match('!') {
		if lx.match('=') {
			return lx.make(TokNe, "!=", startLine, startCol)
		}
		return lx.make(TokIllegal, "!", startLine, startCol)
	}
	if lx.match('<') {
		if lx.match('=') {
			return lx.make(TokLe, "<=", startLine, startCol)
		}
		return lx.make(TokLt, "<", startLine, startCol)
	}
	if lx.match('>') {
		if lx.match('=') {
			return lx.make(TokGe, ">=", startLine, startCol)
		}
		return lx.make(TokGt, ">", startLine, startCol)
	}

	// Single-char punctuation
	ch, _ := lx.advance()
	switch ch {
	case '=':
		return lx.make(TokEq, "=", startLine, startCol)
	case '+':
		return lx.make(TokPlus, "+", startLine, startCol)
	case '-':
		return lx.make(TokMinus, "-", startLine, startCol)
	case '*':
		return lx.make(TokStar, "*", startLine, startCol)
	case '/':
		return lx.make(TokSlash, "/", startLine, startCol)
	case '^':
		return lx.make(TokCaret, "^", startLine, startCol)
	case '(':
		return lx.make(TokLParen, "(", startLine, startCol)
	case ')':
		return lx.make(TokRParen, ")", startLine, startCol)
	case '.':
		return lx.make(TokDot, ".", startLine, startCol)
	case ',':
		return lx.make(TokComma, ",", startLine, startCol)
	}
	return lx.make(TokIllegal, string(ch), startLine, startCol)
}

// Tokenize lexes the whole input, EOF token included.
func Tokenize(src string) []Token {
	lx := New(src)
	var toks []Token
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Kind == TokEOF {
			return toks
		}
	}
}

// ----- scanning helpers -----

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}
func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (lx *Lexer) scanIdent() string {
	start := lx.i
	for {
		r, ok := lx.peek()
		if !ok || !isIdentPart(r) {
			break
		}
		lx.advance()
	}
	return string(lx.src[start:lx.i])
}

func (lx *Lexer) scanNumber() string {
	start := lx.i
	lx.scanDigits()
	// fraction only when a digit follows the dot, so "1." stays "1" "."
	if ch, ok := lx.peek(); ok && ch == '.' {
		if next, ok := lx.peekAt(1); ok && unicode.IsDigit(next) {
			lx.advance()
			lx.scanDigits()
		}
	}
	return string(lx.src[start:lx.i])
}

func (lx *Lexer) scanDigits() {
	for {
		r, ok := lx.peek()
		if !ok || !unicode.IsDigit(r) {
			return
		}
		lx.advance()
	}
}

// scanString returns the literal including its quotes. ok is false when the
// line or input ends before the closing quote.
func (lx *Lexer) scanString() (string, bool) {
	start := lx.i
	lx.advance() // consume opening "
	for {
		r, ok := lx.peek()
		if !ok || r == '\n' {
			return string(lx.src[start:lx.i]), false
		}
		lx.advance()
		if r == '"' {
			return string(lx.src[start:lx.i]), true
		}
	}
}

// keywordKind maps identifiers to keyword tokens.
func keywordKind(s string) (TokKind, bool) {
	switch s {
	case "set":
		return TokSet, true
	case "to":
		return TokTo, true
	case "program":
		return TokProgram, true
	case "object":
		return TokObject, true
	case "end":
		return TokEnd, true
	case "start":
		return TokStart, true
	case "lap":
		return TokLap, true
	case "forever":
		return TokForever, true
	case "if":
		return TokIf, true
	case "else":
		return TokElse, true
	case "say":
		return TokSay, true
	case "stop":
		return TokStop, true
	case "running":
		return TokRunning, true
	case "ask":
		return TokAsk, true
	case "true":
		return TokTrue, true
	case "false":
		return TokFalse, true
	case "and":
		return TokAnd, true
	case "or":
		return TokOr, true
	case "not":
		return TokNot, true
	default:
		return 0, false
	}
}
