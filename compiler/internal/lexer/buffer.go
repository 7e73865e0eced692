package lexer

// Buffer is an iterator over a lexed token slice with arbitrary lookahead.
// Comments are kept; the parser decides where they are statements.
type Buffer struct {
	toks []Token
	i    int
}

// NewBuffer lexes src fully and returns a Buffer over the tokens.
func NewBuffer(src string) *Buffer {
	return &Buffer{toks: Tokenize(src)}
}

// HasNext reports whether a non-EOF token remains.
func (b *Buffer) HasNext() bool {
	return b.i < len(b.toks) && b.toks[b.i].Kind != TokEOF
}

// Peek returns the next token without advancing.
func (b *Buffer) Peek() Token { return b.PeekN(0) }

// PeekN returns the token n positions ahead without advancing. Past the end
// it returns the final EOF token.
func (b *Buffer) PeekN(n int) Token {
	if j := b.i + n; j < len(b.toks) {
		return b.toks[j]
	}
	return b.eof()
}

// Next returns the next token and advances; at the end it keeps returning EOF.
func (b *Buffer) Next() Token {
	if b.i < len(b.toks) {
		t := b.toks[b.i]
		b.i++
		return t
	}
	return b.eof()
}

// Reset moves the iterator to the beginning.
func (b *Buffer) Reset() { b.i = 0 }

func (b *Buffer) eof() Token {
	if n := len(b.toks); n > 0 {
		last := b.toks[n-1]
		if last.Kind == TokEOF {
			return last
		}
		return Token{Kind: TokEOF, Line: last.Line, Col: last.Col + len([]rune(last.Lex))}
	}
	return Token{Kind: TokEOF, Line: 1, Col: 1}
}
