package parser

import (
	"errors"

	"github.com/stormlang/storm/compiler/internal/cst"
	"github.com/stormlang/storm/compiler/internal/diag"
	"github.com/stormlang/storm/compiler/internal/lexer"
)

// ErrIncomplete marks syntax errors caused by running out of input; an
// interactive reader can keep reading lines when it sees one.
var ErrIncomplete = errors.New("incomplete input")

type incompleteError struct{ *diag.Diagnostic }

func (e incompleteError) Unwrap() []error { return []error{e.Diagnostic, ErrIncomplete} }

// IsIncomplete reports whether err came from input ending mid-construct.
func IsIncomplete(err error) bool { return errors.Is(err, ErrIncomplete) }

type Parser struct {
	buf *lexer.Buffer
	tok lexer.Token
}

func New(src string) *Parser {
	return NewFromBuffer(lexer.NewBuffer(src))
}

// NewFromBuffer parses an already-lexed token stream.
func NewFromBuffer(buf *lexer.Buffer) *Parser {
	p := &Parser{buf: buf}
	p.next()
	return p
}

// Parse is shorthand for New(src).ParseProgram().
func Parse(src string) (*cst.Node, error) {
	return New(src).ParseProgram()
}

func (p *Parser) next() { p.tok = p.buf.Next() }

func (p *Parser) skipComments() {
	for p.tok.Kind == lexer.TokComment {
		p.next()
	}
}

// significant returns the first non-comment token without consuming anything.
func (p *Parser) significant() lexer.Token {
	t := p.tok
	for i := 0; t.Kind == lexer.TokComment; i++ {
		t = p.buf.PeekN(i)
	}
	return t
}

// at reports whether the next significant token is one of kinds. Comments in
// front of it are consumed only on a match, so a trailing comment still
// surfaces as a statement when the construct ends here.
func (p *Parser) at(kinds ...lexer.TokKind) bool {
	k := p.significant().Kind
	for _, want := range kinds {
		if k == want {
			p.skipComments()
			return true
		}
	}
	return false
}

func (p *Parser) accept(k lexer.TokKind) bool {
	if p.at(k) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(k lexer.TokKind) (lexer.Token, error) {
	p.skipComments()
	if !p.at(k) {
		return p.tok, p.errorf("expected %s, got %s", describe(k), p.describeTok())
	}
	t := p.tok
	p.next()
	return t, nil
}

func (p *Parser) pos() diag.Pos { return diag.Pos{Line: p.tok.Line, Col: p.tok.Col} }

func (p *Parser) errorf(format string, args ...any) error {
	d := diag.New(diag.Syntax, p.pos(), format, args...)
	if p.tok.Kind == lexer.TokEOF {
		return incompleteError{d}
	}
	return d
}

func (p *Parser) describeTok() string {
	switch p.tok.Kind {
	case lexer.TokEOF:
		return "end of input"
	case lexer.TokIllegal:
		if len(p.tok.Lex) > 0 && p.tok.Lex[0] == '"' {
			return "unterminated string"
		}
		return "illegal character " + quote(p.tok.Lex)
	case lexer.TokIdent, lexer.TokNumber, lexer.TokStr:
		return quote(p.tok.Lex)
	default:
		return describe(p.tok.Kind)
	}
}

func describe(k lexer.TokKind) string {
	switch k {
	case lexer.TokIdent:
		return "identifier"
	case lexer.TokNumber:
		return "number"
	case lexer.TokStr:
		return "string"
	case lexer.TokEOF:
		return "end of input"
	default:
		return quote(k.String())
	}
}

func quote(s string) string { return "'" + s + "'" }

/* ---------- program & statements ---------- */

// ParseProgram parses the whole input into a Program node.
func (p *Parser) ParseProgram() (*cst.Node, error) {
	prog := cst.New(cst.Program, diag.Pos{Line: 1, Col: 1})
	stmts, err := p.parseStmts()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.TokEOF {
		return nil, p.errorf("unexpected %s", p.describeTok())
	}
	prog.Children = stmts
	return prog, nil
}

// parseStmts reads statements until a token that cannot start one
// (a block terminator or EOF). Comments become Comment statements here.
func (p *Parser) parseStmts() ([]*cst.Node, error) {
	var stmts []*cst.Node
	for {
		if p.tok.Kind == lexer.TokComment {
			stmts = append(stmts, cst.Leaf(cst.Comment, p.tok.Lex, p.pos()))
			p.next()
			continue
		}
		if p.at(lexer.TokEOF, lexer.TokEnd, lexer.TokElse, lexer.TokLap) {
			return stmts, nil
		}
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
}

func (p *Parser) parseBlock(nonEmpty bool) (*cst.Node, error) {
	pos := p.pos()
	stmts, err := p.parseStmts()
	if err != nil {
		return nil, err
	}
	if nonEmpty && len(stmts) == 0 {
		return nil, p.errorf("expected a statement, got %s", p.describeTok())
	}
	return cst.New(cst.Block, pos, stmts...), nil
}

func (p *Parser) parseStmt() (*cst.Node, error) {
	pos := p.pos()
	switch {
	case p.accept(lexer.TokSet):
		switch {
		case p.accept(lexer.TokProgram):
			return p.parseCallableDecl(cst.FunctionDecl, lexer.TokProgram, pos)
		case p.accept(lexer.TokObject):
			return p.parseCallableDecl(cst.ObjectDecl, lexer.TokObject, pos)
		}
		id, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokTo); err != nil {
			return nil, err
		}
		init, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return cst.New(cst.VarDecl, pos, id, init), nil
	case p.accept(lexer.TokStart):
		return p.parseLoop(pos)
	case p.accept(lexer.TokIf):
		return p.parseIf(pos)
	case p.accept(lexer.TokSay):
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return cst.New(cst.SayStmt, pos, arg), nil
	case p.accept(lexer.TokStop):
		if _, err := p.expect(lexer.TokRunning); err != nil {
			return nil, err
		}
		return cst.New(cst.StopStmt, pos), nil
	default:
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return cst.New(cst.ExpressionStmt, pos, e), nil
	}
}

// set program|object <id> "(" params ")" Block end program|object
func (p *Parser) parseCallableDecl(rule string, closer lexer.TokKind, pos diag.Pos) (*cst.Node, error) {
	id, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokLParen); err != nil {
		return nil, err
	}
	params := cst.New(cst.ParameterList, p.pos())
	if !p.accept(lexer.TokRParen) {
		for {
			param, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			params.Children = append(params.Children, param)
			if p.accept(lexer.TokComma) {
				continue
			}
			if _, err := p.expect(lexer.TokRParen); err != nil {
				return nil, err
			}
			break
		}
	}
	body, err := p.parseBlock(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokEnd); err != nil {
		return nil, err
	}
	if _, err := p.expect(closer); err != nil {
		return nil, err
	}
	return cst.New(rule, pos, id, params, body), nil
}

// start lap (forever | Expression) Block lap
func (p *Parser) parseLoop(pos diag.Pos) (*cst.Node, error) {
	if _, err := p.expect(lexer.TokLap); err != nil {
		return nil, err
	}
	var modifier *cst.Node
	if p.at(lexer.TokForever) {
		modifier = cst.Leaf(cst.Forever, p.tok.Lex, p.pos())
		p.next()
	} else {
		m, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		modifier = m
	}
	body, err := p.parseBlock(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokLap); err != nil {
		return nil, err
	}
	return cst.New(cst.LoopStmt, pos, modifier, body), nil
}

// if Expression Block (else Block)? end if
func (p *Parser) parseIf(pos diag.Pos) (*cst.Node, error) {
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	cons, err := p.parseBlock(true)
	if err != nil {
		return nil, err
	}
	n := cst.New(cst.IfStmt, pos, cond, cons)
	if p.accept(lexer.TokElse) {
		alt, err := p.parseBlock(true)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, alt)
	}
	if _, err := p.expect(lexer.TokEnd); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokIf); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Parser) parseIdent() (*cst.Node, error) {
	pos := p.pos()
	t, err := p.expect(lexer.TokIdent)
	if err != nil {
		return nil, err
	}
	return cst.Leaf(cst.Identifier, t.Lex, pos), nil
}
