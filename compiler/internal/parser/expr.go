package parser

import (
	"github.com/stormlang/storm/compiler/internal/cst"
	"github.com/stormlang/storm/compiler/internal/lexer"
)

/* ---------- expressions (lowest precedence first) ---------- */

func (p *Parser) parseExpression() (*cst.Node, error) { return p.parseOr() }

func (p *Parser) parseOr() (*cst.Node, error) {
	return p.parseChain(cst.OrExp, p.parseAnd, lexer.TokOr)
}

func (p *Parser) parseAnd() (*cst.Node, error) {
	return p.parseChain(cst.AndExp, p.parseEq, lexer.TokAnd)
}

func (p *Parser) parseEq() (*cst.Node, error) {
	return p.parseChain(cst.EqExp, p.parseRel, lexer.TokEq, lexer.TokNe)
}

func (p *Parser) parseRel() (*cst.Node, error) {
	return p.parseChain(cst.RelExp, p.parseAdd, lexer.TokLt, lexer.TokLe, lexer.TokGt, lexer.TokGe)
}

func (p *Parser) parseAdd() (*cst.Node, error) {
	return p.parseChain(cst.AddExp, p.parseMul, lexer.TokPlus, lexer.TokMinus)
}

func (p *Parser) parseMul() (*cst.Node, error) {
	return p.parseChain(cst.MulExp, p.parsePow, lexer.TokStar, lexer.TokSlash)
}

// parseChain parses operand (op operand)* as one left-associative node with
// children [operand, op, operand, ...]. A lone operand is returned as is.
func (p *Parser) parseChain(rule string, operand func() (*cst.Node, error), ops ...lexer.TokKind) (*cst.Node, error) {
	first, err := operand()
	if err != nil {
		return nil, err
	}
	if !p.at(ops...) {
		return first, nil
	}
	n := cst.New(rule, first.Pos, first)
	for p.at(ops...) {
		n.Children = append(n.Children, cst.Leaf(cst.Op, p.tok.Lex, p.pos()))
		p.next()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, right)
	}
	return n, nil
}

// PowExp = UnaryExp ("^" PowExp)? ; the recursion on the right makes
// 2^3^2 group as 2^(3^2).
func (p *Parser) parsePow() (*cst.Node, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.TokCaret) {
		return base, nil
	}
	op := cst.Leaf(cst.Op, p.tok.Lex, p.pos())
	p.next()
	exp, err := p.parsePow()
	if err != nil {
		return nil, err
	}
	return cst.New(cst.PowExp, base.Pos, base, op, exp), nil
}

func (p *Parser) parseUnary() (*cst.Node, error) {
	if p.at(lexer.TokMinus, lexer.TokNot) {
		pos := p.pos()
		op := cst.Leaf(cst.Op, p.tok.Lex, pos)
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return cst.New(cst.UnaryExp, pos, op, operand), nil
	}
	return p.parsePostfix()
}

// Postfix = Primary (CallTail | PropTail)*
func (p *Parser) parsePostfix() (*cst.Node, error) {
	atom, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	var tails []*cst.Node
	for {
		switch {
		case p.at(lexer.TokLParen):
			tail, err := p.parseCallTail()
			if err != nil {
				return nil, err
			}
			tails = append(tails, tail)
		case p.at(lexer.TokDot) && !p.tok.SpaceBefore:
			pos := p.pos()
			p.next()
			if !p.at(lexer.TokIdent) || p.tok.SpaceBefore {
				return nil, p.errorf("expected property name after '.', got %s", p.describeTok())
			}
			id := cst.Leaf(cst.Identifier, p.tok.Lex, p.pos())
			p.next()
			tails = append(tails, cst.New(cst.PropTail, pos, id))
		default:
			if len(tails) == 0 {
				return atom, nil
			}
			return cst.New(cst.Postfix, atom.Pos, append([]*cst.Node{atom}, tails...)...), nil
		}
	}
}

// CallTail = "(" (CallArg ("," CallArg)*)? ")"
func (p *Parser) parseCallTail() (*cst.Node, error) {
	tail := cst.New(cst.CallTail, p.pos())
	p.next() // (
	if p.accept(lexer.TokRParen) {
		return tail, nil
	}
	for {
		arg, err := p.parseCallArg()
		if err != nil {
			return nil, err
		}
		tail.Children = append(tail.Children, arg)
		if p.accept(lexer.TokComma) {
			continue
		}
		if _, err := p.expect(lexer.TokRParen); err != nil {
			return nil, err
		}
		return tail, nil
	}
}

// CallArg = identifier "to" Expression | Expression
func (p *Parser) parseCallArg() (*cst.Node, error) {
	pos := p.pos()
	if p.at(lexer.TokIdent) && p.buf.Peek().Kind == lexer.TokTo {
		id := cst.Leaf(cst.Identifier, p.tok.Lex, pos)
		p.next() // identifier
		p.next() // to
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return cst.New(cst.NamedCallArg, pos, id, value), nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return cst.New(cst.PositionalCallArg, pos, value), nil
}

func (p *Parser) parsePrimary() (*cst.Node, error) {
	p.skipComments()
	pos := p.pos()
	switch p.tok.Kind {
	case lexer.TokNumber:
		n := cst.Leaf(cst.NumberLiteral, p.tok.Lex, pos)
		p.next()
		return n, nil
	case lexer.TokStr:
		n := cst.Leaf(cst.StringLiteral, p.tok.Lex, pos)
		p.next()
		return n, nil
	case lexer.TokTrue, lexer.TokFalse:
		n := cst.Leaf(cst.BooleanLiteral, p.tok.Lex, pos)
		p.next()
		return n, nil
	case lexer.TokIdent:
		n := cst.Leaf(cst.Identifier, p.tok.Lex, pos)
		p.next()
		return n, nil
	case lexer.TokAsk:
		p.next()
		strPos := p.pos()
		t, err := p.expect(lexer.TokStr)
		if err != nil {
			return nil, err
		}
		return cst.New(cst.AskLiteral, pos, cst.Leaf(cst.StringLiteral, t.Lex, strPos)), nil
	case lexer.TokLParen:
		p.next()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokRParen); err != nil {
			return nil, err
		}
		return cst.New(cst.ParenExp, pos, inner), nil
	}
	return nil, p.errorf("expected an expression, got %s", p.describeTok())
}
