// Package opt rewrites IR bottom-up: constant folding, a fixed set of
// numeric identities, and truncation of statements after an unconditional
// "stop running". Optimize is pure and idempotent.
package opt

import (
	"math"

	"github.com/stormlang/storm/compiler/internal/ir"
)

// Optimize returns an optimized copy of p. Nodes that do not change are
// shared with the input.
func Optimize(p *ir.Program) *ir.Program {
	if p == nil {
		return nil
	}
	return &ir.Program{Statements: truncating(p.Statements)}
}

/* ---------- statements ---------- */

// truncating optimizes a statement list whose own level ends at the first
// StopStatement.
func truncating(stmts []ir.Stmt) []ir.Stmt {
	var out []ir.Stmt
	for _, s := range stmts {
		s = stmt(s)
		out = append(out, s)
		if _, ok := s.(*ir.StopStatement); ok {
			break
		}
	}
	return out
}

// plain optimizes each statement of a branch without truncating it.
func plain(stmts []ir.Stmt) []ir.Stmt {
	if stmts == nil {
		return nil
	}
	out := make([]ir.Stmt, len(stmts))
	for i, s := range stmts {
		out[i] = stmt(s)
	}
	return out
}

func stmt(s ir.Stmt) ir.Stmt {
	switch st := s.(type) {
	case *ir.VariableDeclaration:
		return &ir.VariableDeclaration{Variable: st.Variable, Initializer: expr(st.Initializer)}
	case *ir.FunctionDeclaration:
		return &ir.FunctionDeclaration{Fun: st.Fun.WithBody(truncating(st.Fun.Body))}
	case *ir.ObjectDeclaration:
		return &ir.ObjectDeclaration{Obj: st.Obj.WithBody(truncating(st.Obj.Body))}
	case *ir.LoopStatement:
		loop := &ir.LoopStatement{Forever: st.Forever, Body: truncating(st.Body)}
		if st.Modifier != nil {
			loop.Modifier = expr(st.Modifier)
		}
		return loop
	case *ir.IfStatement:
		// branches are not truncated past the if
		return &ir.IfStatement{
			Test:       expr(st.Test),
			Consequent: plain(st.Consequent),
			Alternate:  plain(st.Alternate),
		}
	case *ir.SayStatement:
		return &ir.SayStatement{Argument: expr(st.Argument)}
	case *ir.ExpressionStatement:
		return &ir.ExpressionStatement{Expression: expr(st.Expression)}
	}
	return s
}

/* ---------- expressions ---------- */

func expr(e ir.Expr) ir.Expr {
	switch ex := e.(type) {
	case *ir.BinaryExpression:
		return binary(ex)
	case *ir.UnaryExpression:
		return unary(ex)
	case *ir.CallExpression:
		args := make([]ir.Expr, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = expr(a)
		}
		return &ir.CallExpression{Callee: ex.Callee, Args: args, ExprType: ex.ExprType}
	case *ir.NamedArgument:
		return &ir.NamedArgument{Name: ex.Name, Value: expr(ex.Value)}
	case *ir.PropertyAccess:
		return &ir.PropertyAccess{Object: expr(ex.Object), Property: ex.Property}
	}
	return e
}

func binary(b *ir.BinaryExpression) ir.Expr {
	left, right := expr(b.Left), expr(b.Right)

	if l, ok := left.(*ir.NumberLiteral); ok {
		if r, ok := right.(*ir.NumberLiteral); ok {
			if v, ok := foldNumber(b.Op, l.Value, r.Value); ok {
				return &ir.NumberLiteral{Value: v}
			}
		}
	}
	if b.Op == "+" {
		if l, ok := left.(*ir.StringLiteral); ok {
			if r, ok := right.(*ir.StringLiteral); ok {
				return &ir.StringLiteral{Value: l.Value + r.Value}
			}
		}
	}
	if b.ExprType == ir.TypeNumber {
		if x, ok := identity(b.Op, left, right); ok {
			return x
		}
	}
	return &ir.BinaryExpression{Op: b.Op, Left: left, Right: right, ExprType: b.ExprType}
}

func foldNumber(op string, l, r float64) (float64, bool) {
	switch op {
	case "+":
		return l + r, true
	case "-":
		return l - r, true
	case "*":
		return l * r, true
	case "/":
		return l / r, true
	case "^":
		return pow(l, r), true
	}
	return 0, false
}

// pow follows JavaScript's **, which differs from math.Pow only for a base of
// 1 or -1 raised to an infinite exponent.
func pow(l, r float64) float64 {
	if math.IsInf(r, 0) && math.Abs(l) == 1 {
		return math.NaN()
	}
	return math.Pow(l, r)
}

// identity applies x+0, 0+x, x-0, x*1, 1*x and x/1, returning x itself.
func identity(op string, left, right ir.Expr) (ir.Expr, bool) {
	switch op {
	case "+":
		if isNumber(left, 0) {
			return right, true
		}
		if isNumber(right, 0) {
			return left, true
		}
	case "-":
		if isNumber(right, 0) {
			return left, true
		}
	case "*":
		if isNumber(left, 1) {
			return right, true
		}
		if isNumber(right, 1) {
			return left, true
		}
	case "/":
		if isNumber(right, 1) {
			return left, true
		}
	}
	return nil, false
}

func isNumber(e ir.Expr, v float64) bool {
	n, ok := e.(*ir.NumberLiteral)
	return ok && n.Value == v
}

func unary(u *ir.UnaryExpression) ir.Expr {
	operand := expr(u.Operand)
	switch u.Op {
	case "-":
		if n, ok := operand.(*ir.NumberLiteral); ok {
			return &ir.NumberLiteral{Value: -n.Value}
		}
	case "not":
		if b, ok := operand.(*ir.BooleanLiteral); ok {
			return &ir.BooleanLiteral{Value: !b.Value}
		}
	}
	return &ir.UnaryExpression{Op: u.Op, Operand: operand, ExprType: u.ExprType}
}
