package check

import (
	"strconv"

	"github.com/stormlang/storm/compiler/internal/cst"
	"github.com/stormlang/storm/compiler/internal/diag"
	"github.com/stormlang/storm/compiler/internal/ir"
)

/* ---------- expressions ---------- */

func (c *checker) expr(n *cst.Node) (ir.Expr, error) {
	switch n.Rule {
	case cst.OrExp, cst.AndExp, cst.EqExp, cst.RelExp, cst.AddExp, cst.MulExp, cst.PowExp:
		return c.binaryChain(n)
	case cst.UnaryExp:
		return c.unary(n)
	case cst.Postfix:
		return c.postfix(n)
	case cst.ParenExp:
		return c.expr(n.Child(0))
	case cst.Identifier:
		e, ok := c.scope.lookup(n.Text)
		if !ok {
			return nil, c.errorf(diag.UndeclaredName, n, "%s not declared", n.Text)
		}
		return e, nil
	case cst.NumberLiteral:
		v, err := strconv.ParseFloat(n.Text, 64)
		if err != nil {
			return nil, c.errorf(diag.Internal, n, "bad number literal %q", n.Text)
		}
		return &ir.NumberLiteral{Value: v}, nil
	case cst.StringLiteral:
		return &ir.StringLiteral{Value: unquote(n.Text)}, nil
	case cst.BooleanLiteral:
		return &ir.BooleanLiteral{Value: n.Text == "true"}, nil
	case cst.AskLiteral:
		return &ir.AskLiteral{Value: n.Child(0).Text}, nil
	}
	return nil, c.errorf(diag.Internal, n, "unexpected expression %s", n.Rule)
}

// binaryChain folds children [operand, op, operand, ...] to the left. PowExp
// nodes only ever hold one operator; their right operand is itself a PowExp,
// which is what makes "^" right-associative.
func (c *checker) binaryChain(n *cst.Node) (ir.Expr, error) {
	left, err := c.expr(n.Child(0))
	if err != nil {
		return nil, err
	}
	for i := 1; i+1 < len(n.Children); i += 2 {
		leftNode, opNode, rightNode := n.Children[i-1], n.Children[i], n.Children[i+1]
		right, err := c.expr(rightNode)
		if err != nil {
			return nil, err
		}
		t, err := c.binaryType(opNode.Text, left, right, leftNode, rightNode)
		if err != nil {
			return nil, err
		}
		left = &ir.BinaryExpression{Op: opNode.Text, Left: left, Right: right, ExprType: t}
	}
	return left, nil
}

func (c *checker) binaryType(op string, left, right ir.Expr, leftNode, rightNode *cst.Node) (ir.Type, error) {
	switch op {
	case "or", "and":
		if err := c.checkBoolean(left, leftNode); err != nil {
			return 0, err
		}
		if err := c.checkBoolean(right, rightNode); err != nil {
			return 0, err
		}
		return ir.TypeBoolean, nil
	case "=", "!=", "<", "<=", ">", ">=":
		// comparisons accept any operands
		return ir.TypeBoolean, nil
	case "+":
		if left.Type() == ir.TypeString || right.Type() == ir.TypeString {
			return ir.TypeString, nil
		}
	}
	if err := c.checkNumber(left, leftNode); err != nil {
		return 0, err
	}
	if err := c.checkNumber(right, rightNode); err != nil {
		return 0, err
	}
	return ir.TypeNumber, nil
}

// UnaryExp: [op, operand]
func (c *checker) unary(n *cst.Node) (ir.Expr, error) {
	op, operandNode := n.Child(0), n.Child(1)
	operand, err := c.expr(operandNode)
	if err != nil {
		return nil, err
	}
	if op.Text == "not" {
		if err := c.checkBoolean(operand, operandNode); err != nil {
			return nil, err
		}
		return &ir.UnaryExpression{Op: op.Text, Operand: operand, ExprType: ir.TypeBoolean}, nil
	}
	if err := c.checkNumber(operand, operandNode); err != nil {
		return nil, err
	}
	return &ir.UnaryExpression{Op: op.Text, Operand: operand, ExprType: ir.TypeNumber}, nil
}

// Postfix: [atom, (CallTail | PropTail)...]
func (c *checker) postfix(n *cst.Node) (ir.Expr, error) {
	value, err := c.expr(n.Child(0))
	if err != nil {
		return nil, err
	}
	for _, tail := range n.Children[1:] {
		switch tail.Rule {
		case cst.CallTail:
			value, err = c.call(value, tail)
			if err != nil {
				return nil, err
			}
		case cst.PropTail:
			// object shapes are not tracked; a.b is always any
			value = &ir.PropertyAccess{Object: value, Property: tail.Child(0).Text}
		default:
			return nil, c.errorf(diag.Internal, tail, "unexpected postfix tail %s", tail.Rule)
		}
	}
	return value, nil
}

func (c *checker) call(callee ir.Expr, tail *cst.Node) (ir.Expr, error) {
	args, err := c.args(tail)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(*ir.Function)
	if !ok {
		name := "expression"
		if e, isEntity := callee.(ir.Entity); isEntity {
			name = e.EntityName()
		}
		return nil, c.errorf(diag.NotCallable, tail, "%s is not a function", name)
	}
	if len(fn.Parameters) != len(args) {
		return nil, c.errorf(diag.ArityMismatch, tail,
			"Expected %d argument(s) but %d passed", len(fn.Parameters), len(args))
	}
	return &ir.CallExpression{Callee: fn, Args: args, ExprType: fn.ReturnType}, nil
}

func (c *checker) args(tail *cst.Node) ([]ir.Expr, error) {
	var args []ir.Expr
	for _, a := range tail.Children {
		switch a.Rule {
		case cst.NamedCallArg:
			v, err := c.expr(a.Child(1))
			if err != nil {
				return nil, err
			}
			args = append(args, &ir.NamedArgument{Name: a.Child(0).Text, Value: v})
		case cst.PositionalCallArg:
			v, err := c.expr(a.Child(0))
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		default:
			return nil, c.errorf(diag.Internal, a, "unexpected call argument %s", a.Rule)
		}
	}
	return args, nil
}

// unquote strips the surrounding quotes. Storm strings have no escapes.
func unquote(lit string) string {
	if len(lit) >= 2 && lit[0] == '"' && lit[len(lit)-1] == '"' {
		return lit[1 : len(lit)-1]
	}
	return lit
}
