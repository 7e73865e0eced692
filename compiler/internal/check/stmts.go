package check

import (
	"github.com/stormlang/storm/compiler/internal/cst"
	"github.com/stormlang/storm/compiler/internal/diag"
	"github.com/stormlang/storm/compiler/internal/ir"
)

/* ---------- statements ---------- */

// stmtList analyzes statements in order, dropping those with no IR (comments).
func (c *checker) stmtList(nodes []*cst.Node) ([]ir.Stmt, error) {
	var out []ir.Stmt
	for _, n := range nodes {
		s, err := c.stmt(n)
		if err != nil {
			return nil, err
		}
		if s != nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func (c *checker) stmt(n *cst.Node) (ir.Stmt, error) {
	switch n.Rule {
	case cst.VarDecl:
		return c.varDecl(n)
	case cst.FunctionDecl:
		return c.functionDecl(n)
	case cst.ObjectDecl:
		return c.objectDecl(n)
	case cst.LoopStmt:
		return c.loopStmt(n)
	case cst.IfStmt:
		return c.ifStmt(n)
	case cst.SayStmt:
		arg, err := c.expr(n.Child(0))
		if err != nil {
			return nil, err
		}
		return &ir.SayStatement{Argument: arg}, nil
	case cst.StopStmt:
		if !c.scope.inLoop {
			return nil, c.errorf(diag.IllegalControlFlow, n, "stop running only inside a lap")
		}
		return &ir.StopStatement{}, nil
	case cst.ExpressionStmt:
		e, err := c.expr(n.Child(0))
		if err != nil {
			return nil, err
		}
		return &ir.ExpressionStatement{Expression: e}, nil
	case cst.Comment:
		return nil, nil
	}
	return nil, c.errorf(diag.Internal, n, "unexpected statement %s", n.Rule)
}

// set <id> to <expr>
func (c *checker) varDecl(n *cst.Node) (ir.Stmt, error) {
	id := n.Child(0)
	if err := c.checkNotDeclared(id); err != nil {
		return nil, err
	}
	init, err := c.expr(n.Child(1))
	if err != nil {
		return nil, err
	}
	v := c.reg.NewVariable(id.Text, init.Type())
	c.scope.define(id.Text, v)
	return &ir.VariableDeclaration{Variable: v, Initializer: init}, nil
}

func (c *checker) functionDecl(n *cst.Node) (ir.Stmt, error) {
	params, body, err := c.callable(n)
	if err != nil {
		return nil, err
	}
	name := n.Child(0).Text
	fn := c.reg.NewFunction(name, params, body)
	c.scope.define(name, fn)
	return &ir.FunctionDeclaration{Fun: fn}, nil
}

func (c *checker) objectDecl(n *cst.Node) (ir.Stmt, error) {
	params, body, err := c.callable(n)
	if err != nil {
		return nil, err
	}
	name := n.Child(0).Text
	obj := c.reg.NewObject(name, params, body)
	c.scope.define(name, obj)
	return &ir.ObjectDeclaration{Obj: obj}, nil
}

// callable analyzes the parameters and body of a program or object
// declaration in a child scope outside any lap. The declared name itself is
// bound by the caller once the body is done.
func (c *checker) callable(n *cst.Node) ([]*ir.Variable, []ir.Stmt, error) {
	if err := c.checkNotDeclared(n.Child(0)); err != nil {
		return nil, nil, err
	}
	var (
		params []*ir.Variable
		body   []ir.Stmt
	)
	err := c.withScope(false, func() error {
		for _, p := range n.Child(1).Children {
			if err := c.checkNotDeclared(p); err != nil {
				return err
			}
			v := c.reg.NewVariable(p.Text, ir.TypeAny)
			c.scope.define(p.Text, v)
			params = append(params, v)
		}
		var err error
		body, err = c.block(n.Child(2))
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return params, body, nil
}

// start lap (forever | <expr>) ... lap
func (c *checker) loopStmt(n *cst.Node) (ir.Stmt, error) {
	loop := &ir.LoopStatement{}
	if mod := n.Child(0); mod.Rule == cst.Forever {
		loop.Forever = true
	} else {
		cond, err := c.expr(mod)
		if err != nil {
			return nil, err
		}
		if err := c.checkBoolean(cond, mod); err != nil {
			return nil, err
		}
		loop.Modifier = cond
	}
	err := c.withScope(true, func() error {
		var err error
		loop.Body, err = c.block(n.Child(1))
		return err
	})
	if err != nil {
		return nil, err
	}
	return loop, nil
}

// if <expr> ... (else ...)? end if
func (c *checker) ifStmt(n *cst.Node) (ir.Stmt, error) {
	test, err := c.expr(n.Child(0))
	if err != nil {
		return nil, err
	}
	if err := c.checkBoolean(test, n.Child(0)); err != nil {
		return nil, err
	}
	cons, err := c.block(n.Child(1))
	if err != nil {
		return nil, err
	}
	st := &ir.IfStatement{Test: test, Consequent: cons}
	if alt := n.Child(2); alt != nil {
		if st.Alternate, err = c.block(alt); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// block opens its own scope, inheriting the lap flag of the enclosing one.
func (c *checker) block(n *cst.Node) ([]ir.Stmt, error) {
	var stmts []ir.Stmt
	err := c.withScope(c.scope.inLoop, func() error {
		var err error
		stmts, err = c.stmtList(n.Children)
		return err
	})
	return stmts, err
}
