// Package check is the semantic analyzer. It walks the concrete syntax tree,
// resolves names through nested scopes, enforces the typing rules and
// produces IR. Analysis stops at the first violation.
package check

import (
	"github.com/stormlang/storm/compiler/internal/cst"
	"github.com/stormlang/storm/compiler/internal/diag"
	"github.com/stormlang/storm/compiler/internal/ir"
)

type checker struct {
	reg   *ir.Registry
	scope *scope
}

// Analyze validates root and lowers it to IR. The returned error, if any, is
// a *diag.Diagnostic whose kind can be tested with errors.Is.
func Analyze(root *cst.Node) (*ir.Program, error) {
	prog, _, err := AnalyzeWith(root, ir.NewRegistry())
	return prog, err
}

// AnalyzeWith is Analyze with a caller-supplied registry, which is returned
// holding every entity the program declares.
func AnalyzeWith(root *cst.Node, reg *ir.Registry) (*ir.Program, *ir.Registry, error) {
	if root == nil || root.Rule != cst.Program {
		return nil, reg, diag.New(diag.Internal, diag.Pos{}, "analyze: expected a Program node")
	}
	c := &checker{reg: reg, scope: newScope(nil, false)}
	stmts, err := c.stmtList(root.Children)
	if err != nil {
		return nil, reg, err
	}
	return &ir.Program{Statements: stmts}, reg, nil
}

func (c *checker) errorf(kind diag.Kind, at *cst.Node, format string, args ...any) error {
	return diag.New(kind, at.Pos, format, args...)
}

// withScope runs body in a fresh child scope and restores the current scope
// on every exit path.
func (c *checker) withScope(inLoop bool, body func() error) error {
	prev := c.scope
	c.scope = newScope(prev, inLoop)
	defer func() { c.scope = prev }()
	return body()
}

// checkNotDeclared fails when name is already bound anywhere in the active chain.
// Storm has no shadowing.
func (c *checker) checkNotDeclared(id *cst.Node) error {
	if _, ok := c.scope.lookup(id.Text); ok {
		return c.errorf(diag.Redeclaration, id, "Already declared: %s", id.Text)
	}
	return nil
}

func (c *checker) checkNumber(e ir.Expr, at *cst.Node) error {
	if !e.Type().IsNumeric() {
		return c.errorf(diag.TypeMismatch, at, "Expected number")
	}
	return nil
}

func (c *checker) checkBoolean(e ir.Expr, at *cst.Node) error {
	if !e.Type().IsBoolean() {
		return c.errorf(diag.TypeMismatch, at, "Expected boolean")
	}
	return nil
}
