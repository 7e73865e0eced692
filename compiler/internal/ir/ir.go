// Package ir holds the validated intermediate representation produced by
// the analyzer, rewritten by the optimizer and consumed by the generator.
package ir

/*** NODES ***/

type Node interface{ node() }

type Program struct {
	Statements []Stmt
}

func (*Program) node() {}

/*** STATEMENTS ***/

type Stmt interface {
	Node
	stmt()
}

type VariableDeclaration struct {
	Variable    *Variable
	Initializer Expr
}

type FunctionDeclaration struct {
	Fun *Function
}

type ObjectDeclaration struct {
	Obj *Object
}

// LoopStatement repeats Body. Forever loops have no Modifier; otherwise the
// loop runs while Modifier holds.
type LoopStatement struct {
	Forever  bool
	Modifier Expr
	Body     []Stmt
}

type IfStatement struct {
	Test       Expr
	Consequent []Stmt
	Alternate  []Stmt // nil if absent
}

type SayStatement struct {
	Argument Expr
}

type StopStatement struct{}

type ExpressionStatement struct {
	Expression Expr
}

func (*VariableDeclaration) node() {}
func (*VariableDeclaration) stmt() {}
func (*FunctionDeclaration) node() {}
func (*FunctionDeclaration) stmt() {}
func (*ObjectDeclaration) node()   {}
func (*ObjectDeclaration) stmt()   {}
func (*LoopStatement) node()       {}
func (*LoopStatement) stmt()       {}
func (*IfStatement) node()         {}
func (*IfStatement) stmt()         {}
func (*SayStatement) node()        {}
func (*SayStatement) stmt()        {}
func (*StopStatement) node()       {}
func (*StopStatement) stmt()       {}
func (*ExpressionStatement) node() {}
func (*ExpressionStatement) stmt() {}

/*** EXPRESSIONS ***/

type Expr interface {
	Node
	expr()
	Type() Type
}

type NumberLiteral struct{ Value float64 }

type StringLiteral struct{ Value string }

type BooleanLiteral struct{ Value bool }

// AskLiteral reads a line interactively. Value is the prompt literal exactly
// as written, quotes included.
type AskLiteral struct{ Value string }

type BinaryExpression struct {
	Op       string
	Left     Expr
	Right    Expr
	ExprType Type
}

type UnaryExpression struct {
	Op       string
	Operand  Expr
	ExprType Type
}

type CallExpression struct {
	Callee   *Function
	Args     []Expr
	ExprType Type
}

// NamedArgument is a "name to value" call argument. It counts toward arity
// like any other argument; Name is not matched against parameters.
type NamedArgument struct {
	Name  string
	Value Expr
}

// PropertyAccess is "object.property". Properties are not tracked, so the
// result is always typed any.
type PropertyAccess struct {
	Object   Expr
	Property string
}

func (*NumberLiteral) Type() Type      { return TypeNumber }
func (*StringLiteral) Type() Type      { return TypeString }
func (*BooleanLiteral) Type() Type     { return TypeBoolean }
func (*AskLiteral) Type() Type         { return TypeString }
func (e *BinaryExpression) Type() Type { return e.ExprType }
func (e *UnaryExpression) Type() Type  { return e.ExprType }
func (e *CallExpression) Type() Type   { return e.ExprType }
func (a *NamedArgument) Type() Type    { return a.Value.Type() }
func (*PropertyAccess) Type() Type     { return TypeAny }

func (*NumberLiteral) node()    {}
func (*NumberLiteral) expr()    {}
func (*StringLiteral) node()    {}
func (*StringLiteral) expr()    {}
func (*BooleanLiteral) node()   {}
func (*BooleanLiteral) expr()   {}
func (*AskLiteral) node()       {}
func (*AskLiteral) expr()       {}
func (*BinaryExpression) node() {}
func (*BinaryExpression) expr() {}
func (*UnaryExpression) node()  {}
func (*UnaryExpression) expr()  {}
func (*CallExpression) node()   {}
func (*CallExpression) expr()   {}
func (*NamedArgument) node()    {}
func (*NamedArgument) expr()    {}
func (*PropertyAccess) node()   {}
func (*PropertyAccess) expr()   {}
