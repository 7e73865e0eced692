// Package cst is the concrete syntax tree handed from the parser to the
// semantic analyzer. Every node is labelled with the name of the grammar
// rule that matched it; the analyzer dispatches on that label.
package cst

import (
	"fmt"
	"strings"

	"github.com/stormlang/storm/compiler/internal/diag"
)

// Rule names produced by the parser.
const (
	Program        = "Program"
	VarDecl        = "VarDecl"
	FunctionDecl   = "FunctionDecl"
	ObjectDecl     = "ObjectDecl"
	LoopStmt       = "LoopStmt"
	IfStmt         = "IfStmt"
	SayStmt        = "SayStmt"
	StopStmt       = "StopStmt"
	ExpressionStmt = "ExpressionStmt"
	Comment        = "Comment"
	Block          = "Block"
	ParameterList  = "ParameterList"

	OrExp    = "OrExp"
	AndExp   = "AndExp"
	EqExp    = "EqExp"
	RelExp   = "RelExp"
	AddExp   = "AddExp"
	MulExp   = "MulExp"
	PowExp   = "PowExp"
	UnaryExp = "UnaryExp"
	Postfix  = "Postfix"
	CallTail = "CallTail"
	PropTail = "PropTail"

	NamedCallArg      = "NamedCallArg"
	PositionalCallArg = "PositionalCallArg"

	NumberLiteral  = "NumberLiteral"
	StringLiteral  = "StringLiteral"
	AskLiteral     = "AskLiteral"
	BooleanLiteral = "BooleanLiteral"
	Identifier     = "identifier"
	ParenExp       = "ParenExp"
	Forever        = "forever"
	Op             = "op"
)

// Node is one matched rule. Text is the matched source for leaves
// (identifiers, literals, operators); interior nodes leave it empty.
type Node struct {
	Rule     string
	Text     string
	Pos      diag.Pos
	Children []*Node
}

// New builds an interior node positioned at its first child.
func New(rule string, pos diag.Pos, children ...*Node) *Node {
	return &Node{Rule: rule, Pos: pos, Children: children}
}

// Leaf builds a node carrying matched text.
func Leaf(rule, text string, pos diag.Pos) *Node {
	return &Node{Rule: rule, Text: text, Pos: pos}
}

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// SourceString reconstructs a compact textual form of the node.
func (n *Node) SourceString() string {
	if n == nil {
		return ""
	}
	if n.Text != "" || len(n.Children) == 0 {
		return n.Text
	}
	var parts []string
	for _, c := range n.Children {
		parts = append(parts, c.SourceString())
	}
	return strings.Join(parts, " ")
}

/*** DUMP (pretty outline for CLI) ***/

// Dump renders an indented outline of the tree, one node per line.
func Dump(n *Node) string {
	var b strings.Builder
	dump(&b, n, 0)
	return b.String()
}

func dump(b *strings.Builder, n *Node, depth int) {
	if n == nil {
		return
	}
	b.WriteString(strings.Repeat("  ", depth))
	if n.Text != "" {
		fmt.Fprintf(b, "%s %q @%s\n", n.Rule, n.Text, n.Pos)
	} else {
		fmt.Fprintf(b, "%s @%s\n", n.Rule, n.Pos)
	}
	for _, c := range n.Children {
		dump(b, c, depth+1)
	}
}
