// Package js emits JavaScript from optimized IR.
//
// Every declared entity is emitted as its source name plus an ordinal
// ("x_1", "f_2"). Ordinals are handed out on first encounter in traversal
// order, keyed by entity ID, so two entities sharing a name never collide
// and every reference to one entity spells the same name.
package js

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/stormlang/storm/compiler/internal/ir"
	"github.com/stormlang/storm/compiler/internal/term"
)

// Options tunes the emitted text.
type Options struct {
	Indent int // spaces per nesting level; 0 means 2
}

type generator struct {
	sb     strings.Builder
	indent int
	unit   string
	names  map[ir.EntityID]int
}

// Generate emits p with default options.
func Generate(p *ir.Program) string {
	return GenerateWith(p, Options{})
}

func GenerateWith(p *ir.Program, opts Options) string {
	width := opts.Indent
	if width <= 0 {
		width = 2
	}
	g := &generator{
		unit:  strings.Repeat(" ", width),
		names: map[ir.EntityID]int{},
	}
	g.stmts(p.Statements)
	return g.sb.String()
}

/* ---------- output ---------- */

func (g *generator) line(format string, args ...any) {
	g.sb.WriteString(strings.Repeat(g.unit, g.indent))
	term.Bprintf(&g.sb, format, args...)
	g.sb.WriteByte('\n')
}

func (g *generator) nested(body func()) {
	g.indent++
	body()
	g.indent--
}

// name returns the mangled name of e, assigning the next ordinal on first use.
func (g *generator) name(e ir.Entity) string {
	n, ok := g.names[e.ID()]
	if !ok {
		n = len(g.names) + 1
		g.names[e.ID()] = n
	}
	return e.EntityName() + "_" + strconv.Itoa(n)
}

/* ---------- statements ---------- */

func (g *generator) stmts(list []ir.Stmt) {
	for _, s := range list {
		g.stmt(s)
	}
}

func (g *generator) stmt(s ir.Stmt) {
	switch st := s.(type) {
	case *ir.VariableDeclaration:
		name := g.name(st.Variable)
		g.line("let %s = %s;", name, g.expr(st.Initializer))
	case *ir.FunctionDeclaration:
		name := g.name(st.Fun)
		g.line("function %s(%s) {", name, g.params(st.Fun.Parameters))
		g.nested(func() { g.stmts(st.Fun.Body) })
		g.line("}")
	case *ir.ObjectDeclaration:
		g.object(st.Obj)
	case *ir.LoopStatement:
		guard := "true"
		if !st.Forever {
			guard = g.expr(st.Modifier)
		}
		g.line("while (%s) {", guard)
		g.nested(func() { g.stmts(st.Body) })
		g.line("}")
	case *ir.IfStatement:
		g.line("if (%s) {", g.expr(st.Test))
		g.nested(func() { g.stmts(st.Consequent) })
		if st.Alternate != nil {
			g.line("} else {")
			g.nested(func() { g.stmts(st.Alternate) })
		}
		g.line("}")
	case *ir.SayStatement:
		g.line("console.log(%s);", g.expr(st.Argument))
	case *ir.StopStatement:
		g.line("break;")
	case *ir.ExpressionStatement:
		g.line("%s;", g.expr(st.Expression))
	}
}

func (g *generator) params(ps []*ir.Variable) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = g.name(p)
	}
	return strings.Join(names, ", ")
}

// object lowers to a class. The constructor stores every parameter in a
// field of the same name; variable declarations in the body become further
// fields and any other statement is dropped.
func (g *generator) object(o *ir.Object) {
	name := g.name(o)
	g.line("class %s {", name)
	g.nested(func() {
		g.line("constructor(%s) {", g.params(o.Parameters))
		g.nested(func() {
			for _, p := range o.Parameters {
				id := g.name(p)
				g.line("this.%s = %s;", id, id)
			}
			for _, s := range o.Body {
				if d, ok := s.(*ir.VariableDeclaration); ok {
					field := g.name(d.Variable)
					g.line("this.%s = %s;", field, g.expr(d.Initializer))
				}
			}
		})
		g.line("}")
	})
	g.line("}")
}

/* ---------- expressions ---------- */

func (g *generator) expr(e ir.Expr) string {
	switch ex := e.(type) {
	case ir.Entity:
		return g.name(ex)
	case *ir.NumberLiteral:
		return formatNumber(ex.Value)
	case *ir.StringLiteral:
		return quoteString(ex.Value)
	case *ir.BooleanLiteral:
		return strconv.FormatBool(ex.Value)
	case *ir.AskLiteral:
		// the stored literal keeps its quotes and is forwarded as written
		return "prompt(" + ex.Value + ")"
	case *ir.BinaryExpression:
		op := binaryOp(ex.Op)
		left := g.expr(ex.Left)
		if op == "**" && strings.HasPrefix(left, "-") {
			// a bare unary minus may not be the base of **
			left = "(" + left + ")"
		}
		right := g.expr(ex.Right)
		return "(" + left + " " + op + " " + right + ")"
	case *ir.UnaryExpression:
		operand := g.expr(ex.Operand)
		if ex.Op == "not" {
			return "(!" + operand + ")"
		}
		return "(-" + operand + ")"
	case *ir.CallExpression:
		callee := g.name(ex.Callee)
		args := make([]string, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = g.expr(a)
		}
		return callee + "(" + strings.Join(args, ", ") + ")"
	case *ir.NamedArgument:
		// names are not matched to parameters; the value is passed in place
		return g.expr(ex.Value)
	case *ir.PropertyAccess:
		return g.expr(ex.Object) + "." + ex.Property
	}
	return "undefined"
}

func binaryOp(op string) string {
	switch op {
	case "=":
		return "==="
	case "!=":
		return "!=="
	case "^":
		return "**"
	case "and":
		return "&&"
	case "or":
		return "||"
	}
	return op
}

// formatNumber spells v the way JavaScript's String(v) does.
func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[0]
		exp = strings.TrimLeft(exp[1:], "0")
		return mant + "e" + string(sign) + exp
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func quoteString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
