package opt

import (
	"math"
	"testing"

	"github.com/stormlang/storm/compiler/internal/check"
	"github.com/stormlang/storm/compiler/internal/ir"
	"github.com/stormlang/storm/compiler/internal/parser"
)

func compile(t *testing.T, src string) *ir.Program {
	t.Helper()
	root, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	prog, err := check.Analyze(root)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return prog
}

func initializer(t *testing.T, p *ir.Program, i int) ir.Expr {
	t.Helper()
	d, ok := p.Statements[i].(*ir.VariableDeclaration)
	if !ok {
		t.Fatalf("statement %d is %T, want variable declaration", i, p.Statements[i])
	}
	return d.Initializer
}

func TestIdempotent(t *testing.T) {
	srcs := []string{
		"set x to 1 + 2 * 3 ^ 2",
		"set x to 5\nset y to (x + 0) * 1 + (0 + 0)",
		`set s to "a" + "b" + "c"`,
		"set b to not not true",
		"set n to -(-(4 / 0))",
		"start lap forever\n say 1\n stop running\n say 2\nlap",
		"set program f(a)\n say a * 1\nend program\nf(2 - 0)",
		"set object P(a)\n set b to a / 1\nend object",
		"start lap 1 < 2 + 0\n if true\n stop running\n say 1\n end if\n say 2\nlap",
	}
	for _, src := range srcs {
		once := Optimize(compile(t, src))
		twice := Optimize(once)
		if a, b := ir.Dump(once), ir.Dump(twice); a != b {
			t.Fatalf("not idempotent for %q:\nonce:\n%s\ntwice:\n%s", src, a, b)
		}
	}
}

func TestFoldPowerOfOneToInfinity(t *testing.T) {
	for _, src := range []string{"set v to 1 ^ (1 / 0)", "set v to -1 ^ (-1 / 0)"} {
		got, ok := initializer(t, Optimize(compile(t, src)), 0).(*ir.NumberLiteral)
		if !ok {
			t.Fatalf("%s: not folded", src)
		}
		if !math.IsNaN(got.Value) {
			t.Fatalf("%s: want NaN, got %v", src, got.Value)
		}
	}
}

func TestFoldNumbers(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"set v to 1 + 2", 3},
		{"set v to 7 - 10", -3},
		{"set v to 2.5 * 4", 10},
		{"set v to 1 / 3", 1.0 / 3.0},
		{"set v to 2 ^ 10", 1024},
		{"set v to 2 ^ 3 ^ 2", 512},
		{"set v to 1 + 2 * 3", 7},
		{"set v to -5 + 2", -3},
		{"set v to 1 / 0", math.Inf(1)},
		{"set v to -1 / 0", math.Inf(-1)},
	}
	for _, tc := range cases {
		got, ok := initializer(t, Optimize(compile(t, tc.src)), 0).(*ir.NumberLiteral)
		if !ok {
			t.Fatalf("%s: not folded", tc.src)
		}
		if got.Value != tc.want {
			t.Fatalf("%s: want %v, got %v", tc.src, tc.want, got.Value)
		}
	}
}

func TestFoldZeroByZero(t *testing.T) {
	got, ok := initializer(t, Optimize(compile(t, "set v to 0 / 0")), 0).(*ir.NumberLiteral)
	if !ok || !math.IsNaN(got.Value) {
		t.Fatalf("want NaN literal, got %#v", got)
	}
}

func TestFoldStringsAndBooleans(t *testing.T) {
	p := Optimize(compile(t, `set s to "ab" + "cd" set b to not true set c to not not false`))
	if s, ok := initializer(t, p, 0).(*ir.StringLiteral); !ok || s.Value != "abcd" {
		t.Fatalf("want folded \"abcd\", got %#v", initializer(t, p, 0))
	}
	if b, ok := initializer(t, p, 1).(*ir.BooleanLiteral); !ok || b.Value {
		t.Fatalf("want false, got %#v", initializer(t, p, 1))
	}
	if b, ok := initializer(t, p, 2).(*ir.BooleanLiteral); !ok || b.Value {
		t.Fatalf("want false, got %#v", initializer(t, p, 2))
	}
}

func TestNoFold(t *testing.T) {
	srcs := []string{
		`set v to "a" + 1`,
		"set v to 1 < 2",
		"set v to 1 = 1",
		"set v to true and false",
	}
	for _, src := range srcs {
		if _, ok := initializer(t, Optimize(compile(t, src)), 0).(*ir.BinaryExpression); !ok {
			t.Fatalf("%s: should stay a binary expression", src)
		}
	}
}

func TestIdentities(t *testing.T) {
	for _, form := range []string{"x + 0", "0 + x", "x - 0", "x * 1", "1 * x", "x / 1"} {
		p := Optimize(compile(t, "set x to 5\nset y to "+form))
		x := p.Statements[0].(*ir.VariableDeclaration).Variable
		if got := initializer(t, p, 1); got != ir.Expr(x) {
			t.Fatalf("%s: want the variable itself, got %#v", form, got)
		}
	}
}

func TestIdentityKeepsSubtree(t *testing.T) {
	p := Optimize(compile(t, "set x to 5\nset y to (x * x) * 1"))
	got, ok := initializer(t, p, 1).(*ir.BinaryExpression)
	if !ok || got.Op != "*" {
		t.Fatalf("want x * x, got %#v", initializer(t, p, 1))
	}
}

func TestNoExtraIdentities(t *testing.T) {
	for _, form := range []string{"x * 0", "x ^ 1", "0 - x", "1 / x", "x + 1"} {
		p := Optimize(compile(t, "set x to 5\nset y to "+form))
		if _, ok := initializer(t, p, 1).(*ir.BinaryExpression); !ok {
			t.Fatalf("%s: should not simplify", form)
		}
	}
}

func TestStringPlusZeroNotSimplified(t *testing.T) {
	p := Optimize(compile(t, "set s to ask \"n\"\nset y to s + 0"))
	if _, ok := initializer(t, p, 1).(*ir.BinaryExpression); !ok {
		t.Fatalf("string concatenation with 0 must stay")
	}
}

func TestTruncateLoopBody(t *testing.T) {
	p := Optimize(compile(t, "start lap forever\n say 1\n stop running\n say 2\n say 3\nlap"))
	loop := p.Statements[0].(*ir.LoopStatement)
	if len(loop.Body) != 2 {
		t.Fatalf("want 2 statements in loop body, got %d", len(loop.Body))
	}
	if _, ok := loop.Body[1].(*ir.StopStatement); !ok {
		t.Fatalf("want stop last, got %T", loop.Body[1])
	}
}

func TestIfBranchDoesNotTruncate(t *testing.T) {
	p := Optimize(compile(t, "start lap forever\n if true\n stop running\n say 0\n end if\n say 1\n say 2\nlap"))
	loop := p.Statements[0].(*ir.LoopStatement)
	if len(loop.Body) != 3 {
		t.Fatalf("statements after the if must stay, got %d", len(loop.Body))
	}
	ifs := loop.Body[0].(*ir.IfStatement)
	if len(ifs.Consequent) != 2 {
		t.Fatalf("if consequent is not truncated, got %d", len(ifs.Consequent))
	}
}

func TestTruncateFunctionBody(t *testing.T) {
	src := "start lap forever\n set program f()\n say 1\n end program\n stop running\n f()\nlap\nsay 9"
	p := Optimize(compile(t, src))
	loop := p.Statements[0].(*ir.LoopStatement)
	if len(loop.Body) != 2 {
		t.Fatalf("want declaration and stop, got %d", len(loop.Body))
	}
	if len(p.Statements) != 2 {
		t.Fatalf("top level must keep the say after the loop, got %d", len(p.Statements))
	}
}

func TestFunctionIdentityKept(t *testing.T) {
	in := compile(t, "set program f()\n say 1 + 1\nend program\nf()")
	out := Optimize(in)
	before := in.Statements[0].(*ir.FunctionDeclaration).Fun
	after := out.Statements[0].(*ir.FunctionDeclaration).Fun
	if before.ID() != after.ID() {
		t.Fatalf("optimized program lost its identity")
	}
	if _, ok := after.Body[0].(*ir.SayStatement).Argument.(*ir.NumberLiteral); !ok {
		t.Fatalf("body not optimized")
	}
	if _, ok := before.Body[0].(*ir.SayStatement).Argument.(*ir.BinaryExpression); !ok {
		t.Fatalf("input was modified")
	}
}

func TestLoopModifierOptimized(t *testing.T) {
	p := Optimize(compile(t, "set i to 0\nstart lap i < 2 * 5\nlap"))
	mod := p.Statements[1].(*ir.LoopStatement).Modifier.(*ir.BinaryExpression)
	if n, ok := mod.Right.(*ir.NumberLiteral); !ok || n.Value != 10 {
		t.Fatalf("modifier not folded: %#v", mod.Right)
	}
}

func TestEndToEndUnchanged(t *testing.T) {
	in := compile(t, "set x to 5\nset y to x + 2")
	if a, b := ir.Dump(in), ir.Dump(Optimize(in)); a != b {
		t.Fatalf("expected no change:\n%s\n%s", a, b)
	}
}
