package parser

import (
	"errors"
	"testing"

	"github.com/stormlang/storm/compiler/internal/cst"
	"github.com/stormlang/storm/compiler/internal/diag"
)

func mustParse(t *testing.T, src string) *cst.Node {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v\nsource:\n%s", err, src)
	}
	return prog
}

func TestValidPrograms(t *testing.T) {
	cases := map[string]string{
		"variable declaration": "set x to 42\nset myVar to x + 3 * (y - 1)",
		"function declaration": `
			set program foo()
			  say "hi"
			end program
			set program add(a, b)
			  set sum to a + b
			  say sum
			end program`,
		"object declaration": `
			set object Box(width, height)
			  set area to width * height
			end object`,
		"loops": `
			start lap forever
			  stop running
			lap
			start lap i < 10
			  set i to i + 1
			lap`,
		"if/else": `
			if x > 0
			  say "pos"
			else
			  say "non-pos"
			end if`,
		"say & stop":          `say "hello world" say 123 * 2 stop running`,
		"expression stmts":    `x + y  ask "name"  foo.bar(1,2).baz`,
		"number literals":     "0 123 3.14159",
		"string literals":     `"simple" "with spaces and 123"`,
		"operators":           "-x not true and false or x != y 2 ^ 3 ^ 2",
		"named call argument": "draw(width to 3, 4)",
		"comments":            "# hello\nset x to 1 # trailing\n",
		"nesting": `
			set program nest()
			  start lap forever
			    if a <= b
			      say "ok"
			    else
			      stop running
			    end if
			  lap
			end program`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) { mustParse(t, src) })
	}
}

func TestInvalidPrograms(t *testing.T) {
	cases := map[string]string{
		"bad var decl number":      "set 5 to x",
		"bad var decl keyword":     "set x too 5",
		"reserved program name":    "set program program()\nend program",
		"reserved object name":     "set object if()\nend object",
		"missing loop modifier":    "start lap lap",
		"missing closing lap":      "start lap x < 10",
		"if without condition ops": "if x end if",
		"else without then-block":  "if x = 1 else end if",
		"say without expression":   "say",
		"stop without running":     "stop",
		"unclosed string":          `"unclosed string`,
		"dot without digits":       "1.",
		"ask needs a string":       "ask name",
		"spaced property access":   "foo . bar",
		"stray end":                "end program",
		"unclosed call":            "foo(1, 2",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(src)
			if err == nil {
				t.Fatalf("expected parse failure for %q", src)
			}
			if !errors.Is(err, diag.Syntax) {
				t.Fatalf("error %v is not a syntax diagnostic", err)
			}
		})
	}
}

func TestVarDeclShape(t *testing.T) {
	prog := mustParse(t, "set x to 1 + 2 * 3")
	if len(prog.Children) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Children))
	}
	decl := prog.Children[0]
	if decl.Rule != cst.VarDecl || decl.Child(0).Text != "x" {
		t.Fatalf("stmt0 = %s %q", decl.Rule, decl.Child(0).Text)
	}
	plus := decl.Child(1)
	if plus.Rule != cst.AddExp || plus.Child(1).Text != "+" {
		t.Fatalf("initializer not AddExp '+': %s", cst.Dump(plus))
	}
	if times := plus.Child(2); times.Rule != cst.MulExp || times.Child(1).Text != "*" {
		t.Fatalf("right child not MulExp '*': %s", cst.Dump(times))
	}
}

func TestPowerIsRightAssociative(t *testing.T) {
	prog := mustParse(t, "say 2 ^ 3 ^ 2")
	pow := prog.Children[0].Child(0)
	if pow.Rule != cst.PowExp || pow.Child(0).Text != "2" {
		t.Fatalf("outer = %s", cst.Dump(pow))
	}
	inner := pow.Child(2)
	if inner.Rule != cst.PowExp || inner.Child(0).Text != "3" || inner.Child(2).Text != "2" {
		t.Fatalf("inner = %s", cst.Dump(inner))
	}
}

func TestLeftAssociativeChain(t *testing.T) {
	prog := mustParse(t, "say 10 - 4 - 3")
	sub := prog.Children[0].Child(0)
	if sub.Rule != cst.AddExp || len(sub.Children) != 5 {
		t.Fatalf("chain = %s", cst.Dump(sub))
	}
}

func TestPostfixTails(t *testing.T) {
	prog := mustParse(t, "foo.bar(1, n to 2).baz")
	post := prog.Children[0].Child(0)
	if post.Rule != cst.Postfix || len(post.Children) != 4 {
		t.Fatalf("postfix = %s", cst.Dump(post))
	}
	rules := []string{cst.Identifier, cst.PropTail, cst.CallTail, cst.PropTail}
	for i, want := range rules {
		if got := post.Child(i).Rule; got != want {
			t.Fatalf("child %d = %s, want %s", i, got, want)
		}
	}
	call := post.Child(2)
	if call.Child(0).Rule != cst.PositionalCallArg || call.Child(1).Rule != cst.NamedCallArg {
		t.Fatalf("call args = %s", cst.Dump(call))
	}
}

func TestLoopAndIfShapes(t *testing.T) {
	prog := mustParse(t, "start lap forever\n stop running\nlap\nif a\n say 1\nelse\n say 2\nend if")
	loop := prog.Children[0]
	if loop.Rule != cst.LoopStmt || loop.Child(0).Rule != cst.Forever || loop.Child(1).Rule != cst.Block {
		t.Fatalf("loop = %s", cst.Dump(loop))
	}
	ifs := prog.Children[1]
	if ifs.Rule != cst.IfStmt || len(ifs.Children) != 3 {
		t.Fatalf("if = %s", cst.Dump(ifs))
	}
}

func TestCommentStatements(t *testing.T) {
	prog := mustParse(t, "# one\nset x to # inside\n 1\n# two")
	var rules []string
	for _, c := range prog.Children {
		rules = append(rules, c.Rule)
	}
	want := []string{cst.Comment, cst.VarDecl, cst.Comment}
	if len(rules) != len(want) {
		t.Fatalf("rules = %v, want %v", rules, want)
	}
	for i := range want {
		if rules[i] != want[i] {
			t.Fatalf("rules = %v, want %v", rules, want)
		}
	}
}

func TestErrorPositionAndIncomplete(t *testing.T) {
	_, err := Parse("set x to\n  )")
	var d *diag.Diagnostic
	if !errors.As(err, &d) {
		t.Fatalf("error %v is not a diagnostic", err)
	}
	if d.Pos() != (diag.Pos{Line: 2, Col: 3}) {
		t.Fatalf("error at %v, want 2:3", d.Pos())
	}
	if IsIncomplete(err) {
		t.Fatalf("a stray ')' is not incomplete input")
	}

	_, err = Parse("start lap forever\n say 1")
	if !IsIncomplete(err) {
		t.Fatalf("unterminated lap should be incomplete, got %v", err)
	}
}
