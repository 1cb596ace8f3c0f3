package parser

import (
	"nilan/ast"
	"nilan/lexer"
	"nilan/token"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// tokenIgnoringOpts ignores source position fields when diffing parsed ASTs:
// two parses of the same program produce structurally equal trees even if
// we only care about shape, not where each token happened to land.
var tokenIgnoringOpts = cmp.Options{
	cmpopts.IgnoreFields(token.Token{}, "Line", "Column"),
}

func parse(t *testing.T, source string) []ast.Stmt {
	t.Helper()
	tokens := lexer.New(source).Scan()
	stmts, errs := Make(tokens).Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", source, errs)
	}
	return stmts
}

func TestParseVarDeclaration(t *testing.T) {
	stmts := parse(t, "var x = 1 + 2;")
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	varStmt, ok := stmts[0].(*ast.VarStmt)
	if !ok {
		t.Fatalf("expected *ast.VarStmt, got %T", stmts[0])
	}
	if varStmt.Name.Lexeme != "x" {
		t.Errorf("varStmt.Name.Lexeme = %q, want %q", varStmt.Name.Lexeme, "x")
	}
	if _, ok := varStmt.Initializer.(*ast.Binary); !ok {
		t.Errorf("expected *ast.Binary initializer, got %T", varStmt.Initializer)
	}
}

func TestParseIfElse(t *testing.T) {
	stmts := parse(t, `if (true) print "yes"; else print "no";`)
	ifStmt, ok := stmts[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected *ast.IfStmt, got %T", stmts[0])
	}
	if ifStmt.Else == nil {
		t.Fatal("expected non-nil else branch")
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts := parse(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	block, ok := stmts[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("expected desugared *ast.BlockStmt, got %T", stmts[0])
	}
	if len(block.Statements) != 2 {
		t.Fatalf("expected initializer + while, got %d statements", len(block.Statements))
	}
	if _, ok := block.Statements[0].(*ast.VarStmt); !ok {
		t.Errorf("expected first statement to be the initializer VarStmt, got %T", block.Statements[0])
	}
	whileStmt, ok := block.Statements[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected second statement to be *ast.WhileStmt, got %T", block.Statements[1])
	}
	body, ok := whileStmt.Body.(*ast.BlockStmt)
	if !ok {
		t.Fatalf("expected while body wrapped with increment, got %T", whileStmt.Body)
	}
	if len(body.Statements) != 2 {
		t.Fatalf("expected body + increment, got %d statements", len(body.Statements))
	}
}

func TestParseClassWithSuperclassAndMethods(t *testing.T) {
	stmts := parse(t, `class Cake < Pastry { bake() { return this.temp; } }`)
	classStmt, ok := stmts[0].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("expected *ast.ClassStmt, got %T", stmts[0])
	}
	if classStmt.Superclass == nil || classStmt.Superclass.Name.Lexeme != "Pastry" {
		t.Fatalf("expected superclass Pastry, got %v", classStmt.Superclass)
	}
	if len(classStmt.Methods) != 1 || classStmt.Methods[0].Name.Lexeme != "bake" {
		t.Fatalf("expected one method named bake, got %v", classStmt.Methods)
	}
}

func TestParseCallChain(t *testing.T) {
	stmts := parse(t, `foo(1, 2).bar();`)
	exprStmt, ok := stmts[0].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("expected *ast.ExpressionStmt, got %T", stmts[0])
	}
	outerCall, ok := exprStmt.Expression.(*ast.Call)
	if !ok {
		t.Fatalf("expected outer *ast.Call, got %T", exprStmt.Expression)
	}
	get, ok := outerCall.Callee.(*ast.Get)
	if !ok {
		t.Fatalf("expected *ast.Get callee, got %T", outerCall.Callee)
	}
	if get.Name.Lexeme != "bar" {
		t.Errorf("get.Name.Lexeme = %q, want %q", get.Name.Lexeme, "bar")
	}
	innerCall, ok := get.Object.(*ast.Call)
	if !ok {
		t.Fatalf("expected inner *ast.Call, got %T", get.Object)
	}
	if len(innerCall.Arguments) != 2 {
		t.Errorf("expected 2 arguments, got %d", len(innerCall.Arguments))
	}
}

func TestParseInvalidAssignmentTargetIsError(t *testing.T) {
	tokens := lexer.New("1 = 2;").Scan()
	_, errs := Make(tokens).Parse()
	if len(errs) == 0 {
		t.Fatal("expected a parse error for an invalid assignment target")
	}
}

// TestParseIsDeterministic checks that parsing the same source twice
// produces structurally equal ASTs, modulo source positions — a sanity
// check on the parser having no hidden state across calls.
func TestParseIsDeterministic(t *testing.T) {
	source := `class Greeter { greet(name) { print "hi " + name; } } var g = Greeter(); g.greet("world");`
	first := parse(t, source)
	second := parse(t, source)
	if diff := cmp.Diff(first, second, tokenIgnoringOpts); diff != "" {
		t.Errorf("parsing the same source twice produced different ASTs (-first +second):\n%s", diff)
	}
}

// TestPrintSourceRoundTrips exercises spec.md:226's Testable Property #1:
// printing an AST back to source and reparsing that source yields a
// structurally equal AST, for programs covering every statement and
// expression kind PrintSource knows how to render.
func TestPrintSourceRoundTrips(t *testing.T) {
	sources := []string{
		`var x = 1 + 2 * 3 - 4 / 2;`,
		`print (1 + 2) * 3;`,
		`var y = -1 - -2;`,
		`if (1 < 2 and 2 < 3 or false) { print "yes"; } else { print "no"; }`,
		`var i = 0; while (i < 3) { i = i + 1; } print i;`,
		`for (var i = 0; i < 3; i = i + 1) print i;`,
		`class Greeter < Base { greet(name) { return "hi " + name; } }`,
		`var g = Greeter(); print g.greet("world");`,
		`class Cake < Pastry { temp() { return super.temp() + 1; } }`,
		`fun add(a, b) { return a + b; } print add(1, 2);`,
	}
	for _, source := range sources {
		original := parse(t, source)
		printed := PrintSource(original)
		reparsed := parse(t, printed)
		if diff := cmp.Diff(original, reparsed, tokenIgnoringOpts); diff != "" {
			t.Errorf("round-trip mismatch for %q (printed as %q) (-original +reparsed):\n%s", source, printed, diff)
		}
	}
}
