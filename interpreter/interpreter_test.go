package interpreter_test

import (
	"bytes"
	"strings"
	"testing"

	"nilan/interpreter"
	"nilan/lexer"
	"nilan/parser"
	"nilan/report"
	"nilan/resolver"
)

func run(t *testing.T, source string) (string, string) {
	t.Helper()

	lex := lexer.New(source)
	tokens := lex.Scan()

	p := parser.Make(tokens)
	statements, errs := p.Parse()
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	res := resolver.New()
	locals, resolveErrs := res.Resolve(statements)
	if len(resolveErrs) > 0 {
		t.Fatalf("unexpected resolve errors: %v", resolveErrs)
	}

	var out, errOut bytes.Buffer
	interp := interpreter.New(report.New(&out, &errOut))
	interp.Resolve(locals)
	interp.Interpret(statements)

	return out.String(), errOut.String()
}

// runStatementsSeparately resolves and interprets each source chunk in turn
// against the same long-lived Interpreter, mirroring how run.go's REPL
// resolves one flushed top-level statement at a time rather than the whole
// program at once.
func runStatementsSeparately(t *testing.T, sources ...string) (string, string) {
	t.Helper()

	var out, errOut bytes.Buffer
	interp := interpreter.New(report.New(&out, &errOut))

	for _, source := range sources {
		tokens := lexer.New(source).Scan()
		statements, errs := parser.Make(tokens).Parse()
		if len(errs) > 0 {
			t.Fatalf("unexpected parse errors for %q: %v", source, errs)
		}
		locals, resolveErrs := resolver.New().Resolve(statements)
		if len(resolveErrs) > 0 {
			t.Fatalf("unexpected resolve errors for %q: %v", source, resolveErrs)
		}
		interp.Resolve(locals)
		interp.Interpret(statements)
	}

	return out.String(), errOut.String()
}

// TestInterpretResolveAccumulatesAcrossREPLStatements guards against
// Resolve replacing the binding-distance table wholesale instead of merging
// into it: a closure with nested locals defined in one REPL-style chunk
// must still resolve its locals correctly when invoked from a later chunk.
func TestInterpretResolveAccumulatesAcrossREPLStatements(t *testing.T) {
	out, errOut := runStatementsSeparately(t,
		`fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
		var counter = makeCounter();`,
		`print counter();`,
		`print counter();`,
	)
	if errOut != "" {
		t.Fatalf("unexpected error output: %q", errOut)
	}
	lines := strings.Fields(out)
	if len(lines) != 2 || lines[0] != "1" || lines[1] != "2" {
		t.Errorf("got %q, want [1 2]", lines)
	}
}

func TestInterpretArithmeticAndPrint(t *testing.T) {
	out, errOut := run(t, `print 1 + 2 * 3;`)
	if errOut != "" {
		t.Fatalf("unexpected error output: %q", errOut)
	}
	if strings.TrimSpace(out) != "7" {
		t.Errorf("got %q, want 7", out)
	}
}

func TestInterpretStringConcatenation(t *testing.T) {
	out, _ := run(t, `print "foo" + "bar";`)
	if strings.TrimSpace(out) != "foobar" {
		t.Errorf("got %q, want foobar", out)
	}
}

func TestInterpretNilPrintsNil(t *testing.T) {
	out, _ := run(t, `var a; print a;`)
	if strings.TrimSpace(out) != "nil" {
		t.Errorf("got %q, want nil", out)
	}
}

func TestInterpretClosureCapturesVariable(t *testing.T) {
	source := `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				print count;
			}
			return increment;
		}
		var counter = makeCounter();
		counter();
		counter();
	`
	out, errOut := run(t, source)
	if errOut != "" {
		t.Fatalf("unexpected error output: %q", errOut)
	}
	lines := strings.Fields(out)
	if len(lines) != 2 || lines[0] != "1" || lines[1] != "2" {
		t.Errorf("got %q, want [1 2]", lines)
	}
}

func TestInterpretClassInstanceFieldsAndMethods(t *testing.T) {
	source := `
		class Greeter {
			init(name) {
				this.name = name;
			}
			greet() {
				print "hello " + this.name;
			}
		}
		var g = Greeter("world");
		g.greet();
	`
	out, errOut := run(t, source)
	if errOut != "" {
		t.Fatalf("unexpected error output: %q", errOut)
	}
	if strings.TrimSpace(out) != "hello world" {
		t.Errorf("got %q, want 'hello world'", out)
	}
}

func TestInterpretSuperCallsParentMethod(t *testing.T) {
	source := `
		class Animal {
			speak() {
				print "...";
			}
		}
		class Dog < Animal {
			speak() {
				super.speak();
				print "woof";
			}
		}
		Dog().speak();
	`
	out, errOut := run(t, source)
	if errOut != "" {
		t.Fatalf("unexpected error output: %q", errOut)
	}
	lines := strings.Fields(out)
	if len(lines) != 2 || lines[0] != "..." || lines[1] != "woof" {
		t.Errorf("got %q, want [... woof]", lines)
	}
}

func TestInterpretUndefinedVariableIsRuntimeError(t *testing.T) {
	_, errOut := run(t, `print nope;`)
	if !strings.Contains(errOut, "Undefined variable") {
		t.Errorf("expected undefined variable error, got %q", errOut)
	}
}

func TestInterpretDivisionByZeroYieldsInfinity(t *testing.T) {
	out, errOut := run(t, `print 1 / 0;`)
	if errOut != "" {
		t.Errorf("expected no runtime error, got %q", errOut)
	}
	if strings.TrimSpace(out) != "+Inf" {
		t.Errorf("got %q, want +Inf", out)
	}
}

func TestInterpretCallingNonCallableIsRuntimeError(t *testing.T) {
	_, errOut := run(t, `var a = 1; a();`)
	if !strings.Contains(errOut, "Can only call functions and classes") {
		t.Errorf("expected call error, got %q", errOut)
	}
}

func TestInterpretWrongArityIsRuntimeError(t *testing.T) {
	source := `
		fun f(a, b) { return a + b; }
		f(1);
	`
	_, errOut := run(t, source)
	if !strings.Contains(errOut, "Expected 2 arguments") {
		t.Errorf("expected arity error, got %q", errOut)
	}
}

func TestInterpretIfElseBranches(t *testing.T) {
	out, _ := run(t, `if (true) { print "yes"; } else { print "no"; }`)
	if strings.TrimSpace(out) != "yes" {
		t.Errorf("got %q, want yes", out)
	}
}

func TestInterpretWhileLoop(t *testing.T) {
	source := `
		var i = 0;
		while (i < 3) {
			print i;
			i = i + 1;
		}
	`
	out, _ := run(t, source)
	lines := strings.Fields(out)
	if len(lines) != 3 || lines[0] != "0" || lines[1] != "1" || lines[2] != "2" {
		t.Errorf("got %q, want [0 1 2]", lines)
	}
}

func TestInterpretForLoopDesugaring(t *testing.T) {
	source := `
		for (var i = 0; i < 3; i = i + 1) {
			print i;
		}
	`
	out, _ := run(t, source)
	lines := strings.Fields(out)
	if len(lines) != 3 || lines[0] != "0" || lines[1] != "1" || lines[2] != "2" {
		t.Errorf("got %q, want [0 1 2]", lines)
	}
}
