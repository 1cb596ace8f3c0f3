package compiler_test

import (
	"testing"

	"nilan/bytecode"
	"nilan/compiler"
	"nilan/lexer"
)

func compile(t *testing.T, source string) *bytecode.Chunk {
	t.Helper()
	tokens := lexer.New(source).Scan()
	chunk, err := compiler.New(tokens).Compile()
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	return chunk
}

func TestCompileNumberLiteralEmitsConstantAndReturn(t *testing.T) {
	chunk := compile(t, "42")
	want := []byte{byte(bytecode.OpConstant), 0, byte(bytecode.OpReturn)}
	if len(chunk.Code) != len(want) {
		t.Fatalf("got code %v, want %v", chunk.Code, want)
	}
	for i, b := range want {
		if chunk.Code[i] != b {
			t.Errorf("byte %d: got %d, want %d", i, chunk.Code[i], b)
		}
	}
	if chunk.Constants[0] != 42 {
		t.Errorf("got constant %v, want 42", chunk.Constants[0])
	}
}

func TestCompileArithmeticPrecedence(t *testing.T) {
	chunk := compile(t, "1 + 2 * 3")
	want := []bytecode.OpCode{
		bytecode.OpConstant,
		bytecode.OpConstant,
		bytecode.OpConstant,
		bytecode.OpMultiply,
		bytecode.OpAdd,
		bytecode.OpReturn,
	}
	got := decodeOps(chunk.Code)
	if !equalOps(got, want) {
		t.Errorf("got ops %v, want %v", got, want)
	}
}

func TestCompileUnaryNegation(t *testing.T) {
	chunk := compile(t, "-5")
	want := []bytecode.OpCode{bytecode.OpConstant, bytecode.OpNegate, bytecode.OpReturn}
	got := decodeOps(chunk.Code)
	if !equalOps(got, want) {
		t.Errorf("got ops %v, want %v", got, want)
	}
}

func TestCompileGrouping(t *testing.T) {
	chunk := compile(t, "(1 + 2) * 3")
	want := []bytecode.OpCode{
		bytecode.OpConstant,
		bytecode.OpConstant,
		bytecode.OpAdd,
		bytecode.OpConstant,
		bytecode.OpMultiply,
		bytecode.OpReturn,
	}
	got := decodeOps(chunk.Code)
	if !equalOps(got, want) {
		t.Errorf("got ops %v, want %v", got, want)
	}
}

func TestCompileUnterminatedGroupingIsSyntaxError(t *testing.T) {
	tokens := lexer.New("(1 + 2").Scan()
	_, err := compiler.New(tokens).Compile()
	if err == nil {
		t.Fatal("expected a syntax error, got nil")
	}
}

// decodeOps walks code skipping over operand bytes for the opcodes this
// stage can emit, returning just the opcode sequence for assertions that
// don't care about constant indices.
func decodeOps(code []byte) []bytecode.OpCode {
	var ops []bytecode.OpCode
	i := 0
	for i < len(code) {
		op := bytecode.OpCode(code[i])
		ops = append(ops, op)
		switch op {
		case bytecode.OpConstant:
			i += 2
		case bytecode.OpConstantLong:
			i += 4
		default:
			i++
		}
	}
	return ops
}

func equalOps(a, b []bytecode.OpCode) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
