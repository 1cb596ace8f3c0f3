// Package disassembler renders a bytecode.Chunk as human-readable text, one
// line per instruction, for the "disasm" CLI subcommand and the VM's traced
// execution mode. Grounded on the teacher's own DiassembleBytecode/
// DiassembleInstruction pair in compiler/compiler.go, adapted from its
// Instructions-and-ConstantsPool shape to bytecode.Chunk's RLE line table
// and CONSTANT_LONG encoding.
package disassembler

import (
	"fmt"
	"strings"

	"nilan/bytecode"
)

// Instruction renders the single instruction at offset in chunk as
// "OFFS LINE OP_NAME [operand]", returning the offset of the next
// instruction. The line column prints "   | " when its line matches the
// previous instruction's line (given by previousLine; pass -1 before the
// first instruction so the first line is always printed).
func Instruction(chunk *bytecode.Chunk, offset int, previousLine int) (string, int) {
	line := chunk.GetLine(offset)
	var lineColumn string
	if line == previousLine {
		lineColumn = "   |"
	} else {
		lineColumn = fmt.Sprintf("%4d", line)
	}

	op := bytecode.OpCode(chunk.Code[offset])
	prefix := fmt.Sprintf("%04d %s %s", offset, lineColumn, op.String())

	switch op {
	case bytecode.OpConstant:
		index := int(chunk.Code[offset+1])
		return fmt.Sprintf("%s %d '%g'", prefix, index, chunk.Constants[index]), offset + 2
	case bytecode.OpConstantLong:
		index := bytecode.ReadConstantLongIndex(chunk.Code, offset+1)
		return fmt.Sprintf("%s %d '%g'", prefix, index, chunk.Constants[index]), offset + 4
	default:
		return prefix, offset + 1
	}
}

// Chunk renders every instruction in chunk, one per line.
func Chunk(chunk *bytecode.Chunk, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)

	previousLine := -1
	offset := 0
	for offset < len(chunk.Code) {
		var line string
		line, offset = Instruction(chunk, offset, previousLine)
		previousLine = chunk.GetLine(offset - 1)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
