// Package vm implements the bytecode path's stack machine: given a compiled
// bytecode.Chunk, it runs a fetch-decode-execute loop over a resizable
// operand stack. Grounded on the teacher's own vm.VM (its Stack type and
// Run loop shape), generalized from the teacher's single OP_CONSTANT/OP_END
// pair to the full arithmetic opcode set spec.md §4.7 defines, and retargeted
// from compiler.Bytecode onto bytecode.Chunk.
package vm

import (
	"fmt"

	"nilan/bytecode"
	"nilan/disassembler"
	"nilan/report"
)

// VM is a stack-based virtual machine: the runtime that executes a
// compiled Chunk.
type VM struct {
	stack    Stack
	ip       int
	chunk    *bytecode.Chunk
	trace    bool
	reporter *report.Reporter
}

// New creates a VM. When trace is true, Run prints the stack contents and
// the disassembly of each instruction before executing it, per spec.md
// §4.7's traced-execution mode.
func New(reporter *report.Reporter, trace bool) *VM {
	return &VM{reporter: reporter, trace: trace}
}

// Run executes chunk to completion. RETURN pops and prints the top of the
// stack; reaching it at the outer frame ends execution successfully.
func (vm *VM) Run(chunk *bytecode.Chunk) error {
	vm.chunk = chunk
	vm.ip = 0

	for vm.ip < len(chunk.Code) {
		if vm.trace {
			vm.traceStep()
		}

		op := bytecode.OpCode(chunk.Code[vm.ip])
		switch op {
		case bytecode.OpConstant:
			index := int(chunk.Code[vm.ip+1])
			vm.stack.Push(chunk.Constants[index])
			vm.ip += 2
		case bytecode.OpConstantLong:
			index := bytecode.ReadConstantLongIndex(chunk.Code, vm.ip+1)
			vm.stack.Push(chunk.Constants[index])
			vm.ip += 4
		case bytecode.OpAdd:
			vm.binaryOp(func(a, b float64) float64 { return a + b })
		case bytecode.OpSubtract:
			vm.binaryOp(func(a, b float64) float64 { return a - b })
		case bytecode.OpMultiply:
			vm.binaryOp(func(a, b float64) float64 { return a * b })
		case bytecode.OpDivide:
			vm.binaryOp(func(a, b float64) float64 { return a / b })
		case bytecode.OpNegate:
			vm.stack.Push(-vm.stack.Pop())
			vm.ip++
		case bytecode.OpReturn:
			value := vm.stack.Pop()
			vm.reporter.Print(fmt.Sprintf("%g", value))
			return nil
		default:
			return RuntimeError{Offset: vm.ip, Message: fmt.Sprintf("unknown opcode %v", op)}
		}
	}
	return nil
}

func (vm *VM) binaryOp(apply func(a, b float64) float64) {
	b := vm.stack.Pop()
	a := vm.stack.Pop()
	vm.stack.Push(apply(a, b))
	vm.ip++
}

func (vm *VM) traceStep() {
	var stackLine string
	for _, v := range vm.stack.All() {
		stackLine += fmt.Sprintf("[ %g ]", v)
	}
	vm.reporter.Print(stackLine)

	line, _ := disassembler.Instruction(vm.chunk, vm.ip, -1)
	vm.reporter.Print(line)
}
