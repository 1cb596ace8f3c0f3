package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"nilan/compiler"
	"nilan/lexer"
	"nilan/report"
	"nilan/vm"

	"github.com/google/subcommands"
)

// runCompiledCmd is "nilan runc <file>": compiles the file's single
// arithmetic expression through the VM path (compiler -> bytecode.Chunk ->
// vm.VM) instead of the tree walker.
type runCompiledCmd struct {
	trace bool
}

func (*runCompiledCmd) Name() string     { return "runc" }
func (*runCompiledCmd) Synopsis() string { return "Execute a Nilan source file on the bytecode VM" }
func (*runCompiledCmd) Usage() string {
	return `runc [-trace] <file>:
  Compile and execute an arithmetic expression through the bytecode VM.
`
}

func (r *runCompiledCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.trace, "trace", false, "print stack contents and disassembly before each instruction")
}

func (r *runCompiledCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "File not provided")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to read file:", err)
		return subcommands.ExitStatus(exitNoInputFile)
	}

	tokens := lexer.New(string(data)).Scan()
	chunk, err := compiler.New(tokens).Compile()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitStatus(exitCompileErr)
	}

	machine := vm.New(report.NewStd(), r.trace)
	if err := machine.Run(chunk); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitStatus(exitRuntimeErr)
	}
	return subcommands.ExitSuccess
}
