package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"nilan/compiler"
	"nilan/disassembler"
	"nilan/lexer"

	"github.com/google/subcommands"
)

// disasmCmd is "nilan disasm <file>": compiles a source file through the VM
// path and prints its disassembly to stdout, the interactive counterpart to
// emitBytecodeCmd's .dnic file output.
type disasmCmd struct{}

func (*disasmCmd) Name() string     { return "disasm" }
func (*disasmCmd) Synopsis() string { return "Print the disassembled bytecode for a source file" }
func (*disasmCmd) Usage() string {
	return `disasm <file>`
}

func (*disasmCmd) SetFlags(f *flag.FlagSet) {}

func (*disasmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "File not provided")
		return subcommands.ExitUsageError
	}
	path := args[0]

	data, err := os.ReadFile(path)
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

	fmt.Print(disassembler.Chunk(chunk, path))
	return subcommands.ExitSuccess
}
