package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nilan/compiler"
	"nilan/disassembler"
	"nilan/lexer"

	"github.com/google/subcommands"
)

// emitBytecodeCmd is "nilan emit <file>": compiles a source file through the
// VM path and writes its bytecode representation to disk, mirroring the
// teacher's DumpBytecode (hex-encoded .nic file) and DiassembleBytecode
// (.dnic text file) pair.
type emitBytecodeCmd struct {
	dumpBytecode bool
	disassemble  bool
}

func (*emitBytecodeCmd) Name() string { return "emit" }
func (*emitBytecodeCmd) Synopsis() string {
	return "Emit the bytecode representation of a source file"
}
func (*emitBytecodeCmd) Usage() string {
	return `nilan emit <file>`
}

func (cmd *emitBytecodeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.dumpBytecode, "dumpBytecode", true, "write the encoded bytecode as hexadecimal to a .nic file")
	f.BoolVar(&cmd.disassemble, "disassemble", true, "write the disassembled bytecode to a .dnic file")
}

func (cmd *emitBytecodeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	baseName := strings.TrimSuffix(path, filepath.Ext(path))

	if cmd.dumpBytecode {
		encoded := fmt.Sprintf("%x", chunk.Code)
		if err := os.WriteFile(baseName+".nic", []byte(encoded), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to write bytecode file:", err)
			return subcommands.ExitFailure
		}
	}

	if cmd.disassemble {
		text := disassembler.Chunk(chunk, baseName)
		if err := os.WriteFile(baseName+".dnic", []byte(text), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to write disassembly file:", err)
			return subcommands.ExitFailure
		}
	}

	return subcommands.ExitSuccess
}
