package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// Exit codes per spec.md §6's external interface contract.
const (
	exitSuccess     = 0
	exitUsageError  = 64
	exitNoInputFile = 74
	exitCompileErr  = 65
	exitRuntimeErr  = 70
)

// toolingVerbs are the secondary subcommands this build exposes beyond the
// primary no-args/one-arg contract spec.md §6 defines: bytecode emission,
// disassembly, a compiled-VM REPL, running a file on the VM, and a
// tree-walking run with -watch/-dumpAST. A first argument matching one of
// these is dispatched to google/subcommands; anything else is treated as a
// source file path per the primary contract.
var toolingVerbs = map[string]bool{
	"emit":   true,
	"disasm": true,
	"crepl":  true,
	"runc":   true,
	"run":    true,
}

func main() {
	args := os.Args[1:]

	if len(args) > 0 && toolingVerbs[args[0]] {
		subcommands.Register(subcommands.HelpCommand(), "")
		subcommands.Register(subcommands.FlagsCommand(), "")
		subcommands.Register(&emitBytecodeCmd{}, "")
		subcommands.Register(&disasmCmd{}, "")
		subcommands.Register(&replCompiledCmd{}, "")
		subcommands.Register(&runCompiledCmd{}, "")
		subcommands.Register(&runCmd{}, "")
		flag.CommandLine.Parse(args)
		os.Exit(int(subcommands.Execute(context.Background())))
	}

	switch len(args) {
	case 0:
		runRepl()
		os.Exit(exitSuccess)
	case 1:
		os.Exit(runFile(args[0]))
	default:
		fmt.Fprintln(os.Stderr, "Usage: nilan [script]")
		os.Exit(exitUsageError)
	}
}
