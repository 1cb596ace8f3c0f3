package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"nilan/compiler"
	"nilan/disassembler"
	"nilan/lexer"
	"nilan/report"
	"nilan/vm"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"
)

// replCompiledCmd is "nilan crepl": an interactive session against the VM
// path rather than the tree walker. Each line is compiled and run against a
// fresh chunk; the VM path has no global/variable state to persist between
// lines (spec.md §4.6 scopes the compiler to arithmetic expressions), so
// unlike runRepl there is no persistent interpreter to carry across inputs.
type replCompiledCmd struct {
	trace bool
}

func (*replCompiledCmd) Name() string     { return "crepl" }
func (*replCompiledCmd) Synopsis() string { return "Start an interactive session against the bytecode VM" }
func (*replCompiledCmd) Usage() string {
	return `nilan crepl [-trace]`
}

func (cmd *replCompiledCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.trace, "trace", false, "print stack contents and disassembly before each instruction")
}

func (cmd *replCompiledCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "^D",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to start REPL:", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	reporter := report.NewStd()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return subcommands.ExitSuccess
		}

		tokens := lexer.New(line).Scan()
		if lastNonEOF(tokens) == nil {
			continue
		}

		chunk, err := compiler.New(tokens).Compile()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}

		if cmd.trace {
			fmt.Print(disassembler.Chunk(chunk, "repl"))
		}

		machine := vm.New(reporter, cmd.trace)
		if err := machine.Run(chunk); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
