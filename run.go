package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"nilan/interpreter"
	"nilan/lexer"
	"nilan/parser"
	"nilan/report"
	"nilan/resolver"
)

// runFile reads, scans, parses, resolves, and interprets the named source
// file via the tree-walking pipeline, returning the process exit code per
// spec.md §6: 74 if the file can't be read, 65 on a parse/resolve error, 70
// on a runtime error, 0 otherwise.
func runFile(path string) int {
	return runFileWithDump(path, "")
}

// runFileWithDump is runFile plus an optional AST dump: when dumpASTPath is
// non-empty, the parsed statements are written there as JSON via
// parser.PrintToFile before resolution/interpretation proceeds.
func runFileWithDump(path, dumpASTPath string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read file: %v\n", err)
		return exitNoInputFile
	}

	reporter := report.NewStd()
	tokens := lexer.New(string(data)).Scan()

	p := parser.Make(tokens)
	statements, parseErrs := p.Parse()
	if len(parseErrs) > 0 {
		for _, err := range parseErrs {
			reporter.Error(err)
		}
		return exitCompileErr
	}

	if dumpASTPath != "" {
		if err := p.PrintToFile(statements, dumpASTPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write AST dump: %v\n", err)
		}
	}

	res := resolver.New()
	locals, resolveErrs := res.Resolve(statements)
	if len(resolveErrs) > 0 {
		for _, err := range resolveErrs {
			reporter.Error(err)
		}
		return exitCompileErr
	}

	interp := interpreter.New(reporter)
	interp.Resolve(locals)
	if err := interp.Interpret(statements); err != nil {
		return exitRuntimeErr
	}
	return exitSuccess
}

type sourceResult int

const (
	resultOK sourceResult = iota
	resultCompileError
	resultRuntimeError
)

// runRepl starts an interactive tree-walking session, reading one line at a
// time and evaluating it against a single persistent interpreter so
// variables and functions defined on one line remain visible on the next.
// Uses readline.Instance rather than raw bufio so the session gets history
// and sane ^C/^D handling, and buffers lines until isInputReady reports a
// complete statement (so a block opened with "{" can continue over
// multiple lines).
func runRepl() {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "^D",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to start REPL:", err)
		return
	}
	defer rl.Close()

	reporter := report.NewStd()
	interp := interpreter.New(reporter)
	var buffer strings.Builder

	for {
		if buffer.Len() == 0 {
			rl.SetPrompt("> ")
		} else {
			rl.SetPrompt("... ")
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			buffer.Reset()
			continue
		}
		if err == io.EOF {
			return
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)
		source := buffer.String()

		tokens := lexer.New(source).Scan()
		if !isInputReady(tokens) {
			continue
		}

		interpretSource(source, reporter, interp)
		buffer.Reset()
	}
}

// interpretSource runs one chunk of source through scan -> parse -> resolve
// -> interpret, reporting any error through reporter and classifying the
// outcome. Its only caller is runRepl, which ignores the result and keeps
// accepting input regardless; runFile has its own pipeline in
// runFileWithDump.
func interpretSource(source string, reporter *report.Reporter, interp *interpreter.Interpreter) sourceResult {
	tokens := lexer.New(source).Scan()

	p := parser.Make(tokens)
	statements, parseErrs := p.Parse()
	if len(parseErrs) > 0 {
		for _, err := range parseErrs {
			reporter.Error(err)
		}
		return resultCompileError
	}

	res := resolver.New()
	locals, resolveErrs := res.Resolve(statements)
	if len(resolveErrs) > 0 {
		for _, err := range resolveErrs {
			reporter.Error(err)
		}
		return resultCompileError
	}

	interp.Resolve(locals)
	if err := interp.Interpret(statements); err != nil {
		return resultRuntimeError
	}
	return resultOK
}
