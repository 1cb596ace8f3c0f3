// Package report provides the one seam all user-visible output and runtime
// diagnostics flow through, mirroring the small logging shim the original
// clox/jlox sources (src/logger.c) use instead of calling printf/fprintf ad
// hoc at every call site. Both the tree-walking interpreter and the
// bytecode VM take a *Reporter rather than writing to os.Stdout directly, so
// a REPL, a test, or a future trace/profiling mode can all redirect or
// intercept output from one place.
package report

import (
	"fmt"
	"io"
	"os"
)

// Reporter centralizes where a running program's output and errors go.
type Reporter struct {
	Out io.Writer
	Err io.Writer
}

// NewStd returns a Reporter that writes to the process's standard streams.
func NewStd() *Reporter {
	return &Reporter{Out: os.Stdout, Err: os.Stderr}
}

// New returns a Reporter writing to the given streams, used by tests and by
// any embedding of the interpreter that wants to capture output.
func New(out, err io.Writer) *Reporter {
	return &Reporter{Out: out, Err: err}
}

// Print writes a single print-statement result, already formatted.
func (r *Reporter) Print(line string) {
	fmt.Fprintln(r.Out, line)
}

// Error writes a diagnostic (lexical, syntax, resolution, or runtime error).
func (r *Reporter) Error(err error) {
	fmt.Fprintln(r.Err, err.Error())
}
