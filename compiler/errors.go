package compiler

import "fmt"

// SyntaxError is raised when the token stream doesn't match the grammar the
// compiler's parsing rules define.
type SyntaxError struct {
	Message string
	Line    int
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("💥 Nilan Compile error:\nline:%d - %s", e.Line, e.Message)
}
