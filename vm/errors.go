package vm

import "fmt"

// RuntimeError is raised when the fetch-decode-execute loop hits a
// malformed chunk, such as an opcode byte it doesn't recognize.
type RuntimeError struct {
	Offset  int
	Message string
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("💥 Nilan VM error:\noffset:%d - %s", e.Offset, e.Message)
}
