// Package glxerrors defines the three error categories the language core
// raises: CompileError (accumulated during parsing), RuntimeError (aborts
// one Run), and InternalError (an invariant violation — an ICE).
package glxerrors

import (
	"fmt"

	"github.com/fatih/color"
)

// CompileError is one parser diagnostic, already attributed to a source
// position and rendered in the `[line N] Error ...: message` shape.
type CompileError struct {
	Line    int
	Where   string // "" (nothing), "at end", or "at `lexeme`"
	Message string
}

func (e *CompileError) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error %s: %s", e.Line, e.Where, e.Message)
}

// RuntimeError aborts the current VM run. Line is the source line of the
// faulting instruction, resolved via the chunk's line map.
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d] in script", e.Message, e.Line)
}

// InternalError signals an invariant violation the compiler should have
// prevented (an unknown opcode, a type the type-check layer should have
// excluded). Distinct from RuntimeError so callers can tell "your program is
// wrong" apart from "our interpreter is wrong" via errors.As.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %s", e.Message)
}

// NewInternal constructs an InternalError with a formatted message.
func NewInternal(format string, args ...any) *InternalError {
	return &InternalError{Message: fmt.Sprintf(format, args...)}
}

// NewRuntime constructs a RuntimeError with a formatted message.
func NewRuntime(line int, format string, args ...any) *RuntimeError {
	return &RuntimeError{Line: line, Message: fmt.Sprintf(format, args...)}
}

var bold = color.New(color.Bold, color.FgRed)

// Format renders err for stderr, bolding the "Error" tag when color is
// enabled (color.NoColor is honored automatically when stderr isn't a tty).
func Format(err error) string {
	if err == nil {
		return ""
	}
	switch err.(type) {
	case *CompileError, *RuntimeError, *InternalError:
		return bold.Sprint("Error: ") + err.Error()
	default:
		return bold.Sprint("Error: ") + err.Error()
	}
}
