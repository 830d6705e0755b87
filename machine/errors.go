package machine

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Run-time faults
// ---------------------------------------------------------------------------

// Sentinel faults raised by the execution engines.
var (
	// ErrDivisionByZero is returned by DIV and MOD with a zero divisor.
	ErrDivisionByZero = errors.New("integer division or modulo by zero")

	// ErrNoInput is returned by READ-family instructions when the input
	// source is exhausted.
	ErrNoInput = errors.New("no input left")

	// ErrNoFrame is returned by RET when no call frame is active.
	ErrNoFrame = errors.New("stack is too small to return")
)

// AddressError reports a resolved address referencing before the start of
// the runtime stack. It is raised during address resolution, before any
// storage access.
type AddressError struct {
	Address          int
	ReferencePointer int
}

func (e *AddressError) Error() string {
	return fmt.Sprintf(
		"address %d references outside the runtime stack (reference pointer: %d)",
		e.Address, e.ReferencePointer,
	)
}

// IndexError reports a storage access outside the current bounds.
// Index is 0-based. A negative Length marks storage without a fixed size,
// like the AM0 memory, where the fault means the cell was never written.
type IndexError struct {
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	if e.Length < 0 {
		return fmt.Sprintf("memory cell %d was never written", e.Index)
	}
	return fmt.Sprintf("index out of range [%d] with length %d", e.Index, e.Length)
}

// DecodeError reports an instruction the engine cannot execute.
// It indicates a bug in the parser, not in the executed program.
type DecodeError struct {
	Detail string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode instruction: %s", e.Detail)
}

// ---------------------------------------------------------------------------
// Parse-time faults
// ---------------------------------------------------------------------------

// SyntaxError reports a line which does not follow the instruction grammar.
// Line is 1-based and zero until the program parser stamps it.
type SyntaxError struct {
	Line int
	Msg  string
	Err  error
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

func (e *SyntaxError) Unwrap() error { return e.Err }

func (e *SyntaxError) setLine(line int) { e.Line = line }

// UnknownOpcodeError reports a mnemonic without a matching opcode.
type UnknownOpcodeError struct {
	Line     int
	Mnemonic string
}

func (e *UnknownOpcodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: unknown instruction %q", e.Line, e.Mnemonic)
	}
	return fmt.Sprintf("unknown instruction %q", e.Mnemonic)
}

func (e *UnknownOpcodeError) setLine(line int) { e.Line = line }

// OperandError reports a malformed payload or context name.
type OperandError struct {
	Line  int
	Token string
}

func (e *OperandError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: invalid operand %q", e.Line, e.Token)
	}
	return fmt.Sprintf("invalid operand %q", e.Token)
}

func (e *OperandError) setLine(line int) { e.Line = line }

// atLine stamps the 1-based line number onto a parse fault, wrapping
// unclassified errors into a SyntaxError.
func atLine(err error, line int) error {
	type positioned interface {
		setLine(line int)
	}
	var fault positioned
	if errors.As(err, &fault) {
		fault.setLine(line)
		return err
	}
	return &SyntaxError{Line: line, Msg: err.Error(), Err: err}
}
