// Package am0 implements the AM0 abstract machine: an expression stack
// and a flat address/value memory, without procedures.
package am0

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Deric-W/AMN/machine"
)

// ---------------------------------------------------------------------------
// Opcodes
// ---------------------------------------------------------------------------

// Op identifies an AM0 instruction kind.
type Op int

const (
	OpADD Op = iota + 1
	OpMUL
	OpSUB
	OpDIV
	OpMOD
	OpEQ
	OpNE
	OpLT
	OpGT
	OpLE
	OpGE
	OpLOAD
	OpSTORE
	OpLIT
	OpJMP
	OpJMC
	OpWRITE
	OpREAD
)

var opNames = [...]string{
	OpADD:   "ADD",
	OpMUL:   "MUL",
	OpSUB:   "SUB",
	OpDIV:   "DIV",
	OpMOD:   "MOD",
	OpEQ:    "EQ",
	OpNE:    "NE",
	OpLT:    "LT",
	OpGT:    "GT",
	OpLE:    "LE",
	OpGE:    "GE",
	OpLOAD:  "LOAD",
	OpSTORE: "STORE",
	OpLIT:   "LIT",
	OpJMP:   "JMP",
	OpJMC:   "JMC",
	OpWRITE: "WRITE",
	OpREAD:  "READ",
}

var opByName = make(map[string]Op, len(opNames))

func init() {
	for op, name := range opNames {
		if name != "" {
			opByName[name] = Op(op)
		}
	}
}

// String returns the opcode mnemonic.
func (op Op) String() string {
	if op >= OpADD && int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("OP(%d)", int(op))
}

// HasPayload reports whether the opcode uses its payload.
func (op Op) HasPayload() bool {
	return op > OpGE
}

// IsJump reports whether the opcode transfers control.
func (op Op) IsJump() bool {
	return op == OpJMP || op == OpJMC
}

// ---------------------------------------------------------------------------
// Instructions
// ---------------------------------------------------------------------------

// Instruction is a single decoded AM0 instruction.
type Instruction struct {
	Op      Op
	Payload int
}

// String renders the instruction in the canonical form accepted by ParseLine.
func (i Instruction) String() string {
	if i.Op.HasPayload() {
		return fmt.Sprintf("%s %d", i.Op, i.Payload)
	}
	return i.Op.String()
}

// ParseLine parses one instruction from a line like "ADD" or "JMP 42".
// A missing payload defaults to 0.
func ParseLine(line string) (Instruction, error) {
	name, payload, found := strings.Cut(line, " ")
	op, ok := opByName[name]
	if !ok {
		return Instruction{}, &machine.UnknownOpcodeError{Mnemonic: name}
	}
	if !found {
		return Instruction{Op: op}, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(payload))
	if err != nil {
		return Instruction{}, &machine.OperandError{Token: payload}
	}
	return Instruction{Op: op, Payload: value}, nil
}

// ParseProgram parses a newline-separated program of bare instruction
// lines into an ordered instruction sequence.
func ParseProgram(source string) ([]Instruction, error) {
	return machine.ParseLines(machine.ParseFunc[Instruction](ParseLine), source)
}
