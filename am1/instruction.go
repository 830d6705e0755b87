package am1

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Deric-W/AMN/machine"
)

// ---------------------------------------------------------------------------
// Opcodes
// ---------------------------------------------------------------------------

// Op identifies an AM1 instruction kind.
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
	OpLOADA
	OpLOADI
	OpSTORE
	OpSTOREI
	OpLIT
	OpJMP
	OpJMC
	OpWRITE
	OpWRITEI
	OpREAD
	OpREADI
	OpPUSH
	OpCALL
	OpINIT
	OpRET
)

var opNames = [...]string{
	OpADD:    "ADD",
	OpMUL:    "MUL",
	OpSUB:    "SUB",
	OpDIV:    "DIV",
	OpMOD:    "MOD",
	OpEQ:     "EQ",
	OpNE:     "NE",
	OpLT:     "LT",
	OpGT:     "GT",
	OpLE:     "LE",
	OpGE:     "GE",
	OpLOAD:   "LOAD",
	OpLOADA:  "LOADA",
	OpLOADI:  "LOADI",
	OpSTORE:  "STORE",
	OpSTOREI: "STOREI",
	OpLIT:    "LIT",
	OpJMP:    "JMP",
	OpJMC:    "JMC",
	OpWRITE:  "WRITE",
	OpWRITEI: "WRITEI",
	OpREAD:   "READ",
	OpREADI:  "READI",
	OpPUSH:   "PUSH",
	OpCALL:   "CALL",
	OpINIT:   "INIT",
	OpRET:    "RET",
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
	return op > OpGE && op != OpPUSH
}

// IsJump reports whether the opcode transfers control.
func (op Op) IsJump() bool {
	switch op {
	case OpJMP, OpJMC, OpCALL, OpRET:
		return true
	}
	return false
}

// HasContext reports whether the opcode addresses memory through a
// context. Indirect opcodes always resolve locally and carry none.
func (op Op) HasContext() bool {
	switch op {
	case OpLOAD, OpLOADA, OpSTORE, OpREAD, OpWRITE:
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// Memory contexts
// ---------------------------------------------------------------------------

// Context selects how a relative address is resolved.
type Context int

const (
	// Global addresses are absolute indexes into the runtime stack.
	Global Context = iota
	// Local addresses are relative to the reference pointer: negative
	// offsets reach caller-passed parameters, positive ones reach locals.
	Local
)

// String returns the context name as used by the instruction grammar.
func (c Context) String() string {
	if c == Global {
		return "global"
	}
	return "local"
}

// ResolveAddress maps a relative address to an absolute 1-based runtime
// stack index. Resolved addresses must reference into the runtime stack;
// an upper bound is not checked here, storage access does that.
func (c Context) ResolveAddress(address, referencePointer int) (int, error) {
	if c == Local {
		address += referencePointer
	}
	if address <= 0 {
		return 0, &machine.AddressError{Address: address, ReferencePointer: referencePointer}
	}
	return address, nil
}

// ---------------------------------------------------------------------------
// Instructions
// ---------------------------------------------------------------------------

// Instruction is a single decoded AM1 instruction.
type Instruction struct {
	Op      Op
	Context Context
	Payload int
}

// String renders the instruction in the canonical form accepted by ParseLine.
func (i Instruction) String() string {
	switch {
	case i.Op.HasContext():
		return fmt.Sprintf("%s(%s,%d)", i.Op, i.Context, i.Payload)
	case i.Op.HasPayload():
		return fmt.Sprintf("%s %d", i.Op, i.Payload)
	default:
		return i.Op.String()
	}
}

var linePattern = regexp.MustCompile(`^([A-Z]{2,6})(?:(\((.*)\))|( .*))?$`)

// ParseLine parses one instruction from a line like "ADD", "JMP 42",
// "LOAD(global,3)" or "LOADI(-2)". A missing context defaults to local,
// a missing payload to 0.
func ParseLine(line string) (Instruction, error) {
	groups := linePattern.FindStringSubmatch(line)
	if groups == nil {
		return Instruction{}, &machine.SyntaxError{Msg: "invalid instruction"}
	}
	op, ok := opByName[groups[1]]
	if !ok {
		return Instruction{}, &machine.UnknownOpcodeError{Mnemonic: groups[1]}
	}
	switch {
	case groups[2] != "": // NAME(context,payload) or NAME(payload)
		first, last, found := strings.Cut(groups[3], ",")
		if !found {
			payload, err := parsePayload(first)
			if err != nil {
				return Instruction{}, err
			}
			return Instruction{Op: op, Context: Local, Payload: payload}, nil
		}
		context, err := parseContext(first)
		if err != nil {
			return Instruction{}, err
		}
		payload, err := parsePayload(last)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Context: context, Payload: payload}, nil
	case groups[4] != "": // NAME payload
		payload, err := parsePayload(groups[4])
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Context: Local, Payload: payload}, nil
	default: // NAME
		return Instruction{Op: op, Context: Local}, nil
	}
}

// ParseProgram parses a newline-separated program of semicolon-terminated
// lines into an ordered instruction sequence.
func ParseProgram(source string) ([]Instruction, error) {
	return machine.ParseProgram(machine.ParseFunc[Instruction](ParseLine), source)
}

func parsePayload(text string) (int, error) {
	text = strings.TrimSpace(text)
	payload, err := strconv.Atoi(text)
	if err != nil {
		return 0, &machine.OperandError{Token: text}
	}
	return payload, nil
}

func parseContext(text string) (Context, error) {
	switch strings.ToLower(text) {
	case "global":
		return Global, nil
	case "local":
		return Local, nil
	}
	return 0, &machine.OperandError{Token: text}
}
