package am0

import (
	"errors"
	"testing"

	"github.com/Deric-W/AMN/machine"
)

// do not remove trailing whitespace!
const exampleProgram1 = `
READ 2  
LIT 1
STORE 1
LIT 0

STORE 3
LOAD 1
LOAD 2
LE   
JMC 21
LOAD 3
LOAD 1
LOAD 1
MUL   
ADD

STORE 3
LOAD 1
LIT 1
ADD
STORE 1
JMP 6
WRITE 3
`

const exampleProgram2 = `
READ 1
LOAD 1
LIT 7
LIT 1
SUB
DIV
LIT 2
MOD
STORE 1
LOAD 1
LIT 0
EQ
LOAD 1
LIT 0
NE
LOAD 1
LIT 0
LT
LOAD 1
LIT 0
GT
LOAD 1
LIT 1
LE   
LOAD 1
LIT 1
GE
WRITE 1
STORE 2
WRITE 2
STORE 2
WRITE 2
STORE 2
WRITE 2
STORE 2
WRITE 2
STORE 2
WRITE 2
STORE 2
WRITE 2
`

// ---------------------------------------------------------------------------
// Parsing tests
// ---------------------------------------------------------------------------

func TestParseLine(t *testing.T) {
	cases := []struct {
		line string
		want Instruction
	}{
		{"ADD", Instruction{Op: OpADD}},
		{"JMP 42", Instruction{Op: OpJMP, Payload: 42}},
		{"LIT -3", Instruction{Op: OpLIT, Payload: -3}},
		{"READ 1", Instruction{Op: OpREAD, Payload: 1}},
	}
	for _, c := range cases {
		got, err := ParseLine(c.line)
		if err != nil {
			t.Errorf("ParseLine(%q) error: %v", c.line, err)
		} else if got != c.want {
			t.Errorf("ParseLine(%q) = %v, want %v", c.line, got, c.want)
		}
	}

	if _, err := ParseLine("JMP x"); err == nil {
		t.Error("ParseLine on invalid payload did not fail")
	} else {
		var operandError *machine.OperandError
		if !errors.As(err, &operandError) {
			t.Errorf("ParseLine(\"JMP x\") error = %v, want operand error", err)
		}
	}
	if _, err := ParseLine("XXX"); err == nil {
		t.Error("ParseLine on unknown mnemonic did not fail")
	} else {
		var unknown *machine.UnknownOpcodeError
		if !errors.As(err, &unknown) {
			t.Errorf("ParseLine(\"XXX\") error = %v, want unknown opcode error", err)
		}
	}
}

func TestParseProgram(t *testing.T) {
	want := []Instruction{
		{Op: OpREAD, Payload: 2},
		{Op: OpLIT, Payload: 1},
		{Op: OpSTORE, Payload: 1},
		{Op: OpLIT, Payload: 0},
		{Op: OpSTORE, Payload: 3},
		{Op: OpLOAD, Payload: 1},
		{Op: OpLOAD, Payload: 2},
		{Op: OpLE},
		{Op: OpJMC, Payload: 21},
		{Op: OpLOAD, Payload: 3},
		{Op: OpLOAD, Payload: 1},
		{Op: OpLOAD, Payload: 1},
		{Op: OpMUL},
		{Op: OpADD},
		{Op: OpSTORE, Payload: 3},
		{Op: OpLOAD, Payload: 1},
		{Op: OpLIT, Payload: 1},
		{Op: OpADD},
		{Op: OpSTORE, Payload: 1},
		{Op: OpJMP, Payload: 6},
		{Op: OpWRITE, Payload: 3},
	}
	got, err := ParseProgram(exampleProgram1)
	if err != nil {
		t.Fatalf("ParseProgram error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("ParseProgram returned %d instructions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("instruction %d = %v, want %v", i+1, got[i], want[i])
		}
	}

	if empty, err := ParseProgram(""); err != nil || len(empty) != 0 {
		t.Errorf("ParseProgram(\"\") = %v, %v, want empty program", empty, err)
	}
}

func TestParseProgramErrors(t *testing.T) {
	cases := []struct {
		source string
		line   int
	}{
		{"LOAD 1\nADD x\nJMP 3", 2},
		{"XXX\nADD", 1},
		{"LOAD 1\n ADD\nJMP 3", 2},
	}
	for _, c := range cases {
		_, err := ParseProgram(c.source)
		if err == nil {
			t.Errorf("ParseProgram(%q) did not fail", c.source)
			continue
		}
		if line := faultLine(err); line != c.line {
			t.Errorf("ParseProgram(%q) fault at line %d, want %d", c.source, line, c.line)
		}
	}
}

func faultLine(err error) int {
	var syntaxError *machine.SyntaxError
	if errors.As(err, &syntaxError) {
		return syntaxError.Line
	}
	var unknown *machine.UnknownOpcodeError
	if errors.As(err, &unknown) {
		return unknown.Line
	}
	var operandError *machine.OperandError
	if errors.As(err, &operandError) {
		return operandError.Line
	}
	return 0
}

// ---------------------------------------------------------------------------
// Opcode property tests
// ---------------------------------------------------------------------------

var allOps = []Op{
	OpADD, OpMUL, OpSUB, OpDIV, OpMOD,
	OpEQ, OpNE, OpLT, OpGT, OpLE, OpGE,
	OpLOAD, OpSTORE, OpLIT, OpJMP, OpJMC, OpWRITE, OpREAD,
}

func TestHasPayload(t *testing.T) {
	withPayload := map[Op]bool{
		OpLIT: true, OpLOAD: true, OpSTORE: true,
		OpJMP: true, OpJMC: true, OpREAD: true, OpWRITE: true,
	}
	for _, op := range allOps {
		if op.HasPayload() != withPayload[op] {
			t.Errorf("%v.HasPayload() = %v, want %v", op, op.HasPayload(), withPayload[op])
		}
	}
}

func TestIsJump(t *testing.T) {
	jumps := map[Op]bool{OpJMP: true, OpJMC: true}
	for _, op := range allOps {
		if op.IsJump() != jumps[op] {
			t.Errorf("%v.IsJump() = %v, want %v", op, op.IsJump(), jumps[op])
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	instructions := []Instruction{
		{Op: OpADD},
		{Op: OpLIT, Payload: -42},
		{Op: OpJMP, Payload: 7},
		{Op: OpSTORE, Payload: 3},
	}
	for _, instruction := range instructions {
		parsed, err := ParseLine(instruction.String())
		if err != nil {
			t.Errorf("ParseLine(%q) error: %v", instruction.String(), err)
		} else if parsed != instruction {
			t.Errorf("ParseLine(%q) = %v, want %v", instruction.String(), parsed, instruction)
		}
	}
}
