package machine

import (
	"errors"
	"strconv"
	"testing"
)

// numbers stand in for real instructions, one per line
var numberSet = ParseFunc[int](func(line string) (int, error) {
	value, err := strconv.Atoi(line)
	if err != nil {
		return 0, &OperandError{Token: line}
	}
	return value, nil
})

func TestParseProgram(t *testing.T) {
	program, err := ParseProgram(numberSet, "1;\n2; \n\n3;\t\n")
	if err != nil {
		t.Fatalf("ParseProgram error: %v", err)
	}
	if len(program) != 3 || program[0] != 1 || program[1] != 2 || program[2] != 3 {
		t.Errorf("program = %v, want [1 2 3]", program)
	}

	if program, err := ParseProgram(numberSet, ""); err != nil || len(program) != 0 {
		t.Errorf("ParseProgram on empty source = %v, %v", program, err)
	}
}

func TestParseProgramMissingTerminator(t *testing.T) {
	_, err := ParseProgram(numberSet, "1;\n2\n3;")
	var syntaxError *SyntaxError
	if !errors.As(err, &syntaxError) {
		t.Fatalf("error = %v, want syntax error", err)
	}
	if syntaxError.Line != 2 {
		t.Errorf("fault at line %d, want 2", syntaxError.Line)
	}
}

func TestParseProgramStampsLine(t *testing.T) {
	_, err := ParseProgram(numberSet, "1;\nx;\n3;")
	var operandError *OperandError
	if !errors.As(err, &operandError) {
		t.Fatalf("error = %v, want operand error", err)
	}
	if operandError.Line != 2 {
		t.Errorf("fault at line %d, want 2", operandError.Line)
	}
}

func TestParseLines(t *testing.T) {
	program, err := ParseLines(numberSet, "1\n\n2 \n3")
	if err != nil {
		t.Fatalf("ParseLines error: %v", err)
	}
	if len(program) != 3 || program[0] != 1 || program[1] != 2 || program[2] != 3 {
		t.Errorf("program = %v, want [1 2 3]", program)
	}

	_, err = ParseLines(numberSet, "1\nx\n3")
	var operandError *OperandError
	if !errors.As(err, &operandError) {
		t.Fatalf("error = %v, want operand error", err)
	}
	if operandError.Line != 2 {
		t.Errorf("fault at line %d, want 2", operandError.Line)
	}
}

func TestAtLineWrapsUnclassified(t *testing.T) {
	cause := errors.New("boom")
	err := atLine(cause, 7)
	var syntaxError *SyntaxError
	if !errors.As(err, &syntaxError) {
		t.Fatalf("error = %v, want syntax error", err)
	}
	if syntaxError.Line != 7 || !errors.Is(err, cause) {
		t.Errorf("error = %v, want line 7 wrapping the cause", err)
	}
}
