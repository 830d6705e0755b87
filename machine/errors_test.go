package machine

import "testing"

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{ErrDivisionByZero, "integer division or modulo by zero"},
		{ErrNoInput, "no input left"},
		{ErrNoFrame, "stack is too small to return"},
		{
			&AddressError{Address: -2, ReferencePointer: 0},
			"address -2 references outside the runtime stack (reference pointer: 0)",
		},
		{&IndexError{Index: 4, Length: 2}, "index out of range [4] with length 2"},
		{&IndexError{Index: 5, Length: -1}, "memory cell 5 was never written"},
		{&DecodeError{Detail: "OP(99)"}, "cannot decode instruction: OP(99)"},
		{&SyntaxError{Msg: "missing semicolon"}, "missing semicolon"},
		{&SyntaxError{Line: 3, Msg: "missing semicolon"}, "line 3: missing semicolon"},
		{&UnknownOpcodeError{Mnemonic: "XXX"}, `unknown instruction "XXX"`},
		{&UnknownOpcodeError{Line: 2, Mnemonic: "XXX"}, `line 2: unknown instruction "XXX"`},
		{&OperandError{Token: "x"}, `invalid operand "x"`},
		{&OperandError{Line: 1, Token: "x"}, `line 1: invalid operand "x"`},
	}
	for _, c := range cases {
		if got := c.err.Error(); got != c.want {
			t.Errorf("error = %q, want %q", got, c.want)
		}
	}
}
