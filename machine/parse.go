package machine

import "strings"

// InstructionSet describes how to parse a single instruction line.
type InstructionSet[I any] interface {
	ParseLine(line string) (I, error)
}

// ParseFunc adapts a parse function to an InstructionSet.
type ParseFunc[I any] func(line string) (I, error)

func (f ParseFunc[I]) ParseLine(line string) (I, error) { return f(line) }

// ParseProgram parses a program of semicolon-terminated lines into an
// ordered instruction sequence. Trailing whitespace is ignored and blank
// lines are skipped; any other line missing the terminator is a fault.
// Parsing stops at the first fault, which names the offending 1-based
// line, and never touches machine state.
func ParseProgram[I any](set InstructionSet[I], source string) ([]I, error) {
	var program []I
	for number, line := range strings.Split(source, "\n") {
		line = strings.TrimRight(line, " \t\r")
		switch {
		case strings.HasSuffix(line, ";"):
			instruction, err := set.ParseLine(strings.TrimSuffix(line, ";"))
			if err != nil {
				return nil, atLine(err, number+1)
			}
			program = append(program, instruction)
		case line != "":
			return nil, &SyntaxError{Line: number + 1, Msg: "missing semicolon"}
		}
	}
	return program, nil
}

// ParseLines parses a program of bare lines without a terminator, the
// grammar of the flat-memory machine. Blank lines are skipped; faults
// carry the offending 1-based line.
func ParseLines[I any](set InstructionSet[I], source string) ([]I, error) {
	var program []I
	for number, line := range strings.Split(source, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}
		instruction, err := set.ParseLine(line)
		if err != nil {
			return nil, atLine(err, number+1)
		}
		program = append(program, instruction)
	}
	return program, nil
}
