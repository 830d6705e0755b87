package am1

import (
	"testing"

	"github.com/Deric-W/AMN/machine"
)

func TestDebugTrace(t *testing.T) {
	program, err := ParseProgram(exampleProgram2)
	if err != nil {
		t.Fatal(err)
	}
	input := machine.NewSliceInput(1, 42)
	m := Default(input)
	step := 0
	for output, err := range machine.Run(m, program) {
		t.Logf("step %d: counter now %d output %+v state %s", step, m.Counter(), output, m.State(nil, nil))
		if err != nil {
			t.Fatalf("fault at step %d counter %d: %v", step, m.Counter(), err)
		}
		step++
	}
}
