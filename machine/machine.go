package machine

import "iter"

// Output is the optional value produced by a single instruction.
type Output struct {
	Value   int
	Present bool
}

// StatusEntry is one row of a machine status report.
type StatusEntry struct {
	Label string
	Value string
}

// Machine is the capability set shared by the abstract machines.
// Implementations own their mutable state and are not safe for
// concurrent use.
type Machine[I any] interface {
	// ExecuteInstruction executes exactly one instruction, mutating the
	// machine state and returning the produced output, if any. A fault
	// leaves the counter untouched.
	ExecuteInstruction(instruction I) (Output, error)

	// Counter returns the 1-based index of the next instruction.
	Counter() int

	// SetCounter sets the 1-based index of the next instruction.
	SetCounter(counter int)

	// Input returns the input source the machine reads from.
	Input() Input

	// Reset restores the default state, keeping the input source.
	Reset()

	// Status returns labelled snapshots of the machine registers.
	Status() []StatusEntry

	// State renders the machine state tuple together with the pending
	// input and the output produced so far.
	State(input, output []int) string
}

// Framer is implemented by machines able to split their runtime stack
// into call frames for diagnostics.
type Framer interface {
	Frames() iter.Seq[[]int]
}

// Run executes program on m, yielding the output of every instruction in
// execution order, including absent ones. Execution starts at counter 1
// and stops when the counter leaves the program, which is a regular halt,
// or when an instruction faults; the fault is yielded last and the machine
// keeps the state of the last completed instruction. The counter is read
// anew on every iteration, so jumps, calls and returns are honored.
func Run[I any](m Machine[I], program []I) iter.Seq2[Output, error] {
	return func(yield func(Output, error) bool) {
		m.SetCounter(1)
		for {
			counter := m.Counter()
			if counter < 1 || counter > len(program) {
				return
			}
			output, err := m.ExecuteInstruction(program[counter-1])
			if err != nil {
				yield(Output{}, err)
				return
			}
			if !yield(output, nil) {
				return
			}
		}
	}
}
