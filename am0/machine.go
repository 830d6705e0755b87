package am0

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/Deric-W/AMN/machine"
)

// Machine executes AM0 instructions. Memory is a sparse address/value
// mapping; reading a cell that was never written is a fault. Cells are
// rendered in first-store order.
type Machine struct {
	counter int
	stack   []int
	memory  map[int]int
	written []int
	input   machine.Input
}

// Default creates a machine in the default state reading from input.
func Default(input machine.Input) *Machine {
	return New(1, nil, nil, input)
}

// New creates a machine with the given state. The memory map is used
// directly, with its cells ordered by address.
func New(counter int, stack []int, memory map[int]int, input machine.Input) *Machine {
	if memory == nil {
		memory = make(map[int]int)
	}
	return &Machine{
		counter: counter,
		stack:   stack,
		memory:  memory,
		written: slices.Sorted(maps.Keys(memory)),
		input:   input,
	}
}

// Counter returns the 1-based index of the next instruction.
func (m *Machine) Counter() int { return m.counter }

// SetCounter sets the 1-based index of the next instruction.
func (m *Machine) SetCounter(counter int) { m.counter = counter }

// Input returns the input source the machine reads from.
func (m *Machine) Input() machine.Input { return m.input }

// Reset restores the default state, keeping the input source.
func (m *Machine) Reset() {
	m.counter = 1
	m.stack = m.stack[:0]
	clear(m.memory)
	m.written = m.written[:0]
}

// Status returns labelled snapshots of the machine registers.
func (m *Machine) Status() []machine.StatusEntry {
	var memory strings.Builder
	for _, address := range m.written {
		fmt.Fprintf(&memory, "\n\t%d := %d", address, m.memory[address])
	}
	return []machine.StatusEntry{
		{Label: "Counter", Value: strconv.Itoa(m.counter)},
		{Label: "Stack", Value: fmt.Sprintf("%v", m.stack)},
		{Label: "Memory", Value: memory.String()},
	}
}

// State renders the machine state tuple
// (counter, stack, memory, input, output) with the stack shown top to
// bottom and memory cells as address/value pairs. The format is relied
// on by tracing tools and must not change.
func (m *Machine) State(input, output []int) string {
	var memory strings.Builder
	for i, address := range m.written {
		if i > 0 {
			memory.WriteString(", ")
		}
		fmt.Fprintf(&memory, "%d/%d", address, m.memory[address])
	}
	return fmt.Sprintf("(%d, %s, [%s], %s, %s)",
		m.counter,
		machine.JoinIntsReversed(m.stack),
		memory.String(),
		machine.JoinInts(input),
		machine.JoinInts(output),
	)
}

// ---------------------------------------------------------------------------
// Execution engine
// ---------------------------------------------------------------------------

// ExecuteInstruction executes one instruction, returning its output if
// any. The counter advances by one afterwards; jump targets are stored as
// target-1 so the advance lands exactly on the target. A fault aborts
// before the advance, keeping partial mutations.
func (m *Machine) ExecuteInstruction(instruction Instruction) (machine.Output, error) {
	var output machine.Output
	var err error
	switch instruction.Op {
	case OpADD:
		err = m.binaryOp(func(left, right int) (int, error) { return left + right, nil })
	case OpMUL:
		err = m.binaryOp(func(left, right int) (int, error) { return left * right, nil })
	case OpSUB:
		err = m.binaryOp(func(left, right int) (int, error) { return left - right, nil })
	case OpDIV:
		err = m.binaryOp(machine.FloorDiv)
	case OpMOD:
		err = m.binaryOp(machine.FloorMod)
	case OpEQ:
		err = m.compareOp(func(left, right int) bool { return left == right })
	case OpNE:
		err = m.compareOp(func(left, right int) bool { return left != right })
	case OpLT:
		err = m.compareOp(func(left, right int) bool { return left < right })
	case OpGT:
		err = m.compareOp(func(left, right int) bool { return left > right })
	case OpLE:
		err = m.compareOp(func(left, right int) bool { return left <= right })
	case OpGE:
		err = m.compareOp(func(left, right int) bool { return left >= right })
	case OpLOAD:
		var value int
		value, err = m.fetch(instruction.Payload)
		if err == nil {
			m.stack = append(m.stack, value)
		}
	case OpSTORE:
		var value int
		value, err = m.pop()
		if err == nil {
			m.put(instruction.Payload, value)
		}
	case OpLIT:
		m.stack = append(m.stack, instruction.Payload)
	case OpJMP:
		m.counter = instruction.Payload - 1
	case OpJMC:
		var value int
		value, err = m.pop()
		if err == nil && value == 0 {
			m.counter = instruction.Payload - 1
		}
	case OpWRITE:
		var value int
		value, err = m.fetch(instruction.Payload)
		if err == nil {
			output = machine.Output{Value: value, Present: true}
		}
	case OpREAD:
		value, ok := m.input.Next()
		if ok {
			m.put(instruction.Payload, value)
		} else {
			err = machine.ErrNoInput
		}
	default:
		err = &machine.DecodeError{Detail: instruction.String()}
	}
	if err != nil {
		return machine.Output{}, err
	}
	m.counter++
	return output, nil
}

func (m *Machine) pop() (int, error) {
	if len(m.stack) == 0 {
		return 0, &machine.IndexError{Index: -1, Length: 0}
	}
	value := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return value, nil
}

func (m *Machine) binaryOp(apply func(left, right int) (int, error)) error {
	n := len(m.stack)
	if n < 2 {
		return &machine.IndexError{Index: n - 2, Length: n}
	}
	result, err := apply(m.stack[n-2], m.stack[n-1])
	if err != nil {
		return err
	}
	m.stack[n-2] = result
	m.stack = m.stack[:n-1]
	return nil
}

func (m *Machine) compareOp(apply func(left, right int) bool) error {
	return m.binaryOp(func(left, right int) (int, error) {
		if apply(left, right) {
			return 1, nil
		}
		return 0, nil
	})
}

// fetch reads a memory cell, faulting when it was never written.
func (m *Machine) fetch(address int) (int, error) {
	value, ok := m.memory[address]
	if !ok {
		return 0, &machine.IndexError{Index: address, Length: -1}
	}
	return value, nil
}

// put writes a memory cell, remembering first stores for rendering order.
func (m *Machine) put(address, value int) {
	if _, ok := m.memory[address]; !ok {
		m.written = append(m.written, address)
	}
	m.memory[address] = value
}
