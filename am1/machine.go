// Package am1 implements the AM1 abstract machine: an expression stack
// plus a combined call/variable runtime stack with frame-relative and
// indirect addressing, and the CALL/INIT/RET procedure protocol.
package am1

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Deric-W/AMN/machine"
)

// Machine executes AM1 instructions. The zero counter base is 1; the
// runtime stack is addressed 1-based through memory contexts. A reference
// pointer of 0 means no call frame is active.
type Machine struct {
	counter          int
	stack            []int
	runtimeStack     []int
	referencePointer int
	input            machine.Input
}

// Default creates a machine in the default state reading from input.
func Default(input machine.Input) *Machine {
	return New(1, nil, nil, 0, input)
}

// New creates a machine with the given state.
func New(counter int, stack, runtimeStack []int, referencePointer int, input machine.Input) *Machine {
	return &Machine{
		counter:          counter,
		stack:            stack,
		runtimeStack:     runtimeStack,
		referencePointer: referencePointer,
		input:            input,
	}
}

// Counter returns the 1-based index of the next instruction.
func (m *Machine) Counter() int { return m.counter }

// SetCounter sets the 1-based index of the next instruction.
func (m *Machine) SetCounter(counter int) { m.counter = counter }

// Input returns the input source the machine reads from.
func (m *Machine) Input() machine.Input { return m.input }

// ReferencePointer returns the base of the current call frame.
func (m *Machine) ReferencePointer() int { return m.referencePointer }

// Reset restores the default state, keeping the input source.
func (m *Machine) Reset() {
	m.counter = 1
	m.stack = m.stack[:0]
	m.runtimeStack = m.runtimeStack[:0]
	m.referencePointer = 0
}

// Status returns labelled snapshots of the machine registers.
func (m *Machine) Status() []machine.StatusEntry {
	var memory strings.Builder
	for i, value := range m.runtimeStack {
		fmt.Fprintf(&memory, "\n\t%d := %d", i+1, value)
	}
	return []machine.StatusEntry{
		{Label: "Counter", Value: strconv.Itoa(m.counter)},
		{Label: "Stack", Value: fmt.Sprintf("%v", m.stack)},
		{Label: "Runtime Stack", Value: memory.String()},
		{Label: "Reference Pointer", Value: strconv.Itoa(m.referencePointer)},
	}
}

// State renders the machine state tuple
// (counter, stack, runtime stack, reference pointer, input, output)
// with the stack shown top to bottom. The format is relied on by tracing
// tools and must not change.
func (m *Machine) State(input, output []int) string {
	return fmt.Sprintf("(%d, %s, %s, %d, %s, %s)",
		m.counter,
		machine.JoinIntsReversed(m.stack),
		machine.JoinInts(m.runtimeStack),
		m.referencePointer,
		machine.JoinInts(input),
		machine.JoinInts(output),
	)
}

// ---------------------------------------------------------------------------
// Stack and storage access
// ---------------------------------------------------------------------------

func (m *Machine) pop() (int, error) {
	if len(m.stack) == 0 {
		return 0, &machine.IndexError{Index: -1, Length: 0}
	}
	value := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return value, nil
}

// binaryOp pops two operands and pushes the result, writing through the
// lower slot so a one-element stack faults without mutation.
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

// fetch reads the runtime stack at a 1-based address.
func (m *Machine) fetch(address int) (int, error) {
	if address < 1 || address > len(m.runtimeStack) {
		return 0, &machine.IndexError{Index: address - 1, Length: len(m.runtimeStack)}
	}
	return m.runtimeStack[address-1], nil
}

// put writes the runtime stack at a 1-based address.
func (m *Machine) put(address, value int) error {
	if address < 1 || address > len(m.runtimeStack) {
		return &machine.IndexError{Index: address - 1, Length: len(m.runtimeStack)}
	}
	m.runtimeStack[address-1] = value
	return nil
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
		err = m.load(instruction.Context, instruction.Payload)
	case OpLOADA:
		var address int
		address, err = instruction.Context.ResolveAddress(instruction.Payload, m.referencePointer)
		if err == nil {
			m.stack = append(m.stack, address)
		}
	case OpLOADI:
		err = m.loadIndirect(instruction.Payload)
	case OpSTORE:
		err = m.store(instruction.Context, instruction.Payload)
	case OpSTOREI:
		err = m.storeIndirect(instruction.Payload)
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
		output, err = m.write(instruction.Context, instruction.Payload)
	case OpWRITEI:
		output, err = m.writeIndirect(instruction.Payload)
	case OpREAD:
		err = m.read(instruction.Context, instruction.Payload)
	case OpREADI:
		err = m.readIndirect(instruction.Payload)
	case OpPUSH:
		var value int
		value, err = m.pop()
		if err == nil {
			m.runtimeStack = append(m.runtimeStack, value)
		}
	case OpCALL:
		m.runtimeStack = append(m.runtimeStack, m.counter+1, m.referencePointer)
		m.counter = instruction.Payload - 1
		m.referencePointer = len(m.runtimeStack)
	case OpINIT:
		for i := 0; i < instruction.Payload; i++ {
			m.runtimeStack = append(m.runtimeStack, 0)
		}
	case OpRET:
		err = m.ret(instruction.Payload)
	default:
		err = &machine.DecodeError{Detail: instruction.String()}
	}
	if err != nil {
		return machine.Output{}, err
	}
	m.counter++
	return output, nil
}

func (m *Machine) load(context Context, address int) error {
	resolved, err := context.ResolveAddress(address, m.referencePointer)
	if err != nil {
		return err
	}
	value, err := m.fetch(resolved)
	if err != nil {
		return err
	}
	m.stack = append(m.stack, value)
	return nil
}

// loadIndirect pushes the value addressed by the local slot at address.
func (m *Machine) loadIndirect(address int) error {
	resolved, err := Local.ResolveAddress(address, m.referencePointer)
	if err != nil {
		return err
	}
	slot, err := m.fetch(resolved)
	if err != nil {
		return err
	}
	value, err := m.fetch(slot)
	if err != nil {
		return err
	}
	m.stack = append(m.stack, value)
	return nil
}

// store pops before the destination is checked, matching the original
// evaluation order.
func (m *Machine) store(context Context, address int) error {
	value, err := m.pop()
	if err != nil {
		return err
	}
	resolved, err := context.ResolveAddress(address, m.referencePointer)
	if err != nil {
		return err
	}
	return m.put(resolved, value)
}

func (m *Machine) storeIndirect(address int) error {
	resolved, err := Local.ResolveAddress(address, m.referencePointer)
	if err != nil {
		return err
	}
	value, err := m.pop()
	if err != nil {
		return err
	}
	slot, err := m.fetch(resolved)
	if err != nil {
		return err
	}
	return m.put(slot, value)
}

func (m *Machine) write(context Context, address int) (machine.Output, error) {
	resolved, err := context.ResolveAddress(address, m.referencePointer)
	if err != nil {
		return machine.Output{}, err
	}
	value, err := m.fetch(resolved)
	if err != nil {
		return machine.Output{}, err
	}
	return machine.Output{Value: value, Present: true}, nil
}

func (m *Machine) writeIndirect(address int) (machine.Output, error) {
	resolved, err := Local.ResolveAddress(address, m.referencePointer)
	if err != nil {
		return machine.Output{}, err
	}
	slot, err := m.fetch(resolved)
	if err != nil {
		return machine.Output{}, err
	}
	value, err := m.fetch(slot)
	if err != nil {
		return machine.Output{}, err
	}
	return machine.Output{Value: value, Present: true}, nil
}

// read consumes input before the target slot is checked, matching the
// original evaluation order.
func (m *Machine) read(context Context, address int) error {
	resolved, err := context.ResolveAddress(address, m.referencePointer)
	if err != nil {
		return err
	}
	value, ok := m.input.Next()
	if !ok {
		return machine.ErrNoInput
	}
	return m.put(resolved, value)
}

func (m *Machine) readIndirect(address int) error {
	resolved, err := Local.ResolveAddress(address, m.referencePointer)
	if err != nil {
		return err
	}
	value, ok := m.input.Next()
	if !ok {
		return machine.ErrNoInput
	}
	slot, err := m.fetch(resolved)
	if err != nil {
		return err
	}
	return m.put(slot, value)
}

// ret restores the saved counter and reference pointer from the link pair
// below the frame base and drops the frame together with the given number
// of caller-passed parameters.
func (m *Machine) ret(parameters int) error {
	if m.referencePointer <= 1 {
		return machine.ErrNoFrame
	}
	counter, err := m.fetch(m.referencePointer - 1)
	if err != nil {
		return err
	}
	reference, err := m.fetch(m.referencePointer)
	if err != nil {
		return err
	}
	cut := m.referencePointer - parameters - 2
	if cut < 0 {
		cut = 0
	}
	if cut > len(m.runtimeStack) {
		cut = len(m.runtimeStack)
	}
	m.counter = counter - 1
	m.referencePointer = reference
	m.runtimeStack = m.runtimeStack[:cut]
	return nil
}
