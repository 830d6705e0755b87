// Package repl implements the interactive shell driving a single
// abstract machine instruction by instruction.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Deric-W/AMN/machine"
)

// DefaultPrompt is the prompt written before each command line.
const DefaultPrompt = "AMN >> "

// continuationPrompt is used while collecting a program for the run command.
const continuationPrompt = "... "

// LineSource supplies command lines, prompting where possible.
// ReadLine returns io.EOF when no more lines can be read.
type LineSource interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// ReaderSource reads lines from a plain reader, echoing the prompt to a
// writer. It serves pipes and tests; interactive sessions use LinerSource.
type ReaderSource struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewReaderSource creates a line source reading from r and prompting on w.
func NewReaderSource(r io.Reader, w io.Writer) *ReaderSource {
	return &ReaderSource{scanner: bufio.NewScanner(r), out: w}
}

func (s *ReaderSource) ReadLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

func (s *ReaderSource) Close() error { return nil }

// ---------------------------------------------------------------------------
// Shell
// ---------------------------------------------------------------------------

// REPL drives a machine interactively. Outputs produced by executed
// instructions are collected for the state command until the next reset.
type REPL[I any] struct {
	set          machine.InstructionSet[I]
	parseProgram func(source string) ([]I, error)
	machine      machine.Machine[I]
	source       LineSource
	out          io.Writer
	prompt       string
	outputs      []int
}

// New creates a shell around m, parsing instructions with set and whole
// programs with parseProgram.
func New[I any](
	set machine.InstructionSet[I],
	parseProgram func(source string) ([]I, error),
	m machine.Machine[I],
	source LineSource,
	out io.Writer,
) *REPL[I] {
	return &REPL[I]{
		set:          set,
		parseProgram: parseProgram,
		machine:      m,
		source:       source,
		out:          out,
		prompt:       DefaultPrompt,
	}
}

// SetPrompt replaces the default command prompt.
func (r *REPL[I]) SetPrompt(prompt string) { r.prompt = prompt }

// Loop reads and dispatches commands until the exit command or the end of
// the line source. A non-nil error means the line source failed.
func (r *REPL[I]) Loop(banner string) error {
	if banner != "" {
		fmt.Fprintln(r.out, banner)
	}
	for {
		line, err := r.source.ReadLine(r.prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "Exiting REPL...\n")
			return nil
		} else if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		command, arg, _ := strings.Cut(line, " ")
		switch command {
		case "exec":
			r.exec(arg)
		case "run":
			if err := r.run(); err != nil {
				return err
			}
		case "reset":
			r.machine.Reset()
			r.outputs = r.outputs[:0]
		case "status":
			for _, entry := range r.machine.Status() {
				fmt.Fprintf(r.out, "%s: %s\n", entry.Label, entry.Value)
			}
		case "state":
			fmt.Fprintf(r.out, "%s\n", r.machine.State(r.pendingInput(), r.outputs))
		case "frames":
			r.frames()
		case "help":
			r.help()
		case "exit", "quit":
			fmt.Fprintf(r.out, "Exiting REPL...\n")
			return nil
		default:
			fmt.Fprintf(r.out, "*** Unknown command: %s\n", line)
		}
	}
}

// exec parses and executes a single instruction.
func (r *REPL[I]) exec(arg string) {
	instruction, err := r.set.ParseLine(arg)
	if err != nil {
		fmt.Fprintf(r.out, "Error while parsing: %v\n", err)
		return
	}
	output, err := r.machine.ExecuteInstruction(instruction)
	if err != nil {
		fmt.Fprintf(r.out, "Error while executing: %v\n", err)
		return
	}
	if output.Present {
		fmt.Fprintf(r.out, "Output: %d\n", output.Value)
		r.outputs = append(r.outputs, output.Value)
	}
}

// run collects program lines until a blank line and executes them from
// instruction 1, leaving the machine in the final state.
func (r *REPL[I]) run() error {
	var lines []string
	for {
		line, err := r.source.ReadLine(continuationPrompt)
		if errors.Is(err, io.EOF) || err == nil && strings.TrimSpace(line) == "" {
			break
		} else if err != nil {
			return err
		}
		lines = append(lines, line)
	}
	program, err := r.parseProgram(strings.Join(lines, "\n"))
	if err != nil {
		fmt.Fprintf(r.out, "Error while parsing: %v\n", err)
		return nil
	}
	for output, err := range machine.Run(r.machine, program) {
		if err != nil {
			fmt.Fprintf(r.out, "Error while executing: %v\n", err)
			return nil
		}
		if output.Present {
			fmt.Fprintf(r.out, "Output: %d\n", output.Value)
			r.outputs = append(r.outputs, output.Value)
		}
	}
	return nil
}

func (r *REPL[I]) frames() {
	framer, ok := any(r.machine).(machine.Framer)
	if !ok {
		fmt.Fprintf(r.out, "frames are not supported by this machine\n")
		return
	}
	index := 0
	for frame := range framer.Frames() {
		fmt.Fprintf(r.out, "%d: %v\n", index, frame)
		index++
	}
	if index == 0 {
		fmt.Fprintf(r.out, "no frames\n")
	}
}

func (r *REPL[I]) help() {
	fmt.Fprint(r.out,
		"exec <instruction>  execute a single instruction\n"+
			"run                 read program lines until a blank line and run them\n"+
			"reset               reset the machine and forget collected outputs\n"+
			"status              print the machine registers\n"+
			"state               print the machine state tuple\n"+
			"frames              print the runtime stack split into call frames\n"+
			"help                print this overview\n"+
			"exit                leave the shell\n",
	)
}

// pendingInput enumerates the values the machine has not consumed yet,
// when the input source can tell.
func (r *REPL[I]) pendingInput() []int {
	if remainder, ok := r.machine.Input().(machine.Remainder); ok {
		return remainder.Remaining()
	}
	return nil
}
