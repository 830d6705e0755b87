package machine

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Input is a pull-based source of integers consumed by READ-family
// instructions. Next reports false when the source is exhausted;
// exhaustion is permanent.
type Input interface {
	Next() (int, bool)
}

// Remainder is implemented by input sources able to enumerate their
// pending values, used by tracing and the REPL state command.
type Remainder interface {
	Remaining() []int
}

// InputFunc adapts a function to an Input.
type InputFunc func() (int, bool)

func (f InputFunc) Next() (int, bool) { return f() }

// ---------------------------------------------------------------------------
// Slice-backed input
// ---------------------------------------------------------------------------

// SliceInput yields a fixed sequence of values.
type SliceInput struct {
	values []int
	pos    int
}

// NewSliceInput creates an input source over the given values.
func NewSliceInput(values ...int) *SliceInput {
	return &SliceInput{values: values}
}

func (s *SliceInput) Next() (int, bool) {
	if s.pos >= len(s.values) {
		return 0, false
	}
	value := s.values[s.pos]
	s.pos++
	return value, true
}

// Remaining returns a copy of the values not yet consumed.
func (s *SliceInput) Remaining() []int {
	remaining := make([]int, len(s.values)-s.pos)
	copy(remaining, s.values[s.pos:])
	return remaining
}

// ---------------------------------------------------------------------------
// Interactive input
// ---------------------------------------------------------------------------

// PromptInput reads integers interactively, writing a prompt before each
// value. Blank lines are skipped and non-integer lines are rejected with a
// message; end of input reports exhaustion.
type PromptInput struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

// NewPromptInput creates an interactive input source reading from r and
// prompting on w.
func NewPromptInput(r io.Reader, w io.Writer, prompt string) *PromptInput {
	return &PromptInput{
		scanner: bufio.NewScanner(r),
		out:     w,
		prompt:  prompt,
	}
}

func (p *PromptInput) Next() (int, bool) {
	for {
		fmt.Fprint(p.out, p.prompt)
		if !p.scanner.Scan() {
			return 0, false
		}
		text := strings.TrimSpace(p.scanner.Text())
		if text == "" {
			continue
		}
		value, err := strconv.Atoi(text)
		if err != nil {
			fmt.Fprintf(p.out, "not a number: %q\n", text)
			continue
		}
		return value, true
	}
}
