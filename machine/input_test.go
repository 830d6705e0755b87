package machine

import (
	"slices"
	"strings"
	"testing"
)

func TestSliceInput(t *testing.T) {
	input := NewSliceInput(1, 2, 3)
	if !slices.Equal(input.Remaining(), []int{1, 2, 3}) {
		t.Errorf("remaining = %v", input.Remaining())
	}
	for _, want := range []int{1, 2, 3} {
		got, ok := input.Next()
		if !ok || got != want {
			t.Errorf("Next() = %d, %v, want %d", got, ok, want)
		}
	}
	if _, ok := input.Next(); ok {
		t.Error("exhausted input yielded a value")
	}
	if remaining := input.Remaining(); len(remaining) != 0 {
		t.Errorf("remaining after exhaustion = %v", remaining)
	}
}

func TestInputFunc(t *testing.T) {
	calls := 0
	input := InputFunc(func() (int, bool) {
		calls++
		return calls, calls < 3
	})
	if value, _ := input.Next(); value != 1 {
		t.Errorf("Next() = %d, want 1", value)
	}
}

func TestPromptInput(t *testing.T) {
	var out strings.Builder
	input := NewPromptInput(strings.NewReader("  5\n\nabc\n7\n"), &out, "Input: ")

	if value, ok := input.Next(); !ok || value != 5 {
		t.Errorf("Next() = %d, %v, want 5", value, ok)
	}
	if value, ok := input.Next(); !ok || value != 7 {
		t.Errorf("Next() = %d, %v, want 7", value, ok)
	}
	if _, ok := input.Next(); ok {
		t.Error("Next() after end of input succeeded")
	}

	if !strings.Contains(out.String(), "Input: ") {
		t.Error("prompt was not written")
	}
	if !strings.Contains(out.String(), `not a number: "abc"`) {
		t.Errorf("rejection message missing from %q", out.String())
	}
}
