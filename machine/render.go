package machine

import (
	"strconv"
	"strings"
)

// EmptySequence is the placeholder rendered in place of an empty sequence
// in machine state tuples. Tracing tools rely on it, do not change it.
const EmptySequence = "ε"

// JoinInts renders values separated by " : ", or the empty-sequence
// placeholder when there are none.
func JoinInts(values []int) string {
	if len(values) == 0 {
		return EmptySequence
	}
	var b strings.Builder
	for i, value := range values {
		if i > 0 {
			b.WriteString(" : ")
		}
		b.WriteString(strconv.Itoa(value))
	}
	return b.String()
}

// JoinIntsReversed renders values from last to first, used for stacks
// which are displayed top to bottom.
func JoinIntsReversed(values []int) string {
	if len(values) == 0 {
		return EmptySequence
	}
	var b strings.Builder
	for i := len(values) - 1; i >= 0; i-- {
		if i < len(values)-1 {
			b.WriteString(" : ")
		}
		b.WriteString(strconv.Itoa(values[i]))
	}
	return b.String()
}
