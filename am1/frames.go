package am1

import "iter"

// Frames walks the runtime stack from the innermost call frame outwards,
// yielding each frame as a subslice of the runtime stack. A frame starts
// at its saved counter/reference pointer link pair and ends below the
// next frame's link pair; the slice below the outermost pair is yielded
// last as the global segment. Malformed link chains end the walk early
// instead of faulting.
func (m *Machine) Frames() iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		previous := len(m.runtimeStack) + 2
		reference := m.referencePointer
		for reference > 0 {
			if reference < 2 || reference > len(m.runtimeStack) {
				return
			}
			end := previous - 2
			if end > len(m.runtimeStack) {
				end = len(m.runtimeStack)
			}
			if end < reference-2 {
				return
			}
			if !yield(m.runtimeStack[reference-2 : end]) {
				return
			}
			previous = reference
			reference = m.runtimeStack[reference-1]
		}
		if previous > 2 {
			end := previous - 2
			if end > len(m.runtimeStack) {
				end = len(m.runtimeStack)
			}
			if !yield(m.runtimeStack[:end]) {
				return
			}
		}
	}
}
