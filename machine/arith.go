package machine

// FloorDiv divides rounding the quotient towards negative infinity,
// the division semantics of the instruction languages.
func FloorDiv(left, right int) (int, error) {
	if right == 0 {
		return 0, ErrDivisionByZero
	}
	quotient := left / right
	if left%right != 0 && (left < 0) != (right < 0) {
		quotient--
	}
	return quotient, nil
}

// FloorMod computes the remainder matching FloorDiv, which keeps the
// sign of the divisor.
func FloorMod(left, right int) (int, error) {
	if right == 0 {
		return 0, ErrDivisionByZero
	}
	remainder := left % right
	if remainder != 0 && (remainder < 0) != (right < 0) {
		remainder += right
	}
	return remainder, nil
}
