package numtheory

import "errors"

var (
	// ErrInvalidModulus is returned when a modulus is zero or negative.
	ErrInvalidModulus = errors.New("modulus must be positive")

	// ErrDivisionByZero is returned when an operation would divide by zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrNegativeOperand is returned when an operand must be non-negative.
	ErrNegativeOperand = errors.New("operand must be non-negative")

	// ErrInvalidRounds is returned when a primality test is asked for fewer than one round.
	ErrInvalidRounds = errors.New("confidence rounds must be at least 1")
)
