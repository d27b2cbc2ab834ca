package collatz

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSeed is returned when a seed is not a positive integer.
	ErrInvalidSeed error = errors.New("collatz: seed must be positive")

	// ErrOverflow is returned when 3n+1 would not fit in an int64.
	ErrOverflow error = errors.New("collatz: sequence overflows int64")

	// ErrStepLimit is returned when a sequence has not reached 1
	// after MaxSteps steps.
	ErrStepLimit error = errors.New("collatz: step limit exceeded")
)

// CheckSeed reports whether seed is usable by the validated entry
// points. Non-positive seeds never reach 1.
func CheckSeed(seed int64) error {
	if seed < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSeed, seed)
	}
	return nil
}
