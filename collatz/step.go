// Package collatz holds the workload used to price value wrapping: the
// Collatz sequence from a seed down to 1, computed through a bare
// int64, a heap-allocated Box, and the zero-cost Value.
package collatz

// Seed is the reference seed. It takes 111 steps to reach 1 and peaks
// at 9232.
const Seed int64 = 27

// Step applies the Collatz rule to n. n must be greater than 1.
func Step(n int64) int64 {
	if n%2 == 0 {
		return n / 2
	}
	return 3*n + 1
}

// Tally counts step applications. A nil *Tally is valid and records
// nothing.
type Tally struct {
	Steps int
	Peak  int64
}

func (t *Tally) step(n int64) int64 {
	next := Step(n)
	if t != nil {
		t.Steps++
		if next > t.Peak {
			t.Peak = next
		}
	}
	return next
}
