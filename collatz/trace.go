package collatz

import (
	"fmt"
	"math"
)

// MaxSteps bounds Trace and Run. No seed below 2^60 is known to need
// more than a few thousand steps.
const MaxSteps = 1 << 20

// Sequence is the full orbit of a seed.
type Sequence struct {
	Seed  int64
	Terms []int64
	Steps int
	Peak  int64
}

// Trace walks seed down to 1, recording every term.
func Trace(seed int64) (Sequence, error) {
	if err := CheckSeed(seed); err != nil {
		return Sequence{}, err
	}
	seq := Sequence{Seed: seed, Terms: []int64{seed}, Peak: seed}
	for n := seed; n != 1; {
		if seq.Steps == MaxSteps {
			return seq, fmt.Errorf("%w: seed %d after %d steps", ErrStepLimit, seed, seq.Steps)
		}
		if n%2 != 0 && n > (math.MaxInt64-1)/3 {
			return seq, fmt.Errorf("%w: seed %d at term %d", ErrOverflow, seed, n)
		}
		n = Step(n)
		seq.Steps++
		seq.Terms = append(seq.Terms, n)
		if n > seq.Peak {
			seq.Peak = n
		}
	}
	return seq, nil
}

// Run checks that seed terminates safely, then runs v on it with a
// fresh Tally.
func Run(v Variant, seed int64) (Tally, int64, error) {
	if _, err := Trace(seed); err != nil {
		return Tally{}, 0, err
	}
	t := Tally{Peak: seed}
	got := v.From(seed, &t)
	return t, got, nil
}
