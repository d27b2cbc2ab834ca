// Package harness drives the collatz variants through testing.Benchmark
// and checks that they agree before anything is timed.
package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/synadia-labs/wrapcost/collatz"
)

var (
	// ErrMismatch is returned when variants disagree on a seed.
	ErrMismatch error = errors.New("harness: variants disagree")

	// ErrUnknownVariant is returned for a variant name Lookup cannot find.
	ErrUnknownVariant error = errors.New("harness: unknown variant")
)

// Options configures a Run.
type Options struct {
	Seed int64
	// Count is the number of measured rounds per variant.
	Count int
	// Warmup rounds are benchmarked and discarded.
	Warmup int
	// Variants restricts the run to the named variants. Empty means all.
	Variants []string
	Logger   *slog.Logger
}

// Validate checks o and resolves the selected variants.
func (o Options) Validate() ([]collatz.Variant, error) {
	if err := collatz.CheckSeed(o.Seed); err != nil {
		return nil, err
	}
	if o.Count < 1 {
		return nil, fmt.Errorf("harness: count must be at least 1, got %d", o.Count)
	}
	if o.Warmup < 0 {
		return nil, fmt.Errorf("harness: warmup must not be negative, got %d", o.Warmup)
	}
	return Select(o.Variants)
}

// Select resolves names to variants in their canonical order.
func Select(names []string) ([]collatz.Variant, error) {
	all := collatz.Variants()
	if len(names) == 0 {
		return all, nil
	}
	want := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := collatz.Lookup(name); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
		}
		want[name] = true
	}
	out := make([]collatz.Variant, 0, len(want))
	for _, v := range all {
		if want[v.Name] {
			out = append(out, v)
		}
	}
	return out, nil
}

// Result is one measured round of one variant.
type Result struct {
	Variant     string  `json:"variant" cbor:"variant"`
	Seed        int64   `json:"seed" cbor:"seed"`
	Round       int     `json:"round" cbor:"round"`
	Steps       int     `json:"steps" cbor:"steps"`
	N           int     `json:"n" cbor:"n"`
	NsPerOp     float64 `json:"ns_per_op" cbor:"ns_per_op"`
	AllocsPerOp float64 `json:"allocs_per_op" cbor:"allocs_per_op"`
	BytesPerOp  float64 `json:"bytes_per_op" cbor:"bytes_per_op"`
}

// Verify runs every variant on seed and fails unless all of them reach
// 1 after the same number of steps as Trace.
func Verify(vs []collatz.Variant, seed int64) error {
	seq, err := collatz.Trace(seed)
	if err != nil {
		return err
	}
	for _, v := range vs {
		tally, got, err := collatz.Run(v, seed)
		if err != nil {
			return err
		}
		if got != 1 || tally.Steps != seq.Steps {
			return fmt.Errorf("%w: %s seed %d returned %d after %d steps, want 1 after %d",
				ErrMismatch, v.Name, seed, got, tally.Steps, seq.Steps)
		}
	}
	return nil
}

// Run verifies the selected variants on opts.Seed, then benchmarks each
// of them opts.Warmup+opts.Count times. Only the counted rounds are
// returned, in variant order.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	vs, err := opts.Validate()
	if err != nil {
		return nil, err
	}
	if err := Verify(vs, opts.Seed); err != nil {
		return nil, err
	}
	seq, err := collatz.Trace(opts.Seed)
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	results := make([]Result, 0, len(vs)*opts.Count)
	for _, v := range vs {
		for round := 1 - opts.Warmup; round <= opts.Count; round++ {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			br := testing.Benchmark(benchmarkVariant(v, opts.Seed))
			if round < 1 {
				log.Debug("warmup", "variant", v.Name, "ns_per_op", br.NsPerOp())
				continue
			}
			res := newResult(v.Name, opts.Seed, round, seq.Steps, br)
			log.Info("measured", "variant", v.Name, "round", round,
				"ns_per_op", res.NsPerOp, "allocs_per_op", res.AllocsPerOp)
			results = append(results, res)
		}
	}
	return results, nil
}

func newResult(name string, seed int64, round, steps int, br testing.BenchmarkResult) Result {
	res := Result{
		Variant: name,
		Seed:    seed,
		Round:   round,
		Steps:   steps,
		N:       br.N,
	}
	if br.N > 0 {
		res.NsPerOp = float64(br.T.Nanoseconds()) / float64(br.N)
		res.AllocsPerOp = float64(br.MemAllocs) / float64(br.N)
		res.BytesPerOp = float64(br.MemBytes) / float64(br.N)
	}
	return res
}

var sink int64

func benchmarkVariant(v collatz.Variant, seed int64) func(b *testing.B) {
	return func(b *testing.B) {
		var out int64
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			out = v.From(seed, nil)
		}
		sink = out
	}
}
