package harness

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/synadia-labs/wrapcost/collatz"
)

// SweepSummary describes a verified seed range.
type SweepSummary struct {
	From, To     int64
	Seeds        int
	MaxSteps     int
	MaxStepsSeed int64
	MaxPeak      int64
	MaxPeakSeed  int64
}

// merge folds o into s. Ties keep the smaller seed so the summary does
// not depend on worker scheduling.
func (s *SweepSummary) merge(o SweepSummary) {
	if o.Seeds == 0 {
		return
	}
	first := s.Seeds == 0
	s.Seeds += o.Seeds
	if first || o.MaxSteps > s.MaxSteps || (o.MaxSteps == s.MaxSteps && o.MaxStepsSeed < s.MaxStepsSeed) {
		s.MaxSteps, s.MaxStepsSeed = o.MaxSteps, o.MaxStepsSeed
	}
	if first || o.MaxPeak > s.MaxPeak || (o.MaxPeak == s.MaxPeak && o.MaxPeakSeed < s.MaxPeakSeed) {
		s.MaxPeak, s.MaxPeakSeed = o.MaxPeak, o.MaxPeakSeed
	}
}

const sweepChunk = 1024

// Sweep verifies every variant on each seed in [from, to]. Chunks of
// seeds are checked by at most workers goroutines; workers <= 0 means
// GOMAXPROCS. The first failure cancels the rest.
func Sweep(ctx context.Context, from, to int64, workers int) (SweepSummary, error) {
	if err := collatz.CheckSeed(from); err != nil {
		return SweepSummary{}, err
	}
	if to < from {
		return SweepSummary{}, fmt.Errorf("harness: empty seed range [%d, %d]", from, to)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	vs := collatz.Variants()

	var (
		mu    sync.Mutex
		total = SweepSummary{From: from, To: to}
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := from; lo <= to; lo += sweepChunk {
		hi := to
		if to-lo >= sweepChunk {
			hi = lo + sweepChunk - 1
		}
		g.Go(func() error {
			part, err := sweepRange(ctx, vs, lo, hi)
			if err != nil {
				return err
			}
			mu.Lock()
			total.merge(part)
			mu.Unlock()
			return nil
		})
		if hi == to {
			break
		}
	}
	if err := g.Wait(); err != nil {
		return SweepSummary{}, err
	}
	return total, nil
}

func sweepRange(ctx context.Context, vs []collatz.Variant, lo, hi int64) (SweepSummary, error) {
	var part SweepSummary
	for seed := lo; seed <= hi; seed++ {
		if err := ctx.Err(); err != nil {
			return part, err
		}
		seq, err := collatz.Trace(seed)
		if err != nil {
			return part, err
		}
		if err := Verify(vs, seed); err != nil {
			return part, err
		}
		part.merge(SweepSummary{Seeds: 1, MaxSteps: seq.Steps, MaxStepsSeed: seed, MaxPeak: seq.Peak, MaxPeakSeed: seed})
	}
	return part, nil
}
