package report

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/tools/benchmark/parse"

	"github.com/synadia-labs/wrapcost/collatz"
	"github.com/synadia-labs/wrapcost/harness"
)

// ErrNoBenchmarks is returned when the input holds no benchmark lines.
var ErrNoBenchmarks error = errors.New("report: no benchmark results found")

// ParseBench reads `go test -bench -benchmem` output and converts each
// benchmark line into a Result, in input order. Repeated names (from
// -count) become successive rounds.
//
// Sub-benchmarks named Outer/<variant>/seed=<n> carry their variant and
// seed; top-level names use the name without its Benchmark prefix and
// leave Seed at 0. Steps is filled in whenever the seed is known.
func ParseBench(r io.Reader) ([]harness.Result, error) {
	set, err := parse.ParseSet(r)
	if err != nil {
		return nil, fmt.Errorf("report: parse bench output: %w", err)
	}

	var all []*parse.Benchmark
	for _, bs := range set {
		all = append(all, bs...)
	}
	if len(all) == 0 {
		return nil, ErrNoBenchmarks
	}
	slices.SortFunc(all, func(a, b *parse.Benchmark) int { return a.Ord - b.Ord })

	rounds := make(map[string]int, len(set))
	out := make([]harness.Result, 0, len(all))
	for _, b := range all {
		name := trimProcs(b.Name)
		rounds[name]++
		res := harness.Result{Round: rounds[name], N: b.N}
		res.Variant, res.Seed = splitName(name)
		if b.Measured&parse.NsPerOp != 0 {
			res.NsPerOp = b.NsPerOp
		}
		if b.Measured&parse.AllocsPerOp != 0 {
			res.AllocsPerOp = float64(b.AllocsPerOp)
		}
		if b.Measured&parse.AllocedBytesPerOp != 0 {
			res.BytesPerOp = float64(b.AllocedBytesPerOp)
		}
		if res.Seed > 0 {
			if seq, err := collatz.Trace(res.Seed); err == nil {
				res.Steps = seq.Steps
			}
		}
		out = append(out, res)
	}
	return out, nil
}

// trimProcs drops the -GOMAXPROCS suffix go test appends to names.
func trimProcs(name string) string {
	i := strings.LastIndexByte(name, '-')
	if i < 0 || i == len(name)-1 {
		return name
	}
	if _, err := strconv.Atoi(name[i+1:]); err != nil {
		return name
	}
	return name[:i]
}

func splitName(name string) (variant string, seed int64) {
	parts := strings.Split(name, "/")
	variant = strings.TrimPrefix(parts[0], "Benchmark")
	if len(parts) > 1 {
		variant = parts[1]
	}
	for _, p := range parts[1:] {
		if v, ok := strings.CutPrefix(p, "seed="); ok {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				seed = n
			}
		}
	}
	return variant, seed
}
