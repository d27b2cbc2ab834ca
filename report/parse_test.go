package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const benchOutput = `goos: linux
goarch: amd64
pkg: github.com/synadia-labs/wrapcost/benchmarks
cpu: AMD EPYC 7B13
BenchmarkPlainIterative-8                    	 9824361	       121.9 ns/op	       0 B/op	       0 allocs/op
BenchmarkVariant/wrapped-recursive/seed=27-8 	  412334	      2893 ns/op	     896 B/op	     112 allocs/op
BenchmarkVariant/zero-cost-recursive/seed=6-8	32654112	        36.71 ns/op	       0 B/op	       0 allocs/op
BenchmarkVariant/wrapped-recursive/seed=27-8 	  409876	      2911 ns/op	     896 B/op	     112 allocs/op
BenchmarkStepTally                           	 8000000	       140.2 ns/op
PASS
ok  	github.com/synadia-labs/wrapcost/benchmarks	9.412s
`

func TestParseBench(t *testing.T) {
	res, err := ParseBench(strings.NewReader(benchOutput))
	require.NoError(t, err)
	require.Len(t, res, 5)

	require.Equal(t, "PlainIterative", res[0].Variant)
	require.Zero(t, res[0].Seed)
	require.Zero(t, res[0].Steps)
	require.Equal(t, 9824361, res[0].N)
	require.InDelta(t, 121.9, res[0].NsPerOp, 1e-9)

	require.Equal(t, "wrapped-recursive", res[1].Variant)
	require.Equal(t, int64(27), res[1].Seed)
	require.Equal(t, 111, res[1].Steps)
	require.Equal(t, 1, res[1].Round)
	require.Equal(t, float64(112), res[1].AllocsPerOp)
	require.Equal(t, float64(896), res[1].BytesPerOp)

	require.Equal(t, "zero-cost-recursive", res[2].Variant)
	require.Equal(t, int64(6), res[2].Seed)
	require.Equal(t, 8, res[2].Steps)

	require.Equal(t, "wrapped-recursive", res[3].Variant)
	require.Equal(t, 2, res[3].Round)
	require.InDelta(t, 2911, res[3].NsPerOp, 1e-9)

	require.Equal(t, "StepTally", res[4].Variant)
	require.Zero(t, res[4].AllocsPerOp)
}

func TestParseBenchEmpty(t *testing.T) {
	_, err := ParseBench(strings.NewReader("PASS\nok  \tpkg\t0.01s\n"))
	require.ErrorIs(t, err, ErrNoBenchmarks)
}

func TestTrimProcs(t *testing.T) {
	cases := map[string]string{
		"BenchmarkPlainIterative-16":                 "BenchmarkPlainIterative",
		"BenchmarkPlainIterative":                    "BenchmarkPlainIterative",
		"BenchmarkVariant/plain-iterative/seed=27-4": "BenchmarkVariant/plain-iterative/seed=27",
		"BenchmarkVariant/plain-iterative/seed=27":   "BenchmarkVariant/plain-iterative/seed=27",
		"BenchmarkOdd-":                              "BenchmarkOdd-",
	}
	for in, want := range cases {
		require.Equal(t, want, trimProcs(in), in)
	}
}
