package collatz

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

var sink int64

func TestStep(t *testing.T) {
	cases := []struct {
		in, want int64
	}{
		{2, 1},
		{3, 10},
		{6, 3},
		{27, 82},
		{9232, 4616},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Step(tc.in), "Step(%d)", tc.in)
	}
}

func TestFixedSeedEntryPoints(t *testing.T) {
	entries := map[string]func() int64{
		NamePlainIterative:           PlainIterative,
		NameWrappedIterative:         WrappedIterative,
		NameWrappedRecursive:         WrappedRecursive,
		NameZeroCostWrappedRecursive: ZeroCostWrappedRecursive,
		NameStructWrappedRecursive:   StructWrappedRecursive,
	}
	for name, fn := range entries {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, int64(1), fn())
			require.Equal(t, int64(1), fn(), "second call must match the first")
		})
	}
}

func TestVariantsReferenceSeed(t *testing.T) {
	for _, v := range Variants() {
		t.Run(v.Name, func(t *testing.T) {
			tally, got, err := Run(v, Seed)
			require.NoError(t, err)
			require.Equal(t, int64(1), got)
			require.Equal(t, 111, tally.Steps)
			require.Equal(t, int64(9232), tally.Peak)
		})
	}
}

func TestVariantsSmallSeeds(t *testing.T) {
	cases := []struct {
		seed  int64
		steps int
		peak  int64
	}{
		{1, 0, 1},
		{2, 1, 2},
		{6, 8, 16},
		{7, 16, 52},
		{97, 118, 9232},
	}
	for _, v := range Variants() {
		for _, tc := range cases {
			tally, got, err := Run(v, tc.seed)
			require.NoError(t, err)
			require.Equal(t, int64(1), got, "%s seed %d", v.Name, tc.seed)
			require.Equal(t, tc.steps, tally.Steps, "%s seed %d", v.Name, tc.seed)
			require.Equal(t, tc.peak, tally.Peak, "%s seed %d", v.Name, tc.seed)
		}
	}
}

func TestVariantsAgreeUpTo10000(t *testing.T) {
	variants := Variants()
	for seed := int64(1); seed <= 10000; seed++ {
		seq, err := Trace(seed)
		require.NoError(t, err)
		for _, v := range variants {
			var tally Tally
			got := v.From(seed, &tally)
			if got != 1 || tally.Steps != seq.Steps {
				t.Fatalf("%s seed %d: got %d after %d steps, want 1 after %d", v.Name, seed, got, tally.Steps, seq.Steps)
			}
		}
	}
}

func TestTrace(t *testing.T) {
	seq, err := Trace(6)
	require.NoError(t, err)
	require.Equal(t, []int64{6, 3, 10, 5, 16, 8, 4, 2, 1}, seq.Terms)
	require.Equal(t, 8, seq.Steps)
	require.Equal(t, int64(16), seq.Peak)

	seq, err = Trace(1)
	require.NoError(t, err)
	require.Equal(t, []int64{1}, seq.Terms)
	require.Zero(t, seq.Steps)

	seq, err = Trace(Seed)
	require.NoError(t, err)
	require.Equal(t, 111, seq.Steps)
	require.Len(t, seq.Terms, 112)
	require.Equal(t, int64(9232), seq.Peak)
}

func TestInvalidSeeds(t *testing.T) {
	for _, seed := range []int64{0, -1, -27, math.MinInt64} {
		require.ErrorIs(t, CheckSeed(seed), ErrInvalidSeed)

		_, err := Trace(seed)
		require.ErrorIs(t, err, ErrInvalidSeed)

		v, ok := Lookup(NamePlainIterative)
		require.True(t, ok)
		_, _, err = Run(v, seed)
		require.ErrorIs(t, err, ErrInvalidSeed)
	}
}

func TestOverflow(t *testing.T) {
	_, err := Trace(math.MaxInt64)
	require.ErrorIs(t, err, ErrOverflow)

	v, _ := Lookup(NameWrappedRecursive)
	_, _, err = Run(v, math.MaxInt64)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestLookup(t *testing.T) {
	for _, v := range Variants() {
		got, ok := Lookup(v.Name)
		require.True(t, ok)
		require.Equal(t, v.Name, got.Name)
	}
	_, ok := Lookup("boxed-forever")
	require.False(t, ok)
}

func TestAllocations(t *testing.T) {
	free := map[string]func() int64{
		NamePlainIterative:           PlainIterative,
		NameZeroCostWrappedRecursive: ZeroCostWrappedRecursive,
		NameStructWrappedRecursive:   StructWrappedRecursive,
	}
	for name, fn := range free {
		allocs := testing.AllocsPerRun(100, func() { sink = fn() })
		require.Zero(t, allocs, "%s allocated", name)
	}

	boxed := map[string]func() int64{
		NameWrappedIterative: WrappedIterative,
		NameWrappedRecursive: WrappedRecursive,
	}
	for name, fn := range boxed {
		allocs := testing.AllocsPerRun(100, func() { sink = fn() })
		require.GreaterOrEqual(t, allocs, float64(111), "%s should allocate a Box per step", name)
	}
}
