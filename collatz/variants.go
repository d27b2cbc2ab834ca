package collatz

// The *From functions assume a positive seed whose sequence reaches 1
// without overflowing. Use Run for anything that has not been checked.

// PlainIterativeFrom steps a bare int64 in place.
func PlainIterativeFrom(seed int64, t *Tally) int64 {
	n := seed
	for n != 1 {
		n = t.step(n)
	}
	return n
}

// WrappedIterativeFrom loops over a *Box, unwrapping and rewrapping
// into a new Box on every step.
func WrappedIterativeFrom(seed int64, t *Tally) int64 {
	b := NewBox(seed)
	for b.N != 1 {
		b = NewBox(t.step(b.N))
	}
	return b.N
}

// WrappedRecursiveFrom recurses over a *Box, constructing a new Box
// for each step.
func WrappedRecursiveFrom(seed int64, t *Tally) int64 {
	return wrappedRecursive(NewBox(seed), t).N
}

func wrappedRecursive(b *Box, t *Tally) *Box {
	if b.N == 1 {
		return b
	}
	return wrappedRecursive(NewBox(t.step(b.N)), t)
}

// ZeroCostWrappedRecursiveFrom has the control structure of
// WrappedRecursiveFrom but wraps in Value, which is pure relabeling.
func ZeroCostWrappedRecursiveFrom(seed int64, t *Tally) int64 {
	return int64(zeroCostRecursive(Value(seed), t))
}

func zeroCostRecursive(v Value, t *Tally) Value {
	if v == 1 {
		return v
	}
	return zeroCostRecursive(Value(t.step(int64(v))), t)
}

// StructWrappedRecursiveFrom recurses over a Box passed by value. A
// single-field struct has its field's layout, so this is Go's other
// zero-cost wrapper.
func StructWrappedRecursiveFrom(seed int64, t *Tally) int64 {
	return structRecursive(Box{N: seed}, t).N
}

func structRecursive(b Box, t *Tally) Box {
	if b.N == 1 {
		return b
	}
	return structRecursive(Box{N: t.step(b.N)}, t)
}

func PlainIterative() int64           { return PlainIterativeFrom(Seed, nil) }
func WrappedIterative() int64         { return WrappedIterativeFrom(Seed, nil) }
func WrappedRecursive() int64         { return WrappedRecursiveFrom(Seed, nil) }
func ZeroCostWrappedRecursive() int64 { return ZeroCostWrappedRecursiveFrom(Seed, nil) }
func StructWrappedRecursive() int64   { return StructWrappedRecursiveFrom(Seed, nil) }

// Variant names one implementation so a harness can drive it.
type Variant struct {
	Name string
	From func(seed int64, t *Tally) int64
}

const (
	NamePlainIterative           = "plain-iterative"
	NameWrappedIterative         = "wrapped-iterative"
	NameWrappedRecursive         = "wrapped-recursive"
	NameZeroCostWrappedRecursive = "zero-cost-recursive"
	NameStructWrappedRecursive   = "struct-recursive"
)

// Variants returns every implementation, baseline first.
func Variants() []Variant {
	return []Variant{
		{Name: NamePlainIterative, From: PlainIterativeFrom},
		{Name: NameWrappedIterative, From: WrappedIterativeFrom},
		{Name: NameWrappedRecursive, From: WrappedRecursiveFrom},
		{Name: NameZeroCostWrappedRecursive, From: ZeroCostWrappedRecursiveFrom},
		{Name: NameStructWrappedRecursive, From: StructWrappedRecursiveFrom},
	}
}

// Lookup finds a variant by name.
func Lookup(name string) (Variant, bool) {
	for _, v := range Variants() {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}
