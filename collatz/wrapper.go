package collatz

// Box is the transparent wrapper: a single-field carrier for one
// sequence value. Variants that want ordinary heap identity hold a
// *Box obtained from NewBox; passing a Box by value is free in Go.
type Box struct {
	N int64
}

// NewBox returns a freshly allocated Box holding n. It is kept out of
// line so every call is a real construction the compiler cannot fold
// into the caller's frame.
//
//go:noinline
func NewBox(n int64) *Box {
	return &Box{N: n}
}

// Value is the zero-cost wrapper. It has int64's representation, so
// converting between the two generates no code.
type Value int64
