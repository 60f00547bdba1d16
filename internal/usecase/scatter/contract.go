package scatter

// RandSource yields uniformly distributed values in [0, 1).
type RandSource interface {
	Float64() float64
}

// RandFunc adapts a plain function to RandSource.
type RandFunc func() float64

// Float64 implements RandSource.
func (f RandFunc) Float64() float64 { return f() }
