package tensor

import "fmt"

// Shape holds the dimensions of a tensor. Shape{3, 4} is a 3x4 matrix.
type Shape []int

// NumElements returns the total number of elements. A scalar shape has 1.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate reports an error if any dimension is non-positive.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension %d at axis %d (must be > 0)", dim, i)
		}
	}
	return nil
}

// Equal reports whether two shapes have identical dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	copy(out, s)
	return out
}

// ComputeStrides returns row-major strides: stride[i] is the flat distance
// between consecutive indices along axis i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}
	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// BroadcastShapes applies NumPy broadcasting rules to two shapes.
//
// Dimensions are compared right to left; they are compatible when equal or
// when one of them is 1. Missing leading dimensions are treated as 1.
// Returns the broadcast shape and whether any operand needs broadcasting.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	na, nb := len(a), len(b)
	n := na
	if nb > n {
		n = nb
	}

	out := make(Shape, n)
	needs := na != nb
	for i := 0; i < n; i++ {
		da, db := 1, 1
		if i < na {
			da = a[na-1-i]
		}
		if i < nb {
			db = b[nb-1-i]
		}
		switch {
		case da == db:
			out[n-1-i] = da
		case da == 1:
			out[n-1-i] = db
			needs = true
		case db == 1:
			out[n-1-i] = da
			needs = true
		default:
			return nil, false, fmt.Errorf("shapes %v and %v are not broadcastable", a, b)
		}
	}
	return out, needs, nil
}
