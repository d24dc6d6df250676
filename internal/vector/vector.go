// Package vector provides the dense vector arithmetic used by embedding analysis.
package vector

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DegenerateTolerance is the absolute tolerance under which two vectors are
// considered numerically indistinguishable.
const DegenerateTolerance = 1e-10

// Vector is a dense embedding vector. Whether it is unit length is tracked by
// the caller, not by the type.
type Vector []float64

// FromFloat32 converts a float32 slice (the on-disk precision of most vector
// files) into a Vector.
func FromFloat32(v []float32) Vector {
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

// Float32 converts the vector back to float32.
func (v Vector) Float32() []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}

// Clone returns a copy of v.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Norm returns the Euclidean length of v.
func Norm(v Vector) float64 {
	return floats.Norm(v, 2)
}

// Normalize returns a unit-length copy of v.
// A zero vector has no direction and is returned as a zero copy.
func Normalize(v Vector) Vector {
	out := v.Clone()
	n := Norm(v)
	if n == 0 {
		return out
	}
	floats.Scale(1/n, out)
	return out
}

// Dot returns the inner product of a and b. Panics if lengths differ.
func Dot(a, b Vector) float64 {
	return floats.Dot(a, b)
}

// Sub returns a - b.
func Sub(a, b Vector) Vector {
	out := make(Vector, len(a))
	floats.SubTo(out, a, b)
	return out
}

// Add returns a + b.
func Add(a, b Vector) Vector {
	out := make(Vector, len(a))
	floats.AddTo(out, a, b)
	return out
}

// Scale returns s * v.
func Scale(s float64, v Vector) Vector {
	out := make(Vector, len(v))
	floats.ScaleTo(out, s, v)
	return out
}

// Neg returns -v.
func Neg(v Vector) Vector {
	return Scale(-1, v)
}

// Mean returns the arithmetic mean of vs, or nil if vs is empty.
func Mean(vs []Vector) Vector {
	if len(vs) == 0 {
		return nil
	}
	sum := make(Vector, len(vs[0]))
	for _, v := range vs {
		floats.Add(sum, v)
	}
	floats.Scale(1/float64(len(vs)), sum)
	return sum
}

// AllClose reports whether every element of a and b differs by at most atol.
func AllClose(a, b Vector, atol float64) bool {
	if len(a) != len(b) {
		return false
	}
	return floats.Distance(a, b, math.Inf(1)) <= atol
}
