package alignment

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Transform is a similarity mapping from one landmark frame into another:
// p ↦ Scale·Rotation·p + Translation. Rotation is a 3×3 proper rotation
// (orthonormal, determinant +1) and Scale is 1 for rigid alignments.
type Transform struct {
	Rotation    *mat.Dense
	Scale       float64
	Translation r3.Vector
}

// Apply maps a single point through the transform.
func (tf Transform) Apply(p r3.Vector) r3.Vector {
	return rotate(tf.Rotation, p).Mul(tf.Scale).Add(tf.Translation)
}

// ApplyAll maps every point of a frame through the transform, returning a
// new frame of the same length.
func (tf Transform) ApplyAll(pts []r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(pts))
	for i, p := range pts {
		out[i] = tf.Apply(p)
	}
	return out
}

func rotate(m *mat.Dense, p r3.Vector) r3.Vector {
	return r3.Vector{
		X: m.At(0, 0)*p.X + m.At(0, 1)*p.Y + m.At(0, 2)*p.Z,
		Y: m.At(1, 0)*p.X + m.At(1, 1)*p.Y + m.At(1, 2)*p.Z,
		Z: m.At(2, 0)*p.X + m.At(2, 1)*p.Y + m.At(2, 2)*p.Z,
	}
}
