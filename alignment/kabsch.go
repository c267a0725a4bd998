package alignment

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// estimationSubset validates the two frames and selects the landmarks that
// drive the transformation estimate. A nil indices slice selects every
// landmark. Indices are deduplicated and order-independent.
func estimationSubset(current, base []r3.Vector, indices []int) (cur, bse []r3.Vector, err error) {
	if len(current) != len(base) {
		return nil, nil, errors.Wrapf(ErrShapeMismatch, "%d vs %d", len(current), len(base))
	}
	if len(current) == 0 {
		return nil, nil, errors.New("cannot align empty point sets")
	}
	if len(indices) == 0 {
		return current, base, nil
	}
	selected, err := normalizeIndices(indices, len(current))
	if err != nil {
		return nil, nil, err
	}
	cur = make([]r3.Vector, len(selected))
	bse = make([]r3.Vector, len(selected))
	for i, idx := range selected {
		cur[i] = current[idx]
		bse[i] = base[idx]
	}
	return cur, bse, nil
}

// normalizeIndices sorts and deduplicates indices, rejecting any outside
// [0, n). The result is the same regardless of input ordering or repeats.
func normalizeIndices(indices []int, n int) ([]int, error) {
	out := make([]int, len(indices))
	copy(out, indices)
	sort.Ints(out)
	dst := 0
	for i, idx := range out {
		if idx < 0 || idx >= n {
			return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d with %d landmarks", idx, n)
		}
		if i > 0 && idx == out[i-1] {
			continue
		}
		out[dst] = idx
		dst++
	}
	return out[:dst], nil
}

func centroid(pts []r3.Vector) r3.Vector {
	var sum r3.Vector
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(pts)))
}

// centerPoints returns a copy of pts translated so that c sits at the origin.
func centerPoints(pts []r3.Vector, c r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(pts))
	for i, p := range pts {
		out[i] = p.Sub(c)
	}
	return out
}

// frobeniusNorm computes the Frobenius norm of a centered point set,
// sqrt of the summed squared coordinates.
func frobeniusNorm(pts []r3.Vector) float64 {
	var sum float64
	for _, p := range pts {
		sum += p.Dot(p)
	}
	return math.Sqrt(sum)
}

// solveRotation computes the proper rotation that best maps the centered
// point set cur onto the centered point set bse (Kabsch). The cross-covariance
// H = curᵀ·bse is factorized with an SVD and the rotation is V·diag(1,1,d)·Uᵀ
// where d corrects a reflection so that the determinant is always +1. Without
// that correction, near-planar configurations come back mirrored.
func solveRotation(cur, bse []r3.Vector) (*mat.Dense, error) {
	var cov [9]float64
	for i := range cur {
		c, b := cur[i], bse[i]
		cov[0] += c.X * b.X
		cov[1] += c.X * b.Y
		cov[2] += c.X * b.Z
		cov[3] += c.Y * b.X
		cov[4] += c.Y * b.Y
		cov[5] += c.Y * b.Z
		cov[6] += c.Z * b.X
		cov[7] += c.Z * b.Y
		cov[8] += c.Z * b.Z
	}
	h := mat.NewDense(3, 3, cov[:])

	var svd mat.SVD
	if !svd.Factorize(h, mat.SVDFull) {
		return nil, errors.New("failed to factorize cross-covariance matrix")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	s := mat.NewDiagDense(3, []float64{1, 1, 1})
	if mat.Det(&u)*mat.Det(&v) < 0 {
		s.SetDiag(2, -1)
	}

	r := mat.NewDense(3, 3, nil)
	r.Product(&v, s, u.T())
	return r, nil
}
