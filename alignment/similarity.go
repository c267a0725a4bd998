package alignment

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Similarity aligns current onto base with a rotation, translation and a
// single uniform scale factor (standardized Procrustes). The output lives in
// base's physical coordinate system: it is rescaled to base's spread and
// re-centered on base's estimation centroid, never left in the intermediate
// origin-centered unit-norm space.
func Similarity(current, base []r3.Vector, indices []int) ([]r3.Vector, error) {
	tf, err := SimilarityTransform(current, base, indices)
	if err != nil {
		return nil, err
	}
	return tf.ApplyAll(current), nil
}

// SimilarityTransform estimates the similarity transformation mapping
// current onto base. Both estimation subsets are standardized (centered on
// their own centroid, divided by their own Frobenius norm) before the
// rotation is solved; the applied scale is the optimal standardized scale
// times base-norm/current-norm, anchoring the output to base's size.
//
// Returns ErrDegenerateScale when either estimation subset has zero spread,
// rather than letting a division by zero propagate non-finite coordinates.
func SimilarityTransform(current, base []r3.Vector, indices []int) (Transform, error) {
	cur, bse, err := estimationSubset(current, base, indices)
	if err != nil {
		return Transform{}, err
	}

	curCentroid := centroid(cur)
	bseCentroid := centroid(bse)
	curCentered := centerPoints(cur, curCentroid)
	bseCentered := centerPoints(bse, bseCentroid)

	curNorm := frobeniusNorm(curCentered)
	bseNorm := frobeniusNorm(bseCentered)
	if curNorm == 0 || bseNorm == 0 {
		return Transform{}, errors.Wrapf(ErrDegenerateScale,
			"norms %g and %g over %d estimation landmarks", curNorm, bseNorm, len(cur))
	}

	for i := range curCentered {
		curCentered[i] = curCentered[i].Mul(1 / curNorm)
		bseCentered[i] = bseCentered[i].Mul(1 / bseNorm)
	}

	rot, err := solveRotation(curCentered, bseCentered)
	if err != nil {
		return Transform{}, err
	}

	// Optimal scale of the standardized problem, trace(bseᵀ·R·cur); equal to
	// 1 when the two frames differ by an exact similarity transformation.
	var unitScale float64
	for i := range curCentered {
		unitScale += bseCentered[i].Dot(rotate(rot, curCentered[i]))
	}

	scale := unitScale * bseNorm / curNorm
	return Transform{
		Rotation:    rot,
		Scale:       scale,
		Translation: bseCentroid.Sub(rotate(rot, curCentroid).Mul(scale)),
	}, nil
}
