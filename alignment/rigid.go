package alignment

import "github.com/golang/geo/r3"

// Rigid aligns current onto base with a rotation and translation only
// (Kabsch). The scale discrepancy between the two frames, if any, is left
// intact. See RigidTransform for the estimation details.
func Rigid(current, base []r3.Vector, indices []int) ([]r3.Vector, error) {
	tf, err := RigidTransform(current, base, indices)
	if err != nil {
		return nil, err
	}
	return tf.ApplyAll(current), nil
}

// RigidTransform estimates the rigid transformation mapping current onto
// base. With a nil indices slice every landmark pair drives the estimate;
// otherwise only the indexed pairs do. The translation re-centers the frame
// on base's estimation centroid, so the transformed frame lands wherever
// base sits in space.
//
// Degenerate estimation sets (coincident or collinear landmarks) do not
// fail: the solved rotation is then under-determined about one axis but is
// still a proper rotation.
func RigidTransform(current, base []r3.Vector, indices []int) (Transform, error) {
	cur, bse, err := estimationSubset(current, base, indices)
	if err != nil {
		return Transform{}, err
	}
	return rigidFromPairs(cur, bse)
}

// rigidFromPairs solves the Kabsch problem for an explicit list of
// corresponding points. Anatomic alignment reuses this with derived
// (midpoint) correspondences that have no landmark index.
func rigidFromPairs(cur, bse []r3.Vector) (Transform, error) {
	curCentroid := centroid(cur)
	bseCentroid := centroid(bse)

	rot, err := solveRotation(centerPoints(cur, curCentroid), centerPoints(bse, bseCentroid))
	if err != nil {
		return Transform{}, err
	}

	return Transform{
		Rotation:    rot,
		Scale:       1,
		Translation: bseCentroid.Sub(rotate(rot, curCentroid)),
	}, nil
}
