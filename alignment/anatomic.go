package alignment

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/vptry/landmarkview/landmark"
)

// Anatomic rigidly aligns current onto base using an anatomically stable
// estimation set: the nose landmarks plus the midpoints of the inner eye
// corner pairs, computed in both frames. The midpoints are derived points
// with no landmark index of their own, so this estimation set cannot be
// expressed as a plain index subset.
//
// A non-nil indices slice overrides the anatomic preset entirely, making
// Anatomic behave exactly like Rigid. Preset entries outside the frame are
// skipped; if nothing of the preset fits the frame, an error is returned.
func Anatomic(current, base []r3.Vector, indices []int) ([]r3.Vector, error) {
	if indices != nil {
		return Rigid(current, base, indices)
	}
	if len(current) != len(base) {
		return nil, errors.Wrapf(ErrShapeMismatch, "%d vs %d", len(current), len(base))
	}

	n := len(current)
	cur := make([]r3.Vector, 0, len(landmark.NoseLandmarks)+len(landmark.AnatomicMidpointPairs))
	bse := make([]r3.Vector, 0, cap(cur))
	for _, idx := range landmark.NoseLandmarks {
		if idx < 0 || idx >= n {
			continue
		}
		cur = append(cur, current[idx])
		bse = append(bse, base[idx])
	}
	for _, pair := range landmark.AnatomicMidpointPairs {
		if pair[0] < 0 || pair[0] >= n || pair[1] < 0 || pair[1] >= n {
			continue
		}
		cur = append(cur, current[pair[0]].Add(current[pair[1]]).Mul(0.5))
		bse = append(bse, base[pair[0]].Add(base[pair[1]]).Mul(0.5))
	}
	if len(cur) == 0 {
		return nil, errors.Errorf("no anatomic landmarks within a frame of %d points", n)
	}

	tf, err := rigidFromPairs(cur, bse)
	if err != nil {
		return nil, err
	}
	return tf.ApplyAll(current), nil
}
