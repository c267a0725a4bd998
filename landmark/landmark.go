// Package landmark models sequences of tracked 3D face landmarks: per-frame
// point sets keyed by stable landmark indices, with helpers for missing-data
// filtering and viewport framing, and NumPy file I/O for whole sequences.
package landmark

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// scaleMargin leaves 20% of extra space when framing a point set.
const scaleMargin = 1.2

// Centroid returns the mean position of a frame's landmarks.
func Centroid(pts []r3.Vector) r3.Vector {
	var sum r3.Vector
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(pts)))
}

// FilterNaN drops landmarks with any non-finite coordinate. It returns the
// surviving points and a keep-mask over the original indices.
func FilterNaN(pts []r3.Vector) ([]r3.Vector, []bool) {
	valid := make([]r3.Vector, 0, len(pts))
	mask := make([]bool, len(pts))
	for i, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
			continue
		}
		mask[i] = true
		valid = append(valid, p)
	}
	return valid, mask
}

// EstimationIndices filters candidate landmark indices down to those whose
// landmarks are finite in both frames, so that a missing landmark in either
// frame never drives an alignment estimate. A nil candidates slice considers
// every index. The result is nil-free but may be empty.
func EstimationIndices(current, base []r3.Vector, candidates []int) []int {
	n := len(current)
	if len(base) < n {
		n = len(base)
	}
	finite := func(p r3.Vector) bool {
		return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsNaN(p.Z)
	}
	out := make([]int, 0, n)
	if candidates == nil {
		for i := 0; i < n; i++ {
			if finite(current[i]) && finite(base[i]) {
				out = append(out, i)
			}
		}
		return out
	}
	for _, idx := range candidates {
		if idx < 0 || idx >= n {
			continue
		}
		if finite(current[idx]) && finite(base[idx]) {
			out = append(out, idx)
		}
	}
	return out
}

// CenterAndScale computes framing numbers for a base frame: its centroid and
// a scale that fits the frame's largest extent into a unit-ish viewport with
// a 20% margin. A frame with zero extent gets scale 1.
func CenterAndScale(pts []r3.Vector) (r3.Vector, float64) {
	center := Centroid(pts)
	minPt := pts[0]
	maxPt := pts[0]
	for _, p := range pts[1:] {
		minPt = r3.Vector{X: math.Min(minPt.X, p.X), Y: math.Min(minPt.Y, p.Y), Z: math.Min(minPt.Z, p.Z)}
		maxPt = r3.Vector{X: math.Max(maxPt.X, p.X), Y: math.Max(maxPt.Y, p.Y), Z: math.Max(maxPt.Z, p.Z)}
	}
	extent := maxPt.Sub(minPt)
	maxExtent := math.Max(extent.X, math.Max(extent.Y, extent.Z))
	scale := 1.0
	if maxExtent > 0 {
		scale = (2.0 / scaleMargin) / maxExtent
	}
	return center, scale
}

// Sequence is a rectangular series of landmark frames, frames × landmarks × 3.
type Sequence struct {
	frames    [][]r3.Vector
	landmarks int
}

// NewSequence wraps per-frame landmark sets into a sequence. Every frame must
// have the same landmark count.
func NewSequence(frames [][]r3.Vector) (*Sequence, error) {
	if len(frames) == 0 {
		return nil, errors.New("sequence needs at least one frame")
	}
	landmarks := len(frames[0])
	for i, f := range frames {
		if len(f) != landmarks {
			return nil, errors.Errorf("frame %d has %d landmarks, expected %d", i, len(f), landmarks)
		}
	}
	return &Sequence{frames: frames, landmarks: landmarks}, nil
}

// Len returns the number of frames.
func (s *Sequence) Len() int {
	return len(s.frames)
}

// Landmarks returns the per-frame landmark count.
func (s *Sequence) Landmarks() int {
	return s.landmarks
}

// Frame returns a copy of the i-th frame's landmarks.
func (s *Sequence) Frame(i int) ([]r3.Vector, error) {
	if i < 0 || i >= len(s.frames) {
		return nil, errors.Errorf("frame %d out of range, sequence has %d frames", i, len(s.frames))
	}
	out := make([]r3.Vector, s.landmarks)
	copy(out, s.frames[i])
	return out, nil
}

// SetFrame replaces the i-th frame's landmarks.
func (s *Sequence) SetFrame(i int, pts []r3.Vector) error {
	if i < 0 || i >= len(s.frames) {
		return errors.Errorf("frame %d out of range, sequence has %d frames", i, len(s.frames))
	}
	if len(pts) != s.landmarks {
		return errors.Errorf("frame has %d landmarks, sequence carries %d", len(pts), s.landmarks)
	}
	frame := make([]r3.Vector, s.landmarks)
	copy(frame, pts)
	s.frames[i] = frame
	return nil
}
