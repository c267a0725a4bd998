package alignment

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

// syntheticFace builds a deterministic 478-landmark frame, matching the
// MediaPipe topology size the anatomic preset indexes into.
func syntheticFace() []r3.Vector {
	rng := rand.New(rand.NewSource(7))
	pts := make([]r3.Vector, 478)
	for i := range pts {
		pts[i] = r3.Vector{
			X: 100 + rng.Float64()*20,
			Y: 200 + rng.Float64()*25,
			Z: 300 + rng.Float64()*15,
		}
	}
	return pts
}

func TestAnatomicAlign(t *testing.T) {
	base := syntheticFace()
	current := transformAll(base, func(p r3.Vector) r3.Vector {
		return rotateZ(p, 25).Add(r3.Vector{X: -30, Y: 12, Z: 5})
	})

	aligned, err := Anatomic(current, base, nil)
	test.That(t, err, test.ShouldBeNil)
	assertFramesAlmostEqual(t, aligned, base, 1e-6)
}

func TestAnatomicIdentity(t *testing.T) {
	frame := syntheticFace()
	aligned, err := Anatomic(frame, frame, nil)
	test.That(t, err, test.ShouldBeNil)
	assertFramesAlmostEqual(t, aligned, frame, 1e-9)
}

// An explicit index subset overrides the anatomic preset; the result must be
// exactly what plain rigid alignment on that subset produces.
func TestAnatomicIndicesOverride(t *testing.T) {
	base := testFrame()
	current := transformAll(base, func(p r3.Vector) r3.Vector {
		return rotateZ(p, 65).Add(r3.Vector{X: 2, Y: 2, Z: 2})
	})

	fromAnatomic, err := Anatomic(current, base, []int{0, 1, 2, 3})
	test.That(t, err, test.ShouldBeNil)
	fromRigid, err := Rigid(current, base, []int{0, 1, 2, 3})
	test.That(t, err, test.ShouldBeNil)
	assertFramesAlmostEqual(t, fromAnatomic, fromRigid, 1e-15)
}

func TestAnatomicFrameTooSmall(t *testing.T) {
	small := []r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}
	_, err := Anatomic(small, small, nil)
	test.That(t, err, test.ShouldNotBeNil)
}
