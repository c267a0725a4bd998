// Package alignment computes transformations that map one frame of 3D
// landmarks onto a base frame, cancelling rigid head motion between the two.
//
// Two interchangeable strategies are provided: rigid alignment (rotation and
// translation, Kabsch) and similarity alignment (rotation, translation and
// uniform scale, standardized Procrustes). Both estimate the transformation
// from an optional subset of landmark indices and apply it to every landmark
// of the frame. All functions are pure and safe for concurrent use.
package alignment

import (
	"sort"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Alignment failure modes. Callers can match these with errors.Is.
var (
	// ErrShapeMismatch means the current and base frames have different
	// landmark counts.
	ErrShapeMismatch = errors.New("current and base point sets differ in length")
	// ErrIndexOutOfRange means an estimation index does not address a landmark.
	ErrIndexOutOfRange = errors.New("estimation index out of range")
	// ErrDegenerateScale means every estimation landmark coincides with the
	// subset centroid, leaving similarity alignment without a usable scale.
	ErrDegenerateScale = errors.New("estimation subset has zero spread")
	// ErrUnknownMethod means a method name is not registered.
	ErrUnknownMethod = errors.New("unknown alignment method")
)

// Method names an alignment strategy.
type Method string

// The supported alignment methods.
const (
	MethodRigid      Method = "rigid"
	MethodSimilarity Method = "similarity"
	MethodAnatomic   Method = "anatomic"
)

// DefaultMethod is used when a caller does not pick a method.
const DefaultMethod = MethodRigid

// An AlignFunc maps the landmarks of current onto the coordinate frame of
// base. The returned frame always has the same landmark count as current.
// A nil indices slice estimates the transformation from every landmark;
// otherwise only the indexed landmarks drive the estimate, though the
// transformation is still applied to the whole frame.
type AlignFunc func(current, base []r3.Vector, indices []int) ([]r3.Vector, error)

var methods = map[Method]AlignFunc{
	MethodRigid:      Rigid,
	MethodSimilarity: Similarity,
	MethodAnatomic:   Anatomic,
}

// Lookup returns the alignment function registered under the given method.
func Lookup(method Method) (AlignFunc, error) {
	fn, ok := methods[method]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownMethod, "%q", method)
	}
	return fn, nil
}

// Methods returns the registered method names in sorted order.
func Methods() []Method {
	out := make([]Method, 0, len(methods))
	for m := range methods {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Align looks up the given method and applies it.
func Align(method Method, current, base []r3.Vector, indices []int) ([]r3.Vector, error) {
	fn, err := Lookup(method)
	if err != nil {
		return nil, err
	}
	return fn(current, base, indices)
}
