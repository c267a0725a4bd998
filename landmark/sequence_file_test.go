package landmark

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/sbinet/npyio"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
)

func TestSequenceNPYRoundTrip(t *testing.T) {
	logger := golog.NewTestLogger(t)
	dir := t.TempDir()

	frames := [][]r3.Vector{
		{{X: 100.5, Y: 200.25, Z: 300}, {X: 101, Y: 200, Z: 300}, {X: 100, Y: 201, Z: 300}},
		{{X: 150, Y: 250, Z: 350}, {X: 151, Y: 250, Z: 350}, {X: 150, Y: 251, Z: 350}},
	}
	seq, err := NewSequence(frames)
	test.That(t, err, test.ShouldBeNil)

	fn := filepath.Join(dir, "seq.npy")
	test.That(t, seq.WriteToNPYFile(fn), test.ShouldBeNil)

	got, err := NewSequenceFromFile(fn, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got.Len(), test.ShouldEqual, 2)
	test.That(t, got.Landmarks(), test.ShouldEqual, 3)
	for i := range frames {
		frame, err := got.Frame(i)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, frame, test.ShouldResemble, frames[i])
	}
}

func TestSequenceNPYMissingLandmarks(t *testing.T) {
	logger := golog.NewTestLogger(t)
	dir := t.TempDir()

	nan := math.NaN()
	seq, err := NewSequence([][]r3.Vector{{{X: 1, Y: 2, Z: 3}, {X: nan, Y: nan, Z: nan}}})
	test.That(t, err, test.ShouldBeNil)

	fn := filepath.Join(dir, "missing.npy")
	test.That(t, seq.WriteToNPYFile(fn), test.ShouldBeNil)

	got, err := NewSequenceFromFile(fn, logger)
	test.That(t, err, test.ShouldBeNil)
	frame, err := got.Frame(0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, frame[0], test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, math.IsNaN(frame[1].X), test.ShouldBeTrue)
	test.That(t, math.IsNaN(frame[1].Y), test.ShouldBeTrue)
	test.That(t, math.IsNaN(frame[1].Z), test.ShouldBeTrue)
}

func TestSequenceFromFileErrors(t *testing.T) {
	logger := golog.NewTestLogger(t)
	dir := t.TempDir()

	_, err := NewSequenceFromFile(filepath.Join(dir, "seq.csv"), logger)
	test.That(t, err, test.ShouldNotBeNil)

	_, err = NewSequenceFromFile(filepath.Join(dir, "absent.npy"), logger)
	test.That(t, err, test.ShouldNotBeNil)

	// A flat vector is not a landmark sequence.
	flat := filepath.Join(dir, "flat.npy")
	f, err := os.Create(flat)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, npyio.Write(f, []float64{1, 2, 3, 4, 5, 6}), test.ShouldBeNil)
	test.That(t, f.Close(), test.ShouldBeNil)
	_, err = NewSequenceFromFile(flat, logger)
	test.That(t, err, test.ShouldNotBeNil)

	// Neither is a 2D matrix, even with three columns.
	planar := filepath.Join(dir, "planar.npy")
	f, err = os.Create(planar)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, npyio.Write(f, mat.NewDense(4, 3, nil)), test.ShouldBeNil)
	test.That(t, f.Close(), test.ShouldBeNil)
	_, err = NewSequenceFromFile(planar, logger)
	test.That(t, err, test.ShouldNotBeNil)
}
