package landmark

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/sbinet/npyio"
	"go.uber.org/multierr"
	"go.viam.com/utils"
)

// NewSequenceFromFile returns a landmark sequence read in from the given file.
func NewSequenceFromFile(fn string, logger golog.Logger) (*Sequence, error) {
	switch filepath.Ext(fn) {
	case ".npy":
		return NewSequenceFromNPYFile(fn, logger)
	default:
		return nil, errors.Errorf("do not know how to read file %q", fn)
	}
}

// NewSequenceFromNPYFile reads a sequence from a NumPy .npy file holding a
// float array of shape (frames, landmarks, 3). Anything else is rejected,
// never reshaped.
func NewSequenceFromNPYFile(fn string, logger golog.Logger) (*Sequence, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer utils.UncheckedErrorFunc(f.Close)

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading npy header of %q", fn)
	}

	shape := r.Header.Descr.Shape
	if len(shape) != 3 || shape[2] != 3 {
		return nil, errors.Errorf("expected a (frames, landmarks, 3) array in %q, got shape %v", fn, shape)
	}
	nFrames, nLandmarks := shape[0], shape[1]

	var raw []float64
	switch r.Header.Descr.Type {
	case "<f8", "|f8":
		if err := r.Read(&raw); err != nil {
			return nil, errors.Wrapf(err, "reading npy data of %q", fn)
		}
	case "<f4", "|f4":
		var raw32 []float32
		if err := r.Read(&raw32); err != nil {
			return nil, errors.Wrapf(err, "reading npy data of %q", fn)
		}
		raw = make([]float64, len(raw32))
		for i, v := range raw32 {
			raw[i] = float64(v)
		}
	default:
		return nil, errors.Errorf("expected a float array in %q, got dtype %q", fn, r.Header.Descr.Type)
	}
	if len(raw) != nFrames*nLandmarks*3 {
		return nil, errors.Errorf("npy data of %q has %d values, shape %v wants %d",
			fn, len(raw), shape, nFrames*nLandmarks*3)
	}

	frames := make([][]r3.Vector, nFrames)
	for i := range frames {
		frame := make([]r3.Vector, nLandmarks)
		for j := range frame {
			off := (i*nLandmarks + j) * 3
			frame[j] = r3.Vector{X: raw[off], Y: raw[off+1], Z: raw[off+2]}
		}
		frames[i] = frame
	}

	seq, err := NewSequence(frames)
	if err != nil {
		return nil, err
	}
	logger.Debugf("loaded %d frames of %d landmarks from %s", nFrames, nLandmarks, fn)
	return seq, nil
}

// WriteToNPYFile writes the sequence out as a float64 .npy array of shape
// (frames, landmarks, 3).
func (s *Sequence) WriteToNPYFile(fn string) (err error) {
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		err = multierr.Combine(err, cerr)
	}()
	w := bufio.NewWriter(f)
	if err = s.writeNPY(w); err != nil {
		return err
	}
	return w.Flush()
}

// writeNPY emits NPY format version 1.0. npyio's writer stops at two axes, so
// the three-axis header is spelled out here; the payload layout (C-order
// little-endian float64) matches what NewSequenceFromNPYFile reads back.
func (s *Sequence) writeNPY(w io.Writer) error {
	header := fmt.Sprintf(
		"{'descr': '<f8', 'fortran_order': False, 'shape': (%d, %d, 3), }",
		len(s.frames), s.landmarks,
	)
	// Pad with spaces so the data starts on a 64-byte boundary, then
	// terminate with a newline as the format requires.
	padded := len(npyio.Magic) + 4 + len(header) + 1
	if rem := padded % 64; rem != 0 {
		header += strings.Repeat(" ", 64-rem)
	}
	header += "\n"

	if _, err := w.Write(npyio.Magic[:]); err != nil {
		return err
	}
	if _, err := w.Write([]byte{1, 0}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(header))); err != nil {
		return err
	}
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	raw := make([]float64, 0, len(s.frames)*s.landmarks*3)
	for _, frame := range s.frames {
		for _, p := range frame {
			raw = append(raw, p.X, p.Y, p.Z)
		}
	}
	return binary.Write(w, binary.LittleEndian, raw)
}
