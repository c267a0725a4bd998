// Package main contains a command to align every frame of a landmark
// sequence to a base frame, writing the motion-cancelled sequence back out.
package main

import (
	"context"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/vptry/landmarkview/alignment"
	"github.com/vptry/landmarkview/landmark"
)

var logger = golog.NewDevelopmentLogger("landmarkalign")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	InputFile  string `flag:"0,required,usage=landmark sequence file (.npy, frames x landmarks x 3)"`
	Output     string `flag:"output,required,usage=path to write the aligned sequence (.npy)"`
	BaseFrame  int    `flag:"base-frame,default=0,usage=frame index every other frame is aligned toward"`
	Method     string `flag:"method,default=rigid,usage=alignment method (rigid, similarity, anatomic)"`
	StableOnly bool   `flag:"stable-only,usage=estimate from the stable nose+forehead landmark preset only"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}

	align, err := alignment.Lookup(alignment.Method(argsParsed.Method))
	if err != nil {
		return err
	}

	seq, err := landmark.NewSequenceFromFile(argsParsed.InputFile, logger)
	if err != nil {
		return err
	}
	if argsParsed.BaseFrame < 0 || argsParsed.BaseFrame >= seq.Len() {
		return errors.Errorf("base frame %d out of range, sequence has %d frames",
			argsParsed.BaseFrame, seq.Len())
	}

	base, err := seq.Frame(argsParsed.BaseFrame)
	if err != nil {
		return err
	}
	baseValid, _ := landmark.FilterNaN(base)
	if len(baseValid) > 0 {
		center, scale := landmark.CenterAndScale(baseValid)
		logger.Debugf("base frame %d: %d valid landmarks, center %v, scale %f",
			argsParsed.BaseFrame, len(baseValid), center, scale)
	}
	baseHasNaN := len(baseValid) < len(base)

	var candidates []int
	if argsParsed.StableOnly {
		candidates = landmark.StableLandmarks
		for _, idx := range candidates {
			if idx >= seq.Landmarks() {
				return errors.Errorf("stable landmark preset needs %d landmarks, sequence has %d",
					idx+1, seq.Landmarks())
			}
		}
	}

	for i := 0; i < seq.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		frame, err := seq.Frame(i)
		if err != nil {
			return err
		}
		// Only materialize an index subset when one is actually needed;
		// a nil slice lets each method use its own estimation set.
		var indices []int
		frameValid, _ := landmark.FilterNaN(frame)
		if argsParsed.StableOnly || baseHasNaN || len(frameValid) < len(frame) {
			indices = landmark.EstimationIndices(frame, base, candidates)
			if len(indices) == 0 {
				return errors.Errorf("frame %d shares no finite estimation landmarks with the base frame", i)
			}
		}
		aligned, err := align(frame, base, indices)
		if err != nil {
			return errors.Wrapf(err, "aligning frame %d", i)
		}
		if err := seq.SetFrame(i, aligned); err != nil {
			return err
		}
	}

	if err := seq.WriteToNPYFile(argsParsed.Output); err != nil {
		return err
	}
	logger.Infow("aligned sequence written",
		"input", argsParsed.InputFile,
		"output", argsParsed.Output,
		"frames", seq.Len(),
		"landmarks", seq.Landmarks(),
		"method", argsParsed.Method,
	)
	return nil
}
