// Package sequence turns an ordered list of source images into the frames
// of an animation: every source is decoded, fitted onto a common canvas,
// optionally captioned, and the last frame is repeated to pause before the
// animation loops.
package sequence

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/michaelmcallister/gifing/pkg/compositor"
	"github.com/michaelmcallister/gifing/pkg/stitchers"
)

// ErrEmptySequence is returned when building without any sources.
var ErrEmptySequence = errors.New("no source images")

// Result holds the frames of one build. Repeated trailing frames share the
// pixel buffer of the last composed frame.
type Result struct {
	Frames    []*image.NRGBA
	Durations []time.Duration
}

// Animation converts the result for a stitcher. The animation loops forever.
func (r *Result) Animation() stitchers.Animation {
	frames := make([]image.Image, len(r.Frames))
	for i, f := range r.Frames {
		frames[i] = f
	}
	return stitchers.Animation{
		Frames:    frames,
		Delays:    append([]time.Duration(nil), r.Durations...),
		LoopCount: 0,
	}
}

// Build decodes, composes and labels every source in order, then appends
// the repeated last frame. Any source that fails aborts the build.
func Build(c Config) (*Result, error) {
	if len(c.sources) == 0 {
		return nil, ErrEmptySequence
	}

	canvas := c.Canvas()
	frames := make([]*image.NRGBA, 0, len(c.sources)+c.repeat)
	for i, src := range c.sources {
		frame, err := c.frame(i, src, canvas)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}

	last := frames[len(frames)-1]
	for i := 0; i < c.repeat; i++ {
		frames = append(frames, last)
	}

	durations := make([]time.Duration, len(frames))
	for i := range durations {
		durations[i] = c.duration
	}
	return &Result{Frames: frames, Durations: durations}, nil
}

func (c Config) frame(i int, src string, canvas compositor.Size) (*image.NRGBA, error) {
	m, err := c.decoder.Decode(src)
	if err != nil {
		return nil, &SourceDecodeError{Path: src, Err: err}
	}
	frame, err := compositor.Compose(m, canvas, c.background)
	if err != nil {
		return nil, fmt.Errorf("compose %s: %w", src, err)
	}
	if text := c.labelFor(i); text != "" {
		c.renderer.Draw(frame, text)
	}
	return frame, nil
}
