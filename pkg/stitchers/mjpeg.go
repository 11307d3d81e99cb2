package stitchers

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"time"

	"github.com/icza/mjpeg"
)

// ErrNonUniformDelay is returned by stitchers that only support a constant frame rate.
var ErrNonUniformDelay = errors.New("frames must share one delay")

// MJPEGStitcher creates an AVI file where every frame is a JPEG.
type MJPEGStitcher struct{ Quality int }

// NewMJPEGStitcher returns a pointer to MJPEGStitcher using the default
// JPEG quality.
func NewMJPEGStitcher() *MJPEGStitcher {
	return &MJPEGStitcher{Quality: jpeg.DefaultQuality}
}

// Stitch combines the animation frames to create an mjpeg saved at filename.
// The frame rate comes from the delay, which must be the same for every
// frame. LoopCount is ignored.
func (m *MJPEGStitcher) Stitch(a Animation, filename string) error {
	if err := a.Validate(); err != nil {
		return err
	}
	for _, d := range a.Delays {
		if d != a.Delays[0] {
			return ErrNonUniformDelay
		}
	}

	size := a.Frames[0].Bounds().Size()
	aw, err := mjpeg.New(filename, int32(size.X), int32(size.Y), fps(a.Delays[0]))
	if err != nil {
		return err
	}

	opts := &jpeg.Options{Quality: m.Quality}
	if opts.Quality <= 0 {
		opts.Quality = jpeg.DefaultQuality
	}

	encoded := make(map[image.Image][]byte)
	for _, f := range a.Frames {
		b, ok := encoded[f]
		if !ok {
			buf := &bytes.Buffer{}
			if err := jpeg.Encode(buf, f, opts); err != nil {
				aw.Close()
				return err
			}
			b = buf.Bytes()
			encoded[f] = b
		}
		if err := aw.AddFrame(b); err != nil {
			aw.Close()
			return err
		}
	}
	return aw.Close()
}

func fps(d time.Duration) int32 {
	if d <= 0 {
		return 1
	}
	f := int32((time.Second + d/2) / d)
	if f < 1 {
		return 1
	}
	return f
}
