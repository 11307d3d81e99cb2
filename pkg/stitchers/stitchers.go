// Package stitchers writes a sequence of frames to an animated file.
package stitchers

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrUnsupportedFileFormat is returned when no stitcher handles an extension.
	ErrUnsupportedFileFormat = errors.New("unsupported file format")
	// ErrNoFrames is returned when an animation has nothing to write.
	ErrNoFrames = errors.New("animation has no frames")
)

// Format represents the output file extensions a stitcher exists for.
type Format string

const (
	// GIF only supports up to 256 colours per frame.
	GIF Format = ".gif"
	// MJPEG is a file format where each frame is compressed separately as a JPEG.
	MJPEG Format = ".mjpeg"
	// AVI is written by the MJPEG stitcher as well.
	AVI Format = ".avi"
)

// DefaultFormat is appended to output paths without a known extension.
const DefaultFormat = GIF

// Animation is an ordered list of frames of the same size, each shown for
// the matching entry in Delays.
type Animation struct {
	Frames []image.Image
	Delays []time.Duration
	// LoopCount follows image/gif: 0 loops forever, -1 plays once.
	LoopCount int
}

// Validate checks frames and delays line up and share one size.
func (a Animation) Validate() error {
	if len(a.Frames) == 0 {
		return ErrNoFrames
	}
	if len(a.Delays) != len(a.Frames) {
		return fmt.Errorf("got %d delays for %d frames", len(a.Delays), len(a.Frames))
	}
	size := a.Frames[0].Bounds().Size()
	for i, f := range a.Frames {
		if got := f.Bounds().Size(); got != size {
			return fmt.Errorf("frame %d is %v, want %v", i, got, size)
		}
	}
	return nil
}

// ImageStitcher defines the contract for taking multiple images and stitching them into an animation.
type ImageStitcher interface {
	Stitch(Animation, string) error
}

// ResolveOutput returns the path a stitcher will write to and its format.
// Paths without a supported extension get DefaultFormat appended, in which
// case appended is true.
func ResolveOutput(path string) (resolved string, format Format, appended bool) {
	switch ff := Format(strings.ToLower(filepath.Ext(path))); ff {
	case GIF, MJPEG, AVI:
		return path, ff, false
	}
	return path + string(DefaultFormat), DefaultFormat, true
}

// ForFormat returns a stitcher with default settings for ff.
func ForFormat(ff Format) (ImageStitcher, error) {
	switch ff {
	case GIF:
		return NewGifStitcher(), nil
	case MJPEG, AVI:
		return NewMJPEGStitcher(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileFormat, ff)
	}
}
