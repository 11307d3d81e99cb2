// Package compositor normalizes arbitrary images onto a fixed size canvas.
package compositor

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

var (
	// ErrInvalidSize is returned for non-positive canvas dimensions or scale factors.
	ErrInvalidSize = errors.New("invalid canvas size")
	// ErrEmptySource is returned when the source image has no pixels.
	ErrEmptySource = errors.New("source image is empty")
)

// MaxDimension is the largest width or height a canvas may have, the
// limit of the GIF logical screen.
const MaxDimension = math.MaxUint16

// Size is a canvas size in pixels.
type Size struct {
	Width, Height int
}

// Validate checks both dimensions are within [1, MaxDimension].
func (s Size) Validate() error {
	if s.Width <= 0 || s.Height <= 0 || s.Width > MaxDimension || s.Height > MaxDimension {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, s.Width, s.Height)
	}
	return nil
}

// Scale multiplies both dimensions by f, rounding to the nearest pixel. The
// result is never smaller than 1x1.
func (s Size) Scale(f float64) (Size, error) {
	if err := s.Validate(); err != nil {
		return Size{}, err
	}
	if !(f > 0) || math.IsInf(f, 0) {
		return Size{}, fmt.Errorf("%w: scale %v", ErrInvalidSize, f)
	}
	w, h := math.Round(float64(s.Width)*f), math.Round(float64(s.Height)*f)
	if w > MaxDimension || h > MaxDimension {
		return Size{}, fmt.Errorf("%w: %v scaled by %v exceeds %d pixels", ErrInvalidSize, s, f, MaxDimension)
	}
	return Size{Width: atLeastOne(w), Height: atLeastOne(h)}, nil
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// Fit returns the size of src scaled to fit entirely within canvas while
// keeping its aspect ratio.
func Fit(src image.Rectangle, canvas Size) Size {
	sw, sh := float64(src.Dx()), float64(src.Dy())
	scale := math.Min(float64(canvas.Width)/sw, float64(canvas.Height)/sh)
	return Size{
		Width:  clamp(atLeastOne(math.Round(sw*scale)), canvas.Width),
		Height: clamp(atLeastOne(math.Round(sh*scale)), canvas.Height),
	}
}

// Offset returns the top-left position that centres inner within canvas.
// Odd remainders leave the extra pixel on the right and bottom.
func Offset(inner, canvas Size) image.Point {
	return image.Pt((canvas.Width-inner.Width)/2, (canvas.Height-inner.Height)/2)
}

// Compose scales src to fit canvas, without cropping, and centres it on a
// new canvas filled with bg. Transparent source pixels are blended onto the
// background so the returned frame is fully opaque.
func Compose(src image.Image, canvas Size, bg color.Color) (*image.NRGBA, error) {
	if err := canvas.Validate(); err != nil {
		return nil, err
	}
	if src == nil || src.Bounds().Empty() {
		return nil, ErrEmptySource
	}

	fit := Fit(src.Bounds(), canvas)
	resized := imaging.Resize(src, fit.Width, fit.Height, imaging.Lanczos)

	dst := imaging.New(canvas.Width, canvas.Height, opaque(bg))
	return imaging.Overlay(dst, resized, Offset(fit, canvas), 1.0), nil
}

func opaque(c color.Color) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 0xff
	return n
}

func atLeastOne(v float64) int {
	if v < 1 {
		return 1
	}
	return int(v)
}

func clamp(v, max int) int {
	if v > max {
		return max
	}
	return v
}
