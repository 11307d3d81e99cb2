// Package label draws a text caption in a shadowed box at one corner of a
// frame.
package label

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ErrInvalidPlacement is returned for an unknown corner or a negative padding.
var ErrInvalidPlacement = errors.New("invalid label placement")

// for drawing the box and text.
var (
	black       = color.NRGBA{0x00, 0x00, 0x00, 0xFF}
	white       = color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}
	shadowColor = color.NRGBA{0x00, 0x00, 0x00, 0x80}
)

// Corner is the canvas corner a label is anchored to.
type Corner int

// Label corners. The text is inset from both adjoining edges by the
// style's TextPadding.
const (
	// TopLeft anchors the text to the top and left edges.
	TopLeft Corner = iota
	// TopRight anchors the text to the top and right edges.
	TopRight
	// BottomLeft anchors the text to the bottom and left edges.
	BottomLeft
	// BottomRight anchors the text to the bottom and right edges.
	BottomRight
)

var cornerNames = [...]string{
	TopLeft:     "top-left",
	TopRight:    "top-right",
	BottomLeft:  "bottom-left",
	BottomRight: "bottom-right",
}

func (c Corner) valid() bool { return c >= TopLeft && c <= BottomRight }

func (c Corner) String() string {
	if !c.valid() {
		return fmt.Sprintf("Corner(%d)", int(c))
	}
	return cornerNames[c]
}

// ParseCorner accepts "top-left", "top left", "top_left" and the "upper"/
// "lower" spellings of each corner.
func ParseCorner(s string) (Corner, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.NewReplacer("_", "-", " ", "-").Replace(n)
	n = strings.Replace(n, "upper-", "top-", 1)
	n = strings.Replace(n, "lower-", "bottom-", 1)
	for i, name := range cornerNames {
		if name == n {
			return Corner(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q must be one of %s", ErrInvalidPlacement, s, strings.Join(cornerNames[:], ", "))
}

// Style configures how labels are placed and drawn.
type Style struct {
	Font         Font
	Size         float64 // points
	Corner       Corner
	TextPadding  int // distance from the canvas edges to the text
	BoxPadding   int // distance from the text to the box edges
	BoxColor     color.Color
	ShadowOffset int
}

// DefaultStyle returns a white box in the top-left corner.
func DefaultStyle() Style {
	return Style{
		Font:         GoRegular,
		Size:         32,
		Corner:       TopLeft,
		TextPadding:  20,
		BoxPadding:   10,
		BoxColor:     white,
		ShadowOffset: 4,
	}
}

// Validate checks the style without building a font face.
func (s Style) Validate() error {
	if !s.Corner.valid() {
		return fmt.Errorf("%w: %v", ErrInvalidPlacement, s.Corner)
	}
	if !s.Font.valid() {
		return fmt.Errorf("%w: %v", ErrFontNotFound, s.Font)
	}
	if !(s.Size > 0) {
		return fmt.Errorf("label font size must be positive, got %v", s.Size)
	}
	if s.TextPadding < 0 || s.BoxPadding < 0 || s.ShadowOffset < 0 {
		return fmt.Errorf("%w: paddings and shadow offset must not be negative", ErrInvalidPlacement)
	}
	return nil
}

// Renderer draws labels with a fixed style. A Renderer holds a font face and
// must not be used from multiple goroutines at once.
type Renderer struct {
	style  Style
	face   font.Face
	ascent int
	height int
}

// NewRenderer validates s and loads its font.
func NewRenderer(s Style) (*Renderer, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.BoxColor == nil {
		s.BoxColor = white
	}
	face, err := s.Font.Face(s.Size)
	if err != nil {
		return nil, err
	}
	m := face.Metrics()
	return &Renderer{
		style:  s,
		face:   face,
		ascent: m.Ascent.Ceil(),
		height: m.Ascent.Ceil() + m.Descent.Ceil(),
	}, nil
}

// Style returns the renderer's style.
func (r *Renderer) Style() Style { return r.style }

// Measure returns the width and height of text in pixels.
func (r *Renderer) Measure(text string) (w, h int) {
	return font.MeasureString(r.face, text).Ceil(), r.height
}

// Anchor returns the top-left corner of a text block of size (w, h) within
// bounds.
func (r *Renderer) Anchor(bounds image.Rectangle, w, h int) image.Point {
	p := r.style.TextPadding
	x, y := bounds.Min.X+p, bounds.Min.Y+p
	switch r.style.Corner {
	case TopRight, BottomRight:
		x = bounds.Max.X - w - p
	}
	switch r.style.Corner {
	case BottomLeft, BottomRight:
		y = bounds.Max.Y - h - p
	}
	return image.Pt(x, y)
}

// BoxRect returns the box drawn behind a text block anchored at at.
func (r *Renderer) BoxRect(at image.Point, w, h int) image.Rectangle {
	bp := r.style.BoxPadding
	return image.Rect(at.X-bp, at.Y-bp, at.X+w+bp, at.Y+h+bp)
}

// ShadowRect returns the box translated by the shadow offset.
func (r *Renderer) ShadowRect(box image.Rectangle) image.Rectangle {
	return box.Add(image.Pt(r.style.ShadowOffset, r.style.ShadowOffset))
}

// Draw paints the shadow, the box and then the text onto dst. Anything that
// falls outside dst is clipped. Empty text draws nothing.
func (r *Renderer) Draw(dst draw.Image, text string) {
	if text == "" {
		return
	}
	w, h := r.Measure(text)
	at := r.Anchor(dst.Bounds(), w, h)
	box := r.BoxRect(at, w, h)

	draw.Draw(dst, r.ShadowRect(box), image.NewUniform(shadowColor), image.Point{}, draw.Over)
	draw.Draw(dst, box, image.NewUniform(r.style.BoxColor), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(black),
		Face: r.face,
		Dot:  fixed.P(at.X, at.Y+r.ascent),
	}
	d.DrawString(text)
}
