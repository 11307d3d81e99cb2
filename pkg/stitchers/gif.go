package stitchers

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"time"

	"github.com/andybons/gogif"
)

// Quantizer selects how frames are reduced to a 256 colour palette.
type Quantizer string

const (
	// MedianCut builds an adaptive palette per frame.
	MedianCut Quantizer = "median-cut"
	// Plan9 dithers every frame onto the fixed Plan 9 palette.
	Plan9 Quantizer = "plan9"
)

// GifStitcher writes animations as GIF files.
type GifStitcher struct {
	Quantizer Quantizer
	NumColor  int
}

// NewGifStitcher returns a stitcher using a 256 colour median cut palette.
func NewGifStitcher() *GifStitcher {
	return &GifStitcher{Quantizer: MedianCut, NumColor: 256}
}

// Stitch will write the animation to the filename in GIF format. Frames that
// appear more than once are only quantized once.
func (g *GifStitcher) Stitch(a Animation, filename string) error {
	if err := a.Validate(); err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	outGif := &gif.GIF{LoopCount: a.LoopCount}
	seen := make(map[image.Image]*image.Paletted)
	for i, m := range a.Frames {
		p, ok := seen[m]
		if !ok {
			p = g.paletted(m)
			seen[m] = p
		}

		// Add new frame to animated GIF
		outGif.Image = append(outGif.Image, p)
		outGif.Delay = append(outGif.Delay, centiseconds(a.Delays[i]))
	}
	if err := gif.EncodeAll(f, outGif); err != nil {
		return err
	}

	return f.Sync()
}

func (g *GifStitcher) paletted(m image.Image) *image.Paletted {
	bounds := m.Bounds()
	if g.Quantizer == Plan9 {
		p := image.NewPaletted(bounds, palette.Plan9)
		draw.FloydSteinberg.Draw(p, bounds, m, bounds.Min)
		return p
	}
	n := g.NumColor
	if n <= 0 || n > 256 {
		n = 256
	}
	p := image.NewPaletted(bounds, nil)
	q := &gogif.MedianCutQuantizer{NumColor: n}
	q.Quantize(p, bounds, m, bounds.Min)
	return p
}

// centiseconds converts d to GIF delay units, never returning 0 for a
// positive duration.
func centiseconds(d time.Duration) int {
	cs := int((d + 5*time.Millisecond) / (10 * time.Millisecond))
	if cs < 1 && d > 0 {
		return 1
	}
	return cs
}
