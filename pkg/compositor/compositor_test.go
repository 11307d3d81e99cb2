package compositor

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

var (
	white = color.NRGBA{255, 255, 255, 255}
	red   = color.NRGBA{255, 0, 0, 255}
	blue  = color.NRGBA{0, 0, 255, 255}
	green = color.NRGBA{0, 255, 0, 255}
)

func uniform(w, h int, c color.Color) image.Image {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y, c)
		}
	}
	return m
}

func TestComposeKeepsCanvasSize(t *testing.T) {
	canvas := Size{Width: 1000, Height: 1000}
	tests := []struct {
		name string
		src  image.Image
	}{
		{"tall", uniform(200, 300, red)},
		{"wide", uniform(400, 100, blue)},
		{"very tall", uniform(100, 400, green)},
		{"square", uniform(50, 50, red)},
		{"larger than canvas", uniform(3000, 1200, blue)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := Compose(tt.src, canvas, white)
			if err != nil {
				t.Fatalf("Compose() unexpected error: %v", err)
			}
			if got := frame.Bounds().Size(); got != image.Pt(1000, 1000) {
				t.Errorf("frame size = %v, want 1000x1000", got)
			}
		})
	}
}

func TestComposeCentersSource(t *testing.T) {
	frame, err := Compose(uniform(200, 300, red), Size{1000, 1000}, white)
	if err != nil {
		t.Fatalf("Compose() unexpected error: %v", err)
	}
	if got := frame.NRGBAAt(0, 0); got != white {
		t.Errorf("corner pixel = %v, want background %v", got, white)
	}
	if got := frame.NRGBAAt(999, 999); got != white {
		t.Errorf("far corner pixel = %v, want background %v", got, white)
	}
	if got := frame.NRGBAAt(500, 500); got != red {
		t.Errorf("center pixel = %v, want source %v", got, red)
	}
	// 667 wide, offset (1000-667)/2 = 166.
	if got := frame.NRGBAAt(165, 500); got != white {
		t.Errorf("pixel left of image = %v, want background", got)
	}
	if got := frame.NRGBAAt(166+667, 500); got != white {
		t.Errorf("pixel right of image = %v, want background", got)
	}
}

func TestComposeWideSource(t *testing.T) {
	frame, err := Compose(uniform(400, 100, blue), Size{1000, 1000}, color.NRGBA{255, 255, 0, 255})
	if err != nil {
		t.Fatalf("Compose() unexpected error: %v", err)
	}
	if got := frame.NRGBAAt(500, 500); got != blue {
		t.Errorf("center pixel = %v, want %v", got, blue)
	}
	if got := frame.NRGBAAt(500, 10); got != (color.NRGBA{255, 255, 0, 255}) {
		t.Errorf("top band pixel = %v, want yellow background", got)
	}
}

func TestComposeBlendsTransparency(t *testing.T) {
	frame, err := Compose(uniform(10, 10, color.NRGBA{}), Size{20, 20}, blue)
	if err != nil {
		t.Fatalf("Compose() unexpected error: %v", err)
	}
	for _, p := range []image.Point{{0, 0}, {10, 10}, {19, 19}} {
		if got := frame.NRGBAAt(p.X, p.Y); got != blue {
			t.Errorf("pixel %v = %v, want %v", p, got, blue)
		}
	}
}

func TestComposeErrors(t *testing.T) {
	if _, err := Compose(uniform(10, 10, red), Size{0, 10}, white); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("zero width error = %v, want ErrInvalidSize", err)
	}
	if _, err := Compose(image.NewNRGBA(image.Rect(0, 0, 0, 0)), Size{10, 10}, white); !errors.Is(err, ErrEmptySource) {
		t.Errorf("empty source error = %v, want ErrEmptySource", err)
	}
	if _, err := Compose(nil, Size{10, 10}, white); !errors.Is(err, ErrEmptySource) {
		t.Errorf("nil source error = %v, want ErrEmptySource", err)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		src    image.Rectangle
		canvas Size
		want   Size
	}{
		{image.Rect(0, 0, 200, 300), Size{1000, 1000}, Size{667, 1000}},
		{image.Rect(0, 0, 400, 100), Size{1000, 1000}, Size{1000, 250}},
		{image.Rect(0, 0, 500, 500), Size{1000, 600}, Size{600, 600}},
		{image.Rect(0, 0, 4000, 3000), Size{640, 480}, Size{640, 480}},
		{image.Rect(0, 0, 1, 1000), Size{10, 10}, Size{1, 10}},
		{image.Rect(10, 10, 30, 20), Size{100, 100}, Size{100, 50}},
	}
	for _, tt := range tests {
		if got := Fit(tt.src, tt.canvas); got != tt.want {
			t.Errorf("Fit(%v, %v) = %v, want %v", tt.src, tt.canvas, got, tt.want)
		}
	}
}

func TestOffsetFloorsOddRemainder(t *testing.T) {
	if got := Offset(Size{7, 4}, Size{10, 10}); got != image.Pt(1, 3) {
		t.Errorf("Offset() = %v, want (1,3)", got)
	}
}

func TestSizeScale(t *testing.T) {
	tests := []struct {
		size    Size
		scale   float64
		want    Size
		wantErr bool
	}{
		{Size{500, 500}, 2, Size{1000, 1000}, false},
		{Size{500, 600}, 2, Size{1000, 1200}, false},
		{Size{3, 3}, 0.5, Size{2, 2}, false},
		{Size{1, 1}, 0.1, Size{1, 1}, false},
		{Size{500, 500}, 0, Size{}, true},
		{Size{500, 500}, -1, Size{}, true},
		{Size{0, 500}, 1, Size{}, true},
		{Size{500, 500}, 1e19, Size{}, true},
		{Size{3000, 2100}, 1e6, Size{}, true},
		{Size{MaxDimension, 1}, 1, Size{MaxDimension, 1}, false},
		{Size{MaxDimension + 1, 1}, 1, Size{}, true},
	}
	for _, tt := range tests {
		got, err := tt.size.Scale(tt.scale)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidSize) {
				t.Errorf("%v.Scale(%v) error = %v, want ErrInvalidSize", tt.size, tt.scale, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%v.Scale(%v) unexpected error: %v", tt.size, tt.scale, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%v.Scale(%v) = %v, want %v", tt.size, tt.scale, got, tt.want)
		}
	}
}
