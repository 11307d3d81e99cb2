package label

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

var yellow = color.NRGBA{255, 255, 0, 255}

func blank(w, h int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range m.Pix {
		m.Pix[i] = 0xFF
	}
	return m
}

func newRenderer(t *testing.T, c Corner) *Renderer {
	t.Helper()
	s := DefaultStyle()
	s.Corner = c
	s.TextPadding = 20
	s.BoxPadding = 10
	s.ShadowOffset = 4
	s.BoxColor = yellow
	r, err := NewRenderer(s)
	if err != nil {
		t.Fatalf("NewRenderer() unexpected error: %v", err)
	}
	return r
}

func TestAnchor(t *testing.T) {
	bounds := image.Rect(0, 0, 500, 300)
	tests := []struct {
		corner Corner
		want   image.Point
	}{
		{TopLeft, image.Pt(20, 20)},
		{TopRight, image.Pt(500-100-20, 20)},
		{BottomLeft, image.Pt(20, 300-30-20)},
		{BottomRight, image.Pt(500-100-20, 300-30-20)},
	}
	for _, tt := range tests {
		t.Run(tt.corner.String(), func(t *testing.T) {
			r := newRenderer(t, tt.corner)
			if got := r.Anchor(bounds, 100, 30); got != tt.want {
				t.Errorf("Anchor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxAndShadowRect(t *testing.T) {
	r := newRenderer(t, TopLeft)
	box := r.BoxRect(image.Pt(20, 20), 100, 30)
	if want := image.Rect(10, 10, 130, 60); box != want {
		t.Errorf("BoxRect() = %v, want %v", box, want)
	}
	if got, want := r.ShadowRect(box), image.Rect(14, 14, 134, 64); got != want {
		t.Errorf("ShadowRect() = %v, want %v", got, want)
	}
}

func TestDraw(t *testing.T) {
	for _, c := range []Corner{TopLeft, TopRight, BottomLeft, BottomRight} {
		t.Run(c.String(), func(t *testing.T) {
			r := newRenderer(t, c)
			frame := blank(400, 200)
			r.Draw(frame, "Hello")

			w, h := r.Measure("Hello")
			if w <= 0 || h <= 0 {
				t.Fatalf("Measure() = %d, %d", w, h)
			}
			at := r.Anchor(frame.Bounds(), w, h)
			box := r.BoxRect(at, w, h)

			if got := frame.NRGBAAt(box.Min.X, box.Min.Y); got != yellow {
				t.Errorf("box corner = %v, want %v", got, yellow)
			}

			shadow := frame.NRGBAAt(box.Max.X+3, box.Max.Y+3)
			if shadow.R == 0 || shadow.R == 255 || shadow.R != shadow.G || shadow.G != shadow.B {
				t.Errorf("shadow pixel = %v, want a partially darkened grey", shadow)
			}

			ink := false
			for y := at.Y; y < at.Y+h && !ink; y++ {
				for x := at.X; x < at.X+w; x++ {
					if p := frame.NRGBAAt(x, y); p.R < 128 && p.G < 128 {
						ink = true
						break
					}
				}
			}
			if !ink {
				t.Error("no dark text pixels inside the text block")
			}

			if got := frame.NRGBAAt(200, 100); got != (color.NRGBA{255, 255, 255, 255}) {
				t.Errorf("pixel away from the label = %v, want untouched", got)
			}
		})
	}
}

func TestDrawEmptyTextIsNoop(t *testing.T) {
	r := newRenderer(t, TopLeft)
	frame := blank(50, 50)
	r.Draw(frame, "")
	for i, v := range frame.Pix {
		if v != 0xFF {
			t.Fatalf("pixel byte %d = %d, want untouched", i, v)
		}
	}
}

func TestDrawClipsToCanvas(t *testing.T) {
	s := DefaultStyle()
	s.Corner = BottomRight
	s.TextPadding = 0
	s.BoxPadding = 40
	s.ShadowOffset = 30
	r, err := NewRenderer(s)
	if err != nil {
		t.Fatalf("NewRenderer() unexpected error: %v", err)
	}
	frame := blank(60, 40)
	r.Draw(frame, "a long caption that does not fit")
	if got := frame.Bounds(); got != image.Rect(0, 0, 60, 40) {
		t.Errorf("bounds changed to %v", got)
	}
}

func TestParseCorner(t *testing.T) {
	tests := map[string]Corner{
		"top-left":     TopLeft,
		"Top Left":     TopLeft,
		"upper left":   TopLeft,
		"top_right":    TopRight,
		"upper right":  TopRight,
		"bottom-left":  BottomLeft,
		"lower left":   BottomLeft,
		"BOTTOM_RIGHT": BottomRight,
		"lower-right":  BottomRight,
	}
	for in, want := range tests {
		got, err := ParseCorner(in)
		if err != nil {
			t.Errorf("ParseCorner(%q) unexpected error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseCorner(%q) = %v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"invalid value", "", "center", "top", "left-top"} {
		if _, err := ParseCorner(in); !errors.Is(err, ErrInvalidPlacement) {
			t.Errorf("ParseCorner(%q) error = %v, want ErrInvalidPlacement", in, err)
		}
	}
}

func TestParseFont(t *testing.T) {
	for _, name := range FontNames() {
		f, err := ParseFont(name)
		if err != nil {
			t.Errorf("ParseFont(%q) unexpected error: %v", name, err)
			continue
		}
		if f.String() != name {
			t.Errorf("ParseFont(%q).String() = %q", name, f)
		}
		if _, err := f.Face(12); err != nil {
			t.Errorf("%v.Face() unexpected error: %v", f, err)
		}
	}
	if f, err := ParseFont("Go-Mono"); err != nil || f != GoMono {
		t.Errorf("ParseFont(Go-Mono) = %v, %v", f, err)
	}
	for _, name := range []string{"comic-sans", "", "../gomono.ttf", "go-mono.ttf"} {
		if _, err := ParseFont(name); !errors.Is(err, ErrFontNotFound) {
			t.Errorf("ParseFont(%q) error = %v, want ErrFontNotFound", name, err)
		}
	}
}

func TestStyleValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Style)
		want   error
	}{
		{"unknown corner", func(s *Style) { s.Corner = Corner(7) }, ErrInvalidPlacement},
		{"negative padding", func(s *Style) { s.BoxPadding = -1 }, ErrInvalidPlacement},
		{"negative shadow", func(s *Style) { s.ShadowOffset = -2 }, ErrInvalidPlacement},
		{"unknown font", func(s *Style) { s.Font = Font(99) }, ErrFontNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultStyle()
			tt.modify(&s)
			if _, err := NewRenderer(s); !errors.Is(err, tt.want) {
				t.Errorf("NewRenderer() error = %v, want %v", err, tt.want)
			}
		})
	}

	s := DefaultStyle()
	s.Size = 0
	if _, err := NewRenderer(s); err == nil {
		t.Error("NewRenderer() with zero font size expected error")
	}
}
