package label

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
)

// ErrFontNotFound is returned for a font name that is not bundled.
var ErrFontNotFound = errors.New("font not found")

// Font identifies one of the bundled fonts.
type Font int

// Bundled fonts, all from the Go font family.
const (
	// GoRegular is the default label font, named "go-regular".
	GoRegular Font = iota
	// GoBold is "go-bold".
	GoBold
	// GoItalic is "go-italic".
	GoItalic
	// GoBoldItalic is "go-bold-italic".
	GoBoldItalic
	// GoMedium is "go-medium".
	GoMedium
	// GoMono is the monospaced "go-mono".
	GoMono
	// GoMonoBold is "go-mono-bold".
	GoMonoBold
	// GoSmallCaps is "go-smallcaps".
	GoSmallCaps
)

var fonts = []struct {
	name string
	ttf  []byte
}{
	GoRegular:    {"go-regular", goregular.TTF},
	GoBold:       {"go-bold", gobold.TTF},
	GoItalic:     {"go-italic", goitalic.TTF},
	GoBoldItalic: {"go-bold-italic", gobolditalic.TTF},
	GoMedium:     {"go-medium", gomedium.TTF},
	GoMono:       {"go-mono", gomono.TTF},
	GoMonoBold:   {"go-mono-bold", gomonobold.TTF},
	GoSmallCaps:  {"go-smallcaps", gosmallcaps.TTF},
}

// FontNames lists the bundled fonts.
func FontNames() []string {
	names := make([]string, len(fonts))
	for i, f := range fonts {
		names[i] = f.name
	}
	return names
}

// ParseFont looks up a bundled font by name, ignoring case.
func ParseFont(name string) (Font, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, f := range fonts {
		if f.name == n {
			return Font(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q (available: %s)", ErrFontNotFound, name, strings.Join(FontNames(), ", "))
}

func (f Font) valid() bool { return f >= 0 && int(f) < len(fonts) }

func (f Font) String() string {
	if !f.valid() {
		return fmt.Sprintf("Font(%d)", int(f))
	}
	return fonts[f].name
}

// TTF returns the embedded font file.
func (f Font) TTF() ([]byte, error) {
	if !f.valid() {
		return nil, fmt.Errorf("%w: %v", ErrFontNotFound, f)
	}
	return fonts[f].ttf, nil
}

// Face parses the font and returns a face of the given point size.
func (f Font) Face(size float64) (font.Face, error) {
	ttf, err := f.TTF()
	if err != nil {
		return nil, err
	}
	fo, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse %v: %w", f, err)
	}
	return truetype.NewFace(fo, &truetype.Options{
		Size: size,
	}), nil
}
