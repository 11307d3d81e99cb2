// Package colors resolves user supplied colours (names, hex strings or RGB
// triples) into opaque RGB values.
package colors

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidColor is returned when a value is neither a hex colour, a known
// colour name nor a valid RGB triple.
var ErrInvalidColor = errors.New("invalid color")

// InvalidColorError names the offending input.
type InvalidColorError struct {
	Input string
}

func (e *InvalidColorError) Error() string {
	return fmt.Sprintf("invalid color name: '%s'. color must be a hex color or one of the following: %s",
		e.Input, strings.Join(Names(), ", "))
}

// Is reports ErrInvalidColor so callers can use errors.Is.
func (e *InvalidColorError) Is(target error) bool { return target == ErrInvalidColor }

// RGB is an opaque colour.
type RGB struct {
	R, G, B uint8
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Hex returns the colour in #rrggbb form.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

type namedColor struct {
	name string
	rgb  RGB
}

// palette keeps the documented order for listing.
var palette = []namedColor{
	{"white", RGB{255, 255, 255}},
	{"black", RGB{0, 0, 0}},
	{"red", RGB{255, 0, 0}},
	{"green", RGB{0, 255, 0}},
	{"blue", RGB{0, 0, 255}},
	{"yellow", RGB{255, 255, 0}},
	{"cyan", RGB{0, 255, 255}},
	{"magenta", RGB{255, 0, 255}},
	{"gray", RGB{128, 128, 128}},
	{"orange", RGB{255, 165, 0}},
	{"purple", RGB{128, 0, 128}},
	{"pink", RGB{255, 192, 203}},
	{"brown", RGB{165, 42, 42}},
}

var hexPattern = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// Names returns the supported colour names in palette order.
func Names() []string {
	names := make([]string, len(palette))
	for i, c := range palette {
		names[i] = c.name
	}
	return names
}

// Named returns the palette entry for name, ignoring case.
func Named(name string) (RGB, bool) {
	name = strings.ToLower(name)
	for _, c := range palette {
		if c.name == name {
			return c.rgb, true
		}
	}
	return RGB{}, false
}

// IsHex reports whether s is a #RGB or #RRGGBB string.
func IsHex(s string) bool {
	return hexPattern.MatchString(s)
}

// Resolve converts a hex string or colour name to RGB. Hex is tried before
// the name table.
func Resolve(s string) (RGB, error) {
	if IsHex(s) {
		return parseHex(s), nil
	}
	if c, ok := Named(s); ok {
		return c, nil
	}
	return RGB{}, &InvalidColorError{Input: s}
}

// FromTriple validates each channel is within [0,255].
func FromTriple(r, g, b int) (RGB, error) {
	for _, v := range [3]int{r, g, b} {
		if v < 0 || v > 255 {
			return RGB{}, &InvalidColorError{Input: fmt.Sprintf("(%d, %d, %d)", r, g, b)}
		}
	}
	return RGB{uint8(r), uint8(g), uint8(b)}, nil
}

// Parse accepts an RGB, a three element integer triple (including the
// []any produced by TOML decoding) or a string.
func Parse(v any) (RGB, error) {
	switch t := v.(type) {
	case RGB:
		return t, nil
	case [3]int:
		return FromTriple(t[0], t[1], t[2])
	case []int:
		return tripleFromSlice(len(t), func(i int) (int, bool) { return t[i], true }, v)
	case []int64:
		return tripleFromSlice(len(t), func(i int) (int, bool) { return int(t[i]), true }, v)
	case []any:
		return tripleFromSlice(len(t), func(i int) (int, bool) {
			switch n := t[i].(type) {
			case int:
				return n, true
			case int64:
				return int(n), true
			}
			return 0, false
		}, v)
	case string:
		return Resolve(t)
	}
	return RGB{}, &InvalidColorError{Input: fmt.Sprint(v)}
}

func tripleFromSlice(n int, at func(int) (int, bool), orig any) (RGB, error) {
	if n != 3 {
		return RGB{}, &InvalidColorError{Input: fmt.Sprint(orig)}
	}
	var ch [3]int
	for i := range ch {
		v, ok := at(i)
		if !ok {
			return RGB{}, &InvalidColorError{Input: fmt.Sprint(orig)}
		}
		ch[i] = v
	}
	return FromTriple(ch[0], ch[1], ch[2])
}

// parseHex expects s to have passed IsHex.
func parseHex(s string) RGB {
	h := s[1:]
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	var ch [3]uint8
	for i := range ch {
		v, _ := strconv.ParseUint(h[i*2:i*2+2], 16, 8)
		ch[i] = uint8(v)
	}
	return RGB{ch[0], ch[1], ch[2]}
}
