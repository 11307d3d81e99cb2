package sequence

import (
	"errors"
	"fmt"
	"time"

	"github.com/michaelmcallister/gifing/pkg/colors"
	"github.com/michaelmcallister/gifing/pkg/compositor"
	"github.com/michaelmcallister/gifing/pkg/label"
)

// Defaults applied by NewConfig.
const (
	DefaultFrameDuration   = 1000 * time.Millisecond
	DefaultRepeatLastFrame = 1
)

// DefaultSize is the canvas used when no size is configured.
var DefaultSize = compositor.Size{Width: 1000 * 3, Height: 700 * 3}

// ErrLabelCount is returned when labels are not aligned 1:1 with sources.
var ErrLabelCount = errors.New("label count does not match source count")

// Config describes one animation. It is built once with NewConfig and is
// not modified afterwards.
type Config struct {
	sources    []string
	size       compositor.Size
	scale      float64
	background colors.RGB
	duration   time.Duration
	repeat     int
	labels     []string
	style      label.Style
	renderer   *label.Renderer
	decoder    Decoder
}

// Option configures a Config. Options validate their input immediately.
type Option func(*Config) error

// NewConfig returns a Config for sources with the given options applied in
// order. The first failing option aborts construction. An empty source list
// is accepted here and rejected by Build.
func NewConfig(sources []string, opts ...Option) (Config, error) {
	c := Config{
		sources:    append([]string(nil), sources...),
		size:       DefaultSize,
		scale:      1,
		background: colors.RGB{R: 255, G: 255, B: 255},
		duration:   DefaultFrameDuration,
		repeat:     DefaultRepeatLastFrame,
		decoder:    FileDecoder{},
	}
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return Config{}, err
		}
	}
	if c.labels != nil && len(c.labels) != len(c.sources) {
		return Config{}, fmt.Errorf("%w: %d labels for %d sources", ErrLabelCount, len(c.labels), len(c.sources))
	}
	if _, err := c.size.Scale(c.scale); err != nil {
		return Config{}, err
	}
	return c, nil
}

// WithSize sets the canvas size before scaling.
func WithSize(width, height int) Option {
	return func(c *Config) error {
		s := compositor.Size{Width: width, Height: height}
		if err := s.Validate(); err != nil {
			return err
		}
		c.size = s
		return nil
	}
}

// WithScale multiplies the canvas size.
func WithScale(f float64) Option {
	return func(c *Config) error {
		if _, err := c.size.Scale(f); err != nil {
			return err
		}
		c.scale = f
		return nil
	}
}

// WithBackground sets the canvas colour from a name or hex string.
func WithBackground(s string) Option {
	return func(c *Config) error {
		rgb, err := colors.Resolve(s)
		if err != nil {
			return err
		}
		c.background = rgb
		return nil
	}
}

// WithBackgroundColor sets the canvas colour.
func WithBackgroundColor(rgb colors.RGB) Option {
	return func(c *Config) error {
		c.background = rgb
		return nil
	}
}

// WithFrameDuration sets how long every frame is shown.
func WithFrameDuration(d time.Duration) Option {
	return func(c *Config) error {
		if d <= 0 {
			return fmt.Errorf("frame duration must be positive, got %v", d)
		}
		c.duration = d
		return nil
	}
}

// WithRepeatLastFrame sets how many extra copies of the last frame are
// appended.
func WithRepeatLastFrame(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("repeat count must not be negative, got %d", n)
		}
		c.repeat = n
		return nil
	}
}

// WithLabels captions frame i with texts[i]. An empty text leaves that frame
// without a label. The style is validated and its font loaded immediately.
func WithLabels(texts []string, style label.Style) Option {
	return func(c *Config) error {
		r, err := label.NewRenderer(style)
		if err != nil {
			return err
		}
		c.labels = append([]string{}, texts...)
		c.style = r.Style()
		c.renderer = r
		return nil
	}
}

// WithDecoder replaces the file decoder.
func WithDecoder(d Decoder) Option {
	return func(c *Config) error {
		if d == nil {
			return errors.New("decoder must not be nil")
		}
		c.decoder = d
		return nil
	}
}

// Sources returns a copy of the source list.
func (c Config) Sources() []string { return append([]string(nil), c.sources...) }

// Canvas returns the scaled canvas size every frame is normalized to.
func (c Config) Canvas() compositor.Size {
	s, err := c.size.Scale(c.scale)
	if err != nil {
		// unreachable for a Config returned by NewConfig
		return c.size
	}
	return s
}

// Size returns the unscaled canvas size.
func (c Config) Size() compositor.Size { return c.size }

// Scale returns the canvas scale factor.
func (c Config) Scale() float64 { return c.scale }

// Background returns the canvas colour.
func (c Config) Background() colors.RGB { return c.background }

// FrameDuration returns how long each frame is shown.
func (c Config) FrameDuration() time.Duration { return c.duration }

// RepeatLastFrame returns the number of extra copies of the last frame.
func (c Config) RepeatLastFrame() int { return c.repeat }

// Labels returns the per-frame captions, or nil when labels are disabled.
func (c Config) Labels() []string {
	if c.labels == nil {
		return nil
	}
	return append([]string{}, c.labels...)
}

// LabelStyle returns the style used for captions.
func (c Config) LabelStyle() label.Style { return c.style }

func (c Config) labelFor(i int) string {
	if c.renderer == nil || i >= len(c.labels) {
		return ""
	}
	return c.labels[i]
}
