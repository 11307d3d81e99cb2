package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/michaelmcallister/gifing/pkg/colors"
	"github.com/michaelmcallister/gifing/pkg/label"
	"github.com/michaelmcallister/gifing/pkg/sequence"
	"github.com/michaelmcallister/gifing/pkg/stitchers"
)

// Config holds CLI configuration for gifing.
type Config struct {
	Sources   []string
	Directory string
	Output    string

	Width           int
	Height          int
	Scale           float64
	Background      colors.RGB
	DurationMS      int
	RepeatLastFrame int
	Quantizer       stitchers.Quantizer

	Labels       []string
	Font         label.Font
	FontSize     float64
	Corner       label.Corner
	TextPadding  int
	BoxPadding   int
	BoxColor     colors.RGB
	ShadowOffset int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	style := label.DefaultStyle()
	return Config{
		Output:          sequence.DefaultOutput,
		Width:           sequence.DefaultSize.Width,
		Height:          sequence.DefaultSize.Height,
		Scale:           1,
		Background:      colors.RGB{R: 255, G: 255, B: 255},
		DurationMS:      int(sequence.DefaultFrameDuration / time.Millisecond),
		RepeatLastFrame: sequence.DefaultRepeatLastFrame,
		Quantizer:       stitchers.MedianCut,
		Font:            style.Font,
		FontSize:        style.Size,
		Corner:          style.Corner,
		TextPadding:     style.TextPadding,
		BoxPadding:      style.BoxPadding,
		BoxColor:        colors.RGB{R: 255, G: 255, B: 255},
		ShadowOffset:    style.ShadowOffset,
	}
}

// Validate checks the configuration for errors and resolves the source
// directory into the source list.
func (c *Config) Validate() error {
	if c.Directory != "" && len(c.Sources) == 0 {
		files, err := sequence.CollectDir(c.Directory)
		if err != nil {
			return fmt.Errorf("read directory: %w", err)
		}
		c.Sources = files
	}
	if len(c.Sources) == 0 {
		return sequence.ErrEmptySequence
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("size must be positive, got %dx%d", c.Width, c.Height)
	}
	if !(c.Scale > 0) {
		return fmt.Errorf("scale must be positive, got %v", c.Scale)
	}
	if !(c.FontSize > 0) {
		return fmt.Errorf("font size must be positive, got %v", c.FontSize)
	}
	if c.DurationMS <= 0 {
		return fmt.Errorf("frame duration must be positive")
	}
	if c.RepeatLastFrame < 0 {
		return fmt.Errorf("repeat-last-frame must not be negative")
	}
	switch c.Quantizer {
	case stitchers.MedianCut, stitchers.Plan9:
	default:
		return fmt.Errorf("unknown quantizer %q", c.Quantizer)
	}
	return nil
}

// LabelStyle returns the label style described by the configuration.
func (c *Config) LabelStyle() label.Style {
	return label.Style{
		Font:         c.Font,
		Size:         c.FontSize,
		Corner:       c.Corner,
		TextPadding:  c.TextPadding,
		BoxPadding:   c.BoxPadding,
		BoxColor:     c.BoxColor,
		ShadowOffset: c.ShadowOffset,
	}
}

// SequenceConfig converts the CLI configuration into a sequence.Config.
func (c *Config) SequenceConfig() (sequence.Config, error) {
	opts := []sequence.Option{
		sequence.WithSize(c.Width, c.Height),
		sequence.WithScale(c.Scale),
		sequence.WithBackgroundColor(c.Background),
		sequence.WithFrameDuration(time.Duration(c.DurationMS) * time.Millisecond),
		sequence.WithRepeatLastFrame(c.RepeatLastFrame),
	}
	if len(c.Labels) > 0 {
		opts = append(opts, sequence.WithLabels(c.Labels, c.LabelStyle()))
	}
	return sequence.NewConfig(c.Sources, opts...)
}

// Stitchers returns the stitcher factory honouring the configured quantizer.
func (c *Config) Stitchers() sequence.StitcherFactory {
	return func(ff stitchers.Format) (stitchers.ImageStitcher, error) {
		s, err := stitchers.ForFormat(ff)
		if err != nil {
			return nil, err
		}
		if g, ok := s.(*stitchers.GifStitcher); ok {
			g.Quantizer = c.Quantizer
		}
		return s, nil
	}
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setStrings sets a list if not empty and flag not changed.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = append([]string(nil), value...)
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setIntPtr sets an int value, zero included, if present and flag not changed.
func (s *configSetter) setIntPtr(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setPositiveIntPtr sets an int value if present and flag not changed. A
// present value that is not positive is an error.
func (s *configSetter) setPositiveIntPtr(flag string, value *int, dst *int) error {
	if value == nil || s.changed[flag] {
		return nil
	}
	if *value <= 0 {
		return fmt.Errorf("%s must be positive, got %d", flag, *value)
	}
	*dst = *value
	return nil
}

// setPositiveFloatPtr is setPositiveIntPtr for float64 values.
func (s *configSetter) setPositiveFloatPtr(flag string, value *float64, dst *float64) error {
	if value == nil || s.changed[flag] {
		return nil
	}
	if !(*value > 0) {
		return fmt.Errorf("%s must be positive, got %v", flag, *value)
	}
	*dst = *value
	return nil
}

// setColor resolves a name, hex string or triple if present and flag not changed.
func (s *configSetter) setColor(flag string, value any, dst *colors.RGB) error {
	if value == nil || s.changed[flag] {
		return nil
	}
	if str, ok := value.(string); ok && str == "" {
		return nil
	}
	c, err := colors.Parse(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = c
	return nil
}

// setCorner parses a label corner if not empty and flag not changed.
func (s *configSetter) setCorner(flag, value string, dst *label.Corner) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	c, err := label.ParseCorner(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = c
	return nil
}

// setFont looks up a bundled font if not empty and flag not changed.
func (s *configSetter) setFont(flag, value string, dst *label.Font) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := label.ParseFont(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = f
	return nil
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings. Zero is accepted.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if f <= 0 {
		return fmt.Errorf("parse %s: must be positive", flag)
	}
	*dst = f
	return nil
}
