package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/michaelmcallister/gifing/pkg/stitchers"
)

// FileConfig mirrors Config in a TOML friendly shape. Colours may be a
// name, a hex string or an [r, g, b] array.
type FileConfig struct {
	Sources         []string    `toml:"sources"`
	Directory       string      `toml:"directory"`
	Output          string      `toml:"output"`
	Size            []int       `toml:"size"`
	Scale           *float64    `toml:"scale"`
	BackgroundColor any         `toml:"background_color"`
	FrameDuration   *int        `toml:"frame_duration"`
	RepeatLastFrame *int        `toml:"repeat_last_frame"`
	Quantizer       string      `toml:"quantizer"`
	Labels          LabelConfig `toml:"labels"`
}

// LabelConfig is the [labels] table.
type LabelConfig struct {
	Texts        []string `toml:"texts"`
	Font         string   `toml:"font"`
	FontSize     *float64 `toml:"font_size"`
	Corner       string   `toml:"corner"`
	TextPadding  *int     `toml:"text_padding"`
	BoxPadding   *int     `toml:"box_padding"`
	BoxColor     any      `toml:"box_color"`
	ShadowOffset *int     `toml:"shadow_offset"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.gifing/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".gifing", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map). Relative
// source paths and directories are resolved against baseDir.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool, baseDir string) error {
	s := newConfigSetter(changed)

	if !changed["sources"] {
		sources := make([]string, len(fc.Sources))
		for i, src := range fc.Sources {
			sources[i] = resolvePath(baseDir, src)
		}
		s.setStrings("sources", sources, &cfg.Sources)
	}
	s.setString("directory", resolvePath(baseDir, fc.Directory), &cfg.Directory)
	s.setString("output", fc.Output, &cfg.Output)

	if len(fc.Size) != 0 {
		if len(fc.Size) != 2 || fc.Size[0] <= 0 || fc.Size[1] <= 0 {
			return fmt.Errorf("size must be [width, height] with positive values, got %v", fc.Size)
		}
		s.setInt("width", fc.Size[0], &cfg.Width)
		s.setInt("height", fc.Size[1], &cfg.Height)
	}
	if err := s.setPositiveFloatPtr("scale", fc.Scale, &cfg.Scale); err != nil {
		return err
	}
	if err := s.setColor("background", fc.BackgroundColor, &cfg.Background); err != nil {
		return err
	}
	if err := s.setPositiveIntPtr("duration", fc.FrameDuration, &cfg.DurationMS); err != nil {
		return err
	}
	s.setIntPtr("repeat-last-frame", fc.RepeatLastFrame, &cfg.RepeatLastFrame)

	q := string(cfg.Quantizer)
	s.setString("quantizer", fc.Quantizer, &q)
	cfg.Quantizer = stitchers.Quantizer(q)

	l := fc.Labels
	s.setStrings("labels", l.Texts, &cfg.Labels)
	if err := s.setFont("font", l.Font, &cfg.Font); err != nil {
		return err
	}
	if err := s.setPositiveFloatPtr("font-size", l.FontSize, &cfg.FontSize); err != nil {
		return err
	}
	if err := s.setCorner("corner", l.Corner, &cfg.Corner); err != nil {
		return err
	}
	s.setIntPtr("text-padding", l.TextPadding, &cfg.TextPadding)
	s.setIntPtr("box-padding", l.BoxPadding, &cfg.BoxPadding)
	if err := s.setColor("box-color", l.BoxColor, &cfg.BoxColor); err != nil {
		return err
	}
	s.setIntPtr("shadow-offset", l.ShadowOffset, &cfg.ShadowOffset)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func resolvePath(baseDir, p string) string {
	if p == "" || baseDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
