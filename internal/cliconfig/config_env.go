package cliconfig

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/michaelmcallister/gifing/pkg/stitchers"
)

// LoadDotEnv loads a .env file into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) (bool, error) {
	if !FileExists(path) {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		return false, err
	}
	return true, nil
}

// ApplyEnvConfig applies configuration from environment variables (GIFING_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("directory", os.Getenv("GIFING_DIRECTORY"), &cfg.Directory)
	s.setString("output", os.Getenv("GIFING_OUTPUT"), &cfg.Output)

	if err := s.setIntFromString("width", os.Getenv("GIFING_WIDTH"), &cfg.Width); err != nil {
		return err
	}
	if err := s.setIntFromString("height", os.Getenv("GIFING_HEIGHT"), &cfg.Height); err != nil {
		return err
	}
	if err := s.setFloatFromString("scale", os.Getenv("GIFING_SCALE"), &cfg.Scale); err != nil {
		return err
	}
	if err := s.setColor("background", os.Getenv("GIFING_BACKGROUND"), &cfg.Background); err != nil {
		return err
	}
	if err := s.setIntFromString("duration", os.Getenv("GIFING_DURATION"), &cfg.DurationMS); err != nil {
		return err
	}
	if err := s.setIntFromString("repeat-last-frame", os.Getenv("GIFING_REPEAT_LAST_FRAME"), &cfg.RepeatLastFrame); err != nil {
		return err
	}

	q := string(cfg.Quantizer)
	s.setString("quantizer", os.Getenv("GIFING_QUANTIZER"), &q)
	cfg.Quantizer = stitchers.Quantizer(q)

	if v := os.Getenv("GIFING_LABELS"); v != "" {
		s.setStrings("labels", strings.Split(v, ","), &cfg.Labels)
	}
	if err := s.setFont("font", os.Getenv("GIFING_FONT"), &cfg.Font); err != nil {
		return err
	}
	if err := s.setFloatFromString("font-size", os.Getenv("GIFING_FONT_SIZE"), &cfg.FontSize); err != nil {
		return err
	}
	if err := s.setCorner("corner", os.Getenv("GIFING_CORNER"), &cfg.Corner); err != nil {
		return err
	}
	if err := s.setColor("box-color", os.Getenv("GIFING_BOX_COLOR"), &cfg.BoxColor); err != nil {
		return err
	}
	if err := s.setIntFromString("text-padding", os.Getenv("GIFING_TEXT_PADDING"), &cfg.TextPadding); err != nil {
		return err
	}
	if err := s.setIntFromString("box-padding", os.Getenv("GIFING_BOX_PADDING"), &cfg.BoxPadding); err != nil {
		return err
	}
	if err := s.setIntFromString("shadow-offset", os.Getenv("GIFING_SHADOW_OFFSET"), &cfg.ShadowOffset); err != nil {
		return err
	}

	return nil
}
