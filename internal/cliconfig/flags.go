package cliconfig

import (
	"fmt"
	"path/filepath"
	"strings"

	pflag "github.com/spf13/pflag"

	"github.com/michaelmcallister/gifing/pkg/colors"
	"github.com/michaelmcallister/gifing/pkg/label"
	"github.com/michaelmcallister/gifing/pkg/stitchers"
)

// colorValue is a pflag.Value resolving colour names and hex strings when
// the flag is parsed.
type colorValue struct{ dst *colors.RGB }

func (v colorValue) String() string {
	if v.dst == nil {
		return ""
	}
	return v.dst.Hex()
}

func (v colorValue) Set(s string) error {
	c, err := colors.Resolve(s)
	if err != nil {
		return err
	}
	*v.dst = c
	return nil
}

func (colorValue) Type() string { return "color" }

type cornerValue struct{ dst *label.Corner }

func (v cornerValue) String() string {
	if v.dst == nil {
		return ""
	}
	return v.dst.String()
}

func (v cornerValue) Set(s string) error {
	c, err := label.ParseCorner(s)
	if err != nil {
		return err
	}
	*v.dst = c
	return nil
}

func (cornerValue) Type() string { return "corner" }

type fontValue struct{ dst *label.Font }

func (v fontValue) String() string {
	if v.dst == nil {
		return ""
	}
	return v.dst.String()
}

func (v fontValue) Set(s string) error {
	f, err := label.ParseFont(s)
	if err != nil {
		return err
	}
	*v.dst = f
	return nil
}

func (fontValue) Type() string { return "font" }

type quantizerValue struct{ dst *stitchers.Quantizer }

func (v quantizerValue) String() string {
	if v.dst == nil {
		return ""
	}
	return string(*v.dst)
}

func (v quantizerValue) Set(s string) error {
	switch q := stitchers.Quantizer(strings.ToLower(s)); q {
	case stitchers.MedianCut, stitchers.Plan9:
		*v.dst = q
		return nil
	}
	return fmt.Errorf("quantizer must be %q or %q", stitchers.MedianCut, stitchers.Plan9)
}

func (quantizerValue) Type() string { return "quantizer" }

// BindFlags registers the build flags on fs, writing into cfg.
func BindFlags(fs *pflag.FlagSet, cfg *Config, cfgPath *string) {
	fs.StringVar(cfgPath, "config", "", "path to config file (default: $HOME/.gifing/config.toml)")
	fs.StringVarP(&cfg.Output, "output", "o", cfg.Output, "output file (.gif, .mjpeg or .avi)")
	fs.StringVarP(&cfg.Directory, "directory", "d", cfg.Directory, "directory of images to use when no images are given")

	fs.IntVar(&cfg.Width, "width", cfg.Width, "canvas width before scaling")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "canvas height before scaling")
	fs.Float64Var(&cfg.Scale, "scale", cfg.Scale, "canvas scale factor")
	fs.Var(colorValue{&cfg.Background}, "background", "background color: name or #hex")
	fs.IntVar(&cfg.DurationMS, "duration", cfg.DurationMS, "frame duration in milliseconds")
	fs.IntVar(&cfg.RepeatLastFrame, "repeat-last-frame", cfg.RepeatLastFrame, "extra copies of the last frame")
	fs.Var(quantizerValue{&cfg.Quantizer}, "quantizer", "GIF palette: median-cut or plan9")

	fs.StringSliceVar(&cfg.Labels, "labels", cfg.Labels, "comma separated caption per image")
	fs.Var(fontValue{&cfg.Font}, "font", "label font, one of the names listed by the fonts command")
	fs.Float64Var(&cfg.FontSize, "font-size", cfg.FontSize, "label font size in points")
	fs.Var(cornerValue{&cfg.Corner}, "corner", "label corner: top-left, top-right, bottom-left, bottom-right")
	fs.IntVar(&cfg.TextPadding, "text-padding", cfg.TextPadding, "distance between the canvas edge and the label text")
	fs.IntVar(&cfg.BoxPadding, "box-padding", cfg.BoxPadding, "distance between the label text and its box")
	fs.Var(colorValue{&cfg.BoxColor}, "box-color", "label box color: name or #hex")
	fs.IntVar(&cfg.ShadowOffset, "shadow-offset", cfg.ShadowOffset, "label box shadow offset")
}

// Resolve loads the config file (cfgPath or the default path), applies
// GIFING_* environment variables and then positional sources, so that
// explicitly set flags always win. It returns the config file that was
// loaded, or "" when none was.
func Resolve(fs *pflag.FlagSet, cfg *Config, cfgPath string, args []string) (string, error) {
	changed := map[string]bool{}
	fs.Visit(func(f *pflag.Flag) { changed[f.Name] = true })
	if len(args) > 0 {
		changed["sources"] = true
		cfg.Sources = append([]string(nil), args...)
	}

	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = DefaultConfigPath()
	}
	loaded := ""
	if cfgFile != "" && FileExists(cfgFile) {
		fc, err := LoadFileConfig(cfgFile)
		if err != nil {
			return "", fmt.Errorf("load config: %w", err)
		}
		if err := ApplyFileConfig(cfg, fc, changed, filepath.Dir(cfgFile)); err != nil {
			return "", err
		}
		loaded = cfgFile
	} else if cfgPath != "" {
		return "", fmt.Errorf("config file %s does not exist", cfgPath)
	}

	if err := ApplyEnvConfig(cfg, changed); err != nil {
		return "", err
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	return loaded, nil
}
