package main

import (
	"github.com/spf13/cobra"

	"github.com/michaelmcallister/gifing/internal/cliconfig"
	"github.com/michaelmcallister/gifing/pkg/sequence"
)

// buildFlags holds the flag-bound configuration shared by make and watch.
type buildFlags struct {
	cfg     cliconfig.Config
	cfgPath string
}

func bindBuildFlags(cmd *cobra.Command) *buildFlags {
	f := &buildFlags{cfg: cliconfig.DefaultConfig()}
	cliconfig.BindFlags(cmd.Flags(), &f.cfg, &f.cfgPath)
	return f
}

// resolve layers the config file and environment under the parsed flags.
// The flag-bound config is copied so it can be resolved again later.
func (f *buildFlags) resolve(cmd *cobra.Command, args []string) (cliconfig.Config, string, error) {
	cfg := f.cfg
	loaded, err := cliconfig.Resolve(cmd.Flags(), &cfg, f.cfgPath, args)
	if err != nil {
		return cfg, "", err
	}
	if loaded != "" {
		log.Debug().Str("path", loaded).Msg("loaded config file")
	}
	return cfg, loaded, nil
}

var makeCmd = &cobra.Command{
	Use:   "make [images...]",
	Short: "Build an animation from images",
	Long: `Build an animation from the given images, or from every image in
--directory when none are given. The output format follows the extension of
--output: .gif, .mjpeg or .avi.`,
	RunE: runMake,
}

var makeFlags *buildFlags

func init() {
	makeFlags = bindBuildFlags(makeCmd)
	rootCmd.AddCommand(makeCmd)
}

func runMake(cmd *cobra.Command, args []string) error {
	cfg, _, err := makeFlags.resolve(cmd, args)
	if err != nil {
		return err
	}
	_, err = makeAnimation(cfg)
	return err
}

func makeAnimation(cfg cliconfig.Config) (string, error) {
	sc, err := cfg.SequenceConfig()
	if err != nil {
		return "", err
	}
	log.Debug().
		Int("sources", len(sc.Sources())).
		Stringer("canvas", sc.Canvas()).
		Str("output", cfg.Output).
		Msg("building animation")
	b := sequence.NewBuilder(sc,
		sequence.WithLogger(log),
		sequence.WithStitchers(cfg.Stitchers()),
	)
	return b.Make(cfg.Output)
}
