package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/michaelmcallister/gifing/internal/cliconfig"
)

const longHelp = `
Turn a handful of images into an animated GIF.

Every image is scaled to fit a fixed canvas, centred on a background colour,
optionally captioned, and held for the same duration. The last frame can be
repeated so the animation pauses before it loops.

Settings come from flags, GIFING_* environment variables (a .env file in the
working directory is loaded first) and $HOME/.gifing/config.toml, in that
order of precedence.
`

var exampleUsage = strings.TrimSpace(`
  gifing make a.jpg b.jpg c.png -o out.gif
  gifing make -d ./frames --scale 0.5 --background "#000" --labels one,two,three
  gifing watch -d ./frames --config ./gifing.toml
`)

var (
	log     = cliconfig.Logger()
	verbose bool
	envFile string
)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

var rootCmd = &cobra.Command{
	Use:           "gifing",
	Short:         "Build animated GIFs from still images",
	Long:          strings.TrimSpace(longHelp),
	Example:       exampleUsage,
	Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log = log.Level(zerolog.DebugLevel)
		}
		loaded, err := cliconfig.LoadDotEnv(envFile)
		if err != nil {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
		if loaded {
			log.Debug().Str("path", envFile).Msg("loaded environment file")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "environment file to load before reading GIFING_* variables")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("gifing")
		os.Exit(1)
	}
}
