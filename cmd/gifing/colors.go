package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/michaelmcallister/gifing/pkg/colors"
)

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "List the named colors accepted by --background and --box-color",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printPalette(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(colorsCmd)
}

func printPalette(w io.Writer) error {
	for _, name := range colors.Names() {
		rgb, _ := colors.Named(name)
		swatch := color.BgRGB(int(rgb.R), int(rgb.G), int(rgb.B)).Sprint("    ")
		if _, err := fmt.Fprintf(w, "%s %-8s %s  (%d, %d, %d)\n", swatch, name, rgb.Hex(), rgb.R, rgb.G, rgb.B); err != nil {
			return err
		}
	}
	return nil
}
