package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/michaelmcallister/gifing/pkg/label"
)

var fontsCmd = &cobra.Command{
	Use:   "fonts",
	Short: "List the bundled label fonts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		def := label.DefaultStyle().Font.String()
		for _, name := range label.FontNames() {
			if name == def {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (default)\n", name)
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fontsCmd)
}
