// Package cmd implements the warpanel command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Root command flags
	verbose bool

	rootCmd = &cobra.Command{
		Use:               "warpanel",
		Short:             "Front panel UI for a serial-linked WiFi security engine",
		Version:           "1.0.0",
		Run:               runRoot,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(connectCmd)
}

// runRoot shows help when called without a subcommand
func runRoot(cmd *cobra.Command, args []string) {
	cmd.Help()
}
