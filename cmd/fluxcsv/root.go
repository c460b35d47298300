package main

import (
	"github.com/spf13/cobra"
)

// rootCmd is the base command; the subcommands in this package attach
// themselves to it from their init functions.
var rootCmd = &cobra.Command{
	Use:   "fluxcsv",
	Short: "Stream, validate, and measure delimited text files",
	Long: `fluxcsv is a command-line front end for the fluxcsv streaming parser.

It reads delimited text with configurable delimiters (including
multi-character ones), quote/escape/comment characters, trim modes, and
blank-line skipping, and can report position counters and malformed-data
findings for a file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}
