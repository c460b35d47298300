package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fluxcsv/fluxcsv"
)

var (
	parseOutputDelimiter string
	reportBadData        bool
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a delimited file and print its records",
	Long: `Parse a delimited file and print each record, one per line, with
fields separated by the output delimiter (tab by default).

Example:
  fluxcsv parse data.csv
  fluxcsv parse --delimiter="!#" --trim=both data.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := opts.config()
		if err != nil {
			return err
		}
		if reportBadData {
			cfg.OnBadData = printBadData
		}

		file, err := os.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "opening input")
		}

		r, err := fluxcsv.NewReader(file, cfg)
		if err != nil {
			file.Close()
			return errors.Wrap(err, "creating reader")
		}
		defer r.Close()

		out := bufio.NewWriter(os.Stdout)
		defer out.Flush()

		for {
			ok, err := r.NextRecord()
			if err != nil {
				return errors.Wrap(err, "reading record")
			}
			if !ok {
				return nil
			}
			for i := 0; i < r.FieldCount(); i++ {
				if i > 0 {
					if _, err := out.WriteString(parseOutputDelimiter); err != nil {
						return err
					}
				}
				if _, err := out.WriteString(r.Field(i)); err != nil {
					return err
				}
			}
			if err := out.WriteByte('\n'); err != nil {
				return err
			}
		}
	},
}

func init() {
	registerReaderFlags(parseCmd)
	parseCmd.Flags().StringVar(&parseOutputDelimiter, "output-delimiter", "\t", "separator between fields on output")
	parseCmd.Flags().BoolVar(&reportBadData, "report-bad-data", false, "print malformed-data findings to stderr while parsing")
	rootCmd.AddCommand(parseCmd)
}

// printBadData is the bad-data sink parse installs with --report-bad-data
// to surface findings without aborting the parse.
func printBadData(ctx fluxcsv.BadDataContext) {
	fmt.Fprintf(os.Stderr, "row %d (raw row %d): %s: %q\n", ctx.Row, ctx.RawRow, ctx.Kind, ctx.RawRecord)
}
