package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fluxcsv/fluxcsv"
)

var infoEncoding string

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Report position counters for a delimited file",
	Long: `Parse a delimited file end to end and report its final counters:
logical records, raw (physical) lines, characters consumed, and the byte
size the content would occupy under a target encoding.

Example:
  fluxcsv info data.csv
  fluxcsv info --encoding=shiftjis data.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := opts.config()
		if err != nil {
			return err
		}
		enc, err := byteEncodingByName(infoEncoding)
		if err != nil {
			return err
		}
		cfg.CountBytes = true
		cfg.ByteEncoding = enc

		file, err := os.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "opening input")
		}

		r, err := fluxcsv.NewReader(file, cfg)
		if err != nil {
			file.Close()
			return errors.Wrap(err, "creating reader")
		}

		var fields int
		for {
			ok, err := r.NextRecord()
			if err != nil {
				r.Close()
				return errors.Wrap(err, "reading record")
			}
			if !ok {
				break
			}
			fields += r.FieldCount()
		}
		if err := r.Close(); err != nil {
			return errors.Wrap(err, "closing reader")
		}

		logger.Infow("file parsed",
			"file", args[0],
			"encoding", infoEncoding,
			"rows", r.Row(),
			"raw_rows", r.RawRow(),
			"fields", fields,
			"chars", r.CharCount(),
			"bytes", r.ByteCount(),
		)

		fmt.Printf("file:     %s\n", args[0])
		fmt.Printf("records:  %d\n", r.Row())
		fmt.Printf("lines:    %d\n", r.RawRow())
		fmt.Printf("fields:   %d\n", fields)
		fmt.Printf("chars:    %d\n", r.CharCount())
		fmt.Printf("bytes:    %d (%s)\n", r.ByteCount(), infoEncoding)
		return nil
	},
}

func byteEncodingByName(name string) (fluxcsv.ByteCountEncoding, error) {
	switch name {
	case "utf8":
		return fluxcsv.UTF8Encoding, nil
	case "ascii":
		return fluxcsv.ASCIIEncoding, nil
	case "windows1252":
		return fluxcsv.Windows1252Encoding, nil
	case "shiftjis":
		return fluxcsv.ShiftJISEncoding, nil
	default:
		return nil, errors.Errorf("unknown encoding %q (want utf8, ascii, windows1252, or shiftjis)", name)
	}
}

func init() {
	registerReaderFlags(infoCmd)
	infoCmd.Flags().StringVar(&infoEncoding, "encoding", "utf8", "target encoding for the byte counter: utf8, ascii, windows1252, shiftjis")
	rootCmd.AddCommand(infoCmd)
}
