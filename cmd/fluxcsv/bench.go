package main

import (
	"bytes"
	stdcsv "encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fluxcsv/fluxcsv"
)

var benchIterations int

// benchCmd represents the bench command
var benchCmd = &cobra.Command{
	Use:   "bench [file]",
	Short: "Measure parsing throughput on a file",
	Long: `Parse a file repeatedly from memory and report throughput, alongside
the same measurement for the standard library's encoding/csv for
comparison. The comparison only runs when the configured dialect is one
encoding/csv can express (single-byte delimiter, double quote).

Example:
  fluxcsv bench data.csv
  fluxcsv bench --iterations=20 --delimiter="!#" data.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := opts.config()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrap(err, "reading input")
		}
		if len(data) == 0 {
			return errors.New("input file is empty")
		}

		elapsed, records, err := benchFluxcsv(data, cfg, benchIterations)
		if err != nil {
			return err
		}
		report("fluxcsv", data, benchIterations, records, elapsed)

		if len(cfg.Delimiter) == 1 && cfg.Quote == '"' {
			stdElapsed, stdRecords, err := benchStdlib(data, cfg.Delimiter[0], benchIterations)
			if err != nil {
				logger.Warnw("encoding/csv comparison failed", "error", err)
				return nil
			}
			report("encoding/csv", data, benchIterations, stdRecords, stdElapsed)
		}
		return nil
	},
}

func benchFluxcsv(data []byte, cfg fluxcsv.Config, iterations int) (time.Duration, int64, error) {
	var records int64
	start := time.Now()
	for i := 0; i < iterations; i++ {
		r, err := fluxcsv.NewReader(bytes.NewReader(data), cfg)
		if err != nil {
			return 0, 0, errors.Wrap(err, "creating reader")
		}
		for {
			ok, err := r.NextRecord()
			if err != nil {
				return 0, 0, errors.Wrap(err, "reading record")
			}
			if !ok {
				break
			}
			records++
			for f := 0; f < r.FieldCount(); f++ {
				_ = r.Field(f)
			}
		}
	}
	return time.Since(start), records, nil
}

func benchStdlib(data []byte, delimiter byte, iterations int) (time.Duration, int64, error) {
	var records int64
	start := time.Now()
	for i := 0; i < iterations; i++ {
		cr := stdcsv.NewReader(bytes.NewReader(data))
		cr.Comma = rune(delimiter)
		cr.FieldsPerRecord = -1
		cr.LazyQuotes = true
		for {
			if _, err := cr.Read(); err != nil {
				if err == io.EOF {
					break
				}
				return 0, 0, err
			}
			records++
		}
	}
	return time.Since(start), records, nil
}

func report(name string, data []byte, iterations int, records int64, elapsed time.Duration) {
	totalBytes := int64(len(data)) * int64(iterations)
	mbPerSec := float64(totalBytes) / elapsed.Seconds() / (1 << 20)
	logger.Infow("benchmark finished",
		"parser", name,
		"iterations", iterations,
		"records", records,
		"elapsed", elapsed,
		"mb_per_sec", mbPerSec,
	)
	fmt.Printf("%-14s %8.2f MB/s  (%d records in %v)\n", name, mbPerSec, records, elapsed)
}

func init() {
	registerReaderFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchIterations, "iterations", 10, "number of times to parse the file")
	rootCmd.AddCommand(benchCmd)
}
