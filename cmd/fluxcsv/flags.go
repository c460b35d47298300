package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fluxcsv/fluxcsv"
)

// readerOpts holds the reader flags shared by the parse, validate, info,
// and bench subcommands. Only one subcommand runs per invocation, so a single
// instance is shared the same way cobra shares its flag variables.
type readerOpts struct {
	delimiter    string
	quote        string
	escape       string
	comment      string
	skipBlank    bool
	ignoreQuotes bool
	trim         string
	bufferSize   int
}

var opts readerOpts

func registerReaderFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&opts.delimiter, "delimiter", "d", ",", "field delimiter; may be more than one character")
	f.StringVarP(&opts.quote, "quote", "q", "\"", "quote character; empty keeps the default double quote (see --ignore-quotes)")
	f.StringVarP(&opts.escape, "escape", "e", "", "escape character inside quoted fields; defaults to the quote")
	f.StringVarP(&opts.comment, "comment", "c", "", "comment marker; lines starting with it are skipped")
	f.BoolVar(&opts.skipBlank, "skip-blank", false, "skip blank lines instead of emitting empty records")
	f.BoolVar(&opts.ignoreQuotes, "ignore-quotes", false, "treat quote characters as ordinary content")
	f.StringVar(&opts.trim, "trim", "none", "whitespace trimming: none, outside, inside, or both")
	f.IntVar(&opts.bufferSize, "buffer-size", 0, "initial working buffer size in bytes (0 = default)")
}

// config translates the flag values into a fluxcsv.Config. Flag-shape
// problems are reported here; character-level validity is left to
// NewReader's own validation.
func (o readerOpts) config() (fluxcsv.Config, error) {
	cfg := fluxcsv.DefaultConfig()
	cfg.Delimiter = o.delimiter
	cfg.InitialBufferSize = o.bufferSize
	cfg.IgnoreBlankLines = o.skipBlank

	if o.ignoreQuotes {
		cfg.IgnoreQuotes = true
		cfg.Quote = 0
	} else if o.quote != "" {
		if len(o.quote) != 1 {
			return cfg, errors.Errorf("quote must be a single character, got %q", o.quote)
		}
		cfg.Quote = o.quote[0]
	}

	if o.escape != "" {
		if len(o.escape) != 1 {
			return cfg, errors.Errorf("escape must be a single character, got %q", o.escape)
		}
		cfg.Escape = o.escape[0]
	}

	if o.comment != "" {
		if len(o.comment) != 1 {
			return cfg, errors.Errorf("comment marker must be a single character, got %q", o.comment)
		}
		cfg.Comment = o.comment[0]
		cfg.AllowComments = true
	}

	switch o.trim {
	case "", "none":
		cfg.Trim = fluxcsv.TrimNone
	case "outside":
		cfg.Trim = fluxcsv.TrimOutside
	case "inside":
		cfg.Trim = fluxcsv.TrimInside
	case "both":
		cfg.Trim = fluxcsv.TrimBoth
	default:
		return cfg, errors.Errorf("unknown trim mode %q", o.trim)
	}

	return cfg, nil
}
