// Package fluxcsv is a high-performance streaming parser for delimited text.
//
// It implements the record tokenizer and field-processing pipeline that a
// data-ingestion front end embeds: a single-pass state machine that turns a
// streaming byte source into a sequence of records, each a sequence of
// fields, tolerant of long records, quoted fields with embedded newlines,
// multi-character delimiters, and configurable malformed-data handling.
//
// # Features
//
//   - Streaming reader with a growable working buffer and zero-copy field
//     views; no record is fully materialized until a caller asks for it.
//   - Multi-character delimiters matched without backtracking past an
//     uncommitted candidate.
//   - Configurable quote, escape, and comment characters, trim modes, and
//     blank-line/comment skipping.
//   - A bad-data callback invoked at well-defined field-processing
//     boundaries instead of aborting the parse outright.
//   - Optional byte counting against a pluggable target encoding, in
//     addition to character and row counters.
//
// # Non-goals
//
// Schema inference, random access over already-parsed records,
// multi-threaded parsing of a single input, and rewound reads are out of
// scope; a Reader is a forward-only, single-threaded transformer.
//
// The object-mapping layer (header-to-struct binding), file I/O, and
// encoding detection are likewise external concerns: fluxcsv consumes an
// io.Reader and produces fields, nothing more.
package fluxcsv
