package fluxcsv

import (
	"io"
	"strings"
)

// Reader is a streaming, single-pass parser: a growable compacting
// buffer over a byte source, a growable field index, the scanning state
// machine, the field processor, and position counters. A Reader is not
// safe for concurrent use.
type Reader struct {
	config Config
	src    io.Reader

	buf        *charBuffer
	fieldIdx   *fieldIndex
	fieldFlags []fieldFlags
	delim      *delimiterMatcher
	counters   *counters

	scratch []byte
	closed  bool
}

// NewReader constructs a Reader over src using cfg, filling in defaults
// and validating the result. Zero-value fields (see Config and
// DefaultConfig) resolve to the RFC-4180-ish defaults.
func NewReader(src io.Reader, cfg Config) (*Reader, error) {
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Reader{
		config:   cfg,
		src:      src,
		buf:      newCharBuffer(src, cfg.InitialBufferSize),
		fieldIdx: newFieldIndex(),
		delim:    newDelimiterMatcher(cfg.Delimiter),
		counters: newCounters(cfg.ByteEncoding, cfg.CountBytes),
	}, nil
}

// ensure guarantees the next byte is available, rebasing every offset in
// holders (each an in-progress absolute offset not yet committed to the
// field index) if the buffer had to compact to make room. Pass no holders
// when the caller tracks no such offset.
func (r *Reader) ensure(holders ...*int) (bool, error) {
	ok, shifted, err := r.buf.ensureNextChar()
	if err != nil {
		return false, &ParseError{Row: r.counters.row, RawRow: r.counters.rawRow, Err: err}
	}
	if shifted > 0 {
		for _, h := range holders {
			if h != nil {
				*h -= shifted
			}
		}
	}
	return ok, nil
}

func (r *Reader) peek() byte { return r.buf.at(r.buf.pos) }

func (r *Reader) consume() error {
	b := r.buf.at(r.buf.pos)
	r.buf.consume()
	if err := r.counters.consumeByte(b); err != nil {
		return &ParseError{Row: r.counters.row, RawRow: r.counters.rawRow, Err: err}
	}
	return nil
}

// peekIsLF reports whether the next byte, if any, is '\n', without
// consuming it. Used after a bare CR to detect CRLF.
func (r *Reader) peekIsLF(holders ...*int) (bool, error) {
	ok, err := r.ensure(holders...)
	if err != nil || !ok {
		return false, err
	}
	return r.peek() == '\n', nil
}

// NextRecord advances to the next record, skipping comment and blank
// lines transparently. It reports false, nil at end of stream.
func (r *Reader) NextRecord() (bool, error) {
	if r.closed {
		return false, ErrClosed
	}
	for {
		status, err := r.scanRecord()
		if err != nil {
			return false, err
		}
		switch status {
		case statusEOF:
			return false, nil
		case statusSkipped:
			continue
		default:
			r.counters.recordRow()
			return true, nil
		}
	}
}

// FieldCount reports the number of fields in the current record.
func (r *Reader) FieldCount() int { return r.fieldIdx.len() }

// FieldRaw returns a zero-copy view of field i exactly as it appeared in
// the source, including any quotes, escape markers, and surrounding
// whitespace. The view is borrowed: it is invalidated by the next call to
// NextRecord.
func (r *Reader) FieldRaw(i int) []byte {
	d := r.fieldIdx.at(i)
	start := r.buf.rowStart + d.start
	return r.buf.slice(start, start+d.length)
}

// Field returns field i after the full processing pipeline: outer trim,
// quote strip, inner trim, line-break check, escape unfold. When no
// unescaping was needed the string shares memory with the working buffer,
// so it is only valid until the next call to NextRecord.
func (r *Reader) Field(i int) string {
	return r.processField(i)
}

// Record materializes every field of the current record as freshly
// allocated strings that stay valid after later NextRecord calls. Prefer
// Field when only some fields are needed.
func (r *Reader) Record() []string {
	n := r.fieldIdx.len()
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = strings.Clone(r.Field(i))
	}
	return out
}

// RawRecord returns a zero-copy view of the entire current record,
// including its line terminator but not any preceding skipped comment or
// blank lines. The view is borrowed the same way FieldRaw's is.
func (r *Reader) RawRecord() []byte {
	return r.buf.slice(r.buf.rowStart, r.buf.pos)
}

// Row returns the number of records emitted so far, the current one
// included.
func (r *Reader) Row() int64 { return r.counters.row }

// RawRow returns the number of physical lines consumed so far, counting
// every CR, bare LF, and CRLF including those inside quoted fields.
func (r *Reader) RawRow() int64 { return r.counters.rawRow }

// CharCount returns the number of code units (bytes) consumed so far.
func (r *Reader) CharCount() int64 { return r.counters.charCount }

// ByteCount returns the number of bytes the consumed input would occupy
// under Config.ByteEncoding. It is always zero unless Config.CountBytes
// was set.
func (r *Reader) ByteCount() int64 { return r.counters.byteCount }

// Close finalizes counters and, unless Config.LeaveSourceOpen is set,
// closes the source if it implements io.Closer. Close is idempotent.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if err := r.counters.finish(); err != nil {
		return err
	}
	if !r.config.LeaveSourceOpen {
		if c, ok := r.src.(io.Closer); ok {
			return c.Close()
		}
	}
	return nil
}
