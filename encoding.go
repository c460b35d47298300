package fluxcsv

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

// ByteCountEncoding reports how many bytes a single decoded rune would
// occupy under some target encoding. It backs Config.CountBytes: byte_count
// lets a caller learn the size an already-streamed record would take if
// transcoded, without a second pass over the input.
type ByteCountEncoding interface {
	RuneByteLen(r rune) (int, error)
}

type utf8ByteCountEncoding struct{}

func (utf8ByteCountEncoding) RuneByteLen(r rune) (int, error) {
	return utf8.RuneLen(r), nil
}

// UTF8Encoding counts bytes as UTF-8 would encode them. For a byte-oriented
// source this makes byte_count track char_count exactly; it exists for API
// symmetry with sources whose code unit isn't already a single byte.
var UTF8Encoding ByteCountEncoding = utf8ByteCountEncoding{}

type asciiByteCountEncoding struct{}

func (asciiByteCountEncoding) RuneByteLen(r rune) (int, error) {
	if r > 0x7F {
		return 0, fmt.Errorf("fluxcsv: rune %q is outside ASCII", r)
	}
	return 1, nil
}

// ASCIIEncoding rejects any rune outside the 7-bit ASCII range, surfacing
// the failure as a ParseError from NextRecord rather than silently
// widening the count.
var ASCIIEncoding ByteCountEncoding = asciiByteCountEncoding{}

// xtextByteCountEncoding adapts a golang.org/x/text/encoding.Encoding, the
// way dabiaoge-csv2dbf transcodes CSV text between GBK/Shift-JIS and UTF-8
// before writing it back out. Re-encoding one rune at a time is wasteful
// for a hot path but byte counting is opt-in and already off the fast
// path (see counters.go).
type xtextByteCountEncoding struct {
	enc *encoding.Encoder
}

func newXTextEncoding(e encoding.Encoding) ByteCountEncoding {
	return &xtextByteCountEncoding{enc: e.NewEncoder()}
}

func (x *xtextByteCountEncoding) RuneByteLen(r rune) (int, error) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	out, err := x.enc.Bytes(buf[:n])
	if err != nil {
		return 0, fmt.Errorf("fluxcsv: rune %q has no representation in target encoding: %w", r, err)
	}
	return len(out), nil
}

// Windows1252Encoding counts bytes as they would occupy in Windows-1252 /
// ISO-8859-1, a common legacy export target for Latin-script CSV data.
var Windows1252Encoding ByteCountEncoding = newXTextEncoding(charmap.Windows1252)

// ShiftJISEncoding counts bytes as they would occupy in Shift-JIS, a
// common legacy export target for Japanese CSV data.
var ShiftJISEncoding ByteCountEncoding = newXTextEncoding(japanese.ShiftJIS)
