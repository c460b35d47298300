package fluxcsv

import "unicode/utf8"

// counters is the position bookkeeping maintained in lockstep with the
// state machine. charCount advances once per code unit (one byte, since
// fluxcsv treats a byte as the code unit); row and rawRow track logical
// and physical lines; byteCount, when enabled, is the size the input
// would occupy under ByteEncoding.
type counters struct {
	charCount int64
	byteCount int64
	row       int64
	rawRow    int64

	countBytes   bool
	byteEncoding ByteCountEncoding

	// runeBuf accumulates pending UTF-8 continuation bytes so byte
	// counting happens once per decoded rune instead of once per raw
	// byte, matching what a re-encoding pass would actually charge.
	runeBuf [utf8.UTFMax]byte
	runeLen int
}

func newCounters(enc ByteCountEncoding, countBytes bool) *counters {
	return &counters{byteEncoding: enc, countBytes: countBytes}
}

// consumeByte records one code unit having been read from the source.
func (c *counters) consumeByte(b byte) error {
	c.charCount++
	if !c.countBytes {
		return nil
	}
	c.runeBuf[c.runeLen] = b
	c.runeLen++
	// An incomplete but still valid prefix waits for its next byte.
	for c.runeLen > 0 && utf8.FullRune(c.runeBuf[:c.runeLen]) {
		r, size := utf8.DecodeRune(c.runeBuf[:c.runeLen])
		if r == utf8.RuneError && size <= 1 {
			if err := c.flushInvalidByte(); err != nil {
				return err
			}
			continue
		}
		n, err := c.byteEncoding.RuneByteLen(r)
		if err != nil {
			return err
		}
		c.byteCount += int64(n)
		copy(c.runeBuf[:], c.runeBuf[size:c.runeLen])
		c.runeLen -= size
	}
	return nil
}

// flushInvalidByte charges the oldest buffered byte as a standalone code
// unit and shifts the rest down, so malformed UTF-8 never stalls byte
// counting or diverges it from char_count.
func (c *counters) flushInvalidByte() error {
	n, err := c.byteEncoding.RuneByteLen(rune(c.runeBuf[0]))
	if err != nil {
		return err
	}
	c.byteCount += int64(n)
	copy(c.runeBuf[:], c.runeBuf[1:c.runeLen])
	c.runeLen--
	return nil
}

// finish flushes any bytes still buffered as an incomplete rune at end
// of stream.
func (c *counters) finish() error {
	for c.runeLen > 0 {
		if err := c.flushInvalidByte(); err != nil {
			return err
		}
	}
	return nil
}

func (c *counters) recordCR()     { c.rawRow++ }
func (c *counters) recordBareLF() { c.rawRow++ }
func (c *counters) recordRow()    { c.row++ }
