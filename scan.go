package fluxcsv

// recordStatus reports what scanRecord produced on one attempt.
type recordStatus int

const (
	statusRecord recordStatus = iota
	statusSkipped
	statusEOF
)

// terminatorKind distinguishes the two ways a field scan can end; the
// distinction between CR, LF, and CRLF only matters for raw_row, which is
// updated at the point of recognition, not by the caller.
type terminatorKind int

const (
	terminatorDelimiter terminatorKind = iota
	terminatorRecordEnd
)

// fieldFlags carries the per-field bookkeeping scan.go hands to
// process.go: whether the field opened as quoted, whether a quote
// appeared inside a non-quoted field, whether a quoted field never found
// its closing quote, and (when it did) how far into the raw slice that
// closing quote reaches.
type fieldFlags struct {
	quoted       bool
	strayQuote   bool
	unterminated bool
	closeLen     int

	// reported latches the first OnBadData invocation for this field, so
	// repeated Field calls on the same malformed field fire the callback
	// once, not once per access.
	reported bool
}

// scanRecord makes one attempt at producing a record: start a new record,
// check for a comment or blank line, otherwise scan fields until a line
// terminator or end of stream.
func (r *Reader) scanRecord() (recordStatus, error) {
	r.buf.startRecord()
	r.fieldIdx.clear()
	r.fieldFlags = r.fieldFlags[:0]

	ok, err := r.ensure(nil)
	if err != nil {
		return statusEOF, err
	}
	if !ok {
		return statusEOF, nil
	}

	first := r.peek()
	if r.config.AllowComments && r.config.Comment != 0 && first == r.config.Comment {
		if err := r.skipCommentLine(); err != nil {
			return statusEOF, err
		}
		return statusSkipped, nil
	}
	if r.config.IgnoreBlankLines && (first == '\r' || first == '\n') {
		if err := r.skipBlankLine(); err != nil {
			return statusEOF, err
		}
		return statusSkipped, nil
	}

	if err := r.scanFields(); err != nil {
		return statusEOF, err
	}
	return statusRecord, nil
}

// skipCommentLine consumes bytes through the next line terminator (or
// end of stream) without recording any field.
func (r *Reader) skipCommentLine() error {
	for {
		ok, err := r.ensure(nil)
		if err != nil || !ok {
			return err
		}
		b := r.peek()
		if b == '\r' {
			if err := r.consume(); err != nil {
				return err
			}
			r.counters.recordCR()
			isLF, err := r.peekIsLF(nil)
			if err != nil {
				return err
			}
			if isLF {
				return r.consume()
			}
			return nil
		}
		if b == '\n' {
			if err := r.consume(); err != nil {
				return err
			}
			r.counters.recordBareLF()
			return nil
		}
		if err := r.consume(); err != nil {
			return err
		}
	}
}

// skipBlankLine consumes the single CR, LF, or CRLF that makes up a
// blank line. The caller has already confirmed the next byte is CR or LF.
func (r *Reader) skipBlankLine() error {
	if r.peek() == '\r' {
		if err := r.consume(); err != nil {
			return err
		}
		r.counters.recordCR()
		isLF, err := r.peekIsLF(nil)
		if err != nil {
			return err
		}
		if isLF {
			return r.consume()
		}
		return nil
	}
	if err := r.consume(); err != nil {
		return err
	}
	r.counters.recordBareLF()
	return nil
}

// scanFields implements the InField/InQuotedField/MaybeDelimiter portion
// of the state machine, committing one fieldDescriptor per field until a
// line terminator or end of stream ends the record.
func (r *Reader) scanFields() error {
	fieldStart := r.buf.pos
	for {
		quoted := false
		if r.config.Quote != 0 && !r.config.IgnoreQuotes {
			ok, err := r.ensure(&fieldStart)
			if err != nil {
				return err
			}
			if ok && r.peek() == r.config.Quote {
				quoted = true
			}
		}

		var end, quoteCount int
		var fl fieldFlags
		var term terminatorKind
		var err error
		if quoted {
			end, quoteCount, fl, term, err = r.scanQuotedField(&fieldStart)
		} else {
			end, quoteCount, fl, term, err = r.scanUnquotedField(&fieldStart)
		}
		if err != nil {
			return err
		}

		r.fieldIdx.add(r.buf.rowStart, fieldStart, end-fieldStart, quoteCount)
		r.fieldFlags = append(r.fieldFlags, fl)

		if term == terminatorDelimiter {
			fieldStart = r.buf.pos
			continue
		}
		return nil
	}
}

// scanUnquotedField scans a field that did not open with a quote. A quote
// byte encountered mid-field is stray content, flagged but not special.
func (r *Reader) scanUnquotedField(fieldStart *int) (end, quoteCount int, fl fieldFlags, term terminatorKind, err error) {
	r.delim.reset()
	for {
		ok, e := r.ensure(fieldStart)
		if e != nil {
			return 0, 0, fl, 0, e
		}
		if !ok {
			return r.buf.pos, quoteCount, fl, terminatorRecordEnd, nil
		}
		b := r.peek()

		if r.config.Quote != 0 && !r.config.IgnoreQuotes && b == r.config.Quote {
			quoteCount++
			fl.strayQuote = true
			if err = r.consume(); err != nil {
				return 0, 0, fl, 0, err
			}
			continue
		}

		complete, candidate := r.delim.step(b)
		if complete {
			end = r.buf.pos - r.delim.len() + 1
			if err = r.consume(); err != nil {
				return 0, 0, fl, 0, err
			}
			return end, quoteCount, fl, terminatorDelimiter, nil
		}
		if !candidate {
			if b == '\r' {
				end = r.buf.pos
				if err = r.consume(); err != nil {
					return 0, 0, fl, 0, err
				}
				r.counters.recordCR()
				isLF, e2 := r.peekIsLF(fieldStart, &end)
				if e2 != nil {
					return 0, 0, fl, 0, e2
				}
				if isLF {
					if err = r.consume(); err != nil {
						return 0, 0, fl, 0, err
					}
				}
				return end, quoteCount, fl, terminatorRecordEnd, nil
			}
			if b == '\n' {
				end = r.buf.pos
				if err = r.consume(); err != nil {
					return 0, 0, fl, 0, err
				}
				r.counters.recordBareLF()
				return end, quoteCount, fl, terminatorRecordEnd, nil
			}
		}
		if err = r.consume(); err != nil {
			return 0, 0, fl, 0, err
		}
	}
}

// scanQuotedField scans a field that opened with a quote: it consumes the
// opening quote, runs the escape-aware search for the matching close
// (doubled-quote or prefix-escape, per Config.Escape), then hands off to
// scanTrailing for whatever malformed content may follow the close before
// the next delimiter or terminator.
func (r *Reader) scanQuotedField(fieldStart *int) (end, quoteCount int, fl fieldFlags, term terminatorKind, err error) {
	fl.quoted = true
	quote := r.config.Quote
	escape := r.config.Escape
	doubled := escape == quote

	if err = r.consume(); err != nil { // opening quote
		return 0, 0, fl, 0, err
	}
	quoteCount = 1

	for {
		ok, e := r.ensure(fieldStart)
		if e != nil {
			return 0, 0, fl, 0, e
		}
		if !ok {
			fl.unterminated = true
			return r.buf.pos, quoteCount, fl, terminatorRecordEnd, nil
		}
		b := r.peek()

		if !doubled && b == escape {
			if err = r.consume(); err != nil {
				return 0, 0, fl, 0, err
			}
			ok2, e2 := r.ensure(fieldStart)
			if e2 != nil {
				return 0, 0, fl, 0, e2
			}
			if ok2 && r.peek() == quote {
				if err = r.consume(); err != nil {
					return 0, 0, fl, 0, err
				}
			}
			continue
		}

		if b == quote {
			if err = r.consume(); err != nil {
				return 0, 0, fl, 0, err
			}
			quoteCount++
			if doubled {
				ok2, e2 := r.ensure(fieldStart)
				if e2 != nil {
					return 0, 0, fl, 0, e2
				}
				if ok2 && r.peek() == quote {
					if err = r.consume(); err != nil {
						return 0, 0, fl, 0, err
					}
					quoteCount++
					continue
				}
			}
			break
		}

		if b == '\r' {
			if err = r.consume(); err != nil {
				return 0, 0, fl, 0, err
			}
			r.counters.recordCR()
			isLF, e2 := r.peekIsLF(fieldStart)
			if e2 != nil {
				return 0, 0, fl, 0, e2
			}
			if isLF {
				// The LF of an embedded CRLF is content like any other
				// byte, but the pair is a single line terminator.
				if err = r.consume(); err != nil {
					return 0, 0, fl, 0, err
				}
			}
			continue
		}
		if b == '\n' {
			r.counters.recordBareLF()
		}
		if err = r.consume(); err != nil {
			return 0, 0, fl, 0, err
		}
	}

	// closeAbs and *fieldStart are both pre-scanTrailing absolute offsets,
	// so their difference survives any compaction scanTrailing triggers
	// even though scanTrailing itself only rebases r.buf's own state.
	closeAbs := r.buf.pos
	tEnd, term, err := r.scanTrailing(fieldStart, &closeAbs)
	if err != nil {
		return 0, 0, fl, 0, err
	}
	fl.closeLen = closeAbs - *fieldStart
	return tEnd, quoteCount, fl, term, nil
}

// scanTrailing consumes whatever content follows a quoted field's closing
// quote up to the next delimiter or line terminator; such content still
// belongs to the field, it just marks it malformed. fieldStart
// and closeAbs are both absolute offsets the caller still needs after this
// returns, so any compaction-induced shift must be applied to both, not
// just to r.buf's own state.
func (r *Reader) scanTrailing(fieldStart, closeAbs *int) (end int, term terminatorKind, err error) {
	r.delim.reset()
	for {
		ok, e := r.ensure(fieldStart, closeAbs)
		if e != nil {
			return 0, 0, e
		}
		if !ok {
			return r.buf.pos, terminatorRecordEnd, nil
		}
		b := r.peek()

		complete, candidate := r.delim.step(b)
		if complete {
			end = r.buf.pos - r.delim.len() + 1
			if err = r.consume(); err != nil {
				return 0, 0, err
			}
			return end, terminatorDelimiter, nil
		}
		if !candidate {
			if b == '\r' {
				end = r.buf.pos
				if err = r.consume(); err != nil {
					return 0, 0, err
				}
				r.counters.recordCR()
				isLF, e2 := r.peekIsLF(fieldStart, closeAbs, &end)
				if e2 != nil {
					return 0, 0, e2
				}
				if isLF {
					if err = r.consume(); err != nil {
						return 0, 0, err
					}
				}
				return end, terminatorRecordEnd, nil
			}
			if b == '\n' {
				end = r.buf.pos
				if err = r.consume(); err != nil {
					return 0, 0, err
				}
				r.counters.recordBareLF()
				return end, terminatorRecordEnd, nil
			}
		}
		if err = r.consume(); err != nil {
			return 0, 0, err
		}
	}
}
