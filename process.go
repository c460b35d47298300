package fluxcsv

import "unsafe"

// processField runs the field processing pipeline: outer trim, quote
// strip, inner trim, line-break check, escape unfold. It is the only
// place bad-data conditions are reported, since scan.go only latches raw
// structure and never interprets it.
func (r *Reader) processField(i int) string {
	d := r.fieldIdx.at(i)
	fl := r.fieldFlags[i]

	start := r.buf.rowStart + d.start
	raw := r.buf.slice(start, start+d.length)

	lo, hi := 0, len(raw)
	if r.config.Trim == TrimOutside || r.config.Trim == TrimBoth {
		lo, hi = trimRange(raw, lo, hi, r.config.Whitespace)
	}
	trimmed := raw[lo:hi]

	if fl.strayQuote {
		r.reportBadData(i, BadDataStrayQuote)
	}
	if !fl.quoted {
		return bytesToString(trimmed)
	}

	closeAt := fl.closeLen - lo
	if fl.unterminated || closeAt < 1 || closeAt > len(trimmed) || trimmed[0] != r.config.Quote {
		// No valid opening+closing pair survived (end of stream reached
		// still inside quotes, or the only content was the opening
		// quote itself). Best effort: drop the leading quote if trimming
		// left it in place and hand back everything else verbatim.
		r.reportBadData(i, BadDataUnterminatedQuote)
		if len(trimmed) > 0 && trimmed[0] == r.config.Quote {
			return bytesToString(trimmed[1:])
		}
		return bytesToString(trimmed)
	}

	content := trimmed[1 : closeAt-1]
	garbage := trimmed[closeAt:]
	if len(garbage) > 0 {
		r.reportBadData(i, BadDataUnterminatedQuote)
	}

	if r.config.Trim == TrimInside || r.config.Trim == TrimBoth {
		cl, ch := trimRange(content, 0, len(content), r.config.Whitespace)
		content = content[cl:ch]
	}

	if r.config.LineBreakInQuotedFieldIsBadData && containsLineBreak(content) {
		r.reportBadData(i, BadDataLineBreakInQuotedField)
	}

	// Only the doubled-quote scheme guarantees quoteCount==2 means "no
	// escape sequences present"; under a distinct escape character, the
	// state machine never counts an escaped quote, so the only reliable
	// signal is whether the escape byte occurs in content at all.
	needsUnfold := len(garbage) > 0
	if r.config.Escape == r.config.Quote {
		needsUnfold = needsUnfold || d.quoteCount != 2
	} else {
		needsUnfold = needsUnfold || containsByte(content, r.config.Escape)
	}
	if !needsUnfold {
		return bytesToString(content)
	}

	unfolded := r.unfoldEscapes(i, content)
	if len(garbage) > 0 {
		unfolded = append(unfolded, garbage...)
	}
	return string(unfolded)
}

// unfoldEscapes walks content looking for Config.Escape, emitting the
// following byte literally when it is the quote and flagging bad data
// otherwise. The result is built in a reusable scratch buffer but always
// returned as a freshly copied string, since unlike the zero-copy paths
// it must outlive the next field or record.
func (r *Reader) unfoldEscapes(field int, content []byte) []byte {
	escape := r.config.Escape
	quote := r.config.Quote
	scratch := r.scratch[:0]

	for i := 0; i < len(content); {
		c := content[i]
		if c != escape {
			scratch = append(scratch, c)
			i++
			continue
		}
		if i+1 >= len(content) {
			r.reportBadData(field, BadDataBareEscape)
			scratch = append(scratch, c)
			i++
			continue
		}
		next := content[i+1]
		if next != quote {
			r.reportBadData(field, BadDataBareEscape)
			scratch = append(scratch, c, next)
			i += 2
			continue
		}
		scratch = append(scratch, quote)
		i += 2
	}

	r.scratch = scratch
	return scratch
}

func (r *Reader) reportBadData(field int, kind BadDataKind) {
	if r.config.OnBadData == nil || r.fieldFlags[field].reported {
		return
	}
	r.fieldFlags[field].reported = true
	r.config.OnBadData(BadDataContext{
		Kind:      kind,
		RawRecord: r.RawRecord(),
		Row:       r.counters.row,
		RawRow:    r.counters.rawRow,
		Config:    r.config,
	})
}

func trimRange(b []byte, lo, hi int, ws WhitespaceSet) (int, int) {
	for lo < hi && ws[b[lo]] {
		lo++
	}
	for hi > lo && ws[b[hi-1]] {
		hi--
	}
	return lo, hi
}

func containsByte(b []byte, c byte) bool {
	for _, v := range b {
		if v == c {
			return true
		}
	}
	return false
}

func containsLineBreak(b []byte) bool {
	for _, c := range b {
		if c == '\r' || c == '\n' {
			return true
		}
	}
	return false
}

func bytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
