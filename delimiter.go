package fluxcsv

// delimiterMatcher implements Knuth-Morris-Pratt matching of a (possibly
// multi-byte) delimiter against the input stream, so a false start on a
// multi-character delimiter costs no more than the delimiter's own
// length to recover from, with no backtracking over the input.
type delimiterMatcher struct {
	pattern []byte
	failure []int
	matched int
}

func newDelimiterMatcher(delim string) *delimiterMatcher {
	m := &delimiterMatcher{pattern: []byte(delim)}
	m.failure = kmpFailure(m.pattern)
	return m
}

func kmpFailure(pattern []byte) []int {
	failure := make([]int, len(pattern))
	k := 0
	for i := 1; i < len(pattern); i++ {
		for k > 0 && pattern[i] != pattern[k] {
			k = failure[k-1]
		}
		if pattern[i] == pattern[k] {
			k++
		}
		failure[i] = k
	}
	return failure
}

// reset clears any in-progress match. Called at the start of each field.
func (m *delimiterMatcher) reset() { m.matched = 0 }

// step feeds one byte to the matcher.
//
// complete reports that b was the delimiter's final byte: the caller
// should treat everything since the match began as the delimiter and cut
// the field there.
//
// candidate reports that b extended (or started) a pending match and so
// is not yet available to be reinterpreted as CR, LF, or plain content.
// False-match recovery falls out for free here because a mismatch never
// un-consumes a byte, it only resets the internal match length via the
// failure function; the scan position always moves forward by exactly
// one byte per call.
func (m *delimiterMatcher) step(b byte) (complete, candidate bool) {
	for m.matched > 0 && b != m.pattern[m.matched] {
		m.matched = m.failure[m.matched-1]
	}
	if b == m.pattern[m.matched] {
		m.matched++
	}
	if m.matched == len(m.pattern) {
		m.matched = 0
		return true, true
	}
	return false, m.matched > 0
}

func (m *delimiterMatcher) len() int { return len(m.pattern) }
