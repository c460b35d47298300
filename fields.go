package fluxcsv

// fieldDescriptor locates one field: start is relative to the current
// record's start in the buffer, so descriptors stay valid across
// in-buffer compaction (which rebases the record start to zero and
// shifts every absolute offset down by the same amount).
type fieldDescriptor struct {
	start      int
	length     int
	quoteCount int
}

func (d fieldDescriptor) wellFormedQuoted() bool {
	return d.quoteCount > 0 && d.quoteCount%2 == 0
}

// fieldIndex is a growable array of field descriptors, doubled on
// overflow, cleared (not reallocated) between records.
type fieldIndex struct {
	descriptors []fieldDescriptor
	n           int
}

func newFieldIndex() *fieldIndex {
	return &fieldIndex{descriptors: make([]fieldDescriptor, 8)}
}

// clear resets the count without releasing capacity, so the same
// backing array is reused record after record.
func (f *fieldIndex) clear() { f.n = 0 }

// add records a field whose absolute start in the buffer was startAbs,
// rebasing it to rowStart so it survives a later compaction.
func (f *fieldIndex) add(rowStart, startAbs, length, quoteCount int) {
	if f.n == len(f.descriptors) {
		grown := make([]fieldDescriptor, len(f.descriptors)*2)
		copy(grown, f.descriptors)
		f.descriptors = grown
	}
	f.descriptors[f.n] = fieldDescriptor{
		start:      startAbs - rowStart,
		length:     length,
		quoteCount: quoteCount,
	}
	f.n++
}

func (f *fieldIndex) len() int { return f.n }

func (f *fieldIndex) at(i int) fieldDescriptor { return f.descriptors[i] }
