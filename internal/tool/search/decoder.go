package search

import "bytes"

// LineDecoder splits an append-only byte stream into newline-terminated records.
// Bytes after the last newline are held back until a later chunk completes them.
// A fragment that is never terminated is never returned.
type LineDecoder struct {
	buf       []byte
	maxRecord int
}

// NewLineDecoder creates a decoder. maxRecord bounds the held-back fragment;
// zero or negative disables the bound.
func NewLineDecoder(maxRecord int) *LineDecoder {
	return &LineDecoder{maxRecord: maxRecord}
}

// Feed appends chunk and returns every record it completed, skipping blank ones.
// Returned slices stay valid after later calls.
// A non-nil error means the pending fragment outgrew the limit; records completed
// by this chunk are still returned alongside it.
func (d *LineDecoder) Feed(chunk []byte) ([][]byte, error) {
	d.buf = append(d.buf, chunk...)

	cut := bytes.LastIndexByte(d.buf, '\n')
	if cut < 0 {
		return nil, d.checkPending()
	}

	complete := d.buf[:cut]
	// Copy the tail so the records below keep sole ownership of the old backing array.
	d.buf = append([]byte(nil), d.buf[cut+1:]...)

	var records [][]byte
	for _, line := range bytes.Split(complete, []byte{'\n'}) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		records = append(records, bytes.TrimRight(line, "\r"))
	}
	return records, d.checkPending()
}

// Pending returns the number of bytes held back waiting for a newline.
func (d *LineDecoder) Pending() int {
	return len(d.buf)
}

func (d *LineDecoder) checkPending() error {
	if d.maxRecord > 0 && len(d.buf) > d.maxRecord {
		return &RecordTooLargeError{Size: len(d.buf), Limit: d.maxRecord}
	}
	return nil
}
