package sortedset

import (
	"encoding/binary"
	"fmt"
)

// Entry tags, stored in the lowest bit of every varint.
const (
	tagOffset = 0
	tagRun    = 1
)

// Compressed is an immutable ascending int set stored as run/offset entries.
//
// The input is first cut into spans of consecutive values. Every span becomes
// an offset entry holding gap-1, where gap is the distance from the end of the
// previous span (initially -1) to the span's first value. A span longer than
// one value is followed by a run entry holding length-2, the number of extra
// consecutive values minus one. Each entry is written as the uvarint
// v<<1|tag, so the first seven-bit chunk carries the tag and every byte keeps
// its top bit as the continuation flag.
type Compressed struct {
	data  []byte
	count int
}

// Writer appends ascending values into a Compressed set.
type Writer struct {
	data      []byte
	count     int
	last      int // last value of the previously flushed span
	spanStart int
	spanLen   int
}

// NewWriter returns a Writer with room for roughly sizeHint values.
func NewWriter(sizeHint int) *Writer {
	capacity := 0
	if sizeHint > 0 {
		capacity = sizeHint/2 + 4
	}
	return &Writer{data: make([]byte, 0, capacity), last: -1}
}

// Add appends v, which must be greater than every value added before.
func (w *Writer) Add(v int) {
	if w.spanLen > 0 {
		end := w.spanStart + w.spanLen - 1
		if debugChecks && v <= end {
			panic(fmt.Sprintf("sortedset: value %d added after %d", v, end))
		}
		if v == end+1 {
			w.spanLen++
			w.count++
			return
		}
		w.flush()
	} else if debugChecks && v <= w.last {
		panic(fmt.Sprintf("sortedset: value %d added after %d", v, w.last))
	}
	w.spanStart = v
	w.spanLen = 1
	w.count++
}

func (w *Writer) flush() {
	if w.spanLen == 0 {
		return
	}
	gap := uint64(w.spanStart - (w.last + 1))
	w.data = binary.AppendUvarint(w.data, gap<<1|tagOffset)
	if w.spanLen > 1 {
		w.data = binary.AppendUvarint(w.data, uint64(w.spanLen-2)<<1|tagRun)
	}
	w.last = w.spanStart + w.spanLen - 1
	w.spanLen = 0
}

// Finish flushes the pending span and returns the set. The Writer must not be
// used afterwards.
func (w *Writer) Finish() *Compressed {
	w.flush()
	data := w.data
	if cap(data)-len(data) > len(data)/4 {
		data = append(make([]byte, 0, len(data)), data...)
	}
	c := &Compressed{data: data, count: w.count}
	w.data = nil
	return c
}

// Compress drains it into a new Compressed set.
func Compress(it Iterator) *Compressed {
	w := NewWriter(0)
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		w.Add(v)
	}
	return w.Finish()
}

// FromSlice compresses an ascending, duplicate-free slice.
func FromSlice(values []int) *Compressed {
	w := NewWriter(len(values))
	for _, v := range values {
		w.Add(v)
	}
	return w.Finish()
}

// Len returns the number of values in the set.
func (c *Compressed) Len() int { return c.count }

// Size returns the encoded size in bytes.
func (c *Compressed) Size() int { return len(c.data) }

// Iter decodes the set from the start.
func (c *Compressed) Iter() Iterator {
	return &compressedIterator{data: c.data, last: -1}
}

func (c *Compressed) String() string {
	return fmt.Sprintf("Compressed(len=%d, bytes=%d)", c.count, len(c.data))
}

type compressedIterator struct {
	data    []byte
	pos     int
	last    int
	pending int // values still owed by the current run entry
}

func (it *compressedIterator) Next() (int, bool) {
	if it.pending > 0 {
		it.pending--
		it.last++
		return it.last, true
	}
	if it.pos >= len(it.data) {
		return 0, false
	}
	x, n := binary.Uvarint(it.data[it.pos:])
	if n <= 0 {
		panic("sortedset: corrupt varint stream")
	}
	it.pos += n
	v := x >> 1
	if x&1 == tagRun {
		it.pending = int(v)
		it.last++
		return it.last, true
	}
	it.last += 1 + int(v)
	return it.last, true
}
