/*
Package sortedset holds ascending, duplicate-free integer sequences and the
single-pass set algebra used to combine them.

Every sequence handed around here yields strictly ascending values. An
Iterator is forward-only and single-use; a Sequence hands out a fresh Iterator
on every Iter call, so it can be walked as many times as needed.

The Compressed type stores such a sequence as a stream of tagged varints, see
compressed.go for the layout.
*/
package sortedset

// Iterator yields ascending ints until ok is false.
type Iterator interface {
	Next() (value int, ok bool)
}

// Sequence is a restartable source of ascending ints.
type Sequence interface {
	Iter() Iterator
}

// IteratorFunc adapts a plain function to Iterator.
type IteratorFunc func() (int, bool)

// Next calls f.
func (f IteratorFunc) Next() (int, bool) { return f() }

// SequenceFunc adapts an iterator constructor to Sequence.
type SequenceFunc func() Iterator

// Iter calls f.
func (f SequenceFunc) Iter() Iterator { return f() }

// Slice is a sorted, duplicate-free slice viewed as a Sequence. It is not
// copied; callers must not modify it afterwards.
type Slice []int

// Iter walks the slice from the start.
func (s Slice) Iter() Iterator {
	i := 0
	return IteratorFunc(func() (int, bool) {
		if i >= len(s) {
			return 0, false
		}
		v := s[i]
		i++
		return v, true
	})
}

// Range is the half-open interval [From, To).
type Range struct {
	From, To int
}

// Iter yields From, From+1, ..., To-1.
func (r Range) Iter() Iterator {
	next := r.From
	return IteratorFunc(func() (int, bool) {
		if next >= r.To {
			return 0, false
		}
		v := next
		next++
		return v, true
	})
}

// Len returns the number of values in the range.
func (r Range) Len() int {
	if r.To <= r.From {
		return 0
	}
	return r.To - r.From
}

// Empty yields nothing.
var Empty Sequence = SequenceFunc(func() Iterator {
	return IteratorFunc(func() (int, bool) { return 0, false })
})

// Collect drains seq into a new slice.
func Collect(seq Sequence) []int {
	return AppendTo(nil, seq.Iter())
}

// AppendTo drains it and appends every value to dst.
func AppendTo(dst []int, it Iterator) []int {
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		dst = append(dst, v)
	}
	return dst
}

// Count drains seq and returns how many values it produced.
func Count(seq Sequence) int {
	n := 0
	it := seq.Iter()
	for _, ok := it.Next(); ok; _, ok = it.Next() {
		n++
	}
	return n
}
