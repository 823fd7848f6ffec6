package selection

import "github.com/bastiangx/wordmatch/pkg/sortedset"

// Intersect selects the indexes present in both a and b. Two Some operands
// are merged into an owned compressed set so that the result has an exact
// count.
func Intersect(a, b Selection) Selection {
	switch {
	case a.IsEmpty() || b.IsEmpty():
		return Empty()
	case a.IsAll():
		return b
	case b.IsAll():
		return a
	}
	return Owned(sortedset.Compress(sortedset.IntersectIter(a.seq.Iter(), b.seq.Iter())))
}

// Union selects the indexes present in a or b.
func Union(a, b Selection) Selection {
	switch {
	case a.IsAll():
		return a
	case b.IsAll():
		return b
	case a.IsEmpty():
		return b
	case b.IsEmpty():
		return a
	}
	return Owned(sortedset.Compress(sortedset.Union(a.seq, b.seq).Iter()))
}

// Complement selects every index of [from, to) missing from s. Every index of
// s must lie inside [from, to), and for All, from must be 0 and to the
// dictionary size.
func Complement(s Selection, from, to int) Selection {
	size := to - from
	if size <= 0 {
		return Empty()
	}
	switch s.kind {
	case KindAll:
		return Empty()
	case KindEmpty:
		if from == 0 {
			return All(to)
		}
		return Borrowed(sortedset.Range{From: from, To: to}, size)
	}
	return Borrowed(sortedset.Complement(s.seq, from, to), size-s.count)
}

// WithoutSubset removes sub from s. sub must be a subset of s.
func WithoutSubset(s, sub Selection) Selection {
	switch {
	case sub.IsEmpty():
		return s
	case sub.IsAll(), s.IsEmpty():
		return Empty()
	case s.IsAll():
		return Complement(sub, 0, s.count)
	}
	return Borrowed(sortedset.WithoutSubset(s.seq, sub.seq), s.count-sub.count)
}
