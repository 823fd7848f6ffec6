package sortedset

import "fmt"

// Intersect yields the values present in both a and b.
func Intersect(a, b Sequence) Sequence {
	return SequenceFunc(func() Iterator {
		return newIntersectIterator(a.Iter(), b.Iter())
	})
}

// IntersectIter intersects two iterators directly.
func IntersectIter(a, b Iterator) Iterator {
	return newIntersectIterator(a, b)
}

type intersectIterator struct {
	a, b   Iterator
	av, bv int
	aok    bool
	bok    bool
}

func newIntersectIterator(a, b Iterator) *intersectIterator {
	it := &intersectIterator{a: a, b: b}
	it.av, it.aok = a.Next()
	it.bv, it.bok = b.Next()
	return it
}

func (it *intersectIterator) Next() (int, bool) {
	for it.aok && it.bok {
		switch {
		case it.av < it.bv:
			it.av, it.aok = it.a.Next()
		case it.bv < it.av:
			it.bv, it.bok = it.b.Next()
		default:
			v := it.av
			it.av, it.aok = it.a.Next()
			it.bv, it.bok = it.b.Next()
			return v, true
		}
	}
	return 0, false
}

// Union yields the values present in a or b.
func Union(a, b Sequence) Sequence {
	return SequenceFunc(func() Iterator {
		it := &unionIterator{a: a.Iter(), b: b.Iter()}
		it.av, it.aok = it.a.Next()
		it.bv, it.bok = it.b.Next()
		return it
	})
}

type unionIterator struct {
	a, b   Iterator
	av, bv int
	aok    bool
	bok    bool
}

func (it *unionIterator) Next() (int, bool) {
	switch {
	case it.aok && it.bok:
		switch {
		case it.av < it.bv:
			v := it.av
			it.av, it.aok = it.a.Next()
			return v, true
		case it.bv < it.av:
			v := it.bv
			it.bv, it.bok = it.b.Next()
			return v, true
		default:
			v := it.av
			it.av, it.aok = it.a.Next()
			it.bv, it.bok = it.b.Next()
			return v, true
		}
	case it.aok:
		v := it.av
		it.av, it.aok = it.a.Next()
		return v, true
	case it.bok:
		v := it.bv
		it.bv, it.bok = it.b.Next()
		return v, true
	}
	return 0, false
}

// Complement yields every value of [from, to) that is not in a.
func Complement(a Sequence, from, to int) Sequence {
	return SequenceFunc(func() Iterator {
		it := &complementIterator{a: a.Iter(), next: from, to: to}
		it.av, it.aok = it.a.Next()
		return it
	})
}

type complementIterator struct {
	a    Iterator
	av   int
	aok  bool
	next int
	to   int
}

func (it *complementIterator) Next() (int, bool) {
	for it.next < it.to {
		for it.aok && it.av < it.next {
			it.av, it.aok = it.a.Next()
		}
		v := it.next
		it.next++
		if it.aok && it.av == v {
			continue
		}
		return v, true
	}
	return 0, false
}

// WithoutSubset yields the values of a that are not in sub. sub must be a
// subset of a; builds with the wordmatch_debug tag panic when it is not.
func WithoutSubset(a, sub Sequence) Sequence {
	return SequenceFunc(func() Iterator {
		it := &withoutIterator{a: a.Iter(), sub: sub.Iter()}
		it.sv, it.sok = it.sub.Next()
		return it
	})
}

type withoutIterator struct {
	a   Iterator
	sub Iterator
	sv  int
	sok bool
}

func (it *withoutIterator) Next() (int, bool) {
	for {
		v, ok := it.a.Next()
		if !ok {
			if debugChecks && it.sok {
				panic(fmt.Sprintf("sortedset: subset value %d not in superset", it.sv))
			}
			return 0, false
		}
		for it.sok && it.sv < v {
			if debugChecks {
				panic(fmt.Sprintf("sortedset: subset value %d not in superset", it.sv))
			}
			it.sv, it.sok = it.sub.Next()
		}
		if it.sok && it.sv == v {
			it.sv, it.sok = it.sub.Next()
			continue
		}
		return v, true
	}
}

// Unique drops adjacent duplicates from a sorted sequence that may repeat
// values.
func Unique(a Sequence) Sequence {
	return SequenceFunc(func() Iterator {
		return UniqueIter(a.Iter())
	})
}

// UniqueIter drops adjacent duplicates from it.
func UniqueIter(it Iterator) Iterator {
	started := false
	prev := 0
	return IteratorFunc(func() (int, bool) {
		for {
			v, ok := it.Next()
			if !ok {
				return 0, false
			}
			if started && v == prev {
				continue
			}
			started = true
			prev = v
			return v, true
		}
	})
}
