// Package selection describes candidate sets of dictionary indexes.
package selection

import (
	"fmt"

	"github.com/bastiangx/wordmatch/pkg/sortedset"
)

// Kind is the state of a Selection.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindAll
	KindSome
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindAll:
		return "all"
	case KindSome:
		return "some"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Selection is a subset of [0, wordCount). All is never enumerated; Some
// carries an ascending sequence and its exact cardinality.
//
// Selections are values and are never modified after construction. A Some
// selection either owns its compressed storage or borrows a view over storage
// owned elsewhere, see Owned and Borrowed.
type Selection struct {
	kind     Kind
	seq      sortedset.Sequence
	count    int
	borrowed bool
}

// All selects every word of a dictionary holding wordCount words.
func All(wordCount int) Selection {
	return Selection{kind: KindAll, count: wordCount}
}

// Empty selects nothing.
func Empty() Selection {
	return Selection{kind: KindEmpty}
}

// Owned wraps a compressed set that belongs to the new Selection.
func Owned(set *sortedset.Compressed) Selection {
	if set == nil || set.Len() == 0 {
		return Empty()
	}
	return Selection{kind: KindSome, seq: set, count: set.Len()}
}

// Borrowed wraps a sequence owned by someone else. count must be its exact
// length.
func Borrowed(seq sortedset.Sequence, count int) Selection {
	if seq == nil || count == 0 {
		return Empty()
	}
	return Selection{kind: KindSome, seq: seq, count: count, borrowed: true}
}

// Kind reports the selection's state.
func (s Selection) Kind() Kind { return s.kind }

// IsAll reports whether every word is selected.
func (s Selection) IsAll() bool { return s.kind == KindAll }

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool { return s.kind == KindEmpty }

// IsBorrowed reports whether the backing sequence belongs to another value.
func (s Selection) IsBorrowed() bool { return s.borrowed }

// Count returns the cardinality. For All it is the dictionary size.
func (s Selection) Count() int { return s.count }

// Sequence returns the backing sequence of a Some selection. All and Empty
// have no backing sequence and return nil.
func (s Selection) Sequence() sortedset.Sequence {
	if s.kind != KindSome {
		return nil
	}
	return s.seq
}

// Iter walks the selected indexes. All enumerates [0, Count()), which callers
// should avoid on large dictionaries.
func (s Selection) Iter() sortedset.Iterator {
	switch s.kind {
	case KindAll:
		return sortedset.Range{From: 0, To: s.count}.Iter()
	case KindSome:
		return s.seq.Iter()
	}
	return sortedset.Empty.Iter()
}

func (s Selection) String() string {
	if s.kind == KindSome {
		return fmt.Sprintf("some(%d)", s.count)
	}
	return s.kind.String()
}
