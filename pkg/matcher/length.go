package matcher

import (
	"errors"
	"fmt"

	"github.com/bastiangx/wordmatch/pkg/selection"
	"github.com/bastiangx/wordmatch/pkg/sortedset"
)

// ErrInvalidRange is returned for a length range whose minimum exceeds its
// maximum.
var ErrInvalidRange = errors.New("invalid length range")

// LengthMatcher selects words by rune length.
type LengthMatcher struct {
	words   int
	minLen  int
	maxLen  int
	exactly []selection.Selection // length minLen+k
	atLeast []selection.Selection // length >= minLen+k
}

// NewLengthMatcher builds one exact and one lower-bound set per observed
// length, each on its own worker.
func NewLengthMatcher(c *Corpus, parallelism int) *LengthMatcher {
	m := &LengthMatcher{words: c.Len(), minLen: c.MinLen(), maxLen: c.MaxLen()}
	if c.Len() == 0 {
		return m
	}
	lengths := m.maxLen - m.minLen + 1
	m.exactly = make([]selection.Selection, lengths)
	m.atLeast = make([]selection.Selection, lengths)
	m.atLeast[0] = selection.All(c.Len())

	parallelFor(lengths, parallelism, func(k int) {
		want := m.minLen + k
		exact := sortedset.NewWriter(0)
		var longer *sortedset.Writer
		if k > 0 {
			longer = sortedset.NewWriter(0)
		}
		for i := 0; i < c.Len(); i++ {
			n := c.RuneLen(i)
			if n == want {
				exact.Add(i)
			}
			if longer != nil && n >= want {
				longer.Add(i)
			}
		}
		m.exactly[k] = selection.Owned(exact.Finish())
		if longer != nil {
			m.atLeast[k] = selection.Owned(longer.Finish())
		}
	})
	return m
}

// MinLen returns the shortest word length.
func (m *LengthMatcher) MinLen() int { return m.minLen }

// MaxLen returns the longest word length.
func (m *LengthMatcher) MaxLen() int { return m.maxLen }

// Selection returns the words whose length lies in [lo, hi]. hi may be
// query.Unbounded.
func (m *LengthMatcher) Selection(lo, hi int) (selection.Selection, error) {
	switch {
	case lo > hi:
		return selection.Empty(), fmt.Errorf("length %d..%d: %w", lo, hi, ErrInvalidRange)
	case m.words == 0:
		return selection.Empty(), nil
	case lo == hi:
		return m.exact(lo), nil
	case lo > m.maxLen || hi < m.minLen:
		return selection.Empty(), nil
	case lo <= m.minLen && hi >= m.maxLen:
		return selection.All(m.words), nil
	case hi >= m.maxLen:
		return m.longer(lo), nil
	case lo <= m.minLen:
		return selection.Complement(m.longer(hi+1), 0, m.words), nil
	case hi == lo+1:
		// two buckets are smaller than walking atLeast(lo)
		return selection.Union(m.exact(lo), m.exact(hi)), nil
	}
	return selection.WithoutSubset(m.longer(lo), m.longer(hi+1)), nil
}

func (m *LengthMatcher) exact(n int) selection.Selection {
	if n < m.minLen || n > m.maxLen {
		return selection.Empty()
	}
	return m.exactly[n-m.minLen]
}

// longer returns the words at least n long.
func (m *LengthMatcher) longer(n int) selection.Selection {
	switch {
	case n <= m.minLen:
		return selection.All(m.words)
	case n > m.maxLen:
		return selection.Empty()
	}
	return m.atLeast[n-m.minLen]
}
