package query

import (
	"iter"
	"unicode/utf8"
)

// Enumerate returns every literal string the query expands to. The sequence
// is lazy and deterministic: an optional is first left out, then included,
// and set characters are tried in their declared order. Duplicates are
// possible, e.g. for "a{a}{a}".
func (q *Query) Enumerate() (iter.Seq[string], error) {
	if !q.FiniteCombinations() {
		return nil, ErrNotFinite
	}
	return func(yield func(string) bool) {
		buf := make([]byte, 0, 32)
		q.expand(0, buf, yield)
	}, nil
}

func (q *Query) expand(i int, buf []byte, yield func(string) bool) bool {
	if i == len(q.tokens) {
		return yield(string(buf))
	}
	t := q.tokens[i]
	switch t.Kind {
	case KindLiteral:
		return q.expand(i+1, append(buf, t.Text...), yield)
	case KindCharSet:
		for _, r := range t.Text {
			if !q.expand(i+1, utf8.AppendRune(buf, r), yield) {
				return false
			}
		}
		return true
	case KindOptional:
		if !q.expand(i+1, buf, yield) {
			return false
		}
		return q.expand(i+1, append(buf, t.Text...), yield)
	}
	// placeholders never reach here on a finite query
	return true
}

// AnchoredSubstring is a maximal literal run of a query together with the
// range of distances it can have from either edge of a matching word.
// LeftMin/LeftMax bound the number of characters before the run,
// RightMin/RightMax the number after it. A max of Unbounded means an AnyRun
// lies between the run and that edge.
type AnchoredSubstring struct {
	Text     string
	LeftMin  int
	LeftMax  int
	RightMin int
	RightMax int
}

// LeftFixed reports whether the run always starts at the same position.
func (s AnchoredSubstring) LeftFixed() bool { return s.LeftMin == s.LeftMax }

// RightFixed reports whether the run always ends at the same distance from
// the end of the word.
func (s AnchoredSubstring) RightFixed() bool { return s.RightMin == s.RightMax }

type span struct{ min, max int }

// Substrings returns the anchored literal runs of the query, left to right.
func (q *Query) Substrings() []AnchoredSubstring {
	n := len(q.tokens)
	left := make([]span, 0, q.counts[KindLiteral])
	right := make([]span, 0, q.counts[KindLiteral])

	var pos span
	for i := 0; i < n; i++ {
		if t := q.tokens[i]; t.Kind == KindLiteral && t.Text != "" {
			left = append(left, pos)
		}
		pos = advance(pos, q.tokens[i])
	}
	pos = span{}
	for i := n - 1; i >= 0; i-- {
		if t := q.tokens[i]; t.Kind == KindLiteral && t.Text != "" {
			right = append(right, pos)
		}
		pos = advance(pos, q.tokens[i])
	}

	runs := make([]AnchoredSubstring, 0, len(left))
	k := 0
	for _, t := range q.tokens {
		if t.Kind != KindLiteral || t.Text == "" {
			continue
		}
		l, r := left[k], right[len(right)-1-k]
		runs = append(runs, AnchoredSubstring{
			Text:     t.Text,
			LeftMin:  l.min,
			LeftMax:  l.max,
			RightMin: r.min,
			RightMax: r.max,
		})
		k++
	}
	return runs
}

func advance(p span, t Token) span {
	switch t.Kind {
	case KindLiteral:
		n := utf8.RuneCountInString(t.Text)
		return span{satAdd(p.min, n), satAdd(p.max, n)}
	case KindAnyChar, KindCharSet:
		return span{satAdd(p.min, 1), satAdd(p.max, 1)}
	case KindAnyRun:
		return span{p.min, Unbounded}
	case KindOptional:
		return span{p.min, satAdd(p.max, utf8.RuneCountInString(t.Text))}
	}
	return p
}
