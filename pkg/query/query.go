/*
Package query models wildcard patterns as token streams.

A pattern is made of five token kinds:

	abc    Literal, matched verbatim
	?      AnyChar, exactly one character
	*      AnyRun, any number of characters
	[abc]  CharSet, one character out of the set
	{abc}  Optional, the text or nothing

A Query wraps a token stream and precomputes the statistics the retriever
plans with: the shortest and longest word it can match, how many distinct
literal strings it expands to, and how many tokens of each kind it holds.
Lengths count runes. Statistics saturate at Unbounded.

Queries are usually built with Parse or a Builder, both of which canonicalize
the stream. New accepts any structurally valid stream as is.
*/
package query

import (
	"errors"
	"math"
	"strings"
	"unicode/utf8"
)

// Unbounded marks a length or combination count without a finite limit.
const Unbounded = math.MaxInt

var (
	// ErrInvalidQuery is returned for empty or malformed token streams.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrNotFinite is returned when enumerating a pattern with unbounded
	// combinations.
	ErrNotFinite = errors.New("query has no finite set of combinations")
)

// Query is an immutable token stream with derived statistics.
type Query struct {
	tokens       []Token
	minLength    int
	maxLength    int
	combinations int
	counts       [numKinds]int
}

// New validates tokens and computes the query statistics. The slice is
// copied. A single empty Literal is accepted as the pattern matching only the
// empty word.
func New(tokens []Token) (*Query, error) {
	if len(tokens) == 0 {
		return nil, ErrInvalidQuery
	}
	q := &Query{
		tokens:       append([]Token(nil), tokens...),
		combinations: 1,
	}
	for _, t := range q.tokens {
		if !t.Kind.valid() {
			return nil, ErrInvalidQuery
		}
		n := utf8.RuneCountInString(t.Text)
		switch t.Kind {
		case KindLiteral:
			if n == 0 && len(q.tokens) > 1 {
				return nil, ErrInvalidQuery
			}
			q.minLength = satAdd(q.minLength, n)
			q.maxLength = satAdd(q.maxLength, n)
		case KindAnyChar:
			q.minLength = satAdd(q.minLength, 1)
			q.maxLength = satAdd(q.maxLength, 1)
			q.combinations = Unbounded
		case KindAnyRun:
			q.maxLength = Unbounded
			q.combinations = Unbounded
		case KindCharSet:
			if n == 0 {
				return nil, ErrInvalidQuery
			}
			q.minLength = satAdd(q.minLength, 1)
			q.maxLength = satAdd(q.maxLength, 1)
			q.combinations = satMul(q.combinations, n)
		case KindOptional:
			if n == 0 {
				return nil, ErrInvalidQuery
			}
			q.maxLength = satAdd(q.maxLength, n)
			q.combinations = satMul(q.combinations, 2)
		}
		q.counts[t.Kind]++
	}
	return q, nil
}

// MustNew is New for patterns known to be valid. It panics on error.
func MustNew(tokens ...Token) *Query {
	q, err := New(tokens)
	if err != nil {
		panic(err)
	}
	return q
}

// Tokens returns a copy of the token stream.
func (q *Query) Tokens() []Token {
	return append([]Token(nil), q.tokens...)
}

// MinLength is the length of the shortest word the query can match.
func (q *Query) MinLength() int { return q.minLength }

// MaxLength is the length of the longest word the query can match, or
// Unbounded.
func (q *Query) MaxLength() int { return q.maxLength }

// Combinations is the number of literal strings the query expands to, or
// Unbounded.
func (q *Query) Combinations() int { return q.combinations }

// Count returns the number of tokens of kind k.
func (q *Query) Count(k Kind) int {
	if !k.valid() {
		return 0
	}
	return q.counts[k]
}

// MatchAny reports whether the query matches every word.
func (q *Query) MatchAny() bool {
	return q.counts[KindLiteral]+q.counts[KindAnyChar]+q.counts[KindCharSet] == 0 &&
		q.counts[KindAnyRun] > 0
}

// PlaceholdersOnly reports whether the query holds nothing but ? and *.
func (q *Query) PlaceholdersOnly() bool {
	return q.counts[KindLiteral]+q.counts[KindCharSet]+q.counts[KindOptional] == 0
}

// FiniteCombinations reports whether the query expands to a finite set of
// literal strings.
func (q *Query) FiniteCombinations() bool {
	return q.combinations < Unbounded
}

// String renders the query in the textual pattern syntax.
func (q *Query) String() string {
	var sb strings.Builder
	for _, t := range q.tokens {
		sb.WriteString(t.String())
	}
	return sb.String()
}

func satAdd(a, b int) int {
	if a == Unbounded || b == Unbounded || a > Unbounded-b {
		return Unbounded
	}
	return a + b
}

func satMul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a == Unbounded || b == Unbounded || a > Unbounded/b {
		return Unbounded
	}
	return a * b
}
