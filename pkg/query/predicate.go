package query

import (
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// Predicate reports whether a whole word matches a query.
type Predicate func(word string) bool

// PredicateKind names the test Compile picks for a query.
type PredicateKind uint8

const (
	PredicateAny      PredicateKind = iota // matches everything
	PredicateLength                        // placeholders only, rune count check
	PredicateEqual                         // single literal
	PredicatePrefix                        // lit*
	PredicateSuffix                        // *lit
	PredicateContains                      // *lit*
	PredicateRegex                         // anchored regexp2 pattern
)

func (k PredicateKind) String() string {
	switch k {
	case PredicateAny:
		return "any"
	case PredicateLength:
		return "length"
	case PredicateEqual:
		return "equal"
	case PredicatePrefix:
		return "prefix"
	case PredicateSuffix:
		return "suffix"
	case PredicateContains:
		return "contains"
	}
	return "regex"
}

// PredicateKind returns the kind of test Compile builds for q.
func (q *Query) PredicateKind() PredicateKind {
	switch {
	case q.MatchAny():
		return PredicateAny
	case q.PlaceholdersOnly():
		return PredicateLength
	}
	if q.counts[KindLiteral] != 1 || q.counts[KindAnyChar]+q.counts[KindCharSet]+q.counts[KindOptional] != 0 {
		return PredicateRegex
	}
	t := q.tokens
	switch {
	case len(t) == 1:
		return PredicateEqual
	case len(t) == 2 && t[1].Kind == KindAnyRun:
		return PredicatePrefix
	case len(t) == 2 && t[0].Kind == KindAnyRun:
		return PredicateSuffix
	case len(t) == 3 && t[0].Kind == KindAnyRun && t[2].Kind == KindAnyRun:
		return PredicateContains
	}
	return PredicateRegex
}

// Compile builds the cheapest exact test for q. The returned Predicate is
// safe for concurrent use.
func (q *Query) Compile() Predicate {
	switch q.PredicateKind() {
	case PredicateAny:
		return func(string) bool { return true }
	case PredicateLength:
		minLen := q.minLength
		if q.maxLength == minLen {
			return func(word string) bool { return utf8.RuneCountInString(word) == minLen }
		}
		return func(word string) bool { return utf8.RuneCountInString(word) >= minLen }
	case PredicateEqual:
		text := q.tokens[0].Text
		return func(word string) bool { return word == text }
	case PredicatePrefix:
		text := q.tokens[0].Text
		return func(word string) bool { return strings.HasPrefix(word, text) }
	case PredicateSuffix:
		text := q.tokens[1].Text
		return func(word string) bool { return strings.HasSuffix(word, text) }
	case PredicateContains:
		text := q.tokens[1].Text
		return func(word string) bool { return strings.Contains(word, text) }
	}
	return q.compileRegex()
}

// Expression returns the anchored regular expression the query compiles to
// when no cheaper test applies.
func (q *Query) Expression() string {
	var sb strings.Builder
	sb.WriteString(`\A(?:`)
	for _, t := range q.tokens {
		switch t.Kind {
		case KindLiteral:
			sb.WriteString(regexp2.Escape(t.Text))
		case KindAnyChar:
			sb.WriteString(`[\s\S]`)
		case KindAnyRun:
			sb.WriteString(`[\s\S]*`)
		case KindCharSet:
			sb.WriteByte('[')
			for _, r := range t.Text {
				if strings.ContainsRune(`\]^-[`, r) {
					sb.WriteByte('\\')
				}
				sb.WriteRune(r)
			}
			sb.WriteByte(']')
		case KindOptional:
			sb.WriteString("(?:")
			sb.WriteString(regexp2.Escape(t.Text))
			sb.WriteString(")?")
		}
	}
	sb.WriteString(`)\z`)
	return sb.String()
}

// rightToLeft reports whether scanning from the end backtracks less: the
// pattern ends in a literal but does not start with one.
func (q *Query) rightToLeft() bool {
	first, last := q.tokens[0], q.tokens[len(q.tokens)-1]
	return first.Kind != KindLiteral && last.Kind == KindLiteral
}

func (q *Query) compileRegex() Predicate {
	opts := regexp2.None
	if q.rightToLeft() {
		opts |= regexp2.RightToLeft
	}
	// the expression is built from escaped parts only
	re := regexp2.MustCompile(q.Expression(), opts)
	minLen, maxLen := q.minLength, q.maxLength
	return func(word string) bool {
		n := utf8.RuneCountInString(word)
		if n < minLen || n > maxLen {
			return false
		}
		ok, err := re.MatchString(word)
		return err == nil && ok
	}
}
