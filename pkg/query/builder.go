package query

import (
	"slices"
	"strings"
)

// Builder assembles a canonical token stream. Every method keeps the stream
// equivalent to appending the token as is while simplifying it:
//
//   - adjacent literals are merged, empty literals and optionals dropped
//   - "**" collapses to "*"
//   - "*?" is reordered to "?*"
//   - a one-character set becomes a literal, set characters are sorted and
//     deduplicated
//   - an optional directly before or after "*" (only "?" in between) is
//     dropped, since the run already covers it
//
// The zero value is ready to use.
type Builder struct {
	tokens []Token
}

func (b *Builder) last() (Token, bool) {
	if len(b.tokens) == 0 {
		return Token{}, false
	}
	return b.tokens[len(b.tokens)-1], true
}

// Literal appends fixed text.
func (b *Builder) Literal(text string) *Builder {
	if text == "" {
		return b
	}
	if last, ok := b.last(); ok && last.Kind == KindLiteral {
		b.tokens[len(b.tokens)-1].Text = last.Text + text
		return b
	}
	b.tokens = append(b.tokens, Literal(text))
	return b
}

// AnyChar appends "?".
func (b *Builder) AnyChar() *Builder {
	if last, ok := b.last(); ok && last.Kind == KindAnyRun {
		b.tokens[len(b.tokens)-1] = AnyChar()
		b.tokens = append(b.tokens, last)
		return b
	}
	b.tokens = append(b.tokens, AnyChar())
	return b
}

// AnyRun appends "*".
func (b *Builder) AnyRun() *Builder {
	if last, ok := b.last(); ok && last.Kind == KindAnyRun {
		return b
	}
	// drop optionals in front of the run, looking through "?"
	n := len(b.tokens)
	for i := n - 1; i >= 0; i-- {
		k := b.tokens[i].Kind
		if k == KindOptional {
			b.tokens = slices.Delete(b.tokens, i, i+1)
			continue
		}
		if k != KindAnyChar {
			break
		}
	}
	b.tokens = append(b.tokens, AnyRun())
	return b
}

// CharSet appends a one-of-set token. An empty set is invalid; Build reports
// it.
func (b *Builder) CharSet(chars string) *Builder {
	set := UniqueChars(chars)
	if len([]rune(set)) == 1 {
		return b.Literal(set)
	}
	b.tokens = append(b.tokens, CharSet(set))
	return b
}

// Optional appends text that may be absent.
func (b *Builder) Optional(text string) *Builder {
	if text == "" {
		return b
	}
	if last, ok := b.last(); ok && last.Kind == KindAnyRun {
		return b
	}
	b.tokens = append(b.tokens, Optional(text))
	return b
}

// Add appends t through the matching method.
func (b *Builder) Add(t Token) *Builder {
	switch t.Kind {
	case KindLiteral:
		return b.Literal(t.Text)
	case KindAnyChar:
		return b.AnyChar()
	case KindAnyRun:
		return b.AnyRun()
	case KindCharSet:
		return b.CharSet(t.Text)
	case KindOptional:
		return b.Optional(t.Text)
	}
	b.tokens = append(b.tokens, t)
	return b
}

// Tokens returns a copy of the canonical stream built so far.
func (b *Builder) Tokens() []Token {
	return slices.Clone(b.tokens)
}

// Build creates the Query. An empty stream yields ErrInvalidQuery.
func (b *Builder) Build() (*Query, error) {
	return New(b.tokens)
}

// Canonicalize rewrites tokens into canonical form.
func Canonicalize(tokens []Token) []Token {
	var b Builder
	for _, t := range tokens {
		b.Add(t)
	}
	return b.tokens
}

// UniqueChars returns the distinct characters of s in ascending order.
func UniqueChars(s string) string {
	runes := []rune(s)
	if len(runes) < 2 {
		return s
	}
	slices.Sort(runes)
	runes = slices.Compact(runes)
	var sb strings.Builder
	sb.Grow(len(runes))
	for _, r := range runes {
		sb.WriteRune(r)
	}
	return sb.String()
}
