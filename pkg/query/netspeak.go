package query

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Syntax selects the textual pattern dialect.
type Syntax uint8

const (
	// SyntaxStandard is the dialect read by Parse.
	SyntaxStandard Syntax = iota
	// SyntaxNetspeak is the dialect read by ParseNetspeak.
	SyntaxNetspeak
)

func (s Syntax) String() string {
	if s == SyntaxNetspeak {
		return "netspeak"
	}
	return "standard"
}

// ParseSyntax maps a dialect name to its Syntax. The empty name is
// SyntaxStandard.
func ParseSyntax(name string) (Syntax, error) {
	switch strings.ToLower(name) {
	case "", "standard":
		return SyntaxStandard, nil
	case "netspeak":
		return SyntaxNetspeak, nil
	}
	return SyntaxStandard, fmt.Errorf("unknown syntax %q", name)
}

// Parse reads pattern in dialect s.
func (s Syntax) Parse(pattern string) (*Query, error) {
	if s == SyntaxNetspeak {
		return ParseNetspeak(pattern)
	}
	return Parse(pattern)
}

// ParseNetspeak reads the Netspeak pattern syntax:
//
//	?      any single character
//	*      any run of characters
//	+      one or more characters, same as ?*
//	[a]    optional a
//	[abc]  one of a, b, c
//	{abc}  three characters, each one of a, b, c
//
// There is no escaping; the characters ?*+(){}[]|\ cannot appear literally.
func ParseNetspeak(pattern string) (*Query, error) {
	tokens, err := TokenizeNetspeak(pattern)
	if err != nil {
		return nil, err
	}
	return build(pattern, tokens)
}

// TokenizeNetspeak splits a Netspeak pattern into a canonical token stream.
func TokenizeNetspeak(pattern string) ([]Token, error) {
	var b Builder
	fail := func(offset int, msg string) ([]Token, error) {
		return nil, &SyntaxError{Pattern: pattern, Offset: offset, Msg: msg}
	}

	for i := 0; i < len(pattern); {
		r, size := utf8.DecodeRuneInString(pattern[i:])
		switch r {
		case '?':
			b.AnyChar()
			i += size
		case '*':
			b.AnyRun()
			i += size
		case '+':
			b.AnyChar().AnyRun()
			i += size
		case '[', '{':
			closer := "]"
			if r == '{' {
				closer = "}"
			}
			start := i + size
			end := strings.Index(pattern[start:], closer)
			if end < 0 {
				return fail(i, fmt.Sprintf("missing %q", closer))
			}
			body := pattern[start : start+end]
			if j := strings.IndexAny(body, specialChars); j >= 0 {
				bad, _ := utf8.DecodeRuneInString(body[j:])
				return fail(start+j, fmt.Sprintf("invalid character %q", bad))
			}
			n := utf8.RuneCountInString(body)
			switch {
			case r == '[' && n == 0:
				return fail(i, "empty character set")
			case r == '[' && n == 1:
				b.Optional(body)
			case r == '[':
				b.CharSet(body)
			default:
				set := UniqueChars(body)
				if utf8.RuneCountInString(set) == 1 {
					b.Literal(strings.Repeat(set, n))
					break
				}
				for range n {
					b.CharSet(set)
				}
			}
			i = start + end + len(closer)
		default:
			end := strings.IndexAny(pattern[i:], specialChars)
			if end == 0 {
				return fail(i, fmt.Sprintf("invalid character %q", r))
			}
			if end < 0 {
				end = len(pattern) - i
			}
			b.Literal(pattern[i : i+end])
			i += end
		}
	}
	return b.tokens, nil
}
