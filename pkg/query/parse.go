package query

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// SyntaxError describes a malformed textual pattern.
type SyntaxError struct {
	Pattern string
	Offset  int // byte offset of the offending character
	Msg     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid pattern %q at offset %d: %s", e.Pattern, e.Offset, e.Msg)
}

// Unwrap lets errors.Is match ErrInvalidQuery.
func (e *SyntaxError) Unwrap() error { return ErrInvalidQuery }

// Parse reads the textual pattern syntax:
//
//	?      any single character
//	*      any run of characters
//	[abc]  one of a, b, c
//	{abc}  optional "abc"
//	\x     the character x taken literally
//
// The characters ?*+(){}[]|\ must be escaped to be used literally. The token
// stream is canonicalized, see Builder. ParseNetspeak reads the other dialect.
func Parse(pattern string) (*Query, error) {
	tokens, err := Tokenize(pattern)
	if err != nil {
		return nil, err
	}
	return build(pattern, tokens)
}

// build turns a tokenized pattern into a Query.
func build(pattern string, tokens []Token) (*Query, error) {
	if len(tokens) == 0 {
		return nil, &SyntaxError{Pattern: pattern, Offset: 0, Msg: "empty pattern"}
	}
	q, err := New(tokens)
	if err != nil {
		return nil, &SyntaxError{Pattern: pattern, Offset: 0, Msg: err.Error()}
	}
	return q, nil
}

// MustParse is Parse for patterns known to be valid. It panics on error.
func MustParse(pattern string) *Query {
	q, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return q
}

// Tokenize splits pattern into a canonical token stream without building a
// Query.
func Tokenize(pattern string) ([]Token, error) {
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
		case '[', '{':
			closer := ']'
			if r == '{' {
				closer = '}'
			}
			body, next, err := readGroup(pattern, i+size, closer)
			if err != nil {
				return fail(i, err.Error())
			}
			if r == '[' {
				if body == "" {
					return fail(i, "empty character set")
				}
				b.CharSet(body)
			} else {
				b.Optional(body)
			}
			i = next
		case ']', '}', '(', ')', '+', '|':
			return fail(i, fmt.Sprintf("unexpected %q", r))
		default:
			text, next, err := readLiteral(pattern, i)
			if err != nil {
				return fail(len(pattern)-1, err.Error())
			}
			b.Literal(text)
			i = next
		}
	}
	return b.tokens, nil
}

// readGroup returns the unescaped text between start and the closing
// delimiter, and the offset just past that delimiter.
func readGroup(pattern string, start int, closer rune) (string, int, error) {
	var sb strings.Builder
	for i := start; i < len(pattern); {
		r, size := utf8.DecodeRuneInString(pattern[i:])
		switch {
		case r == '\\':
			if i+size >= len(pattern) {
				return "", 0, fmt.Errorf("dangling escape")
			}
			esc, escSize := utf8.DecodeRuneInString(pattern[i+size:])
			sb.WriteRune(esc)
			i += size + escSize
		case r == closer:
			return sb.String(), i + size, nil
		default:
			sb.WriteRune(r)
			i += size
		}
	}
	return "", 0, fmt.Errorf("missing %q", closer)
}

// readLiteral consumes plain and escaped characters up to the next special
// character.
func readLiteral(pattern string, start int) (string, int, error) {
	var sb strings.Builder
	i := start
	for i < len(pattern) {
		r, size := utf8.DecodeRuneInString(pattern[i:])
		if r == '\\' {
			if i+size >= len(pattern) {
				return "", 0, fmt.Errorf("dangling escape")
			}
			esc, escSize := utf8.DecodeRuneInString(pattern[i+size:])
			sb.WriteRune(esc)
			i += size + escSize
			continue
		}
		if strings.ContainsRune(specialChars, r) {
			break
		}
		sb.WriteRune(r)
		i += size
	}
	return sb.String(), i, nil
}
