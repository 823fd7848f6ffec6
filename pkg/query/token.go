package query

import (
	"fmt"
	"strings"
)

// Kind identifies a token type.
type Kind uint8

const (
	KindLiteral  Kind = iota + 1 // fixed text
	KindAnyChar                  // ?
	KindAnyRun                   // *
	KindCharSet                  // [abc]
	KindOptional                 // {abc}
)

const numKinds = int(KindOptional) + 1

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindAnyChar:
		return "AnyChar"
	case KindAnyRun:
		return "AnyRun"
	case KindCharSet:
		return "CharSet"
	case KindOptional:
		return "Optional"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (k Kind) valid() bool {
	return k >= KindLiteral && k <= KindOptional
}

// Token is one element of a pattern. Text holds the literal text, the set of
// characters of a CharSet, or the optional text; it is empty for AnyChar and
// AnyRun.
type Token struct {
	Kind Kind
	Text string
}

// Literal matches text exactly.
func Literal(text string) Token { return Token{Kind: KindLiteral, Text: text} }

// AnyChar matches a single character.
func AnyChar() Token { return Token{Kind: KindAnyChar} }

// AnyRun matches any run of characters, including none.
func AnyRun() Token { return Token{Kind: KindAnyRun} }

// CharSet matches one character out of chars.
func CharSet(chars string) Token { return Token{Kind: KindCharSet, Text: chars} }

// Optional matches text or nothing.
func Optional(text string) Token { return Token{Kind: KindOptional, Text: text} }

// specialChars must be escaped to appear literally in a textual pattern.
const specialChars = `?*+(){}[]|\`

func (t Token) String() string {
	switch t.Kind {
	case KindLiteral:
		return escape(t.Text)
	case KindAnyChar:
		return "?"
	case KindAnyRun:
		return "*"
	case KindCharSet:
		return "[" + escape(t.Text) + "]"
	case KindOptional:
		return "{" + escape(t.Text) + "}"
	}
	return "<" + t.Kind.String() + ">"
}

func escape(s string) string {
	if !strings.ContainsAny(s, specialChars) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	for _, r := range s {
		if strings.ContainsRune(specialChars, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
