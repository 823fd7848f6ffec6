package utils

import (
	"slices"
	"strconv"
	"strings"
)

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	str := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, str = "-", str[1:]
	}
	if len(str) <= 3 {
		return sign + str
	}

	var b strings.Builder
	b.Grow(len(sign) + len(str) + len(str)/3)
	b.WriteString(sign)
	for i := 0; i < len(str); i++ {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(str[i])
	}
	return b.String()
}

// Reverse returns s with its runes in reverse order.
func Reverse(s string) string {
	if len(s) < 2 {
		return s
	}
	rs := []rune(s)
	slices.Reverse(rs)
	return string(rs)
}
