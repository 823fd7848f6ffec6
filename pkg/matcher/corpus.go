/*
Package matcher builds the index structures the retriever plans with.

	WordIndex       exact word -> dictionary index
	LengthMatcher   length range -> selection
	SubstringTrie   substring anywhere in a word -> selection
	PositionalTrie  substring at a fixed distance from the left or right edge -> selection

Every structure is built once from a Corpus, in parallel on a bounded worker
pool, and is read-only afterwards: any number of goroutines may query it
without locking. Lookups never fail; a miss is reported as an Empty selection
or a false ok value.
*/
package matcher

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Corpus is a read-only view of the dictionary used while indexes are built.
// Positions and lengths count runes. Dictionaries made of ASCII words are
// indexed byte-wise without any copy.
type Corpus struct {
	words   []string
	ascii   bool
	runes   [][]rune // nil for ASCII dictionaries
	minLen  int
	maxLen  int
	symbols []rune       // dense id -> rune for non-ASCII dictionaries
	ids     map[rune]int // rune -> dense id for non-ASCII dictionaries
}

// NewCorpus wraps words. The slice is not copied and must not change.
func NewCorpus(words []string) *Corpus {
	c := &Corpus{words: words, ascii: true}
	for _, w := range words {
		if !isASCII(w) {
			c.ascii = false
			break
		}
	}
	if !c.ascii {
		c.runes = make([][]rune, len(words))
		c.ids = make(map[rune]int)
		for i, w := range words {
			rs := []rune(w)
			c.runes[i] = rs
			for _, r := range rs {
				if _, ok := c.ids[r]; !ok {
					c.ids[r] = 0
					c.symbols = append(c.symbols, r)
				}
			}
		}
		slices.Sort(c.symbols)
		for id, r := range c.symbols {
			c.ids[r] = id
		}
	}
	for i := range words {
		n := c.RuneLen(i)
		if i == 0 || n < c.minLen {
			c.minLen = n
		}
		if n > c.maxLen {
			c.maxLen = n
		}
	}
	return c
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Len returns the number of words.
func (c *Corpus) Len() int { return len(c.words) }

// Words returns the underlying dictionary.
func (c *Corpus) Words() []string { return c.words }

// MinLen returns the length of the shortest word, 0 for an empty corpus.
func (c *Corpus) MinLen() int { return c.minLen }

// MaxLen returns the length of the longest word, 0 for an empty corpus.
func (c *Corpus) MaxLen() int { return c.maxLen }

// RuneLen returns the length of word i.
func (c *Corpus) RuneLen(i int) int {
	if c.ascii {
		return len(c.words[i])
	}
	return len(c.runes[i])
}

// At returns the character of word i at pos, counted from the left edge.
func (c *Corpus) At(i, pos int) rune {
	if c.ascii {
		return rune(c.words[i][pos])
	}
	return c.runes[i][pos]
}

// FromRight returns the character of word i at pos, counted from the right
// edge.
func (c *Corpus) FromRight(i, pos int) rune {
	if c.ascii {
		w := c.words[i]
		return rune(w[len(w)-1-pos])
	}
	rs := c.runes[i]
	return rs[len(rs)-1-pos]
}

// alphabet returns the number of distinct symbol ids.
func (c *Corpus) alphabet() int {
	if c.ascii {
		return utf8.RuneSelf
	}
	return len(c.symbols)
}

func (c *Corpus) symbol(r rune) int {
	if c.ascii {
		return int(r)
	}
	return c.ids[r]
}

func (c *Corpus) symbolRune(id int) rune {
	if c.ascii {
		return rune(id)
	}
	return c.symbols[id]
}

// eachFollower calls fn with the character that follows every occurrence of
// path in word i. An empty path yields every character of the word.
func (c *Corpus) eachFollower(i int, path string, pathRunes []rune, fn func(r rune)) {
	if c.ascii {
		w := c.words[i]
		for off := 0; off <= len(w); {
			j := strings.Index(w[off:], path)
			if j < 0 {
				return
			}
			if k := off + j + len(path); k < len(w) {
				fn(rune(w[k]))
			}
			off += j + 1
		}
		return
	}
	w := c.runes[i]
	for j := 0; j+len(pathRunes) < len(w); j++ {
		if hasPrefix(w[j:], pathRunes) {
			fn(w[j+len(pathRunes)])
		}
	}
}

func hasPrefix(s, prefix []rune) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, r := range prefix {
		if s[i] != r {
			return false
		}
	}
	return true
}
