package matcher

import (
	"unicode/utf8"

	"github.com/bastiangx/wordmatch/pkg/selection"
	"github.com/bastiangx/wordmatch/pkg/sortedset"
)

// TrieOptions bounds trie construction. A node stops splitting once it is
// MaxDepth characters deep or selects fewer than MinSplit words.
type TrieOptions struct {
	MaxDepth int
	MinSplit int
}

// DefaultTrieOptions returns MaxDepth 2 and MinSplit 1000.
func DefaultTrieOptions() TrieOptions {
	return TrieOptions{MaxDepth: 2, MinSplit: 1000}
}

type node struct {
	path     string
	depth    int
	sel      selection.Selection
	children map[rune]*node
}

func (n *node) leaf() bool { return len(n.children) == 0 }

// canSplit reports whether a non-root node should get children.
func (n *node) canSplit(opts TrieOptions) bool {
	return n.depth < opts.MaxDepth && n.sel.Count() >= opts.MinSplit
}

// attach turns the filled buckets into children of n.
func (n *node) attach(c *Corpus, b *buckets) {
	if len(b.used) == 0 {
		return
	}
	n.children = make(map[rune]*node, len(b.used))
	for _, sym := range b.used {
		r := c.symbolRune(sym)
		path := make([]byte, 0, len(n.path)+utf8.UTFMax)
		path = append(path, n.path...)
		path = utf8.AppendRune(path, r)
		n.children[r] = &node{
			path:  string(path),
			depth: n.depth + 1,
			sel:   selection.Owned(sortedset.FromSlice(b.lists[sym])),
		}
	}
}

// count returns the number of nodes below and including n.
func (n *node) count() int {
	total := 1
	for _, child := range n.children {
		total += child.count()
	}
	return total
}
