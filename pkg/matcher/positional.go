package matcher

import (
	"slices"

	"github.com/bastiangx/wordmatch/pkg/selection"
)

// Direction selects the edge positions are counted from.
type Direction uint8

const (
	LeftToRight Direction = iota
	RightToLeft
)

func (d Direction) String() string {
	if d == RightToLeft {
		return "rtl"
	}
	return "ltr"
}

// PositionalTrie holds one trie per character position. The trie at
// position p indexes the substrings starting p characters from the word's
// left edge, or, for RightToLeft, the reversed substrings ending p characters
// before its right edge.
type PositionalTrie struct {
	roots []*node
	opts  TrieOptions
	dir   Direction
	nodes int
}

// NewPositionalTrie indexes c. Positions are built in parallel. Roots always
// split, whatever their size.
func NewPositionalTrie(c *Corpus, opts TrieOptions, dir Direction, parallelism int) *PositionalTrie {
	t := &PositionalTrie{opts: opts, dir: dir}
	if opts.MaxDepth <= 0 || c.Len() == 0 {
		return t
	}
	t.roots = make([]*node, c.MaxLen())
	pool := newScratchPool()
	parallelFor(len(t.roots), parallelism, func(p int) {
		root := &node{sel: selection.All(c.Len())}
		t.split(c, root, p, pool)
		for _, child := range root.children {
			t.grow(c, child, p, pool)
		}
		t.roots[p] = root
	})
	for _, root := range t.roots {
		t.nodes += root.count()
	}
	return t
}

func (t *PositionalTrie) grow(c *Corpus, n *node, position int, pool *scratchPool) {
	if !n.canSplit(t.opts) {
		return
	}
	t.split(c, n, position, pool)
	for _, child := range n.children {
		t.grow(c, child, position, pool)
	}
}

func (t *PositionalTrie) split(c *Corpus, n *node, position int, pool *scratchPool) {
	b := pool.lend(c.alphabet())
	defer pool.give(b)

	at := position + n.depth
	it := n.sel.Iter()
	for w, ok := it.Next(); ok; w, ok = it.Next() {
		if c.RuneLen(w) <= at {
			continue
		}
		var r rune
		if t.dir == RightToLeft {
			r = c.FromRight(w, at)
		} else {
			r = c.At(w, at)
		}
		b.add(c.symbol(r), w)
	}
	n.attach(c, b)
}

// Direction reports the edge the trie counts from.
func (t *PositionalTrie) Direction() Direction { return t.dir }

// Positions returns the number of per-position tries.
func (t *PositionalTrie) Positions() int { return len(t.roots) }

// Nodes returns the number of trie nodes over all positions.
func (t *PositionalTrie) Nodes() int { return t.nodes }

func (t *PositionalTrie) find(position int, s []rune) *node {
	if position < 0 || position+len(s) > len(t.roots) {
		return nil
	}
	n := t.roots[position]
	for _, r := range s {
		if n.leaf() {
			return n
		}
		child, ok := n.children[r]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}

// Selections returns selections whose intersection holds every word with
// text at position. For RightToLeft, text must already be reversed and
// position is the distance between the end of text and the word's right edge.
// The result is sorted by ascending count; a single Empty selection means no
// word can match.
func (t *PositionalTrie) Selections(position int, text string) []selection.Selection {
	if t.opts.MaxDepth <= 0 {
		return nil
	}
	s := []rune(text)
	none := []selection.Selection{selection.Empty()}
	if position < 0 || position+len(s) > len(t.roots) {
		return none
	}

	// cut s into segments, one node each:  mes|sag|e
	var nodes []*node
	for i := 0; i < len(s); {
		n := t.find(position+i, s[i:])
		if n == nil || n.depth == 0 {
			return none
		}
		nodes = append(nodes, n)
		i += n.depth
	}

	// a short last segment selects too much; let it start earlier as long as
	// the longer lookup still reaches the end of s:  mes|sag + sage
	if last := len(nodes) - 1; last > 0 && !nodes[last].leaf() {
		best := nodes[last]
		for i := len(s) - best.depth - 1; i >= 0; i-- {
			n := t.find(position+i, s[i:])
			if n == nil {
				return none
			}
			if i+n.depth < len(s) {
				break
			}
			best = n
		}
		nodes[last] = best
	}

	slices.SortStableFunc(nodes, func(a, b *node) int {
		return a.sel.Count() - b.sel.Count()
	})
	out := make([]selection.Selection, len(nodes))
	for i, n := range nodes {
		out[i] = n.sel
	}
	return out
}
