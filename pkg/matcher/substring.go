package matcher

import (
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/bastiangx/wordmatch/pkg/selection"
)

// SubstringTrie maps substrings occurring anywhere in a word to the words
// containing them.
//
// The root stands for the empty string. A node for path p has one child per
// character that follows an occurrence of p in at least one of its words, so
// a node's selection holds exactly the words containing its path. Splitting
// stops at MaxDepth or below MinSplit words; a lookup that ends on such a leaf
// gets a superset of the real matches and relies on the final predicate scan.
type SubstringTrie struct {
	root  *node
	opts  TrieOptions
	nodes int
}

// NewSubstringTrie indexes c. The root's subtrees are built in parallel.
func NewSubstringTrie(c *Corpus, opts TrieOptions, parallelism int) *SubstringTrie {
	t := &SubstringTrie{
		root: &node{sel: selection.All(c.Len())},
		opts: opts,
	}
	pool := newScratchPool()
	if t.root.canSplit(opts) {
		t.split(c, t.root, pool)
		children := make([]*node, 0, len(t.root.children))
		for _, child := range t.root.children {
			children = append(children, child)
		}
		parallelFor(len(children), parallelism, func(i int) {
			t.grow(c, children[i], pool)
		})
	}
	t.nodes = t.root.count()
	return t
}

func (t *SubstringTrie) grow(c *Corpus, n *node, pool *scratchPool) {
	if !n.canSplit(t.opts) {
		return
	}
	t.split(c, n, pool)
	for _, child := range n.children {
		t.grow(c, child, pool)
	}
}

func (t *SubstringTrie) split(c *Corpus, n *node, pool *scratchPool) {
	b := pool.lend(c.alphabet())
	defer pool.give(b)

	pathRunes := []rune(n.path)
	it := n.sel.Iter()
	for w, ok := it.Next(); ok; w, ok = it.Next() {
		c.eachFollower(w, n.path, pathRunes, func(r rune) {
			b.add(c.symbol(r), w)
		})
	}
	n.attach(c, b)
}

// Nodes returns the number of trie nodes.
func (t *SubstringTrie) Nodes() int { return t.nodes }

// find walks s from the root. It stops early on a leaf and returns nil when
// no word contains s.
func (t *SubstringTrie) find(s []rune) *node {
	n := t.root
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

// Selections returns a small set of selections whose intersection holds every
// word containing all of substrings. Parts already in covered are skipped and
// every path used is added to it. When some substring occurs in no word at
// all the result is a single Empty selection.
func (t *SubstringTrie) Selections(substrings []string, covered *CoveredSet) []selection.Selection {
	if t.root.leaf() {
		return nil
	}
	var out []selection.Selection
	for _, s := range substrings {
		if !t.cover([]rune(s), covered, &out) {
			return []selection.Selection{selection.Empty()}
		}
	}
	return out
}

// cover picks the most selective node inside s, then recurses on the parts
// left and right of it. It returns false when s is absent from the corpus.
func (t *SubstringTrie) cover(s []rune, covered *CoveredSet, out *[]selection.Selection) bool {
	if len(s) == 0 || covered.Contains(string(s)) {
		return true
	}
	var best *node
	bestAt := 0
	for i := range s {
		n := t.find(s[i:])
		if n == nil {
			return false
		}
		if (best == nil || n.sel.Count() < best.sel.Count()) && !covered.Contains(n.path) {
			best, bestAt = n, i
		}
		if i+n.depth >= len(s) {
			break
		}
	}
	if best == nil {
		return true
	}
	*out = append(*out, best.sel)
	covered.Add(best.path)
	return t.cover(s[:bestAt], covered, out) && t.cover(s[bestAt+best.depth:], covered, out)
}

// CoveredSet records substrings whose selections are already in use. It
// answers whether a string occurs inside anything added so far.
type CoveredSet struct {
	trie *patricia.Trie
}

// NewCoveredSet returns an empty set.
func NewCoveredSet() *CoveredSet {
	return &CoveredSet{trie: patricia.NewTrie()}
}

// Add records s and, with it, every substring of s.
func (s *CoveredSet) Add(text string) {
	for i := range text {
		s.trie.Insert(patricia.Prefix(text[i:]), true)
	}
}

// Contains reports whether text is a substring of something added.
func (s *CoveredSet) Contains(text string) bool {
	if text == "" {
		return true
	}
	return s.trie.MatchSubtree(patricia.Prefix(text))
}
