package retrieve

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordmatch/internal/logger"
	"github.com/bastiangx/wordmatch/internal/utils"
	"github.com/bastiangx/wordmatch/pkg/matcher"
	"github.com/bastiangx/wordmatch/pkg/metrics"
	"github.com/bastiangx/wordmatch/pkg/query"
	"github.com/bastiangx/wordmatch/pkg/selection"
	"github.com/bastiangx/wordmatch/pkg/sortedset"
)

// ErrInvalidOptions is returned by New for unusable planner settings.
var ErrInvalidOptions = errors.New("invalid retriever options")

// Retriever answers queries from prebuilt indexes. It is immutable after New
// and safe for concurrent use.
type Retriever struct {
	words []string
	opts  Options

	wordIndex *matcher.WordIndex
	ltr       *matcher.PositionalTrie
	rtl       *matcher.PositionalTrie
	substring *matcher.SubstringTrie
	length    *matcher.LengthMatcher

	log     *log.Logger
	metrics *metrics.Metrics
}

// New indexes words. The slice is not copied and must not be modified
// afterwards. Structures are built one after another, each on a bounded
// worker pool.
func New(words []string, opts Options) (*Retriever, error) {
	if opts.WordIndexThreshold < 0 {
		return nil, fmt.Errorf("word index threshold %d: %w", opts.WordIndexThreshold, ErrInvalidOptions)
	}
	if opts.SelectionRatio < 0 {
		return nil, fmt.Errorf("selection ratio %g: %w", opts.SelectionRatio, ErrInvalidOptions)
	}
	if opts.Parallelism < 0 {
		return nil, fmt.Errorf("parallelism %d: %w", opts.Parallelism, ErrInvalidOptions)
	}

	r := &Retriever{
		words:   words,
		opts:    opts,
		log:     opts.Logger,
		metrics: opts.Metrics,
	}
	if r.log == nil {
		r.log = logger.New("index")
	}
	r.metrics.SetDictionaryWords(len(words))

	corpus := matcher.NewCorpus(words)
	p := opts.Parallelism
	if opts.UseWordIndex {
		r.build("word_index", func() { r.wordIndex = matcher.NewWordIndex(words, p) })
	}
	if opts.UseLTRTrie {
		r.build("ltr_trie", func() { r.ltr = matcher.NewPositionalTrie(corpus, opts.LTR, matcher.LeftToRight, p) })
	}
	if opts.UseRTLTrie {
		r.build("rtl_trie", func() { r.rtl = matcher.NewPositionalTrie(corpus, opts.RTL, matcher.RightToLeft, p) })
	}
	if opts.UseSubstringTrie {
		r.build("substring_trie", func() { r.substring = matcher.NewSubstringTrie(corpus, opts.Substring, p) })
	}
	if opts.UseLengthMatcher {
		r.build("length_matcher", func() { r.length = matcher.NewLengthMatcher(corpus, p) })
	}
	return r, nil
}

func (r *Retriever) build(structure string, fn func()) {
	r.log.Debugf("Building %s...", structure)
	start := time.Now()
	fn()
	took := time.Since(start)
	r.metrics.ObserveBuild(structure, took)
	r.log.Debug("Built", "structure", structure, "took", took)
}

// Words returns the indexed dictionary.
func (r *Retriever) Words() []string { return r.words }

// Retrieve returns the first limit words matching q, in dictionary order.
func (r *Retriever) Retrieve(q *query.Query, limit int) Result {
	start := time.Now()
	var res Result
	if limit <= 0 {
		res = Result{Method: MethodNoMatch}
	} else {
		res = r.retrieve(q, limit)
	}
	r.metrics.ObserveRetrieve(string(res.Method), time.Since(start), len(res.Words))
	return res
}

func (r *Retriever) retrieve(q *query.Query, limit int) Result {
	n := len(r.words)

	if q.MatchAny() {
		return Result{Words: slices.Clone(r.words[:min(limit, n)]), Method: MethodMatchAny, Candidates: n}
	}

	if r.wordIndex != nil && q.FiniteCombinations() && q.Combinations() <= r.opts.WordIndexThreshold {
		if res, ok := r.lookupCombinations(q, limit); ok {
			return res
		}
	}

	if r.length != nil && q.PlaceholdersOnly() {
		sel, err := r.length.Selection(q.MinLength(), q.MaxLength())
		if err != nil {
			// unreachable for a valid query
			r.log.Errorf("Length selection for %q: %v", q, err)
		} else {
			return Result{
				Words:      r.take(sel.Iter(), limit),
				Method:     MethodPlaceholdersOnly,
				Candidates: sel.Count(),
			}
		}
	}

	sels := r.selections(q)
	slices.SortStableFunc(sels, func(a, b selection.Selection) int {
		return a.Count() - b.Count()
	})

	var candidates sortedset.Iterator
	res := Result{Method: MethodFullScan, Candidates: n}
	if len(sels) > 0 && !sels[0].IsAll() {
		first := sels[0]
		if first.IsEmpty() {
			return Result{Method: MethodNoMatch}
		}
		candidates = first.Iter()
		res.Method, res.Candidates = MethodSelection, first.Count()

		if len(sels) > 1 && !sels[1].IsAll() &&
			float64(sels[1].Count()) < float64(first.Count())*r.opts.SelectionRatio {
			candidates = sortedset.IntersectIter(candidates, sels[1].Iter())
		}
	}
	res.Words = scan(r.words, candidates, q.Compile(), limit)
	return res
}

// lookupCombinations enumerates every word q can spell and looks each one up.
func (r *Retriever) lookupCombinations(q *query.Query, limit int) (Result, bool) {
	words, err := q.Enumerate()
	if err != nil {
		return Result{}, false
	}
	var found []int
	for w := range words {
		found = r.wordIndex.AppendAll(found, w)
	}
	slices.Sort(found)

	res := Result{Method: MethodWordIndex, Candidates: q.Combinations()}
	hits := sortedset.Unique(sortedset.Slice(found)).Iter()
	for len(res.Words) < limit {
		i, ok := hits.Next()
		if !ok {
			break
		}
		res.Words = append(res.Words, r.words[i])
	}
	return res, true
}

// selections gathers one or more selections per literal run plus the length
// selection. Anchored runs go to the positional tries, the rest to the
// substring trie.
func (r *Retriever) selections(q *query.Query) []selection.Selection {
	var sels []selection.Selection
	subs := q.Substrings()
	covered := matcher.NewCoveredSet()
	texts := make([]string, 0, len(subs))
	for _, sub := range subs {
		switch {
		case r.ltr != nil && sub.LeftFixed():
			sels = append(sels, r.ltr.Selections(sub.LeftMin, sub.Text)...)
			covered.Add(sub.Text)
		case r.rtl != nil && sub.RightFixed():
			sels = append(sels, r.rtl.Selections(sub.RightMin, utils.Reverse(sub.Text))...)
			covered.Add(sub.Text)
		}
		texts = append(texts, sub.Text)
	}
	if r.substring != nil {
		sels = append(sels, r.substring.Selections(texts, covered)...)
	}

	if r.length != nil {
		sel, err := r.length.Selection(q.MinLength(), q.MaxLength())
		if err == nil && !sel.IsAll() {
			sels = append(sels, sel)
		}
	}
	return sels
}

func (r *Retriever) take(it sortedset.Iterator, limit int) []string {
	var out []string
	for i, ok := it.Next(); ok && len(out) < limit; i, ok = it.Next() {
		out = append(out, r.words[i])
	}
	return out
}

// scan returns up to limit words accepted by pred. A nil candidates iterator
// scans the whole dictionary.
func scan(words []string, candidates sortedset.Iterator, pred query.Predicate, limit int) []string {
	var out []string
	if candidates == nil {
		for _, w := range words {
			if pred(w) {
				out = append(out, w)
				if len(out) == limit {
					break
				}
			}
		}
		return out
	}
	for i, ok := candidates.Next(); ok; i, ok = candidates.Next() {
		if pred(words[i]) {
			out = append(out, words[i])
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// Stats reports the dictionary size and the size of every built structure.
func (r *Retriever) Stats() map[string]int {
	stats := map[string]int{"words": len(r.words)}
	if r.wordIndex != nil {
		stats["word_index_buckets"] = r.wordIndex.Buckets()
	}
	if r.ltr != nil {
		stats["ltr_trie_nodes"] = r.ltr.Nodes()
		stats["ltr_trie_positions"] = r.ltr.Positions()
	}
	if r.rtl != nil {
		stats["rtl_trie_nodes"] = r.rtl.Nodes()
		stats["rtl_trie_positions"] = r.rtl.Positions()
	}
	if r.substring != nil {
		stats["substring_trie_nodes"] = r.substring.Nodes()
	}
	if r.length != nil {
		stats["min_length"] = r.length.MinLen()
		stats["max_length"] = r.length.MaxLen()
	}
	return stats
}
