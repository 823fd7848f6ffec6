package retrieve

import (
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bastiangx/wordmatch/pkg/matcher"
	"github.com/bastiangx/wordmatch/pkg/metrics"
	"github.com/bastiangx/wordmatch/pkg/query"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var quiet = log.New(io.Discard)

var testWords = []string{
	"", "a", "ab", "abc", "abbc", "aXbYc", "cabc", "abcdef",
	"love", "the", "considerate", "conversation", "consolidate", "construct",
	"qq", "qqq", "aqq", "qqa",
	"test", "text", "tent", "ten", "tea", "teat", "tests",
	"for", "far", "fur", "f", "fo", "form", "forms",
	"go", "do", "so", "get", "set", "bet", "jet", "pet",
	"probably", "capably", "ably",
	"bell", "hello", "shell", "well", "yellow",
	"initialize", "initialise", "color", "colour",
	"cat", "cats", "cas", "dog",
	"a*b", "a?b", "[x]",
	"über", "uber", "naïve", "ñandú",
}

var extraPatterns = []string{
	"?", "a*", "*a", "?b?", "[ab]*[bc]", "a{b}c", "c?t{s}", "ñ*", "*ú",
	"*e?l*", "t??t", "??t", "*{s}", "x*", "*zz*", "f*s", "co*r",
}

func fine(depth int) matcher.TrieOptions {
	return matcher.TrieOptions{MaxDepth: depth, MinSplit: 1}
}

func optionVariants() map[string]Options {
	base := DefaultOptions()
	base.Parallelism = 4
	base.Logger = quiet

	variants := map[string]Options{"defaults": base}

	o := base
	o.Substring, o.LTR, o.RTL = fine(2), fine(2), fine(2)
	variants["fine depth 2"] = o

	o = base
	o.Substring, o.LTR, o.RTL = fine(3), fine(1), fine(4)
	variants["mixed depths"] = o

	o = base
	o.UseWordIndex, o.UseLengthMatcher, o.UseSubstringTrie, o.UseLTRTrie, o.UseRTLTrie = false, false, false, false, false
	variants["no indexes"] = o

	o = base
	o.UseWordIndex, o.UseLengthMatcher, o.UseLTRTrie, o.UseRTLTrie = false, false, false, false
	o.Substring = fine(2)
	variants["substring only"] = o

	o = base
	o.UseWordIndex, o.UseSubstringTrie, o.UseLTRTrie = false, false, false
	o.RTL = fine(2)
	variants["rtl and length"] = o

	o = base
	o.SelectionRatio = 1000
	o.Substring, o.LTR, o.RTL = fine(2), fine(2), fine(2)
	variants["always intersect"] = o
	return variants
}

func mustNew(t testing.TB, words []string, opts Options) *Retriever {
	t.Helper()
	r, err := New(words, opts)
	require.NoError(t, err)
	return r
}

func TestRetrieverMatchesScanner(t *testing.T) {
	patterns := append(append([]string{}, query.SamplePatterns...), extraPatterns...)
	queries := make([]*query.Query, 0, len(patterns)+1)
	for _, p := range patterns {
		queries = append(queries, query.MustParse(p))
	}
	queries = append(queries, query.MustNew(query.Literal("")))

	scanner := NewScanner(testWords, nil)
	for name, opts := range optionVariants() {
		t.Run(name, func(t *testing.T) {
			r := mustNew(t, testWords, opts)
			for _, q := range queries {
				for _, limit := range []int{1, 3, 1000} {
					want := scanner.Retrieve(q, limit)
					got := r.Retrieve(q, limit)
					assert.Equal(t, want.Words, got.Words, "pattern %q limit %d method %s", q, limit, got.Method)
				}
			}
		})
	}
}

func TestDuplicateWords(t *testing.T) {
	words := []string{"cb", "ac", "ab", "cb", "cc", "cb", "ab", "x", "a"}
	scanner := NewScanner(words, nil)

	r := mustNew(t, words, optionVariants()["defaults"])
	res := r.Retrieve(query.MustParse("[ac][bc]"), 100)
	assert.Equal(t, MethodWordIndex, res.Method)
	assert.Equal(t, []string{"cb", "ac", "ab", "cb", "cc", "cb", "ab"}, res.Words)

	for name, opts := range optionVariants() {
		t.Run(name, func(t *testing.T) {
			r := mustNew(t, words, opts)
			for _, p := range []string{"[ac][bc]", "cb", "a{b}", "c?", "?b", "*"} {
				q := query.MustParse(p)
				for _, limit := range []int{1, 4, 100} {
					assert.Equal(t, scanner.Retrieve(q, limit).Words, r.Retrieve(q, limit).Words,
						"pattern %q limit %d", p, limit)
				}
			}
		})
	}
}

func TestEndToEnd(t *testing.T) {
	words := []string{"cat", "cats", "dog", "do"}
	testCases := []struct {
		pattern string
		limit   int
		words   []string
		expect  []string
	}{
		{"*", 10, words, []string{"cat", "cats", "dog", "do"}},
		{"*", 2, words, []string{"cat", "cats"}},
		{"do?", 10, words, []string{"dog"}},
		{"[cd]*", 10, words, []string{"cat", "cats", "dog", "do"}},
		{"ca{t}s", 10, words, []string{"cats"}},
		{"ca{t}s", 10, append([]string{"cas"}, words...), []string{"cas", "cats"}},
		{"te?t", 10, []string{"love", "the", "considerate", "qq"}, nil},
		{"te?t", 10, []string{"love", "the", "considerate", "qq", "test"}, []string{"test"}},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s/%d/%d", tc.pattern, tc.limit, len(tc.words)), func(t *testing.T) {
			opts := DefaultOptions()
			opts.Logger = quiet
			r := mustNew(t, tc.words, opts)
			res := r.Retrieve(query.MustParse(tc.pattern), tc.limit)
			if tc.expect == nil {
				assert.Empty(t, res.Words)
				return
			}
			assert.Equal(t, tc.expect, res.Words)
		})
	}
}

func TestPlannerMethods(t *testing.T) {
	words := []string{"cat", "cats", "dog", "do", "dot", "cot"}
	opts := DefaultOptions()
	opts.Logger = quiet
	r := mustNew(t, words, opts)

	testCases := []struct {
		pattern    string
		method     Method
		candidates int
		expect     []string
	}{
		{"*", MethodMatchAny, 6, []string{"cat", "cats", "dog", "do", "dot", "cot"}},
		{"{s}*", MethodMatchAny, 6, []string{"cat", "cats", "dog", "do", "dot", "cot"}},
		{"cats", MethodWordIndex, 1, []string{"cats"}},
		{"[cd]o[gt]", MethodWordIndex, 4, []string{"dog", "dot", "cot"}},
		{"??", MethodPlaceholdersOnly, 1, []string{"do"}},
		{"???*", MethodPlaceholdersOnly, 6 - 1, []string{"cat", "cats", "dog", "dot", "cot"}},
		{"do?", MethodSelection, 0, []string{"dog", "dot"}},
		{"*t", MethodSelection, 0, []string{"cat", "dot", "cot"}},
		{"x*", MethodNoMatch, 0, nil},
		{"?????", MethodPlaceholdersOnly, 0, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.pattern, func(t *testing.T) {
			res := r.Retrieve(query.MustParse(tc.pattern), 10)
			assert.Equal(t, tc.method, res.Method)
			if tc.candidates > 0 {
				assert.Equal(t, tc.candidates, res.Candidates)
			}
			if tc.expect == nil {
				assert.Empty(t, res.Words)
			} else {
				assert.Equal(t, tc.expect, res.Words)
			}
		})
	}

	t.Run("full scan without indexes", func(t *testing.T) {
		o := opts
		o.UseWordIndex, o.UseLengthMatcher, o.UseSubstringTrie, o.UseLTRTrie, o.UseRTLTrie = false, false, false, false, false
		bare := mustNew(t, words, o)
		for _, p := range []string{"cats", "??", "do?"} {
			res := bare.Retrieve(query.MustParse(p), 10)
			assert.Equal(t, MethodFullScan, res.Method, p)
			assert.Equal(t, len(words), res.Candidates)
		}
	})

	t.Run("threshold", func(t *testing.T) {
		o := opts
		o.WordIndexThreshold = 3
		small := mustNew(t, words, o)
		res := small.Retrieve(query.MustParse("[cd]o[gt]"), 10)
		assert.Equal(t, MethodSelection, res.Method)
		assert.Equal(t, []string{"dog", "dot", "cot"}, res.Words)
	})

	t.Run("non-positive limit", func(t *testing.T) {
		for _, limit := range []int{0, -1} {
			res := r.Retrieve(query.MustParse("*"), limit)
			assert.Empty(t, res.Words)
		}
	})
}

func TestScanner(t *testing.T) {
	s := NewScanner([]string{"cat", "cats", "dog"}, nil)
	res := s.Retrieve(query.MustParse("cat*"), 10)
	assert.Equal(t, []string{"cat", "cats"}, res.Words)
	assert.Equal(t, MethodFullScan, res.Method)
	assert.Equal(t, 3, res.Candidates)
	assert.Empty(t, s.Retrieve(query.MustParse("*"), 0).Words)
	assert.Equal(t, map[string]int{"words": 3}, s.Stats())
}

func TestStats(t *testing.T) {
	opts := DefaultOptions()
	opts.Logger = quiet
	r := mustNew(t, testWords, opts)
	stats := r.Stats()
	assert.Equal(t, len(testWords), stats["words"])
	assert.Equal(t, 0, stats["min_length"])
	assert.Equal(t, 12, stats["max_length"])
	assert.Equal(t, 12, stats["ltr_trie_positions"])
	for _, key := range []string{"word_index_buckets", "ltr_trie_nodes", "rtl_trie_nodes", "substring_trie_nodes"} {
		assert.Positive(t, stats[key], key)
	}

	opts.UseLTRTrie, opts.UseSubstringTrie = false, false
	stats = mustNew(t, testWords, opts).Stats()
	assert.NotContains(t, stats, "ltr_trie_nodes")
	assert.NotContains(t, stats, "substring_trie_nodes")
	assert.Contains(t, stats, "rtl_trie_nodes")
}

func TestInvalidOptions(t *testing.T) {
	for name, mutate := range map[string]func(*Options){
		"threshold":   func(o *Options) { o.WordIndexThreshold = -1 },
		"ratio":       func(o *Options) { o.SelectionRatio = -2 },
		"parallelism": func(o *Options) { o.Parallelism = -3 },
	} {
		t.Run(name, func(t *testing.T) {
			opts := DefaultOptions()
			mutate(&opts)
			r, err := New(testWords, opts)
			assert.ErrorIs(t, err, ErrInvalidOptions)
			assert.Nil(t, r)
		})
	}
}

func TestEmptyDictionary(t *testing.T) {
	opts := DefaultOptions()
	opts.Logger = quiet
	r := mustNew(t, nil, opts)
	for _, p := range []string{"*", "a", "?", "a*b", "[ab]"} {
		assert.Empty(t, r.Retrieve(query.MustParse(p), 10).Words, p)
	}
}

func TestMetricsAreRecorded(t *testing.T) {
	m := metrics.New(nil)
	opts := DefaultOptions()
	opts.Logger = quiet
	opts.Metrics = m
	r := mustNew(t, testWords, opts)

	r.Retrieve(query.MustParse("*"), 5)
	r.Retrieve(query.MustParse("love"), 5)
	r.Retrieve(query.MustParse("te?t"), 5)

	assert.Equal(t, float64(len(testWords)), testutil.ToFloat64(m.DictionaryWords))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RetrievalsTotal.WithLabelValues(string(MethodMatchAny))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RetrievalsTotal.WithLabelValues(string(MethodWordIndex))))
	assert.Equal(t, 5, testutil.CollectAndCount(m.IndexBuildSeconds))
}

func TestConcurrentRetrieve(t *testing.T) {
	opts := DefaultOptions()
	opts.Logger = quiet
	opts.Substring, opts.LTR, opts.RTL = fine(2), fine(2), fine(2)
	r := mustNew(t, testWords, opts)

	queries := make([]*query.Query, len(query.SamplePatterns))
	want := make([][]string, len(query.SamplePatterns))
	for i, p := range query.SamplePatterns {
		queries[i] = query.MustParse(p)
		want[i] = r.Retrieve(queries[i], 20).Words
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for round := 0; round < 20; round++ {
				for i := range queries {
					j := (i + offset) % len(queries)
					assert.Equal(t, want[j], r.Retrieve(queries[j], 20).Words)
				}
			}
		}(w)
	}
	wg.Wait()
}

func BenchmarkRetrieve(b *testing.B) {
	words := make([]string, 0, 50000)
	for i := 0; len(words) < 50000; i++ {
		for _, w := range testWords {
			words = append(words, fmt.Sprintf("%s%d", w, i))
		}
	}
	opts := DefaultOptions()
	opts.Logger = quiet
	r := mustNew(b, words, opts)
	queries := make([]*query.Query, len(query.SamplePatterns))
	for i, p := range query.SamplePatterns {
		queries[i] = query.MustParse(p)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Retrieve(queries[i%len(queries)], 20)
	}
}
