package retrieve

import (
	"time"

	"github.com/bastiangx/wordmatch/pkg/metrics"
	"github.com/bastiangx/wordmatch/pkg/query"
)

// Scanner tests every word with the compiled predicate.
type Scanner struct {
	words   []string
	metrics *metrics.Metrics
}

// NewScanner wraps words. m may be nil.
func NewScanner(words []string, m *metrics.Metrics) *Scanner {
	return &Scanner{words: words, metrics: m}
}

func (s *Scanner) Retrieve(q *query.Query, limit int) Result {
	start := time.Now()
	res := Result{Method: MethodFullScan, Candidates: len(s.words)}
	if limit > 0 {
		res.Words = scan(s.words, nil, q.Compile(), limit)
	}
	s.metrics.ObserveRetrieve(string(res.Method), time.Since(start), len(res.Words))
	return res
}

func (s *Scanner) Stats() map[string]int {
	return map[string]int{"words": len(s.words)}
}
