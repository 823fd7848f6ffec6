package retrieve

import (
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordmatch/pkg/matcher"
	"github.com/bastiangx/wordmatch/pkg/metrics"
)

const (
	// DefaultWordIndexThreshold is the largest number of combinations that is
	// still looked up word by word.
	DefaultWordIndexThreshold = 100
	// DefaultSelectionRatio bounds how much larger the second smallest
	// selection may be for it to be intersected with the smallest.
	DefaultSelectionRatio = 25.0
)

// Options controls which index structures a Retriever builds and how its
// planner uses them.
type Options struct {
	UseWordIndex     bool
	UseLengthMatcher bool
	UseSubstringTrie bool
	UseLTRTrie       bool
	UseRTLTrie       bool

	Substring matcher.TrieOptions
	LTR       matcher.TrieOptions
	RTL       matcher.TrieOptions

	// Parallelism bounds the workers of each build. 0 means no bound.
	Parallelism int

	WordIndexThreshold int
	SelectionRatio     float64

	// Logger receives build progress. nil uses an "index" logger.
	Logger *log.Logger
	// Metrics is optional.
	Metrics *metrics.Metrics
}

// DefaultOptions enables every structure.
func DefaultOptions() Options {
	return Options{
		UseWordIndex:       true,
		UseLengthMatcher:   true,
		UseSubstringTrie:   true,
		UseLTRTrie:         true,
		UseRTLTrie:         true,
		Substring:          matcher.DefaultTrieOptions(),
		LTR:                matcher.DefaultTrieOptions(),
		RTL:                matcher.DefaultTrieOptions(),
		Parallelism:        runtime.GOMAXPROCS(0),
		WordIndexThreshold: DefaultWordIndexThreshold,
		SelectionRatio:     DefaultSelectionRatio,
	}
}
