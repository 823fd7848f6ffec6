// Package retrieve answers wildcard queries against an in-memory dictionary.
//
// A Retriever plans each query over the matcher indexes and verifies the
// remaining candidates with the query's compiled predicate. A Scanner tests
// every word and serves as the baseline.
package retrieve

import "github.com/bastiangx/wordmatch/pkg/query"

// Method names the planner path a retrieval took.
type Method string

const (
	MethodMatchAny         Method = "MatchAny"
	MethodWordIndex        Method = "WordIndex"
	MethodPlaceholdersOnly Method = "PlaceholdersOnly"
	MethodSelection        Method = "Selection"
	MethodFullScan         Method = "FullScan"
	MethodNoMatch          Method = "NoMatch"
)

// Result holds the matching words in dictionary order. Candidates is the
// number of words the chosen method started from: the dictionary size for a
// scan, the number of combinations for WordIndex, the smallest selection's
// size otherwise.
type Result struct {
	Words      []string
	Method     Method
	Candidates int
}

// Engine retrieves the first matches of a query.
type Engine interface {
	// Retrieve returns at most limit words matching q.
	Retrieve(q *query.Query, limit int) Result

	// Stats reports the size of the dictionary and of each index.
	Stats() map[string]int
}

var (
	_ Engine = (*Retriever)(nil)
	_ Engine = (*Scanner)(nil)
)
