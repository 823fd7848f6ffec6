//go:build wordmatch_debug

package sortedset

// debugChecks enables ordering and subset assertions that are too costly for
// regular builds.
const debugChecks = true
