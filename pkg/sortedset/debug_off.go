//go:build !wordmatch_debug

package sortedset

const debugChecks = false
