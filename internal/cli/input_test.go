package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/wordmatch/pkg/query"
	"github.com/bastiangx/wordmatch/pkg/retrieve"
)

var cliWords = []string{"cat", "cats", "dog", "do", "dot", "cot"}

func newHandler(t *testing.T, input string, withIndex bool) (*InputHandler, *bytes.Buffer) {
	t.Helper()
	var index retrieve.Engine
	if withIndex {
		opts := retrieve.DefaultOptions()
		opts.Logger = log.New(io.Discard)
		r, err := retrieve.New(cliWords, opts)
		require.NoError(t, err)
		index = r
	}

	var out bytes.Buffer
	h := NewInputHandler(index, retrieve.NewScanner(cliWords, nil), 10, 2)
	h.SetInput(strings.NewReader(input))
	h.SetLogger(log.New(&out))
	return h, &out
}

func TestPatternOutput(t *testing.T) {
	h, out := newHandler(t, "do?\n", true)
	require.NoError(t, h.Start())

	s := out.String()
	assert.Contains(t, s, "Found 2 matches for 'do?'")
	assert.Contains(t, s, "dog")
	assert.Contains(t, s, "dot")
	assert.Equal(t, 1, h.requestCount)
}

func TestPreviewAndLimit(t *testing.T) {
	h, out := newHandler(t, "$LIMIT 5\n*\n$LIMIT zero\n", true)
	require.NoError(t, h.Start())

	s := out.String()
	assert.Contains(t, s, "limit set to 5")
	assert.Contains(t, s, "Found 5 matches for '*'")
	assert.Contains(t, s, "... and 3 more")
	assert.Contains(t, s, "$LIMIT wants a positive number")
	assert.Equal(t, 5, h.limit)
}

func TestEngineSwitch(t *testing.T) {
	h, out := newHandler(t, "$engine scan\nc?t\n$ENGINE nope\n", true)
	require.NoError(t, h.Start())

	s := out.String()
	assert.Contains(t, s, "engine set to scan")
	assert.Contains(t, s, string(retrieve.MethodFullScan))
	assert.Contains(t, s, "unknown or unavailable engine 'nope' (have: index, scan)")
	assert.Equal(t, EngineScan, h.active)
}

func TestScanOnly(t *testing.T) {
	h, out := newHandler(t, "$ENGINE index\n", false)
	require.NoError(t, h.Start())

	assert.Equal(t, EngineScan, h.active)
	assert.Contains(t, out.String(), "(have: scan)")
}

func TestCommands(t *testing.T) {
	h, out := newHandler(t, "$HELP\n$STATS\n$CASES\n$WHAT\n[ab\nzzz\n", true)
	require.NoError(t, h.Start())

	s := out.String()
	assert.Contains(t, s, "$ENGINE name")
	assert.Contains(t, s, "engine: index")
	assert.Contains(t, s, "substring_trie_nodes")
	assert.Contains(t, s, "patterns on index in")
	assert.Contains(t, s, "unknown command $WHAT")
	assert.Contains(t, s, "Invalid pattern")
	assert.Contains(t, s, "No matches for 'zzz'")
}

func TestLastLineWithoutNewline(t *testing.T) {
	h, out := newHandler(t, "cats", true)
	require.NoError(t, h.Start())
	assert.Contains(t, out.String(), "Found 1 matches for 'cats'")
}

func TestSyntaxSwitch(t *testing.T) {
	h, out := newHandler(t, "c+\n$SYNTAX netspeak\nc+\ndo[g]\n$SYNTAX glob\n", true)
	require.NoError(t, h.Start())

	s := out.String()
	assert.Contains(t, s, "Invalid pattern")
	assert.Contains(t, s, "syntax set to netspeak")
	assert.Contains(t, s, "Found 3 matches for 'c+'")
	assert.Contains(t, s, "Found 2 matches for 'do[g]'")
	assert.Contains(t, s, "$SYNTAX wants standard or netspeak, got 'glob'")
	assert.Equal(t, query.SyntaxNetspeak, h.syntax)
}
