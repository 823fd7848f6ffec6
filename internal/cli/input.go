// Package cli handles cmd line input for trying patterns against the engines
// and timing them.
package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordmatch/internal/logger"
	"github.com/bastiangx/wordmatch/internal/utils"
	"github.com/bastiangx/wordmatch/pkg/query"
	"github.com/bastiangx/wordmatch/pkg/retrieve"
)

// Engine names accepted by $ENGINE.
const (
	EngineIndex = "index"
	EngineScan  = "scan"
)

const helpText = `commands:
  $HELP            show this help
  $STATS           dictionary and index sizes
  $LIMIT n         return at most n matches
  $ENGINE name     switch between "index" and "scan"
  $SYNTAX name     read patterns as "standard" or "netspeak"
  $CASES           run the sample patterns and time them
anything else is read as a pattern
  standard: ? one char, * any run, [abc] one of, {abc} optional
  netspeak: ? one char, * any run, + one or more, [a] optional, [abc] one of, {abc} one of per char`

// InputHandler reads patterns and $ commands line by line and prints the
// matches. Either engine may be nil, but not both.
type InputHandler struct {
	engines      map[string]retrieve.Engine
	active       string
	syntax       query.Syntax
	limit        int
	preview      int
	reader       *bufio.Reader
	log          *log.Logger
	requestCount int
}

// NewInputHandler reads standard syntax patterns from stdin and prints to
// stderr.
// preview bounds how many matches are printed per pattern.
func NewInputHandler(index, scan retrieve.Engine, limit, preview int) *InputHandler {
	h := &InputHandler{
		engines: make(map[string]retrieve.Engine, 2),
		limit:   max(limit, 1),
		preview: max(preview, 1),
		reader:  bufio.NewReader(os.Stdin),
		log:     logger.Default(""),
	}
	if index != nil {
		h.engines[EngineIndex] = index
		h.active = EngineIndex
	}
	if scan != nil {
		h.engines[EngineScan] = scan
		if h.active == "" {
			h.active = EngineScan
		}
	}
	return h
}

// SetInput replaces the line source.
func (h *InputHandler) SetInput(r io.Reader) { h.reader = bufio.NewReader(r) }

// SetLogger replaces the output logger.
func (h *InputHandler) SetLogger(l *log.Logger) { h.log = l }

// SetSyntax selects the dialect patterns are read in.
func (h *InputHandler) SetSyntax(s query.Syntax) { h.syntax = s }

// Start begins the interface loop. It returns nil once the input ends.
func (h *InputHandler) Start() error {
	h.log.Print("wordmatch CLI")
	h.log.Print("type a pattern and press Enter, $HELP for commands (Ctrl+C to exit):")

	for {
		line, err := h.reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			h.handleInput(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (h *InputHandler) handleInput(line string) {
	h.requestCount++
	if !strings.HasPrefix(line, "$") {
		h.handlePattern(line)
		return
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToUpper(cmd) {
	case "$HELP":
		h.log.Print(helpText)
	case "$STATS":
		h.printStats()
	case "$LIMIT":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			h.log.Errorf("$LIMIT wants a positive number, got '%s'", arg)
			return
		}
		h.limit = n
		h.log.Printf("limit set to %s", utils.FormatWithCommas(n))
	case "$ENGINE":
		name := strings.ToLower(arg)
		if _, ok := h.engines[name]; !ok {
			h.log.Errorf("unknown or unavailable engine '%s' (have: %s)", arg, strings.Join(h.engineNames(), ", "))
			return
		}
		h.active = name
		h.log.Printf("engine set to %s", name)
	case "$SYNTAX":
		syntax, err := query.ParseSyntax(arg)
		if err != nil || arg == "" {
			h.log.Errorf("$SYNTAX wants standard or netspeak, got '%s'", arg)
			return
		}
		h.syntax = syntax
		h.log.Printf("syntax set to %s", syntax)
	case "$CASES":
		h.runCases()
	default:
		h.log.Errorf("unknown command %s, try $HELP", cmd)
	}
}

func (h *InputHandler) engineNames() []string {
	names := make([]string, 0, len(h.engines))
	for name := range h.engines {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (h *InputHandler) handlePattern(pattern string) {
	q, err := h.syntax.Parse(pattern)
	if err != nil {
		h.log.Errorf("Invalid pattern: %v", err)
		return
	}

	start := time.Now()
	res := h.engines[h.active].Retrieve(q, h.limit)
	elapsed := time.Since(start)
	log.Debug("Processed", "pattern", q.String(), "candidates", res.Candidates, "took", elapsed)

	if len(res.Words) == 0 {
		h.log.Warnf("No matches for '%s' [%s, %v]", pattern, res.Method, elapsed)
		return
	}

	h.log.Printf("Found %s matches for '%s' [%s, %v]:",
		utils.FormatWithCommas(len(res.Words)), pattern, res.Method, elapsed)
	shown := min(len(res.Words), h.preview)
	for i, w := range res.Words[:shown] {
		h.log.Printf("%2d. \033[38;5;75m%s\033[0m", i+1, w)
	}
	if rest := len(res.Words) - shown; rest > 0 {
		h.log.Printf("... and %s more", utils.FormatWithCommas(rest))
	}
}

func (h *InputHandler) printStats() {
	stats := h.engines[h.active].Stats()
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	h.log.Printf("engine: %s", h.active)
	for _, k := range keys {
		h.log.Printf("  %-22s %12s", k, utils.FormatWithCommas(stats[k]))
	}
}

func (h *InputHandler) runCases() {
	engine := h.engines[h.active]
	var total time.Duration
	for _, pattern := range query.SamplePatterns {
		// samples are written in the standard syntax
		q, err := query.Parse(pattern)
		if err != nil {
			h.log.Errorf("sample %s: %v", pattern, err)
			continue
		}
		start := time.Now()
		res := engine.Retrieve(q, h.limit)
		took := time.Since(start)
		total += took
		h.log.Printf("%-16s %10s  %-16s %v",
			pattern, utils.FormatWithCommas(len(res.Words)), res.Method, took)
	}
	h.log.Printf("%d patterns on %s in %v", len(query.SamplePatterns), h.active, total)
}
