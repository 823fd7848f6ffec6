package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/wordmatch/internal/logger"
	"github.com/bastiangx/wordmatch/pkg/query"
	"github.com/bastiangx/wordmatch/pkg/retrieve"
)

// Server handles the IPC for word retrieval
type Server struct {
	engine   retrieve.Engine
	opts     Options
	dec      *msgpack.Decoder
	out      *bufio.Writer
	log      *log.Logger
	requests int
}

// NewServer creates a server using stdin/stdout for IPC
func NewServer(engine retrieve.Engine, opts Options) *Server {
	return NewWithIO(engine, opts, os.Stdin, os.Stdout)
}

// NewWithIO creates a server reading requests from r and writing replies to w.
func NewWithIO(engine retrieve.Engine, opts Options, r io.Reader, w io.Writer) *Server {
	def := DefaultOptions()
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = def.MaxLimit
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = def.DefaultLimit
	}
	opts.DefaultLimit = min(opts.DefaultLimit, opts.MaxLimit)
	if opts.MaxPattern <= 0 {
		opts.MaxPattern = def.MaxPattern
	}
	return &Server{
		engine: engine,
		opts:   opts,
		dec:    msgpack.NewDecoder(bufio.NewReader(r)),
		out:    bufio.NewWriter(w),
		log:    logger.New("ipc"),
	}
}

// SetLogger replaces the server's logger.
func (s *Server) SetLogger(l *log.Logger) { s.log = l }

// Requests returns how many requests were handled so far.
func (s *Server) Requests() int { return s.requests }

// Start sends the ready message and serves requests until the input ends.
// Only I/O failures are returned; bad requests get an ErrorResponse.
func (s *Server) Start() error {
	s.log.Debug("Starting Server.")
	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		raw, err := s.dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debugf("Input closed after %d requests", s.requests)
				return nil
			}
			s.log.Errorf("Reading from stdin: %v", err)
			return err
		}
		s.requests++
		if err := s.handle(raw); err != nil {
			s.log.Errorf("Writing to stdout: %v", err)
			return err
		}
	}
}

func (s *Server) handle(raw msgpack.RawMessage) error {
	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		s.log.Debugf("Unmarshaling request: %v", err)
		return s.sendError("", "invalid request", 400)
	}

	switch req.Action {
	case "", ActionRetrieve:
		return s.handleRetrieve(req)
	case ActionStats:
		return s.send(StatsResponse{ID: req.ID, Status: "ok", Stats: s.engine.Stats()})
	case ActionHealth:
		return s.send(StatusResponse{ID: req.ID, Status: "ok"})
	}
	return s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
}

func (s *Server) handleRetrieve(req Request) error {
	if req.Pattern == "" {
		return s.sendError(req.ID, "missing 'p' parameter", 400)
	}
	if n := utf8.RuneCountInString(req.Pattern); n > s.opts.MaxPattern {
		return s.sendError(req.ID, fmt.Sprintf("pattern exceeds maximum length of %d characters", s.opts.MaxPattern), 400)
	}
	syntax := s.opts.Syntax
	if req.Syntax != "" {
		parsed, err := query.ParseSyntax(req.Syntax)
		if err != nil {
			return s.sendError(req.ID, err.Error(), 400)
		}
		syntax = parsed
	}
	q, err := syntax.Parse(req.Pattern)
	if err != nil {
		return s.sendError(req.ID, fmt.Sprintf("invalid pattern: %v", err), 400)
	}

	limit := s.clampLimit(req.Limit)
	start := time.Now()
	res := s.engine.Retrieve(q, limit)
	elapsed := time.Since(start)

	s.log.Debug("retrieve", "id", req.ID, "pattern", req.Pattern, "method", res.Method,
		"results", len(res.Words), "took", elapsed)

	words := res.Words
	if words == nil {
		words = []string{}
	}
	return s.send(RetrieveResponse{
		ID:        req.ID,
		Words:     words,
		Count:     len(words),
		Method:    string(res.Method),
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) clampLimit(limit int) int {
	if limit <= 0 {
		return s.opts.DefaultLimit
	}
	return min(limit, s.opts.MaxLimit)
}

// send encodes v and flushes it. An encoding failure is reported to the
// client as a 500; a write failure is returned.
func (s *Server) send(v any) error {
	data, err := msgpack.Marshal(v)
	if err != nil {
		s.log.Errorf("Marshaling response: %v", err)
		if data, err = msgpack.Marshal(ErrorResponse{Error: "internal server error", Code: 500}); err != nil {
			return err
		}
	}
	if _, err := s.out.Write(data); err != nil {
		return err
	}
	return s.out.Flush()
}

func (s *Server) sendError(id, message string, code int) error {
	s.log.Debug("request failed", "id", id, "code", code, "error", message)
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
