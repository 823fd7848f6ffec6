/*
Package server implements msgpack IPC for wildcard word retrieval.

The server reads a stream of msgpack maps on stdin and writes one msgpack map
per request to stdout. Messages are processed synchronously with timing info
included in responses. Logs never go to stdout.

# IPC

Each request carries an ID that is echoed back. A retrieval looks like:

	{"id": "req_001", "p": "c?n*", "l": 24}

and is answered with the matches in dictionary order, the method the planner
chose and the time taken in microseconds:

	{"id": "req_001", "w": ["can", "cane", "cent"], "c": 3, "m": "Selection", "t": 145}

The pattern is read in the server's configured syntax unless the request
names one:

	{"id": "req_003", "p": "colo+r", "syntax": "netspeak"}

An action other than retrieval is named explicitly:

	{"id": "s_001", "action": "stats"}
	{"id": "h_001", "action": "health"}

Failures are reported per request and never stop the loop:

	{"id": "req_002", "e": "invalid pattern: ...", "c": 400}

The server announces itself with {"status": "ready"} and exits cleanly on EOF.
*/
package server

import "github.com/bastiangx/wordmatch/pkg/query"

// Request is a single client message. An empty Action or "retrieve" runs a
// retrieval of Pattern.
type Request struct {
	ID      string `msgpack:"id"`
	Pattern string `msgpack:"p"`
	Limit   int    `msgpack:"l,omitempty"`
	Action  string `msgpack:"action,omitempty"`
	Syntax  string `msgpack:"syntax,omitempty"` // "standard" or "netspeak"
}

// Request actions.
const (
	ActionRetrieve = "retrieve"
	ActionStats    = "stats"
	ActionHealth   = "health"
)

// RetrieveResponse - retrieval result
type RetrieveResponse struct {
	ID        string   `msgpack:"id"`
	Words     []string `msgpack:"w"`
	Count     int      `msgpack:"c"`
	Method    string   `msgpack:"m"`
	TimeTaken int64    `msgpack:"t"`
}

// StatsResponse - index sizes as reported by the engine
type StatsResponse struct {
	ID     string         `msgpack:"id"`
	Status string         `msgpack:"status"`
	Stats  map[string]int `msgpack:"stats"`
}

// StatusResponse is sent on startup and for health checks.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

// Options bounds what a client may ask for.
type Options struct {
	MaxLimit     int
	DefaultLimit int
	MaxPattern   int // in characters
	Syntax       query.Syntax
}

// DefaultOptions mirrors the [server] defaults of the config file.
func DefaultOptions() Options {
	return Options{MaxLimit: 1000, DefaultLimit: 50, MaxPattern: 256}
}
