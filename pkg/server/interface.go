/*
Package server implements msgpack IPC for the spell-check service.

The server reads structured messages from stdin and writes responses to
stdout using binary msgpack encoding. Each message carries an ID echoed in
the response and an op selecting the handler.

A spell-check request names the query terms with optional field
restrictions:

	{"id": "req_001", "op": "spellcheck", "terms": [{"t": "helo"}], "dist": 1}

The response carries the nested-array suggestion envelope:

	{"id": "req_001", "res": [["TERM", "helo", [[0.4, "held"], [0.6, "help"]]]], "t": 120}

Index ops feed documents into the in-memory index; dict ops manage the
supplementary dictionaries the include/exclude lists resolve against:

	{"id": "doc_001", "op": "index", "action": "add_doc", "fields": {"body": "hello world"}}
	{"id": "dict_01", "op": "dict", "action": "add", "dict": "slang", "words": ["lol"]}

Errors are reported per request with a code and message; a request naming a
dictionary that does not exist fails with 404 before any suggestion output
is computed.
*/
package server

// QueryTerm is one literal term of a spell-check request, optionally
// restricted to named schema fields (absent means all fields).
type QueryTerm struct {
	Term   string   `msgpack:"t"`
	Fields []string `msgpack:"f,omitempty"`
}

// Request is the single message envelope; Op selects which fields apply.
type Request struct {
	ID string `msgpack:"id"`
	Op string `msgpack:"op"` // "spellcheck", "index", "dict"

	// spellcheck
	Terms    []QueryTerm `msgpack:"terms,omitempty"`
	Distance int         `msgpack:"dist,omitempty"`
	Include  []string    `msgpack:"incl,omitempty"`
	Exclude  []string    `msgpack:"excl,omitempty"`
	Full     bool        `msgpack:"full,omitempty"`

	// index and dict
	Action string            `msgpack:"action,omitempty"` // index: "add_doc", "info"; dict: "add", "del", "dump", "drop"
	Fields map[string]string `msgpack:"fields,omitempty"`
	Dict   string            `msgpack:"dict,omitempty"`
	Words  []string          `msgpack:"words,omitempty"`
}

// SpellCheckResponse carries the suggestion envelope for one request.
type SpellCheckResponse struct {
	ID        string `msgpack:"id"`
	Result    any    `msgpack:"res"`
	TimeTaken int64  `msgpack:"t"` // microseconds
}

// IndexResponse answers index ops.
type IndexResponse struct {
	ID        string `msgpack:"id"`
	Status    string `msgpack:"status"`
	Doc       uint32 `msgpack:"doc,omitempty"`
	TotalDocs int    `msgpack:"total_docs,omitempty"`
	Terms     int    `msgpack:"terms,omitempty"`
}

// DictResponse answers dict ops.
type DictResponse struct {
	ID       string   `msgpack:"id"`
	Status   string   `msgpack:"status"`
	Affected int      `msgpack:"n,omitempty"`
	Terms    []string `msgpack:"terms,omitempty"`
}

// ErrorResponse holds basic error information for failed requests.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
