package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/searchkit/spellserve/internal/logger"
	"github.com/searchkit/spellserve/pkg/config"
	"github.com/searchkit/spellserve/pkg/dictionary"
	"github.com/searchkit/spellserve/pkg/index"
	"github.com/searchkit/spellserve/pkg/query"
	"github.com/searchkit/spellserve/pkg/reply"
	"github.com/searchkit/spellserve/pkg/spell"
)

// Server handles the IPC for spell-check, index and dictionary requests.
// Requests are processed synchronously in arrival order.
type Server struct {
	ix    *index.Index
	dicts *dictionary.Store
	cfg   *config.Config
	dec   *msgpack.Decoder
	enc   *msgpack.Encoder
	log   *log.Logger
}

// NewServer creates a server using stdin/stdout for IPC.
func NewServer(ix *index.Index, dicts *dictionary.Store, cfg *config.Config) *Server {
	return NewServerIO(ix, dicts, cfg, os.Stdin, os.Stdout)
}

// NewServerIO creates a server over explicit streams, mainly for tests.
func NewServerIO(ix *index.Index, dicts *dictionary.Store, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		ix:    ix,
		dicts: dicts,
		cfg:   cfg,
		dec:   msgpack.NewDecoder(r),
		enc:   msgpack.NewEncoder(w),
		log:   logger.New("ipc"),
	}
}

// Start begins the request loop. It returns nil on clean EOF and the decode
// error otherwise: a broken msgpack stream cannot be resynchronized.
func (s *Server) Start() error {
	s.log.Debug("starting IPC loop")
	s.send(map[string]string{"status": "ready"})

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.log.Errorf("decoding request: %v", err)
			return err
		}
		s.handle(req)
	}
}

func (s *Server) handle(req Request) {
	switch req.Op {
	case "spellcheck":
		s.handleSpellCheck(req)
	case "index":
		s.handleIndex(req)
	case "dict":
		s.handleDict(req)
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown op: %s", req.Op), 400)
	}
}

func (s *Server) handleSpellCheck(req Request) {
	if len(req.Terms) == 0 {
		s.sendError(req.ID, "missing 'terms'", 400)
		return
	}
	if len(req.Terms) > s.cfg.Server.MaxTerms {
		s.sendError(req.ID, fmt.Sprintf("too many terms: %d (max %d)", len(req.Terms), s.cfg.Server.MaxTerms), 400)
		return
	}

	tokens := make([]*query.Node, 0, len(req.Terms))
	for _, qt := range req.Terms {
		if qt.Term == "" {
			s.sendError(req.ID, "empty term", 400)
			return
		}
		if len(qt.Term) > s.cfg.Server.MaxTermLen {
			s.sendError(req.ID, fmt.Sprintf("term exceeds maximum length of %d", s.cfg.Server.MaxTermLen), 400)
			return
		}
		mask, err := s.ix.MaskFor(qt.Fields...)
		if err != nil {
			s.sendError(req.ID, err.Error(), 400)
			return
		}
		tokens = append(tokens, query.NewToken(qt.Term, mask))
	}

	dist := req.Distance
	if dist == 0 {
		dist = s.cfg.Spell.MaxDistance
	}
	checker := spell.New(s.ix, s.dicts, spell.Options{
		MaxDistance:   dist,
		Include:       req.Include,
		Exclude:       req.Exclude,
		FullScoreInfo: req.Full || s.cfg.Spell.FullScoreInfo,
	})

	start := time.Now()
	b := reply.NewBuilder()
	if err := checker.Run(b, query.NewUnion(tokens...)); err != nil {
		if errors.Is(err, spell.ErrUnknownDictionary) {
			s.sendError(req.ID, err.Error(), 404)
		} else {
			s.sendError(req.ID, err.Error(), 500)
		}
		return
	}
	result, err := b.Value()
	if err != nil {
		s.log.Errorf("assembling reply: %v", err)
		s.sendError(req.ID, "internal server error", 500)
		return
	}
	elapsed := time.Since(start)

	s.send(SpellCheckResponse{
		ID:        req.ID,
		Result:    result,
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) handleIndex(req Request) {
	switch req.Action {
	case "add_doc":
		if len(req.Fields) == 0 {
			s.sendError(req.ID, "missing 'fields'", 400)
			return
		}
		doc := s.ix.AddDocument(req.Fields)
		s.send(IndexResponse{ID: req.ID, Status: "ok", Doc: uint32(doc)})
	case "info":
		s.send(IndexResponse{
			ID:        req.ID,
			Status:    "ok",
			TotalDocs: s.ix.TotalDocs(),
			Terms:     s.ix.Terms().Len(),
		})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown index action: %s", req.Action), 400)
	}
}

func (s *Server) handleDict(req Request) {
	if req.Dict == "" {
		s.sendError(req.ID, "missing 'dict'", 400)
		return
	}
	switch req.Action {
	case "add":
		n := s.dicts.Add(req.Dict, req.Words...)
		s.send(DictResponse{ID: req.ID, Status: "ok", Affected: n})
	case "del":
		n := s.dicts.Del(req.Dict, req.Words...)
		s.send(DictResponse{ID: req.ID, Status: "ok", Affected: n})
	case "dump":
		terms, ok := s.dicts.Dump(req.Dict)
		if !ok {
			s.sendError(req.ID, fmt.Sprintf("unknown dictionary: %s", req.Dict), 404)
			return
		}
		s.send(DictResponse{ID: req.ID, Status: "ok", Terms: terms, Affected: len(terms)})
	case "drop":
		if !s.dicts.Drop(req.Dict) {
			s.sendError(req.ID, fmt.Sprintf("unknown dictionary: %s", req.Dict), 404)
			return
		}
		s.send(DictResponse{ID: req.ID, Status: "ok"})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown dict action: %s", req.Action), 400)
	}
}

func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		s.log.Errorf("encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.log.Debugf("request %s failed: %s (%d)", id, message, code)
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
