// Package spell implements the fuzzy spelling-suggestion engine: it walks a
// parsed query tree, finds literal terms missing from the indexed
// vocabulary and emits ranked alternative spellings drawn from the
// vocabulary and any configured supplementary dictionaries.
package spell

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/searchkit/spellserve/pkg/index"
	"github.com/searchkit/spellserve/pkg/query"
)

// NoSuggestionsReply is emitted in place of the suggestion list when fuzzy
// enumeration found nothing for a term.
const NoSuggestionsReply = "no spelling corrections found"

const termMarker = "TERM"

// MaxDistance caps the configurable edit-distance bound.
const MaxDistance = 4

// ErrUnknownDictionary is returned by Run when a configured dictionary does
// not exist. The wrapped message names the dictionary.
var ErrUnknownDictionary = errors.New("unknown dictionary")

// Options configures one spell-check request. Immutable once the checker is
// built.
type Options struct {
	// MaxDistance bounds the edit distance of fuzzy candidates; clamped to
	// [1, MaxDistance].
	MaxDistance int
	// Include dictionaries contribute extra suggestion candidates, in order.
	Include []string
	// Exclude dictionaries whitelist terms that never need correction.
	Exclude []string
	// FullScoreInfo selects raw document counts over normalized ratios, for
	// aggregation across cluster shards.
	FullScoreInfo bool
}

// Dictionaries is the host key space the include/exclude names resolve in.
type Dictionaries interface {
	Exists(name string) bool
	Open(name string) (*index.Trie, func(), bool)
}

// Replier receives the response protocol emit calls.
type Replier interface {
	Array(n int)
	PostponedArray()
	SetArrayLength(n int)
	String(s string)
	Double(f float64)
	Integer(i int64)
}

// Checker orchestrates spell checking for one search context. It is
// synchronous: every operation is a blocking in-process call against
// already-resident index structures.
type Checker struct {
	index *index.Index
	dicts Dictionaries
	opts  Options
	score scoreFunc
}

// New builds a checker over the given index and dictionary store.
func New(ix *index.Index, dicts Dictionaries, opts Options) *Checker {
	if opts.MaxDistance < 1 {
		opts.MaxDistance = 1
	}
	if opts.MaxDistance > MaxDistance {
		opts.MaxDistance = MaxDistance
	}
	score := ratioScore
	if opts.FullScoreInfo {
		score = fullScore
	}
	return &Checker{index: ix, dicts: dicts, opts: opts, score: score}
}

// Run walks the query tree and emits the full spell-check response. It
// validates every configured dictionary first and aborts with
// ErrUnknownDictionary, producing no output, when one is missing. Every
// other condition is absorbed: the traversal always completes once started.
func (c *Checker) Run(rep Replier, root *query.Node) error {
	if err := c.checkDictsExist(); err != nil {
		return err
	}

	// One read per request: the corpus may keep growing underneath us, but
	// every candidate of this request is scored against the same total.
	totalDocs := c.index.TotalDocs()

	rep.PostponedArray()

	if c.opts.FullScoreInfo {
		// The coordinator needs the corpus size to renormalize raw counts.
		rep.Integer(int64(totalDocs - 1))
	}

	results := 0
	nodes := []*query.Node{root}
	for len(nodes) > 0 {
		node := nodes[len(nodes)-1]
		nodes = nodes[:len(nodes)-1]
		if node == nil {
			continue
		}

		switch node.Type {
		case query.Phrase, query.Union, query.Tag:
			nodes = append(nodes, node.Children...)
		case query.Not, query.Optional:
			if len(node.Children) > 0 {
				nodes = append(nodes, node.Children[0])
			}
		case query.Token:
			if c.suggestForTerm(rep, node.Term, node.FieldMask, totalDocs) {
				results++
			}
		case query.Prefix, query.Numeric, query.Geo, query.IDList, query.Wildcard, query.Fuzzy:
			// No literal term to correct.
		}
	}

	if c.opts.FullScoreInfo {
		results++
	}
	rep.SetArrayLength(results)
	return nil
}

// suggestForTerm runs the per-term protocol and reports whether a term
// block was emitted. Terms found verbatim in the main vocabulary or in an
// exclude dictionary need no correction and emit nothing.
func (c *Checker) suggestForTerm(rep Replier, term string, fieldMask uint64, totalDocs int) bool {
	if c.index.Terms().Exists(term) {
		return false
	}

	for _, name := range c.opts.Exclude {
		t, release, ok := c.dicts.Open(name)
		if !ok {
			// Vanished since the existence check; treated as absent.
			log.Debugf("exclude dictionary %q vanished, skipping", name)
			continue
		}
		excluded := t.Exists(term)
		release()
		if excluded {
			return false
		}
	}

	rep.Array(3)
	rep.String(termMarker)
	rep.String(term)

	set := NewSuggestionSet()
	c.findSuggestions(c.index.Terms(), term, fieldMask, totalDocs, set)

	for _, name := range c.opts.Include {
		t, release, ok := c.dicts.Open(name)
		if !ok {
			log.Debugf("include dictionary %q vanished, skipping", name)
			continue
		}
		c.findSuggestions(t, term, fieldMask, totalDocs, set)
		release()
	}

	// One sort after all enumeration so the emitted order is globally
	// score-ascending, include-dictionary candidates included.
	set.SortByScore()

	if set.Len() == 0 {
		rep.String(NoSuggestionsReply)
		return true
	}

	rep.Array(set.Len())
	for _, s := range set.Suggestions() {
		rep.Array(2)
		rep.Double(s.Score)
		rep.String(s.Term)
	}
	return true
}

// findSuggestions enumerates fuzzy candidates of term from one trie into
// the set. Candidates whose field-filtered postings are empty are dropped;
// duplicates across repeated calls are rejected by the set.
func (c *Checker) findSuggestions(t *index.Trie, term string, fieldMask uint64, totalDocs int, set *SuggestionSet) {
	t.FuzzyIterate(term, c.opts.MaxDistance, func(candidate string, dist int) {
		score, ok := c.scoreTerm(candidate, fieldMask, totalDocs)
		if !ok {
			return
		}
		set.Add(candidate, score)
	})
}

// checkDictsExist is the fail-fast precondition: every configured
// dictionary must exist before any traversal or output begins. Dictionaries
// that disappear after this check are tolerated per term instead.
func (c *Checker) checkDictsExist() error {
	for _, name := range c.opts.Include {
		if !c.dicts.Exists(name) {
			return fmt.Errorf("%w: %s", ErrUnknownDictionary, name)
		}
	}
	for _, name := range c.opts.Exclude {
		if !c.dicts.Exists(name) {
			return fmt.Errorf("%w: %s", ErrUnknownDictionary, name)
		}
	}
	return nil
}
