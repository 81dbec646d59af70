package index

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/charmbracelet/log"
)

// DocID identifies a document within one Index. ID 0 is a reserved internal
// slot and never refers to a real document.
type DocID uint32

// Posting records that a term occurs in a document, with a bitmask of the
// fields it occurs in.
type Posting struct {
	Doc       DocID
	FieldMask uint64
}

// MaxFields is the number of indexable fields; one bit each in the mask.
const MaxFields = 64

// AllFields is the field mask matching every field.
const AllFields = ^uint64(0)

// Index is a minimal inverted index: documents with named fields, a term
// vocabulary trie and per-term posting lists. It is safe for concurrent
// reads while documents are being added.
type Index struct {
	mu       sync.RWMutex
	fields   map[string]uint64
	terms    *Trie
	postings map[string][]Posting
	// nextDoc starts at 1: slot 0 is the reserved document counted by
	// TotalDocs but never holding postings.
	nextDoc DocID
}

// NewIndex creates an index over the given field names, assigning mask bits
// in order. At most MaxFields fields; duplicate names are rejected.
func NewIndex(fields []string) (*Index, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("index needs at least one field")
	}
	if len(fields) > MaxFields {
		return nil, fmt.Errorf("too many fields: %d (max %d)", len(fields), MaxFields)
	}
	fm := make(map[string]uint64, len(fields))
	for i, name := range fields {
		if _, dup := fm[name]; dup {
			return nil, fmt.Errorf("duplicate field name: %s", name)
		}
		fm[name] = 1 << uint(i)
	}
	return &Index{
		fields:   fm,
		terms:    NewTrie(),
		postings: make(map[string][]Posting),
		nextDoc:  1,
	}, nil
}

// MaskFor resolves field names into a mask. An empty list means all fields.
func (ix *Index) MaskFor(fields ...string) (uint64, error) {
	if len(fields) == 0 {
		return AllFields, nil
	}
	var mask uint64
	for _, name := range fields {
		bit, ok := ix.fields[name]
		if !ok {
			return 0, fmt.Errorf("unknown field: %s", name)
		}
		mask |= bit
	}
	return mask, nil
}

// AddDocument indexes one document. Unknown field names are skipped with a
// warning rather than failing the whole document.
func (ix *Index) AddDocument(fields map[string]string) DocID {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	id := ix.nextDoc
	ix.nextDoc++

	// term -> OR of field bits it occurred in, so a term repeated across
	// fields yields one posting per document.
	masks := make(map[string]uint64)
	for name, text := range fields {
		bit, ok := ix.fields[name]
		if !ok {
			log.Warnf("document %d: unknown field %q skipped", id, name)
			continue
		}
		for _, term := range Tokenize(text) {
			masks[term] |= bit
		}
	}

	for term, mask := range masks {
		ix.terms.Insert(term, 1)
		ix.postings[term] = append(ix.postings[term], Posting{Doc: id, FieldMask: mask})
	}
	return id
}

// Terms returns the main vocabulary trie.
func (ix *Index) Terms() *Trie {
	return ix.terms
}

// TotalDocs returns the corpus document count, including the reserved slot.
func (ix *Index) TotalDocs() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return int(ix.nextDoc)
}

// OpenPostings opens a field-filtered reader over the posting list for term.
// It returns nil when the term has no posting list at all.
func (ix *Index) OpenPostings(term string, fieldMask uint64) *PostingReader {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	pl, ok := ix.postings[term]
	if !ok {
		return nil
	}
	return &PostingReader{postings: pl, filter: fieldMask}
}

// PostingReader iterates the postings of one term, skipping entries whose
// field mask does not intersect the filter. A single Read call is enough to
// test non-emptiness under the filter.
type PostingReader struct {
	postings []Posting
	filter   uint64
	pos      int
}

// Read returns the next matching posting, or ok=false at end of stream.
func (r *PostingReader) Read() (Posting, bool) {
	for r.pos < len(r.postings) {
		p := r.postings[r.pos]
		r.pos++
		if p.FieldMask&r.filter != 0 {
			return p, true
		}
	}
	return Posting{}, false
}

// DocCount returns the unfiltered number of documents containing the term.
func (r *PostingReader) DocCount() int {
	return len(r.postings)
}

// Tokenize splits text into lowercased terms on non-alphanumeric boundaries.
// Stemming and language-specific normalization happen upstream of this
// subsystem; this is only the boundary split the index itself needs.
func Tokenize(text string) []string {
	var tokens []string
	var cur strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			cur.WriteRune(r)
			continue
		}
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}
