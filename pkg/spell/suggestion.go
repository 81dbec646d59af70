package spell

import (
	"sort"

	"github.com/searchkit/spellserve/pkg/index"
)

// Suggestion is one alternative spelling with its relevance score. The score
// range depends on the scoring mode: [0,1] in ratio mode, a raw document
// count in full mode.
type Suggestion struct {
	Term  string
	Score float64
}

// SuggestionSet accumulates the candidates for a single misspelled term. A
// dedup trie mirrors the set's keys, so no two suggestions ever share a
// term. One set lives for exactly one term's processing.
type SuggestionSet struct {
	seen        *index.Trie
	suggestions []Suggestion
}

// NewSuggestionSet returns an empty set.
func NewSuggestionSet() *SuggestionSet {
	return &SuggestionSet{seen: index.NewTrie()}
}

// Add appends the term unless it is already in the set. It reports whether
// the term was accepted; on rejection the caller keeps the term and the
// set is untouched. The first producer of a term wins: candidates arriving
// later from other dictionaries are dropped here.
func (s *SuggestionSet) Add(term string, score float64) bool {
	if s.seen.Exists(term) {
		return false
	}
	s.seen.Insert(term, score)
	s.suggestions = append(s.suggestions, Suggestion{Term: term, Score: score})
	return true
}

// SortByScore orders the set by score strictly ascending. Ties keep no
// guaranteed order.
func (s *SuggestionSet) SortByScore() {
	sort.Slice(s.suggestions, func(i, j int) bool {
		return s.suggestions[i].Score < s.suggestions[j].Score
	})
}

// Len returns the number of suggestions held.
func (s *SuggestionSet) Len() int {
	return len(s.suggestions)
}

// Suggestions returns the underlying sequence in its current order.
func (s *SuggestionSet) Suggestions() []Suggestion {
	return s.suggestions
}
