// Package index holds the in-memory search index the spell checker reads
// from: the term vocabulary trie and the per-term posting lists with field
// bitmasks.
package index

import (
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Trie is an ordered trie over index terms. It backs the main vocabulary,
// the per-request dedup set and every named dictionary.
type Trie struct {
	rt  *patricia.Trie
	len int
	// alphabet counts rune occurrences across stored terms; fuzzy descent
	// extends candidate prefixes only by runes that actually occur.
	alphabet map[rune]int
}

// NewTrie returns an empty term trie.
func NewTrie() *Trie {
	return &Trie{rt: patricia.NewTrie(), alphabet: make(map[rune]int)}
}

// Exists reports whether term is stored verbatim. This is an exact
// membership test, never a fuzzy one.
func (t *Trie) Exists(term string) bool {
	return t.rt.Get(patricia.Prefix(term)) != nil
}

// Insert stores term with the given weight, overwriting the weight when the
// term is already present. It reports whether the term was new.
func (t *Trie) Insert(term string, weight float64) bool {
	inserted := t.rt.Insert(patricia.Prefix(term), weight)
	if inserted {
		t.len++
		for _, r := range term {
			t.alphabet[r]++
		}
	} else {
		t.rt.Set(patricia.Prefix(term), weight)
	}
	return inserted
}

// Delete removes term. It reports whether the term was present.
func (t *Trie) Delete(term string) bool {
	deleted := t.rt.Delete(patricia.Prefix(term))
	if deleted {
		t.len--
		for _, r := range term {
			t.alphabet[r]--
			if t.alphabet[r] == 0 {
				delete(t.alphabet, r)
			}
		}
	}
	return deleted
}

// Len returns the number of stored terms.
func (t *Trie) Len() int {
	return t.len
}

// Walk visits every stored term in trie order.
func (t *Trie) Walk(fn func(term string, weight float64)) {
	err := t.rt.Visit(func(p patricia.Prefix, item patricia.Item) error {
		w, _ := item.(float64)
		fn(string(p), w)
		return nil
	})
	if err != nil {
		log.Errorf("walking trie: %v", err)
	}
}

// FuzzyIterate enumerates every stored term within maxDist Levenshtein edits
// of term and calls fn with the candidate and its distance. The enumeration
// is finite and one-shot; order is unspecified. maxDist 0 degenerates to an
// exact lookup.
func (t *Trie) FuzzyIterate(term string, maxDist int, fn func(candidate string, dist int)) {
	if maxDist <= 0 {
		if t.Exists(term) {
			fn(term, 0)
		}
		return
	}

	target := []rune(term)
	t.descend(nil, newDistanceRow(len(target)), target, maxDist, fn)
}

// descend extends the candidate prefix one rune at a time, carrying the DP
// row of the prefix against the target. A branch is skipped when no stored
// term starts with the extended prefix or when the row minimum exceeds the
// bound, so whole subtrees drop out without visiting their terms.
func (t *Trie) descend(prefix []rune, row []int, target []rune, maxDist int, fn func(string, int)) {
	if d := row[len(target)]; d <= maxDist {
		if t.rt.Get(patricia.Prefix(string(prefix))) != nil {
			fn(string(prefix), d)
		}
	}

	next := make([]int, len(row))
	for r := range t.alphabet {
		extended := append(prefix, r)
		if !t.rt.MatchSubtree(patricia.Prefix(string(extended))) {
			continue
		}
		if advanceDistanceRow(row, next, target, r) > maxDist {
			continue
		}
		t.descend(extended, next, target, maxDist, fn)
	}
}
