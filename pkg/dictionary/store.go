// Package dictionary manages the named supplementary dictionaries the spell
// checker consults: an in-process key space of term tries with management
// operations and file loading.
package dictionary

import (
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/searchkit/spellserve/pkg/index"
)

// Store holds named dictionary tries. Reads take a handle that pins the
// dictionary for one bounded step; management operations may run
// concurrently from other goroutines of the host service.
type Store struct {
	mu    sync.RWMutex
	dicts map[string]*index.Trie
}

// NewStore returns an empty dictionary store.
func NewStore() *Store {
	return &Store{dicts: make(map[string]*index.Trie)}
}

// Exists reports whether the named dictionary is present right now. A
// dictionary may still vanish between Exists and Open; callers that can
// tolerate that should treat a failed Open as absence.
func (s *Store) Exists(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.dicts[name]
	return ok
}

// Open returns the named trie and a release closure that must be called when
// the caller is done with the handle. ok=false means the dictionary does not
// exist (or was dropped since the last Exists check).
func (s *Store) Open(name string) (*index.Trie, func(), bool) {
	s.mu.RLock()
	t, ok := s.dicts[name]
	if !ok {
		s.mu.RUnlock()
		return nil, nil, false
	}
	return t, s.mu.RUnlock, true
}

// Add inserts terms into the named dictionary, creating it on first use.
// It returns the number of terms that were new.
func (s *Store) Add(name string, terms ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.dicts[name]
	if !ok {
		t = index.NewTrie()
		s.dicts[name] = t
		log.Debugf("created dictionary %q", name)
	}
	added := 0
	for _, term := range terms {
		if t.Insert(term, 1) {
			added++
		}
	}
	return added
}

// Del removes terms from the named dictionary and returns how many were
// actually present. A missing dictionary deletes nothing.
func (s *Store) Del(name string, terms ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.dicts[name]
	if !ok {
		return 0
	}
	deleted := 0
	for _, term := range terms {
		if t.Delete(term) {
			deleted++
		}
	}
	return deleted
}

// Dump returns every term of the named dictionary in trie order.
func (s *Store) Dump(name string) ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.dicts[name]
	if !ok {
		return nil, false
	}
	terms := make([]string, 0, t.Len())
	t.Walk(func(term string, _ float64) {
		terms = append(terms, term)
	})
	return terms, true
}

// Drop removes the whole dictionary. Requests that already passed their
// existence check will simply skip it from then on.
func (s *Store) Drop(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dicts[name]; !ok {
		return false
	}
	delete(s.dicts, name)
	log.Debugf("dropped dictionary %q", name)
	return true
}

// Names lists the stored dictionaries, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.dicts))
	for name := range s.dicts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
