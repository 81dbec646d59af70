package spell

import "testing"

func TestSuggestionSetDedup(t *testing.T) {
	set := NewSuggestionSet()

	if !set.Add("hello", 0.5) {
		t.Error("first Add rejected")
	}
	if set.Add("hello", 0.9) {
		t.Error("duplicate Add accepted")
	}
	if set.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", set.Len())
	}
	// First producer wins: the original score survives.
	if got := set.Suggestions()[0].Score; got != 0.5 {
		t.Errorf("score = %v after duplicate Add, want 0.5", got)
	}
}

func TestSuggestionSetSortAscending(t *testing.T) {
	set := NewSuggestionSet()
	set.Add("high", 0.9)
	set.Add("low", 0.1)
	set.Add("mid", 0.5)
	set.Add("zero", 0)

	set.SortByScore()

	got := set.Suggestions()
	wantOrder := []string{"zero", "low", "mid", "high"}
	for i, term := range wantOrder {
		if got[i].Term != term {
			t.Fatalf("position %d = %q, want %q (full: %v)", i, got[i].Term, term, got)
		}
	}
}
