package dictionary

import (
	"reflect"
	"testing"
)

func TestStoreAddDelDump(t *testing.T) {
	s := NewStore()

	if s.Exists("slang") {
		t.Error("empty store reports slang")
	}

	if n := s.Add("slang", "lol", "brb", "lol"); n != 2 {
		t.Errorf("Add returned %d new terms, want 2", n)
	}
	if !s.Exists("slang") {
		t.Error("slang missing after Add")
	}

	terms, ok := s.Dump("slang")
	if !ok {
		t.Fatal("Dump of existing dictionary failed")
	}
	if !reflect.DeepEqual(terms, []string{"brb", "lol"}) {
		t.Errorf("Dump = %v, want sorted [brb lol]", terms)
	}

	if n := s.Del("slang", "lol", "nope"); n != 1 {
		t.Errorf("Del returned %d, want 1", n)
	}
	if n := s.Del("missing", "lol"); n != 0 {
		t.Errorf("Del on missing dictionary returned %d, want 0", n)
	}
	if _, ok := s.Dump("missing"); ok {
		t.Error("Dump of missing dictionary succeeded")
	}
}

func TestStoreOpenRelease(t *testing.T) {
	s := NewStore()
	s.Add("names", "alice", "bob")

	tr, release, ok := s.Open("names")
	if !ok {
		t.Fatal("Open of existing dictionary failed")
	}
	if !tr.Exists("alice") || tr.Exists("carol") {
		t.Error("opened trie has wrong membership")
	}
	release()

	if _, _, ok := s.Open("missing"); ok {
		t.Error("Open of missing dictionary succeeded")
	}
}

func TestStoreDrop(t *testing.T) {
	s := NewStore()
	s.Add("tmp", "x")

	if !s.Drop("tmp") {
		t.Error("Drop of existing dictionary failed")
	}
	if s.Exists("tmp") {
		t.Error("tmp still exists after Drop")
	}
	if s.Drop("tmp") {
		t.Error("second Drop succeeded")
	}
}

func TestStoreNames(t *testing.T) {
	s := NewStore()
	s.Add("zeta", "a")
	s.Add("alpha", "b")
	s.Add("mid", "c")

	if got := s.Names(); !reflect.DeepEqual(got, []string{"alpha", "mid", "zeta"}) {
		t.Errorf("Names() = %v, want sorted", got)
	}
}
