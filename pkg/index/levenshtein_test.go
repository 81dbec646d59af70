package index

import "testing"

// rowDistance runs the row primitives over a whole candidate, the way the
// fuzzy trie descent does one rune at a time.
func rowDistance(target, candidate []rune, maxDist int) (int, bool) {
	row := newDistanceRow(len(target))
	next := make([]int, len(row))
	for _, r := range candidate {
		if advanceDistanceRow(row, next, target, r) > maxDist {
			return 0, false
		}
		row, next = next, row
	}
	d := row[len(target)]
	return d, d <= maxDist
}

func TestDistanceRow(t *testing.T) {
	testCases := []struct {
		a, b        string
		maxDist     int
		wantDist    int
		wantOK      bool
		description string
	}{
		{"hello", "hello", 2, 0, true, "identical strings"},
		{"", "", 1, 0, true, "both empty"},
		{"", "ab", 2, 2, true, "empty against short"},
		{"", "abc", 2, 0, false, "empty against too long"},
		{"helo", "hello", 1, 1, true, "one missing character"},
		{"helo", "help", 1, 1, true, "one substitution"},
		{"helo", "held", 1, 1, true, "one substitution at the end"},
		{"helo", "hold", 2, 2, true, "two edits inside bound"},
		{"helo", "hold", 1, 0, false, "two edits over bound"},
		{"kitten", "sitting", 3, 3, true, "classic three-edit pair"},
		{"kitten", "sitting", 2, 0, false, "classic pair over bound"},
		{"abc", "xyz", 2, 0, false, "all substitutions over bound"},
		{"short", "muchlongerword", 4, 0, false, "length gap over bound"},
		{"café", "cafe", 1, 1, true, "multibyte rune counts as one edit"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			dist, ok := rowDistance([]rune(tc.a), []rune(tc.b), tc.maxDist)
			if ok != tc.wantOK {
				t.Fatalf("rowDistance(%q, %q, %d) ok = %v, want %v",
					tc.a, tc.b, tc.maxDist, ok, tc.wantOK)
			}
			if ok && dist != tc.wantDist {
				t.Errorf("rowDistance(%q, %q, %d) = %d, want %d",
					tc.a, tc.b, tc.maxDist, dist, tc.wantDist)
			}
		})
	}
}

func TestDistanceRowSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"hello", "helo"},
		{"kitten", "sitting"},
		{"abc", "abcd"},
	}
	for _, p := range pairs {
		d1, ok1 := rowDistance([]rune(p[0]), []rune(p[1]), 4)
		d2, ok2 := rowDistance([]rune(p[1]), []rune(p[0]), 4)
		if ok1 != ok2 || d1 != d2 {
			t.Errorf("distance(%q, %q) = (%d, %v) but reversed = (%d, %v)",
				p[0], p[1], d1, ok1, d2, ok2)
		}
	}
}
