package index

// Levenshtein dynamic program over a single row, oriented for incremental
// trie descent: the row spans the target term and advances one candidate
// rune at a time.

// newDistanceRow returns the DP row of the empty candidate prefix.
func newDistanceRow(targetLen int) []int {
	row := make([]int, targetLen+1)
	for j := range row {
		row[j] = j
	}
	return row
}

// advanceDistanceRow fills next from row for a candidate prefix extended by r
// and returns the new row minimum. A minimum above the distance bound means
// no extension of that prefix can come back under it.
func advanceDistanceRow(row, next []int, target []rune, r rune) int {
	next[0] = row[0] + 1
	rowMin := next[0]
	for j := 1; j <= len(target); j++ {
		cost := 1
		if target[j-1] == r {
			cost = 0
		}
		next[j] = min(next[j-1]+1, row[j]+1, row[j-1]+cost)
		if next[j] < rowMin {
			rowMin = next[j]
		}
	}
	return rowMin
}
