package spell

// scoreFunc turns a term's document count into a relevance score. The
// function is picked once from the scoring-mode flag when the checker is
// built, not branched per candidate.
type scoreFunc func(numDocs, totalDocs int) float64

// ratioScore normalizes against the full corpus, minus the reserved
// document counted in the total. Only valid when this node sees the whole
// corpus.
func ratioScore(numDocs, totalDocs int) float64 {
	return float64(numDocs) / float64(totalDocs-1)
}

// fullScore forwards the raw count so a cluster coordinator can renormalize
// across shards.
func fullScore(numDocs, _ int) float64 {
	return float64(numDocs)
}

// scoreTerm scores one fuzzy candidate against the index. ok=false means the
// field mask filtered out every occurrence and the candidate must be dropped
// entirely; a term with no posting list at all scores 0 but stays eligible.
func (c *Checker) scoreTerm(term string, fieldMask uint64, totalDocs int) (float64, bool) {
	reader := c.index.OpenPostings(term, fieldMask)
	if reader == nil {
		return 0, true
	}
	if _, ok := reader.Read(); !ok {
		return 0, false
	}
	return c.score(reader.DocCount(), totalDocs), true
}
