package vectorizer

import "sort"

// DocumentFrequency counts, per term, the number of documents it occurs in.
// A term is counted once per document no matter how often it occurs there.
type DocumentFrequency struct {
	Counts map[string]int
	Docs   int
}

// NewDocumentFrequency creates an empty counter.
func NewDocumentFrequency() *DocumentFrequency {
	return &DocumentFrequency{Counts: make(map[string]int)}
}

// AddDocument counts each distinct term of one document once.
func (df *DocumentFrequency) AddDocument(terms []string) {
	seen := make(map[string]bool, len(terms))
	for _, term := range terms {
		if !seen[term] {
			df.Counts[term]++
			seen[term] = true
		}
	}
	df.Docs++
}

// Merge adds the counts of other into df. Merging is commutative and
// associative, so per-worker counters can be combined in any order.
func (df *DocumentFrequency) Merge(other *DocumentFrequency) {
	if other == nil {
		return
	}
	for term, n := range other.Counts {
		df.Counts[term] += n
	}
	df.Docs += other.Docs
}

// Above returns the terms whose document frequency is strictly greater
// than cutoff, sorted.
func (df *DocumentFrequency) Above(cutoff int) []string {
	terms := make([]string, 0, len(df.Counts))
	for term, n := range df.Counts {
		if n > cutoff {
			terms = append(terms, term)
		}
	}
	sort.Strings(terms)
	return terms
}

// Size returns the number of distinct terms seen.
func (df *DocumentFrequency) Size() int {
	return len(df.Counts)
}
