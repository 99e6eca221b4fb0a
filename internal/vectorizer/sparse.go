// Package vectorizer provides term counting and sparse vector utilities.
package vectorizer

import "math"

// TermVector is a sparse vector keyed by term.
type TermVector map[string]float64

// Count builds a term-occurrence vector.
func Count(terms []string) TermVector {
	tv := make(TermVector, len(terms))
	for _, term := range terms {
		tv[term]++
	}
	return tv
}

// L2Norm returns the L2 norm of the vector.
func (tv TermVector) L2Norm() float64 {
	var sum float64
	for _, v := range tv {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Dot computes the dot product with another term vector.
func (tv TermVector) Dot(other TermVector) float64 {
	if len(other) < len(tv) {
		tv, other = other, tv
	}
	var sum float64
	for term, v := range tv {
		sum += v * other[term]
	}
	return sum
}

// Cosine returns the cosine similarity of two vectors, 0 if either is empty.
func Cosine(a, b TermVector) float64 {
	na, nb := a.L2Norm(), b.L2Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return a.Dot(b) / (na * nb)
}

// ProjectionCosine returns the cosine between tv and its projection onto the
// subspace spanned by the terms accepted by in. The result lies in [0,1]:
// 1 when every term is accepted, 0 when none is.
func (tv TermVector) ProjectionCosine(in func(string) bool) float64 {
	proj := make(TermVector)
	for term, v := range tv {
		if in(term) {
			proj[term] = v
		}
	}
	return math.Min(1, Cosine(tv, proj))
}
