// Package vectormath holds the similarity arithmetic used by retrieval.
package vectormath

import "math"

// CosineSimilarity returns the cosine of the angle between a and b, in
// [-1, 1]. Vectors of different lengths are never compared in practice
// (embedding dimensions are fixed per provider); a mismatch here is a
// programming error and scores 0 rather than guessing. A zero-norm vector
// also scores 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
