package vectormath

import (
	"math"
	"testing"
)

func TestCosineSimilarity_SelfIsOne(t *testing.T) {
	vectors := [][]float32{
		{1},
		{0.5, -0.25, 3},
		{1e-3, 2e-3, -4e-3, 8e-3},
	}

	for _, v := range vectors {
		got := CosineSimilarity(v, v)
		if math.Abs(got-1.0) > 1e-9 {
			t.Errorf("cosine(v, v) = %v, want 1.0 for %v", got, v)
		}
	}
}

func TestCosineSimilarity_NegationIsMinusOne(t *testing.T) {
	v := []float32{0.3, -1.7, 2.2}
	neg := make([]float32, len(v))
	for i := range v {
		neg[i] = -v[i]
	}

	got := CosineSimilarity(v, neg)
	if math.Abs(got+1.0) > 1e-9 {
		t.Errorf("cosine(v, -v) = %v, want -1.0", got)
	}
}

func TestCosineSimilarity_Orthogonal(t *testing.T) {
	got := CosineSimilarity([]float32{1, 0}, []float32{0, 1})
	if math.Abs(got) > 1e-9 {
		t.Errorf("cosine of orthogonal vectors = %v, want 0", got)
	}
}

func TestCosineSimilarity_Degenerate(t *testing.T) {
	if got := CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}); got != 0 {
		t.Errorf("length mismatch should score 0, got %v", got)
	}
	if got := CosineSimilarity(nil, nil); got != 0 {
		t.Errorf("empty vectors should score 0, got %v", got)
	}
	if got := CosineSimilarity([]float32{0, 0}, []float32{1, 1}); got != 0 {
		t.Errorf("zero-norm vector should score 0, got %v", got)
	}
}
