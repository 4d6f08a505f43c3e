// Package embedding converts text into fixed-length vectors, abstracting
// over the OpenAI and Gemini backends behind one interface.
package embedding

import "context"

// Provider embeds chunks and queries. Batch items are processed one at a
// time: bounded memory and per-item error isolation matter more than
// throughput at the scale of a single research project.
type Provider interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Noop is the provider used when no credential is configured. It returns an
// empty vector for every input and never fails; callers detect the
// "embeddings unavailable" state by vector length, not by error.
type Noop struct{}

func (Noop) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	return vectors, nil
}

func (Noop) EmbedQuery(context.Context, string) ([]float32, error) {
	return nil, nil
}
