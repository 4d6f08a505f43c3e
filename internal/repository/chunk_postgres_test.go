package repository

import (
	"fmt"
	"testing"

	"github.com/paperdesk/research-backend/internal/entity"
)

func makeChunks(n int) []entity.Chunk {
	chunks := make([]entity.Chunk, n)
	for i := range chunks {
		chunks[i] = entity.Chunk{SeqIndex: i, Content: fmt.Sprintf("chunk %d", i)}
	}
	return chunks
}

func TestChunkBatches_SplitsAtConfiguredSize(t *testing.T) {
	batches := chunkBatches(makeChunks(5), 2)

	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}

	wantSizes := []int{2, 2, 1}
	seq := 0
	for i, batch := range batches {
		if len(batch) != wantSizes[i] {
			t.Errorf("batch %d: expected %d chunks, got %d", i, wantSizes[i], len(batch))
		}
		for _, chunk := range batch {
			if chunk.SeqIndex != seq {
				t.Errorf("order broken: expected seq %d, got %d", seq, chunk.SeqIndex)
			}
			seq++
		}
	}
}

func TestChunkBatches_SizeAboveTotal(t *testing.T) {
	batches := chunkBatches(makeChunks(3), 100)
	if len(batches) != 1 || len(batches[0]) != 3 {
		t.Fatalf("expected a single batch of 3, got %d batches", len(batches))
	}
}

func TestChunkBatches_Empty(t *testing.T) {
	if got := chunkBatches(nil, 10); len(got) != 0 {
		t.Errorf("expected no batches, got %d", len(got))
	}
}

func TestNewChunkPostgres_BatchSizeConfigured(t *testing.T) {
	repo := NewChunkPostgres(nil, 25)
	if repo.insertBatch != 25 {
		t.Errorf("expected configured batch size 25, got %d", repo.insertBatch)
	}

	repo = NewChunkPostgres(nil, 0)
	if repo.insertBatch != defaultChunkInsertBatch {
		t.Errorf("expected default batch size %d, got %d", defaultChunkInsertBatch, repo.insertBatch)
	}
}
