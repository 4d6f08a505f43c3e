package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paperdesk/research-backend/internal/entity"
)

const defaultChunkInsertBatch = 100

// ChunkRepository defines the interface for chunk persistence
type ChunkRepository interface {
	ReplaceForDocument(ctx context.Context, documentID string, chunks []entity.Chunk) error
	ListByProject(ctx context.Context, projectID string) ([]*entity.Chunk, error)
}

var _ ChunkRepository = &ChunkPostgres{}

// ChunkPostgres implements ChunkRepository using PostgreSQL. insertBatch
// bounds how many chunks go into a single CopyFrom during replacement.
type ChunkPostgres struct {
	db          *pgxpool.Pool
	insertBatch int
}

func NewChunkPostgres(db *pgxpool.Pool, insertBatch int) *ChunkPostgres {
	if insertBatch < 1 {
		insertBatch = defaultChunkInsertBatch
	}
	return &ChunkPostgres{db: db, insertBatch: insertBatch}
}

// ReplaceForDocument swaps the document's chunk set in one transaction so
// readers never observe a mix of old and new chunks.
func (r *ChunkPostgres) ReplaceForDocument(ctx context.Context, documentID string, chunks []entity.Chunk) error {
	docID, err := uuid.Parse(documentID)
	if err != nil {
		return entity.ErrDocumentNotFound
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin chunk replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM chunks WHERE document_id = $1`, docID); err != nil {
		return fmt.Errorf("delete old chunks: %w", err)
	}

	for _, batch := range chunkBatches(chunks, r.insertBatch) {
		rows := make([][]any, 0, len(batch))
		for _, chunk := range batch {
			var embedding []float32
			if len(chunk.Embedding) > 0 {
				embedding = chunk.Embedding
			}
			rows = append(rows, []any{docID, chunk.SeqIndex, chunk.Content, embedding})
		}

		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"chunks"},
			[]string{"document_id", "seq_index", "content", "embedding"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return fmt.Errorf("insert chunks: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit chunk replace: %w", err)
	}

	return nil
}

// chunkBatches splits chunks into consecutive slices of at most size
// elements, preserving order.
func chunkBatches(chunks []entity.Chunk, size int) [][]entity.Chunk {
	batches := make([][]entity.Chunk, 0, (len(chunks)+size-1)/size)
	for start := 0; start < len(chunks); start += size {
		end := start + size
		if end > len(chunks) {
			end = len(chunks)
		}
		batches = append(batches, chunks[start:end])
	}
	return batches
}

func (r *ChunkPostgres) ListByProject(ctx context.Context, projectID string) ([]*entity.Chunk, error) {
	pid, err := uuid.Parse(projectID)
	if err != nil {
		return nil, entity.ErrProjectNotFound
	}

	rows, err := r.db.Query(ctx,
		`SELECT c.id, c.document_id, c.seq_index, c.content, c.embedding
		 FROM chunks c
		 JOIN documents d ON d.id = c.document_id
		 WHERE d.project_id = $1
		 ORDER BY d.uploaded_at, c.seq_index`,
		pid,
	)
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}
	defer rows.Close()

	chunks := make([]*entity.Chunk, 0)
	for rows.Next() {
		var row chunkRow
		if err := rows.Scan(&row.ID, &row.DocumentID, &row.SeqIndex, &row.Content, &row.Embedding); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		chunks = append(chunks, toEntityChunk(&row))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}

	return chunks, nil
}
