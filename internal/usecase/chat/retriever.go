package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/paperdesk/research-backend/internal/entity"
	"github.com/paperdesk/research-backend/internal/integration/embedding"
	"github.com/paperdesk/research-backend/internal/pkg/vectormath"
	"go.uber.org/zap"
)

const keywordMinLength = 3

// findRelevant returns the topK most relevant chunks for the query,
// scored by cosine similarity when embeddings exist and by keyword overlap
// otherwise. An embedding failure at query time degrades to keyword
// scoring instead of failing the turn.
func (uc *ChatUsecase) findRelevant(
	ctx context.Context,
	projectID, query string,
	docNames map[string]string,
	provider embedding.Provider,
) ([]entity.ScoredChunk, error) {
	chunks, err := uc.chunkRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load chunks: %w", err)
	}

	if len(chunks) == 0 {
		return nil, nil
	}

	embedded := withEmbeddings(chunks)
	if len(embedded) == 0 {
		return uc.keywordSearch(ctx, query, chunks, docNames), nil
	}

	queryVec, err := provider.EmbedQuery(ctx, query)
	if err != nil {
		ctxzap.Warn(ctx, "query embedding failed, falling back to keyword search", zap.Error(err))
		return uc.keywordSearch(ctx, query, chunks, docNames), nil
	}

	if len(queryVec) == 0 {
		// No-op provider; nothing to compare against.
		return uc.keywordSearch(ctx, query, chunks, docNames), nil
	}

	scored := make([]entity.ScoredChunk, 0, len(embedded))
	for _, chunk := range embedded {
		scored = append(scored, entity.ScoredChunk{
			Chunk:        chunk,
			DocumentName: docNames[chunk.DocumentID],
			Score:        vectormath.CosineSimilarity(queryVec, chunk.Embedding),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return truncate(scored, uc.cfg.TopK), nil
}

// keywordSearch scores chunks by case-insensitive occurrence counts of the
// query's words (shorter than keywordMinLength are skipped). Chunks with a
// zero score are dropped.
func (uc *ChatUsecase) keywordSearch(
	ctx context.Context,
	query string,
	chunks []*entity.Chunk,
	docNames map[string]string,
) []entity.ScoredChunk {
	words := keywordTerms(query)
	if len(words) == 0 {
		return nil
	}

	scored := make([]entity.ScoredChunk, 0, len(chunks))
	for _, chunk := range chunks {
		content := strings.ToLower(chunk.Content)

		var score float64
		for _, word := range words {
			score += float64(strings.Count(content, word))
		}

		if score > 0 {
			scored = append(scored, entity.ScoredChunk{
				Chunk:        chunk,
				DocumentName: docNames[chunk.DocumentID],
				Score:        score,
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	ctxzap.Debug(ctx, "keyword search scored chunks",
		zap.Int("candidates", len(chunks)),
		zap.Int("matched", len(scored)),
	)

	return truncate(scored, uc.cfg.TopK)
}

func keywordTerms(query string) []string {
	var terms []string
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if len([]rune(word)) >= keywordMinLength {
			terms = append(terms, word)
		}
	}
	return terms
}

func withEmbeddings(chunks []*entity.Chunk) []*entity.Chunk {
	embedded := make([]*entity.Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		if len(chunk.Embedding) > 0 {
			embedded = append(embedded, chunk)
		}
	}
	return embedded
}

func truncate(scored []entity.ScoredChunk, topK int) []entity.ScoredChunk {
	if len(scored) > topK {
		return scored[:topK]
	}
	return scored
}

func (uc *ChatUsecase) documentNames(ctx context.Context, projectID string) (map[string]string, error) {
	docs, err := uc.documentRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}

	names := make(map[string]string, len(docs))
	for _, doc := range docs {
		names[doc.ID] = doc.Filename
	}
	return names, nil
}
