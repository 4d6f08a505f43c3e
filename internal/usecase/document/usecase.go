package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/paperdesk/research-backend/internal/config"
	"github.com/paperdesk/research-backend/internal/entity"
	"github.com/paperdesk/research-backend/internal/pkg/keyedmutex"
	"github.com/paperdesk/research-backend/internal/pkg/validator"
	"github.com/paperdesk/research-backend/internal/repository"
	"go.uber.org/zap"
)

// DocumentUsecase runs the ingestion pipeline: extract, chunk, embed,
// store. Extraction failures abort before any document row exists;
// embedding failures degrade to unembedded chunks instead of failing the
// ingest.
type DocumentUsecase struct {
	projectRepo  repository.ProjectRepository
	documentRepo repository.DocumentRepository
	chunkRepo    repository.ChunkRepository
	credentials  CredentialSource
	embeddings   EmbeddingFactory
	fileStore    FileStore
	downloader   Downloader
	validator    *validator.Validator
	ingestLocks  *keyedmutex.KeyedMutex
	cfg          config.IngestConfig
	logger       *zap.Logger
}

func NewUsecase(
	projectRepo repository.ProjectRepository,
	documentRepo repository.DocumentRepository,
	chunkRepo repository.ChunkRepository,
	credentials CredentialSource,
	embeddings EmbeddingFactory,
	fileStore FileStore,
	downloader Downloader,
	validator *validator.Validator,
	cfg config.IngestConfig,
	logger *zap.Logger,
) *DocumentUsecase {
	return &DocumentUsecase{
		projectRepo:  projectRepo,
		documentRepo: documentRepo,
		chunkRepo:    chunkRepo,
		credentials:  credentials,
		embeddings:   embeddings,
		fileStore:    fileStore,
		downloader:   downloader,
		validator:    validator,
		ingestLocks:  keyedmutex.New(),
		cfg:          cfg,
		logger:       logger,
	}
}

// Ingest brings one PDF into a project, from an upload or an external URL.
// The document row is created only after extraction succeeds.
func (uc *DocumentUsecase) Ingest(ctx context.Context, req *entity.IngestRequest) (*entity.Document, error) {
	if _, err := uc.projectRepo.Get(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	content, filename, external, err := uc.loadSource(ctx, req)
	if err != nil {
		return nil, err
	}

	extracted, err := uc.extract(ctx, content)
	if err != nil {
		return nil, err
	}

	location := req.URL
	if !external {
		location, err = uc.fileStore.Save(filename, content)
		if err != nil {
			return nil, fmt.Errorf("store file: %w", err)
		}
	}

	doc, err := uc.documentRepo.Create(ctx, entity.Document{
		ProjectID: req.ProjectID,
		Filename:  filename,
		Location:  location,
		PageCount: &extracted.PageCount,
	})
	if err != nil {
		if !external {
			uc.fileStore.Remove(location)
		}
		return nil, fmt.Errorf("create document: %w", err)
	}

	uc.ingestLocks.Lock(doc.ID)
	defer uc.ingestLocks.Unlock(doc.ID)

	if err := uc.indexChunks(ctx, doc, extracted.Text); err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "document ingested",
		zap.String("document_id", doc.ID),
		zap.String("filename", doc.Filename),
		zap.Intp("page_count", doc.PageCount),
	)

	return doc, nil
}

// ReIngest re-runs the pipeline against the stored source and replaces the
// document's chunk set wholesale, embedding status included. Concurrent
// re-ingests of the same document are serialized.
func (uc *DocumentUsecase) ReIngest(ctx context.Context, projectID, documentID string) (*entity.Document, error) {
	doc, err := uc.getOwned(ctx, projectID, documentID)
	if err != nil {
		return nil, err
	}

	uc.ingestLocks.Lock(doc.ID)
	defer uc.ingestLocks.Unlock(doc.ID)

	content, err := uc.loadStored(ctx, doc)
	if err != nil {
		return nil, err
	}

	extracted, err := uc.extract(ctx, content)
	if err != nil {
		return nil, err
	}

	doc.PageCount = &extracted.PageCount
	doc, err = uc.documentRepo.Update(ctx, *doc)
	if err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}

	if err := uc.indexChunks(ctx, doc, extracted.Text); err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "document re-ingested", zap.String("document_id", doc.ID))
	return doc, nil
}

// ListDocuments retrieves all documents for a project
func (uc *DocumentUsecase) ListDocuments(ctx context.Context, projectID string) ([]*entity.Document, error) {
	if _, err := uc.projectRepo.Get(ctx, projectID); err != nil {
		return nil, err
	}

	docs, err := uc.documentRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return docs, nil
}

// DeleteDocument removes a document; its chunks go with it via cascade.
func (uc *DocumentUsecase) DeleteDocument(ctx context.Context, projectID, documentID string) error {
	doc, err := uc.getOwned(ctx, projectID, documentID)
	if err != nil {
		return err
	}

	if err := uc.documentRepo.Delete(ctx, doc.ID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if err := uc.fileStore.Remove(doc.Location); err != nil {
		ctxzap.Warn(ctx, "failed to remove stored file",
			zap.String("location", doc.Location),
			zap.Error(err),
		)
	}

	ctxzap.Info(ctx, "document deleted", zap.String("document_id", doc.ID))
	return nil
}

func (uc *DocumentUsecase) getOwned(ctx context.Context, projectID, documentID string) (*entity.Document, error) {
	if _, err := uuid.Parse(documentID); err != nil {
		return nil, fmt.Errorf("%w: invalid document ID format", entity.ErrInvalidParameter)
	}

	doc, err := uc.documentRepo.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if doc.ProjectID != projectID {
		return nil, entity.ErrDocumentNotFound
	}

	return doc, nil
}

// indexChunks splits extracted text, embeds when a credential is present,
// and swaps the document's chunk set in one transaction.
func (uc *DocumentUsecase) indexChunks(ctx context.Context, doc *entity.Document, text string) error {
	pieces := uc.split(text)

	embeddings, err := uc.embed(ctx, doc.ProjectID, pieces)
	if err != nil {
		var provErr *entity.EmbeddingProviderError
		if !errors.As(err, &provErr) {
			return err
		}

		// Degrade: store the chunks unembedded so keyword search still works.
		ctxzap.Warn(ctx, "embedding failed, storing chunks without vectors",
			zap.String("document_id", doc.ID),
			zap.Error(err),
		)
		embeddings = nil
	}

	chunks := make([]entity.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = entity.Chunk{
			DocumentID: doc.ID,
			SeqIndex:   i,
			Content:    piece,
		}
		if embeddings != nil && len(embeddings[i]) > 0 {
			chunks[i].Embedding = embeddings[i]
		}
	}

	if err := uc.chunkRepo.ReplaceForDocument(ctx, doc.ID, chunks); err != nil {
		return fmt.Errorf("store chunks: %w", err)
	}

	ctxzap.Debug(ctx, "chunks stored",
		zap.String("document_id", doc.ID),
		zap.Int("chunk_count", len(chunks)),
	)

	return nil
}
