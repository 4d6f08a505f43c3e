package document

import (
	"context"

	"github.com/paperdesk/research-backend/internal/entity"
)

type DocumentUsecase interface {
	Ingest(ctx context.Context, req *entity.IngestRequest) (*entity.Document, error)
	ReIngest(ctx context.Context, projectID, documentID string) (*entity.Document, error)
	ListDocuments(ctx context.Context, projectID string) ([]*entity.Document, error)
	DeleteDocument(ctx context.Context, projectID, documentID string) error
}
