package credential

import (
	"context"

	"github.com/paperdesk/research-backend/internal/entity"
)

type CredentialUsecase interface {
	Put(ctx context.Context, projectID string, req *entity.PutCredentialRequest) (*entity.CredentialStatusResponse, error)
	Status(ctx context.Context, projectID string) (*entity.CredentialStatusResponse, error)
	Delete(ctx context.Context, projectID string) error
}
