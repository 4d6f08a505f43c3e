package credential

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/paperdesk/research-backend/internal/entity"
	"github.com/paperdesk/research-backend/internal/repository"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// CredentialUsecase manages project-scoped provider credentials. Lookups
// are cached because every ingest and query passes through here.
type CredentialUsecase struct {
	credentialRepo repository.CredentialRepository
	projectRepo    repository.ProjectRepository
	cache          *gocache.Cache
	logger         *zap.Logger
}

func NewUsecase(
	credentialRepo repository.CredentialRepository,
	projectRepo repository.ProjectRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *CredentialUsecase {
	return &CredentialUsecase{
		credentialRepo: credentialRepo,
		projectRepo:    projectRepo,
		cache:          gocache.New(cacheTTL, 2*cacheTTL),
		logger:         logger,
	}
}

// Put stores or replaces the project's credential. The provider is an
// explicit tag chosen by the caller; the key's format is never inspected.
func (uc *CredentialUsecase) Put(
	ctx context.Context,
	projectID string,
	req *entity.PutCredentialRequest,
) (*entity.CredentialStatusResponse, error) {
	if err := req.Provider.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}
	if req.APIKey == "" {
		return nil, fmt.Errorf("%w: api_key", entity.ErrMissingField)
	}

	if _, err := uc.projectRepo.Get(ctx, projectID); err != nil {
		return nil, err
	}

	cred := entity.Credential{
		ProjectID: projectID,
		Provider:  req.Provider,
		APIKey:    req.APIKey,
	}
	if req.Model != "" {
		cred.ModelOverride = &req.Model
	}

	saved, err := uc.credentialRepo.Upsert(ctx, cred)
	if err != nil {
		return nil, fmt.Errorf("upsert credential: %w", err)
	}

	uc.cache.Set(projectID, saved, gocache.DefaultExpiration)

	ctxzap.Info(ctx, "credential stored",
		zap.String("project_id", projectID),
		zap.String("provider", string(saved.Provider)),
	)

	return statusOf(saved), nil
}

// Status reports whether a credential exists and its provider, never the
// key itself.
func (uc *CredentialUsecase) Status(ctx context.Context, projectID string) (*entity.CredentialStatusResponse, error) {
	if _, err := uc.projectRepo.Get(ctx, projectID); err != nil {
		return nil, err
	}

	cred, err := uc.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, entity.ErrCredentialNotConfigured) {
			return &entity.CredentialStatusResponse{Configured: false}, nil
		}
		return nil, err
	}

	return statusOf(cred), nil
}

func (uc *CredentialUsecase) Delete(ctx context.Context, projectID string) error {
	if _, err := uc.projectRepo.Get(ctx, projectID); err != nil {
		return err
	}

	if err := uc.credentialRepo.Delete(ctx, projectID); err != nil {
		return err
	}

	uc.cache.Delete(projectID)

	ctxzap.Info(ctx, "credential deleted", zap.String("project_id", projectID))
	return nil
}

// Get returns the project's credential, from cache when fresh. Absence is
// reported as entity.ErrCredentialNotConfigured.
func (uc *CredentialUsecase) Get(ctx context.Context, projectID string) (*entity.Credential, error) {
	if cached, ok := uc.cache.Get(projectID); ok {
		return cached.(*entity.Credential), nil
	}

	cred, err := uc.credentialRepo.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	uc.cache.Set(projectID, cred, gocache.DefaultExpiration)
	return cred, nil
}

func statusOf(cred *entity.Credential) *entity.CredentialStatusResponse {
	resp := &entity.CredentialStatusResponse{
		Configured: true,
		Provider:   cred.Provider,
	}
	if cred.ModelOverride != nil {
		resp.Model = *cred.ModelOverride
	}
	return resp
}
