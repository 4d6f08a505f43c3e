package project

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/paperdesk/research-backend/internal/entity"
	"github.com/paperdesk/research-backend/internal/repository"
	"go.uber.org/zap"
)

// ProjectUsecase implements project business logic
type ProjectUsecase struct {
	projectRepo  repository.ProjectRepository
	documentRepo repository.DocumentRepository
	fileStore    FileStore
	logger       *zap.Logger
}

// NewUsecase creates a new project use case
func NewUsecase(
	projectRepo repository.ProjectRepository,
	documentRepo repository.DocumentRepository,
	fileStore FileStore,
	logger *zap.Logger,
) *ProjectUsecase {
	return &ProjectUsecase{
		projectRepo:  projectRepo,
		documentRepo: documentRepo,
		fileStore:    fileStore,
		logger:       logger,
	}
}

// CreateProject creates a new empty project
func (uc *ProjectUsecase) CreateProject(
	ctx context.Context,
	req *entity.CreateProjectRequest,
) (*entity.Project, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title", entity.ErrMissingField)
	}

	project, err := uc.projectRepo.Create(ctx, entity.Project{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	ctxzap.Info(ctx, "project created",
		zap.String("project_id", project.ID),
		zap.String("title", project.Title),
	)

	return project, nil
}

// ListProjects retrieves projects with pagination
func (uc *ProjectUsecase) ListProjects(ctx context.Context, req *entity.ListProjectsRequest) ([]*entity.Project, error) {
	req.Normalize()

	projects, err := uc.projectRepo.List(ctx, req.Skip, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return projects, nil
}

// GetProject retrieves a project with its documents
func (uc *ProjectUsecase) GetProject(ctx context.Context, id string) (*entity.Project, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: invalid project ID format", entity.ErrInvalidParameter)
	}

	project, err := uc.projectRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	documents, err := uc.documentRepo.ListByProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list project documents: %w", err)
	}
	project.Documents = documents

	return project, nil
}

// DeleteProject deletes a project; documents, chunks, sessions and the
// credential go with it via cascade. Stored files are cleaned up best
// effort after the row is gone.
func (uc *ProjectUsecase) DeleteProject(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: invalid project ID format", entity.ErrInvalidParameter)
	}

	documents, err := uc.documentRepo.ListByProject(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	for _, doc := range documents {
		if err := uc.fileStore.Remove(doc.Location); err != nil {
			ctxzap.Warn(ctx, "failed to remove stored file",
				zap.String("location", doc.Location),
				zap.Error(err),
			)
		}
	}

	ctxzap.Info(ctx, "project deleted", zap.String("project_id", id))
	return nil
}
