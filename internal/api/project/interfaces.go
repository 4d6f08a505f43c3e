package project

import (
	"context"

	"github.com/paperdesk/research-backend/internal/entity"
)

type ProjectUsecase interface {
	CreateProject(ctx context.Context, req *entity.CreateProjectRequest) (*entity.Project, error)
	ListProjects(ctx context.Context, req *entity.ListProjectsRequest) ([]*entity.Project, error)
	GetProject(ctx context.Context, id string) (*entity.Project, error)
	DeleteProject(ctx context.Context, id string) error
}
