package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paperdesk/research-backend/internal/entity"
)

// ProjectRepository defines the interface for project persistence
type ProjectRepository interface {
	Create(ctx context.Context, project entity.Project) (*entity.Project, error)
	Get(ctx context.Context, id string) (*entity.Project, error)
	List(ctx context.Context, skip, limit int) ([]*entity.Project, error)
	Delete(ctx context.Context, id string) error
}

var _ ProjectRepository = &ProjectPostgres{}

// ProjectPostgres implements ProjectRepository using PostgreSQL
type ProjectPostgres struct {
	db *pgxpool.Pool
}

func NewProjectPostgres(db *pgxpool.Pool) *ProjectPostgres {
	return &ProjectPostgres{db: db}
}

func (r *ProjectPostgres) Create(ctx context.Context, project entity.Project) (*entity.Project, error) {
	var row projectRow
	err := r.db.QueryRow(ctx,
		`INSERT INTO projects (title, description)
		 VALUES ($1, NULLIF($2, ''))
		 RETURNING id, title, description, created_at`,
		project.Title, project.Description,
	).Scan(&row.ID, &row.Title, &row.Description, &row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	return toEntityProject(&row), nil
}

func (r *ProjectPostgres) Get(ctx context.Context, id string) (*entity.Project, error) {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return nil, entity.ErrProjectNotFound
	}

	var row projectRow
	err = r.db.QueryRow(ctx,
		`SELECT id, title, description, created_at
		 FROM projects
		 WHERE id = $1`,
		projectID,
	).Scan(&row.ID, &row.Title, &row.Description, &row.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return toEntityProject(&row), nil
}

func (r *ProjectPostgres) List(ctx context.Context, skip, limit int) ([]*entity.Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, description, created_at
		 FROM projects
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, skip,
	)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*entity.Project, 0)
	for rows.Next() {
		var row projectRow
		if err := rows.Scan(&row.ID, &row.Title, &row.Description, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, toEntityProject(&row))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return projects, nil
}

func (r *ProjectPostgres) Delete(ctx context.Context, id string) error {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return entity.ErrProjectNotFound
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, projectID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrProjectNotFound
	}

	return nil
}
