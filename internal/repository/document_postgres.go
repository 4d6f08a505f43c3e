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

// DocumentRepository defines the interface for document persistence
type DocumentRepository interface {
	Create(ctx context.Context, doc entity.Document) (*entity.Document, error)
	Get(ctx context.Context, id string) (*entity.Document, error)
	ListByProject(ctx context.Context, projectID string) ([]*entity.Document, error)
	Update(ctx context.Context, doc entity.Document) (*entity.Document, error)
	Delete(ctx context.Context, id string) error
}

var _ DocumentRepository = &DocumentPostgres{}

// DocumentPostgres implements DocumentRepository using PostgreSQL
type DocumentPostgres struct {
	db *pgxpool.Pool
}

func NewDocumentPostgres(db *pgxpool.Pool) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

func (r *DocumentPostgres) Create(ctx context.Context, doc entity.Document) (*entity.Document, error) {
	projectID, err := uuid.Parse(doc.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("parse project ID: %w", err)
	}

	var row documentRow
	err = r.db.QueryRow(ctx,
		`INSERT INTO documents (project_id, filename, location, page_count)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, project_id, filename, location, page_count, uploaded_at`,
		projectID, doc.Filename, doc.Location, doc.PageCount,
	).Scan(&row.ID, &row.ProjectID, &row.Filename, &row.Location, &row.PageCount, &row.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	return toEntityDocument(&row), nil
}

func (r *DocumentPostgres) Get(ctx context.Context, id string) (*entity.Document, error) {
	documentID, err := uuid.Parse(id)
	if err != nil {
		return nil, entity.ErrDocumentNotFound
	}

	var row documentRow
	err = r.db.QueryRow(ctx,
		`SELECT id, project_id, filename, location, page_count, uploaded_at
		 FROM documents
		 WHERE id = $1`,
		documentID,
	).Scan(&row.ID, &row.ProjectID, &row.Filename, &row.Location, &row.PageCount, &row.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return toEntityDocument(&row), nil
}

func (r *DocumentPostgres) ListByProject(ctx context.Context, projectID string) ([]*entity.Document, error) {
	pid, err := uuid.Parse(projectID)
	if err != nil {
		return nil, entity.ErrProjectNotFound
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, project_id, filename, location, page_count, uploaded_at
		 FROM documents
		 WHERE project_id = $1
		 ORDER BY uploaded_at`,
		pid,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]*entity.Document, 0)
	for rows.Next() {
		var row documentRow
		if err := rows.Scan(&row.ID, &row.ProjectID, &row.Filename, &row.Location, &row.PageCount, &row.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, toEntityDocument(&row))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return docs, nil
}

func (r *DocumentPostgres) Update(ctx context.Context, doc entity.Document) (*entity.Document, error) {
	documentID, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, entity.ErrDocumentNotFound
	}

	var row documentRow
	err = r.db.QueryRow(ctx,
		`UPDATE documents
		 SET filename = $2, location = $3, page_count = $4
		 WHERE id = $1
		 RETURNING id, project_id, filename, location, page_count, uploaded_at`,
		documentID, doc.Filename, doc.Location, doc.PageCount,
	).Scan(&row.ID, &row.ProjectID, &row.Filename, &row.Location, &row.PageCount, &row.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("update document: %w", err)
	}

	return toEntityDocument(&row), nil
}

func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	documentID, err := uuid.Parse(id)
	if err != nil {
		return entity.ErrDocumentNotFound
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, documentID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrDocumentNotFound
	}

	return nil
}
