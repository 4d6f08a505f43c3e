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

// CredentialRepository defines the interface for provider credential persistence
type CredentialRepository interface {
	Upsert(ctx context.Context, cred entity.Credential) (*entity.Credential, error)
	Get(ctx context.Context, projectID string) (*entity.Credential, error)
	Delete(ctx context.Context, projectID string) error
}

var _ CredentialRepository = &CredentialPostgres{}

// CredentialPostgres implements CredentialRepository using PostgreSQL
type CredentialPostgres struct {
	db *pgxpool.Pool
}

func NewCredentialPostgres(db *pgxpool.Pool) *CredentialPostgres {
	return &CredentialPostgres{db: db}
}

func (r *CredentialPostgres) Upsert(ctx context.Context, cred entity.Credential) (*entity.Credential, error) {
	projectID, err := uuid.Parse(cred.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("parse project ID: %w", err)
	}

	var row credentialRow
	err = r.db.QueryRow(ctx,
		`INSERT INTO credentials (project_id, provider, api_key, model_override, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (project_id) DO UPDATE
		 SET provider = EXCLUDED.provider,
		     api_key = EXCLUDED.api_key,
		     model_override = EXCLUDED.model_override,
		     updated_at = now()
		 RETURNING project_id, provider, api_key, model_override, updated_at`,
		projectID, string(cred.Provider), cred.APIKey, cred.ModelOverride,
	).Scan(&row.ProjectID, &row.Provider, &row.APIKey, &row.ModelOverride, &row.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert credential: %w", err)
	}

	return toEntityCredential(&row), nil
}

func (r *CredentialPostgres) Get(ctx context.Context, projectID string) (*entity.Credential, error) {
	pid, err := uuid.Parse(projectID)
	if err != nil {
		return nil, entity.ErrProjectNotFound
	}

	var row credentialRow
	err = r.db.QueryRow(ctx,
		`SELECT project_id, provider, api_key, model_override, updated_at
		 FROM credentials
		 WHERE project_id = $1`,
		pid,
	).Scan(&row.ProjectID, &row.Provider, &row.APIKey, &row.ModelOverride, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrCredentialNotConfigured
		}
		return nil, fmt.Errorf("get credential: %w", err)
	}

	return toEntityCredential(&row), nil
}

func (r *CredentialPostgres) Delete(ctx context.Context, projectID string) error {
	pid, err := uuid.Parse(projectID)
	if err != nil {
		return entity.ErrProjectNotFound
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM credentials WHERE project_id = $1`, pid)
	if err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrCredentialNotConfigured
	}

	return nil
}
