package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/paperdesk/research-backend/internal/entity"
)

type projectRow struct {
	ID          uuid.UUID
	Title       string
	Description pgtype.Text
	CreatedAt   time.Time
}

func toEntityProject(row *projectRow) *entity.Project {
	return &entity.Project{
		ID:          row.ID.String(),
		Title:       row.Title,
		Description: row.Description.String,
		CreatedAt:   row.CreatedAt,
	}
}

type documentRow struct {
	ID         uuid.UUID
	ProjectID  uuid.UUID
	Filename   string
	Location   string
	PageCount  pgtype.Int4
	UploadedAt time.Time
}

func toEntityDocument(row *documentRow) *entity.Document {
	doc := &entity.Document{
		ID:         row.ID.String(),
		ProjectID:  row.ProjectID.String(),
		Filename:   row.Filename,
		Location:   row.Location,
		UploadedAt: row.UploadedAt,
	}

	if row.PageCount.Valid {
		pageCount := int(row.PageCount.Int32)
		doc.PageCount = &pageCount
	}

	return doc
}

type chunkRow struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	SeqIndex   int32
	Content    string
	Embedding  []float32
}

func toEntityChunk(row *chunkRow) *entity.Chunk {
	return &entity.Chunk{
		ID:         row.ID.String(),
		DocumentID: row.DocumentID.String(),
		SeqIndex:   int(row.SeqIndex),
		Content:    row.Content,
		Embedding:  row.Embedding,
	}
}

type sessionRow struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	Title     string
	CreatedAt time.Time
}

func toEntitySession(row *sessionRow) *entity.ChatSession {
	return &entity.ChatSession{
		ID:        row.ID.String(),
		ProjectID: row.ProjectID.String(),
		Title:     row.Title,
		CreatedAt: row.CreatedAt,
	}
}

type turnRow struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	Role      string
	Content   string
	Citations []byte
	CreatedAt time.Time
}

func toEntityTurn(row *turnRow) (*entity.ChatTurn, error) {
	turn := &entity.ChatTurn{
		ID:        row.ID.String(),
		SessionID: row.SessionID.String(),
		Role:      entity.TurnRole(row.Role),
		Content:   row.Content,
		CreatedAt: row.CreatedAt,
	}

	if len(row.Citations) > 0 {
		if err := json.Unmarshal(row.Citations, &turn.Citations); err != nil {
			return nil, fmt.Errorf("unmarshal citations: %w", err)
		}
	}

	return turn, nil
}

type credentialRow struct {
	ProjectID     uuid.UUID
	Provider      string
	APIKey        string
	ModelOverride pgtype.Text
	UpdatedAt     time.Time
}

func toEntityCredential(row *credentialRow) *entity.Credential {
	cred := &entity.Credential{
		ProjectID: row.ProjectID.String(),
		Provider:  entity.Provider(row.Provider),
		APIKey:    row.APIKey,
		UpdatedAt: row.UpdatedAt,
	}

	if row.ModelOverride.Valid {
		model := row.ModelOverride.String
		cred.ModelOverride = &model
	}

	return cred
}

func citationsToJSON(citations []entity.Citation) ([]byte, error) {
	if len(citations) == 0 {
		return nil, nil
	}

	data, err := json.Marshal(citations)
	if err != nil {
		return nil, fmt.Errorf("marshal citations: %w", err)
	}

	return data, nil
}
