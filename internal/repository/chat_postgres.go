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

// ChatRepository defines the interface for chat session and turn persistence
type ChatRepository interface {
	CreateSession(ctx context.Context, session entity.ChatSession) (*entity.ChatSession, error)
	GetSession(ctx context.Context, id string) (*entity.ChatSession, error)
	ListSessions(ctx context.Context, projectID string) ([]*entity.ChatSession, error)
	DeleteSession(ctx context.Context, id string) error
	CreateTurn(ctx context.Context, turn entity.ChatTurn) (*entity.ChatTurn, error)
	ListTurns(ctx context.Context, sessionID string) ([]*entity.ChatTurn, error)
}

var _ ChatRepository = &ChatPostgres{}

// ChatPostgres implements ChatRepository using PostgreSQL
type ChatPostgres struct {
	db *pgxpool.Pool
}

func NewChatPostgres(db *pgxpool.Pool) *ChatPostgres {
	return &ChatPostgres{db: db}
}

func (r *ChatPostgres) CreateSession(ctx context.Context, session entity.ChatSession) (*entity.ChatSession, error) {
	projectID, err := uuid.Parse(session.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("parse project ID: %w", err)
	}

	var row sessionRow
	err = r.db.QueryRow(ctx,
		`INSERT INTO chat_sessions (project_id, title)
		 VALUES ($1, $2)
		 RETURNING id, project_id, title, created_at`,
		projectID, session.Title,
	).Scan(&row.ID, &row.ProjectID, &row.Title, &row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return toEntitySession(&row), nil
}

func (r *ChatPostgres) GetSession(ctx context.Context, id string) (*entity.ChatSession, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, entity.ErrSessionNotFound
	}

	var row sessionRow
	err = r.db.QueryRow(ctx,
		`SELECT id, project_id, title, created_at
		 FROM chat_sessions
		 WHERE id = $1`,
		sessionID,
	).Scan(&row.ID, &row.ProjectID, &row.Title, &row.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	return toEntitySession(&row), nil
}

func (r *ChatPostgres) ListSessions(ctx context.Context, projectID string) ([]*entity.ChatSession, error) {
	pid, err := uuid.Parse(projectID)
	if err != nil {
		return nil, entity.ErrProjectNotFound
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, project_id, title, created_at
		 FROM chat_sessions
		 WHERE project_id = $1
		 ORDER BY created_at DESC`,
		pid,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]*entity.ChatSession, 0)
	for rows.Next() {
		var row sessionRow
		if err := rows.Scan(&row.ID, &row.ProjectID, &row.Title, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, toEntitySession(&row))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	return sessions, nil
}

func (r *ChatPostgres) DeleteSession(ctx context.Context, id string) error {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return entity.ErrSessionNotFound
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM chat_sessions WHERE id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrSessionNotFound
	}

	return nil
}

func (r *ChatPostgres) CreateTurn(ctx context.Context, turn entity.ChatTurn) (*entity.ChatTurn, error) {
	sessionID, err := uuid.Parse(turn.SessionID)
	if err != nil {
		return nil, entity.ErrSessionNotFound
	}

	citations, err := citationsToJSON(turn.Citations)
	if err != nil {
		return nil, err
	}

	var row turnRow
	err = r.db.QueryRow(ctx,
		`INSERT INTO chat_turns (session_id, role, content, citations)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, session_id, role, content, citations, created_at`,
		sessionID, string(turn.Role), turn.Content, citations,
	).Scan(&row.ID, &row.SessionID, &row.Role, &row.Content, &row.Citations, &row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create turn: %w", err)
	}

	return toEntityTurn(&row)
}

func (r *ChatPostgres) ListTurns(ctx context.Context, sessionID string) ([]*entity.ChatTurn, error) {
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, entity.ErrSessionNotFound
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, session_id, role, content, citations, created_at
		 FROM chat_turns
		 WHERE session_id = $1
		 ORDER BY created_at`,
		sid,
	)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	defer rows.Close()

	turns := make([]*entity.ChatTurn, 0)
	for rows.Next() {
		var row turnRow
		if err := rows.Scan(&row.ID, &row.SessionID, &row.Role, &row.Content, &row.Citations, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}

		turn, err := toEntityTurn(&row)
		if err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}

	return turns, nil
}
