package chat

import (
	"context"

	"github.com/paperdesk/research-backend/internal/entity"
	"github.com/paperdesk/research-backend/internal/usecase/chat"
)

type ChatUsecase interface {
	Query(ctx context.Context, projectID string, req *entity.QueryRequest) (*entity.QueryResponse, error)
	ListSessions(ctx context.Context, projectID string) ([]*entity.ChatSession, error)
	GetSession(ctx context.Context, projectID, sessionID string) (*entity.ChatSession, []*entity.ChatTurn, error)
	DeleteSession(ctx context.Context, projectID, sessionID string) error
	ExportSession(ctx context.Context, projectID, sessionID string, format entity.ExportFormat) (*chat.Export, error)
}
