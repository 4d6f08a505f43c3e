package chat

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/paperdesk/research-backend/internal/entity"
	"github.com/paperdesk/research-backend/internal/pkg/formatter"
	"go.uber.org/zap"
)

// Export renders a session transcript in the requested format.
type Export struct {
	Data        []byte
	ContentType string
	Filename    string
}

func (uc *ChatUsecase) ExportSession(ctx context.Context, projectID, sessionID string, format entity.ExportFormat) (*Export, error) {
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: format must be markdown, pdf or docx", entity.ErrInvalidParameter)
	}

	session, turns, err := uc.GetSession(ctx, projectID, sessionID)
	if err != nil {
		return nil, err
	}

	f, err := formatter.NewFactory().Create(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}

	data, err := f.Format(&formatter.Transcript{
		Title: session.Title,
		Turns: turns,
	})
	if err != nil {
		return nil, fmt.Errorf("format transcript: %w", err)
	}

	ctxzap.Info(ctx, "session exported",
		zap.String("session_id", session.ID),
		zap.String("format", string(format)),
	)

	return &Export{
		Data:        data,
		ContentType: f.ContentType(),
		Filename:    "transcript_" + session.ID + f.FileExtension(),
	}, nil
}
