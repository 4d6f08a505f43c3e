package chat

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/paperdesk/research-backend/internal/config"
	"github.com/paperdesk/research-backend/internal/entity"
	"github.com/paperdesk/research-backend/internal/repository"
	"go.uber.org/zap"
)

const (
	sessionTitleLimit = 60

	noContextResponse = "I couldn't find relevant information in the project's documents to answer that question."
)

// ChatUsecase answers project-scoped questions grounded in ingested
// documents: retrieve relevant chunks, synthesize a cited answer, persist
// the exchange.
type ChatUsecase struct {
	projectRepo  repository.ProjectRepository
	documentRepo repository.DocumentRepository
	chunkRepo    repository.ChunkRepository
	chatRepo     repository.ChatRepository
	credentials  CredentialSource
	embeddings   EmbeddingFactory
	llms         LLMFactory
	cfg          config.RetrievalConfig
	logger       *zap.Logger
}

func NewUsecase(
	projectRepo repository.ProjectRepository,
	documentRepo repository.DocumentRepository,
	chunkRepo repository.ChunkRepository,
	chatRepo repository.ChatRepository,
	credentials CredentialSource,
	embeddings EmbeddingFactory,
	llms LLMFactory,
	cfg config.RetrievalConfig,
	logger *zap.Logger,
) *ChatUsecase {
	return &ChatUsecase{
		projectRepo:  projectRepo,
		documentRepo: documentRepo,
		chunkRepo:    chunkRepo,
		chatRepo:     chatRepo,
		credentials:  credentials,
		embeddings:   embeddings,
		llms:         llms,
		cfg:          cfg,
		logger:       logger,
	}
}

// Query answers one question. A missing credential fails the turn with
// configuration guidance before anything is retrieved or persisted.
func (uc *ChatUsecase) Query(ctx context.Context, projectID string, req *entity.QueryRequest) (*entity.QueryResponse, error) {
	if req.Query == "" {
		return nil, fmt.Errorf("%w: query", entity.ErrMissingField)
	}

	if _, err := uc.projectRepo.Get(ctx, projectID); err != nil {
		return nil, err
	}

	cred, err := uc.credentials.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	session, history, err := uc.resolveSession(ctx, projectID, req)
	if err != nil {
		return nil, err
	}

	docNames, err := uc.documentNames(ctx, projectID)
	if err != nil {
		return nil, err
	}

	retrieved, err := uc.findRelevant(ctx, projectID, req.Query, docNames, uc.embeddings.ForCredential(cred))
	if err != nil {
		return nil, err
	}

	if len(retrieved) == 0 {
		// Nothing to ground an answer in; skip the backend entirely.
		if err := uc.persistTurns(ctx, session.ID, req.Query, noContextResponse, nil); err != nil {
			return nil, err
		}

		ctxzap.Info(ctx, "query answered without context", zap.String("session_id", session.ID))

		return &entity.QueryResponse{
			SessionID: session.ID,
			Response:  noContextResponse,
			Citations: []entity.Citation{},
			Sources:   []entity.SourcePreview{},
		}, nil
	}

	result, err := uc.generate(ctx, uc.llms.ForCredential(cred), req.Query, retrieved, history, docNames, req.Model)
	if err != nil {
		return nil, err
	}

	if err := uc.persistTurns(ctx, session.ID, req.Query, result.Response, result.Citations); err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "query answered",
		zap.String("session_id", session.ID),
		zap.Int("retrieved", len(retrieved)),
		zap.Int("citations", len(result.Citations)),
	)

	return &entity.QueryResponse{
		SessionID: session.ID,
		Response:  result.Response,
		Citations: result.Citations,
		Sources:   sourcePreviews(retrieved),
	}, nil
}

// ListSessions retrieves a project's chat sessions
func (uc *ChatUsecase) ListSessions(ctx context.Context, projectID string) ([]*entity.ChatSession, error) {
	if _, err := uc.projectRepo.Get(ctx, projectID); err != nil {
		return nil, err
	}

	sessions, err := uc.chatRepo.ListSessions(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	return sessions, nil
}

// GetSession retrieves one session with its turns
func (uc *ChatUsecase) GetSession(ctx context.Context, projectID, sessionID string) (*entity.ChatSession, []*entity.ChatTurn, error) {
	session, err := uc.getOwnedSession(ctx, projectID, sessionID)
	if err != nil {
		return nil, nil, err
	}

	turns, err := uc.chatRepo.ListTurns(ctx, session.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list turns: %w", err)
	}

	return session, turns, nil
}

func (uc *ChatUsecase) DeleteSession(ctx context.Context, projectID, sessionID string) error {
	session, err := uc.getOwnedSession(ctx, projectID, sessionID)
	if err != nil {
		return err
	}

	if err := uc.chatRepo.DeleteSession(ctx, session.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	ctxzap.Info(ctx, "session deleted", zap.String("session_id", session.ID))
	return nil
}

// resolveSession loads the requested session (with its history) or lazily
// creates one titled after the first query.
func (uc *ChatUsecase) resolveSession(ctx context.Context, projectID string, req *entity.QueryRequest) (*entity.ChatSession, []*entity.ChatTurn, error) {
	if req.SessionID != "" {
		session, err := uc.getOwnedSession(ctx, projectID, req.SessionID)
		if err != nil {
			return nil, nil, err
		}

		history, err := uc.chatRepo.ListTurns(ctx, session.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("load history: %w", err)
		}

		return session, history, nil
	}

	session, err := uc.chatRepo.CreateSession(ctx, entity.ChatSession{
		ProjectID: projectID,
		Title:     sessionTitle(req.Query),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	ctxzap.Info(ctx, "session created", zap.String("session_id", session.ID))
	return session, nil, nil
}

func (uc *ChatUsecase) getOwnedSession(ctx context.Context, projectID, sessionID string) (*entity.ChatSession, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, fmt.Errorf("%w: invalid session ID format", entity.ErrInvalidParameter)
	}

	session, err := uc.chatRepo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.ProjectID != projectID {
		return nil, entity.ErrSessionNotFound
	}

	return session, nil
}

// persistTurns stores the user question and the assistant answer. Nothing
// is stored when generation fails, so a failed turn leaves no trace.
func (uc *ChatUsecase) persistTurns(ctx context.Context, sessionID, query, response string, citations []entity.Citation) error {
	if _, err := uc.chatRepo.CreateTurn(ctx, entity.ChatTurn{
		SessionID: sessionID,
		Role:      entity.RoleUser,
		Content:   query,
	}); err != nil {
		return fmt.Errorf("persist user turn: %w", err)
	}

	if _, err := uc.chatRepo.CreateTurn(ctx, entity.ChatTurn{
		SessionID: sessionID,
		Role:      entity.RoleAssistant,
		Content:   response,
		Citations: citations,
	}); err != nil {
		return fmt.Errorf("persist assistant turn: %w", err)
	}

	return nil
}

func sessionTitle(query string) string {
	runes := []rune(query)
	if len(runes) <= sessionTitleLimit {
		return query
	}
	return string(runes[:sessionTitleLimit]) + "…"
}

func sourcePreviews(retrieved []entity.ScoredChunk) []entity.SourcePreview {
	previews := make([]entity.SourcePreview, 0, len(retrieved))
	for _, sc := range retrieved {
		previews = append(previews, entity.SourcePreview{
			ChunkID:      sc.Chunk.ID,
			DocumentID:   sc.Chunk.DocumentID,
			DocumentName: sc.DocumentName,
			Content:      entity.TruncatePreview(sc.Chunk.Content, 200),
			Score:        sc.Score,
		})
	}
	return previews
}
