package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/paperdesk/research-backend/internal/entity"
	"github.com/paperdesk/research-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

type Handler struct {
	usecase ChatUsecase
}

func NewHandler(usecase ChatUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Query handles POST /projects/{project_id}/chat
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("project_id", projectID),
		zap.String("action", "Query"),
	)

	var req entity.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	resp, err := h.usecase.Query(ctx, projectID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "query answered", zap.String("session_id", resp.SessionID))
	h.respondJSON(w, http.StatusOK, resp)
}

// ListSessions handles GET /projects/{project_id}/sessions
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("project_id", projectID),
		zap.String("action", "ListSessions"),
	)

	sessions, err := h.usecase.ListSessions(ctx, projectID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	dtos := make([]*entity.SessionDTO, 0, len(sessions))
	for _, s := range sessions {
		dtos = append(dtos, toSessionDTO(s))
	}

	h.respondJSON(w, http.StatusOK, &entity.ListSessionsResponse{
		Sessions: dtos,
	})
}

// GetSession handles GET /projects/{project_id}/sessions/{session_id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	sessionID := chi.URLParam(r, "session_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("project_id", projectID),
		zap.String("session_id", sessionID),
		zap.String("action", "GetSession"),
	)

	session, turns, err := h.usecase.GetSession(ctx, projectID, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toSessionDetail(session, turns))
}

// DeleteSession handles DELETE /projects/{project_id}/sessions/{session_id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	sessionID := chi.URLParam(r, "session_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("project_id", projectID),
		zap.String("session_id", sessionID),
		zap.String("action", "DeleteSession"),
	)

	if err := h.usecase.DeleteSession(ctx, projectID, sessionID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "session deleted")
	h.respondJSON(w, http.StatusOK, &entity.DeleteSessionResponse{
		Status: "deleted",
	})
}

// ExportSession handles GET /projects/{project_id}/sessions/{session_id}/export
func (h *Handler) ExportSession(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	sessionID := chi.URLParam(r, "session_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("project_id", projectID),
		zap.String("session_id", sessionID),
		zap.String("action", "ExportSession"),
	)

	format := entity.ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = entity.FormatMarkdown
	}

	export, err := h.usecase.ExportSession(ctx, projectID, sessionID, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "session exported", zap.String("format", string(format)))

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(export.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(export.Data)
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Error(ctx, message)
	}
	h.respondJSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	var (
		configErr     *entity.ConfigurationError
		generationErr *entity.AnswerGenerationError
	)

	if errors.Is(err, entity.ErrProjectNotFound) || errors.Is(err, entity.ErrSessionNotFound) {
		h.respondError(ctx, w, http.StatusNotFound, "resource not found", err)
	} else if errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrMissingField) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	} else if errors.As(err, &configErr) {
		h.respondError(ctx, w, http.StatusBadRequest, configErr.Message, err)
	} else if errors.As(err, &generationErr) {
		h.respondError(ctx, w, http.StatusBadGateway, "answer generation failed", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
