package credential

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/paperdesk/research-backend/internal/entity"
	"github.com/paperdesk/research-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

type Handler struct {
	usecase CredentialUsecase
}

func NewHandler(usecase CredentialUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Put handles PUT /projects/{project_id}/credential
func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("project_id", projectID),
		zap.String("action", "PutCredential"),
	)

	var req entity.PutCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	status, err := h.usecase.Put(ctx, projectID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "credential stored", zap.String("provider", string(status.Provider)))
	h.respondJSON(w, http.StatusOK, status)
}

// Status handles GET /projects/{project_id}/credential
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("project_id", projectID),
		zap.String("action", "CredentialStatus"),
	)

	status, err := h.usecase.Status(ctx, projectID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, status)
}

// Delete handles DELETE /projects/{project_id}/credential
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("project_id", projectID),
		zap.String("action", "DeleteCredential"),
	)

	if err := h.usecase.Delete(ctx, projectID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "credential deleted")
	h.respondJSON(w, http.StatusOK, &entity.DeleteCredentialResponse{
		Status: "deleted",
	})
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
	if errors.Is(err, entity.ErrProjectNotFound) {
		h.respondError(ctx, w, http.StatusNotFound, "resource not found", err)
	} else if errors.Is(err, entity.ErrCredentialNotConfigured) {
		h.respondError(ctx, w, http.StatusNotFound, "no credential configured", err)
	} else if errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrMissingField) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
