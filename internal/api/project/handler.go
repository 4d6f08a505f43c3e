package project

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
	usecase ProjectUsecase
}

func NewHandler(usecase ProjectUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// CreateProject handles POST /projects
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateProject")

	var req entity.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	proj, err := h.usecase.CreateProject(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "project created", zap.String("project_id", proj.ID))
	h.respondJSON(w, http.StatusCreated, toProjectDetail(proj))
}

// ListProjects handles GET /projects
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListProjects")

	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	req := entity.ListProjectsRequest{
		Skip:  skip,
		Limit: limit,
	}

	projects, err := h.usecase.ListProjects(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	summaries := make([]*entity.ProjectSummary, 0, len(projects))
	for _, p := range projects {
		summaries = append(summaries, toProjectSummary(p))
	}

	h.respondJSON(w, http.StatusOK, &entity.ListProjectsResponse{
		Projects: summaries,
	})
}

// GetProject handles GET /projects/{project_id}
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("project_id", projectID),
		zap.String("action", "GetProject"),
	)

	proj, err := h.usecase.GetProject(ctx, projectID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toProjectDetail(proj))
}

// DeleteProject handles DELETE /projects/{project_id}
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("project_id", projectID),
		zap.String("action", "DeleteProject"),
	)

	if err := h.usecase.DeleteProject(ctx, projectID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "project deleted")
	h.respondJSON(w, http.StatusOK, &entity.DeleteProjectResponse{
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
	} else if errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrMissingField) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
