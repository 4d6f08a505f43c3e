package document

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/paperdesk/research-backend/internal/config"
	"github.com/paperdesk/research-backend/internal/entity"
	"github.com/paperdesk/research-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

type Handler struct {
	usecase DocumentUsecase
	cfg     config.IngestConfig
}

func NewHandler(usecase DocumentUsecase, cfg config.IngestConfig) *Handler {
	return &Handler{
		usecase: usecase,
		cfg:     cfg,
	}
}

// Ingest handles POST /projects/{project_id}/documents. The body is either
// a multipart form with a `file` part or a JSON {url, filename} reference.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("project_id", projectID),
		zap.String("action", "IngestDocument"),
	)

	req := &entity.IngestRequest{ProjectID: projectID}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var urlReq entity.IngestURLRequest
		if err := json.NewDecoder(r.Body).Decode(&urlReq); err != nil {
			h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
			return
		}
		req.URL = urlReq.URL
		req.Filename = urlReq.Filename
	} else {
		if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
			h.respondError(ctx, w, http.StatusBadRequest, "invalid form data or size too large", err)
			return
		}

		files := r.MultipartForm.File["file"]
		if len(files) == 0 {
			h.respondError(ctx, w, http.StatusBadRequest, "a file is required", nil)
			return
		}
		req.File = files[0]
	}

	doc, err := h.usecase.Ingest(ctx, req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "document ingested", zap.String("document_id", doc.ID))
	h.respondJSON(w, http.StatusCreated, toDocumentDetail(doc))
}

// ReIngest handles PUT /projects/{project_id}/documents/{document_id}
func (h *Handler) ReIngest(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	documentID := chi.URLParam(r, "document_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("project_id", projectID),
		zap.String("document_id", documentID),
		zap.String("action", "ReIngestDocument"),
	)

	doc, err := h.usecase.ReIngest(ctx, projectID, documentID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "document re-ingested")
	h.respondJSON(w, http.StatusOK, toDocumentDetail(doc))
}

// ListDocuments handles GET /projects/{project_id}/documents
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("project_id", projectID),
		zap.String("action", "ListDocuments"),
	)

	docs, err := h.usecase.ListDocuments(ctx, projectID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	details := make([]*entity.DocumentDetail, 0, len(docs))
	for _, d := range docs {
		details = append(details, toDocumentDetail(d))
	}

	h.respondJSON(w, http.StatusOK, &entity.ListDocumentsResponse{
		Documents: details,
	})
}

// DeleteDocument handles DELETE /projects/{project_id}/documents/{document_id}
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	documentID := chi.URLParam(r, "document_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("project_id", projectID),
		zap.String("document_id", documentID),
		zap.String("action", "DeleteDocument"),
	)

	if err := h.usecase.DeleteDocument(ctx, projectID, documentID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "document deleted")
	h.respondJSON(w, http.StatusOK, &entity.DeleteDocumentResponse{
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
	var extractionErr *entity.ExtractionError

	if errors.Is(err, entity.ErrProjectNotFound) || errors.Is(err, entity.ErrDocumentNotFound) {
		h.respondError(ctx, w, http.StatusNotFound, "resource not found", err)
	} else if errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrMissingField) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	} else if errors.Is(err, entity.ErrInvalidFile) || errors.Is(err, entity.ErrFileTooLarge) || errors.Is(err, entity.ErrInvalidExtension) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid file", err)
	} else if errors.As(err, &extractionErr) {
		h.respondError(ctx, w, http.StatusBadRequest, "could not extract text from document", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
