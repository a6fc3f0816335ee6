package handler

import (
	"log/slog"
	"net/http"
	"time"

	"redline/internal/domain/services"
	"redline/internal/httputil"
)

// DocumentHandler handles document HTTP requests
type DocumentHandler struct {
	docService services.DocumentService
	logger     *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService services.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// contentRequest is the request body for every content-carrying endpoint.
type contentRequest struct {
	Content string `json:"content"`
}

// GetDocument retrieves a document version, latest unless ?version is given
// GET /document/{document_id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	documentID, err := pathInt64(r, "document_id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	version, err := queryVersion(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.docService.GetDocument(r.Context(), documentID, version)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// ListVersions lists all versions of a document with the latest computed
// GET /document/{document_id}/versions
func (h *DocumentHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	documentID, err := pathInt64(r, "document_id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.docService.ListVersions(r.Context(), documentID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, list)
}

// CreateVersion creates the next version of a document
// POST /document/{document_id}/version
func (h *DocumentHandler) CreateVersion(w http.ResponseWriter, r *http.Request) {
	documentID, err := pathInt64(r, "document_id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req contentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := h.docService.CreateVersion(r.Context(), documentID, req.Content)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// UpdateVersion overwrites the content of a specific version
// PUT /document/{document_id}/version/{version}
func (h *DocumentHandler) UpdateVersion(w http.ResponseWriter, r *http.Request) {
	documentID, err := pathInt64(r, "document_id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	version, err := pathInt(r, "version")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req contentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := h.docService.UpdateVersion(r.Context(), documentID, version, req.Content)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// Save overwrites the resolved version (latest unless ?version is given)
// POST /save/{document_id}
func (h *DocumentHandler) Save(w http.ResponseWriter, r *http.Request) {
	documentID, err := pathInt64(r, "document_id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	version, err := queryVersion(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req contentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.docService.Save(r.Context(), documentID, req.Content, version)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *DocumentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now(),
	})
}
