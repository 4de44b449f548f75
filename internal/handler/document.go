package handler

import (
	"log/slog"
	"net/http"

	"inkline/internal/domain/services"
	"inkline/internal/httputil"
)

// DocumentHandler handles document HTTP requests
type DocumentHandler struct {
	documentService services.DocumentService
	logger          *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService services.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		logger:          logger,
	}
}

// HealthCheck handles GET /health
func (h *DocumentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// CreateDocument handles POST /api/documents
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req services.CreateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.OwnerID = ownerID
	req.TenantID = httputil.GetSchoolID(r)

	doc, err := h.documentService.CreateDocument(r.Context(), &req)
	if err != nil {
		h.logger.Error("create document failed", "error", err, "owner_id", ownerID)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// GetDocument handles GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	documentID := r.PathValue("id")

	doc, err := h.documentService.GetDocument(r.Context(), ownerID, documentID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// ListDocuments handles GET /api/documents.
// The folder_id query parameter is tri-state: omitted means no folder
// filter, "null" selects documents outside any folder, any other value
// selects documents in that folder.
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	req := services.ListDocumentsRequest{
		OwnerID:  ownerID,
		TenantID: httputil.GetSchoolID(r),
	}
	if r.URL.Query().Has("folder_id") {
		req.FolderID.Present = true
		if v := r.URL.Query().Get("folder_id"); v != "" && v != "null" {
			req.FolderID.Value = &v
		}
	}

	docs, err := h.documentService.ListDocuments(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"documents": docs,
	})
}

// UpdateDocument handles PATCH /api/documents/{id}.
// The body must carry the version the client last observed; a stale
// version gets a 409 whose body includes the current stored document so
// the client can reconcile and resubmit.
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	documentID := r.PathValue("id")

	var req services.UpdateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.documentService.UpdateDocument(r.Context(), ownerID, documentID, &req)
	if err != nil {
		h.logger.Error("update document failed", "error", err, "document_id", documentID, "owner_id", ownerID)
		handleError(w, err)
		return
	}

	if result.Conflict {
		httputil.RespondJSON(w, http.StatusConflict, result)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// moveDocumentRequest is the body of a folder placement change.
// folder_id must be present; null moves the document out of any folder.
type moveDocumentRequest struct {
	FolderID httputil.OptionalString `json:"folder_id"`
}

// MoveDocument handles PUT /api/documents/{id}/folder
func (h *DocumentHandler) MoveDocument(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	documentID := r.PathValue("id")

	var req moveDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.FolderID.Present {
		httputil.RespondError(w, http.StatusBadRequest, "folder_id is required (use null to move to root)")
		return
	}

	doc, err := h.documentService.MoveDocument(r.Context(), ownerID, documentID, req.FolderID.Value)
	if err != nil {
		h.logger.Error("move document failed", "error", err, "document_id", documentID, "owner_id", ownerID)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// DeleteDocument handles DELETE /api/documents/{id}.
// Deleting an already-deleted document is a no-op, not an error.
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	documentID := r.PathValue("id")

	deleted, err := h.documentService.DeleteDocument(r.Context(), ownerID, documentID)
	if err != nil {
		h.logger.Error("delete document failed", "error", err, "document_id", documentID, "owner_id", ownerID)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": deleted,
	})
}
