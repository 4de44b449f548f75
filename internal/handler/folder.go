package handler

import (
	"log/slog"
	"net/http"

	"inkline/internal/domain/services"
	"inkline/internal/httputil"
)

// FolderHandler handles folder-tree HTTP requests
type FolderHandler struct {
	folderService services.FolderService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService services.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

// CreateFolder handles POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req services.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.OwnerID = ownerID
	req.TenantID = httputil.GetSchoolID(r)

	folder, err := h.folderService.CreateFolder(r.Context(), &req)
	if err != nil {
		h.logger.Error("create folder failed", "error", err, "owner_id", ownerID)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// GetFolder handles GET /api/folders/{id}
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	folderID := r.PathValue("id")

	folder, err := h.folderService.GetFolder(r.Context(), ownerID, folderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// UpdateFolder handles PATCH /api/folders/{id}.
// Renames and/or moves; parent_id uses JSON merge-patch semantics
// (absent = keep, null = move to root).
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	folderID := r.PathValue("id")

	var req services.UpdateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	folder, err := h.folderService.UpdateFolder(r.Context(), ownerID, folderID, &req)
	if err != nil {
		h.logger.Error("update folder failed", "error", err, "folder_id", folderID, "owner_id", ownerID)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// DeleteFolder handles DELETE /api/folders/{id}.
// Deletes the whole subtree; documents inside are detached, not deleted.
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	folderID := r.PathValue("id")

	if err := h.folderService.DeleteFolder(r.Context(), ownerID, folderID); err != nil {
		h.logger.Error("delete folder failed", "error", err, "folder_id", folderID, "owner_id", ownerID)
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListContents handles GET /api/folders/{id}/contents
func (h *FolderHandler) ListContents(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	folderID := r.PathValue("id")

	contents, err := h.folderService.ListChildren(r.Context(), ownerID, &folderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, contents)
}

// ListRootContents handles GET /api/folders.
// Returns the root level: folders and documents with no parent.
func (h *FolderHandler) ListRootContents(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	contents, err := h.folderService.ListChildren(r.Context(), ownerID, nil)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, contents)
}
