package handler

import (
	"log/slog"
	"net/http"

	"inkline/internal/domain/services"
	"inkline/internal/httputil"
)

// TreeHandler serves the nested folder/document read model
type TreeHandler struct {
	treeService services.TreeService
	logger      *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeService services.TreeService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		treeService: treeService,
		logger:      logger,
	}
}

// GetTree handles GET /api/tree
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	tree, err := h.treeService.GetTree(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("build tree failed", "error", err, "owner_id", ownerID)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}
