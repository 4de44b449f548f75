package repositories

import (
	"context"

	"inkline/internal/domain/models"
)

// DocumentFilter narrows a document listing. FolderScoped distinguishes
// "no folder filter" (false) from "filter by FolderID" (true, where a nil
// FolderID means documents with no folder).
type DocumentFilter struct {
	OwnerID      string
	TenantID     *string
	FolderID     *string
	FolderScoped bool
}

// DocumentChanges is the field set applied by a version-checked update.
// A nil pointer leaves the stored value untouched. Fields not listed here
// (folder_id in particular) are never written by UpdateWithVersion, so a
// concurrent MoveToFolder can interleave without clobbering placement.
type DocumentChanges struct {
	Title         *string
	Content       *string
	Formatting    *models.Formatting
	DocumentType  *string
	CitationStyle *string
	WordCount     *int
}

// DocumentRepository is the persistence surface for documents. As with
// folders, all queries are owner-scoped.
type DocumentRepository interface {
	// Create inserts a new document (version must already be 1)
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document owned by ownerID
	GetByID(ctx context.Context, id, ownerID string) (*models.Document, error)

	// List returns documents matching the filter
	List(ctx context.Context, filter DocumentFilter) ([]models.Document, error)

	// ListByOwner retrieves metadata-only rows for an owner (no content
	// or formatting payloads)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Document, error)

	// UpdateWithVersion applies changes through a single conditional
	// UPDATE guarded by expectedVersion. It returns true and refreshes
	// doc when the stored version matched (new version =
	// expectedVersion+1), false with no mutation when another writer
	// already advanced the row. The check and the write are one atomic
	// statement; there is no read-then-write window.
	UpdateWithVersion(ctx context.Context, doc *models.Document, expectedVersion int, changes DocumentChanges) (bool, error)

	// MoveToFolder updates folder_id (and updated_at) only. The version
	// counter is intentionally untouched: placement is metadata.
	MoveToFolder(ctx context.Context, id, ownerID string, folderID *string) error

	// Delete hard-deletes a document, reporting whether a row was
	// removed. Deleting an absent id is a no-op, not an error.
	Delete(ctx context.Context, id, ownerID string) (bool, error)

	// DetachFromFolders nulls folder_id for every document inside the
	// given folders. Used by the cascade delete; documents survive their
	// folder.
	DetachFromFolders(ctx context.Context, folderIDs []string, ownerID string) error

	// CountInFolder counts documents directly inside a folder
	CountInFolder(ctx context.Context, folderID, ownerID string) (int, error)
}
