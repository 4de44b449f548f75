package services

import (
	"context"

	"inkline/internal/domain/models"
	"inkline/internal/httputil"
)

// FolderService handles folder-tree business logic
type FolderService interface {
	// CreateFolder creates a new folder
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// GetFolder retrieves a folder with query-time child/document counts
	GetFolder(ctx context.Context, ownerID, folderID string) (*models.FolderWithCounts, error)

	// UpdateFolder renames and/or moves a folder. Moves are validated
	// against the acyclicity invariant before anything is written.
	UpdateFolder(ctx context.Context, ownerID, folderID string, req *UpdateFolderRequest) (*models.Folder, error)

	// DeleteFolder deletes a folder and its whole subtree, detaching
	// (never deleting) the documents inside. Runs in one transaction.
	DeleteFolder(ctx context.Context, ownerID, folderID string) error

	// ListChildren lists immediate child folders and documents
	// (nil folderID = root level)
	ListChildren(ctx context.Context, ownerID string, folderID *string) (*FolderContents, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	OwnerID  string  `json:"-"` // Set by handler from auth context
	TenantID *string `json:"-"`
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"` // null for root
}

// UpdateFolderRequest represents a folder rename and/or move.
// ParentID is tri-state: absent means keep current placement, null means
// move to root, a value means move under that folder.
type UpdateFolderRequest struct {
	Name     *string                 `json:"name,omitempty"`
	ParentID httputil.OptionalString `json:"parent_id"`
}

// FolderContents represents a folder level with its children
type FolderContents struct {
	Folder    *models.Folder    `json:"folder,omitempty"` // null for root
	Folders   []models.Folder   `json:"folders"`
	Documents []models.Document `json:"documents"`
}
