package repositories

import (
	"context"

	"inkline/internal/domain/models"
)

// FolderRepository is the persistence surface for the folder tree.
// Every query is scoped by owner id; a row belonging to another owner is
// indistinguishable from a missing row.
type FolderRepository interface {
	// Create inserts a new folder
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder owned by ownerID
	GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error)

	// GetByNameAndParent finds a sibling by name under parentID.
	// Returns (nil, nil) when no such folder exists.
	GetByNameAndParent(ctx context.Context, ownerID, name string, parentID *string) (*models.Folder, error)

	// Update persists name/parent changes
	Update(ctx context.Context, folder *models.Folder) error

	// DeleteByIDs removes a set of folders in one statement. Safe for a
	// whole subtree: the self-referencing FK only fails if a surviving
	// row still points at a deleted one.
	DeleteByIDs(ctx context.Context, ids []string, ownerID string) error

	// ListChildren lists immediate child folders (nil parentID = roots)
	ListChildren(ctx context.Context, parentID *string, ownerID string) ([]models.Folder, error)

	// ListByOwner retrieves all folders for an owner (flat list)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error)

	// CountChildren counts immediate child folders
	CountChildren(ctx context.Context, id, ownerID string) (int, error)
}
