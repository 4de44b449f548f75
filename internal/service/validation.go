package service

import (
	"context"
	"fmt"

	"inkline/internal/domain/repositories"
)

// ResourceValidator answers the one question the document store needs
// from the folder tree: does folder F exist and belong to owner O. This
// is the only interface between the two components; document code never
// sees folder internals.
type ResourceValidator struct {
	folderRepo repositories.FolderRepository
}

// NewResourceValidator creates a new resource validator
func NewResourceValidator(folderRepo repositories.FolderRepository) *ResourceValidator {
	return &ResourceValidator{folderRepo: folderRepo}
}

// ValidateFolder ensures a folder exists and belongs to ownerID.
// A nil folderID is the root level, which is always valid. An ownership
// mismatch comes back as the repository's not-found error, so callers
// cannot distinguish another owner's folder from a missing one.
func (v *ResourceValidator) ValidateFolder(ctx context.Context, folderID *string, ownerID string) error {
	if folderID == nil || *folderID == "" {
		return nil
	}

	if _, err := v.folderRepo.GetByID(ctx, *folderID, ownerID); err != nil {
		return fmt.Errorf("invalid folder: %w", err)
	}
	return nil
}
