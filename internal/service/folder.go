package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"inkline/internal/config"
	"inkline/internal/domain"
	"inkline/internal/domain/models"
	"inkline/internal/domain/repositories"
	"inkline/internal/domain/services"

	"github.com/google/uuid"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type folderService struct {
	folderRepo repositories.FolderRepository
	docRepo    repositories.DocumentRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	docRepo repositories.DocumentRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		docRepo:    docRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

var folderNamePattern = regexp.MustCompile(`^[^/]+$`)

// CreateFolder creates a new folder
func (s *folderService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	name := strings.TrimSpace(req.Name)

	// Parent must exist and belong to the same owner. A mismatch reads
	// as not-found; the caller learns nothing about other owners' trees.
	if req.ParentID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.ParentID, req.OwnerID); err != nil {
			return nil, err
		}
	}

	if err := s.ensureNameFree(ctx, req.OwnerID, name, req.ParentID, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	folder := &models.Folder{
		ID:        uuid.NewString(),
		OwnerID:   req.OwnerID,
		TenantID:  req.TenantID,
		ParentID:  req.ParentID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"owner_id", folder.OwnerID,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// GetFolder retrieves a folder with child/document counts. Counts are
// computed at query time, never cached, so a read taken after a move or
// delete always reflects the new placement.
func (s *folderService) GetFolder(ctx context.Context, ownerID, folderID string) (*models.FolderWithCounts, error) {
	folder, err := s.folderRepo.GetByID(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}

	childCount, err := s.folderRepo.CountChildren(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}

	docCount, err := s.docRepo.CountInFolder(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}

	return &models.FolderWithCounts{
		Folder:        *folder,
		ChildCount:    childCount,
		DocumentCount: docCount,
	}, nil
}

// UpdateFolder renames and/or moves a folder
func (s *folderService) UpdateFolder(ctx context.Context, ownerID, folderID string, req *services.UpdateFolderRequest) (*models.Folder, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folderRepo.GetByID(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		folder.Name = strings.TrimSpace(*req.Name)
	}

	// Tri-state: only update placement if the field was present in the
	// request
	if req.ParentID.Present {
		if req.ParentID.Value != nil && *req.ParentID.Value != "" {
			parent, err := s.folderRepo.GetByID(ctx, *req.ParentID.Value, ownerID)
			if err != nil {
				return nil, err
			}

			// The move must not make the folder its own ancestor
			if err := s.ensureNoCycle(ctx, ownerID, folderID, parent.ID); err != nil {
				return nil, err
			}

			folder.ParentID = &parent.ID
			s.logger.Debug("moving folder to new parent",
				"folder_id", folderID,
				"parent_id", parent.ID,
			)
		} else {
			// null = move to root
			folder.ParentID = nil
			s.logger.Debug("moving folder to root", "folder_id", folderID)
		}
	}

	// Re-check sibling uniqueness if name or placement changed
	if req.Name != nil || req.ParentID.Present {
		if err := s.ensureNameFree(ctx, ownerID, folder.Name, folder.ParentID, folder.ID); err != nil {
			return nil, err
		}
	}

	folder.UpdatedAt = time.Now()

	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// DeleteFolder deletes a folder and its whole subtree, detaching the
// documents inside. The detach and the subtree delete share one
// transaction: a crash mid-cascade can never leave folders gone but
// documents still pointing at them.
func (s *folderService) DeleteFolder(ctx context.Context, ownerID, folderID string) error {
	folder, err := s.folderRepo.GetByID(ctx, folderID, ownerID)
	if err != nil {
		return err
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		subtree, err := s.collectSubtree(txCtx, ownerID, folderID)
		if err != nil {
			return err
		}

		// Documents survive their folders; they are detached, never
		// deleted by folder removal.
		if err := s.docRepo.DetachFromFolders(txCtx, subtree, ownerID); err != nil {
			return err
		}

		return s.folderRepo.DeleteByIDs(txCtx, subtree, ownerID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder deleted",
		"id", folderID,
		"name", folder.Name,
		"owner_id", ownerID,
	)

	return nil
}

// ListChildren lists immediate child folders and documents
func (s *folderService) ListChildren(ctx context.Context, ownerID string, folderID *string) (*services.FolderContents, error) {
	var folder *models.Folder
	var err error

	if folderID != nil && *folderID != "" {
		folder, err = s.folderRepo.GetByID(ctx, *folderID, ownerID)
		if err != nil {
			return nil, err
		}
	} else {
		folderID = nil
	}

	childFolders, err := s.folderRepo.ListChildren(ctx, folderID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list child folders: %w", err)
	}
	if childFolders == nil {
		childFolders = []models.Folder{}
	}

	docs, err := s.docRepo.List(ctx, repositories.DocumentFilter{
		OwnerID:      ownerID,
		FolderID:     folderID,
		FolderScoped: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return &services.FolderContents{
		Folder:    folder,
		Folders:   childFolders,
		Documents: docs,
	}, nil
}

// collectSubtree gathers the ids of folderID and every descendant,
// breadth-first. Level count is bounded by the tree-depth ceiling so a
// corrupt parent chain cannot spin the walk forever.
func (s *folderService) collectSubtree(ctx context.Context, ownerID, folderID string) ([]string, error) {
	ids := []string{folderID}
	frontier := []string{folderID}

	for depth := 0; len(frontier) > 0; depth++ {
		if depth >= config.MaxFolderDepth {
			err := &domain.StructuralIntegrityError{
				Message:  fmt.Sprintf("folder subtree exceeds depth ceiling %d", config.MaxFolderDepth),
				FolderID: folderID,
			}
			s.logger.Error("folder tree corruption detected", "folder_id", folderID, "error", err)
			return nil, err
		}

		var next []string
		for _, id := range frontier {
			children, err := s.folderRepo.ListChildren(ctx, &id, ownerID)
			if err != nil {
				return nil, fmt.Errorf("failed to list child folders: %w", err)
			}
			for _, child := range children {
				ids = append(ids, child.ID)
				next = append(next, child.ID)
			}
		}
		frontier = next
	}

	return ids, nil
}

// ensureNoCycle rejects a move that would make folderID its own
// ancestor: the candidate parent's chain is walked upward, and if
// folderID appears before a root the move is invalid. The walk is
// bounded by the depth ceiling; running past it means the stored tree is
// already corrupt, which is surfaced loudly rather than looped on.
func (s *folderService) ensureNoCycle(ctx context.Context, ownerID, folderID, newParentID string) error {
	if newParentID == folderID {
		return fmt.Errorf("%w: cannot move folder into itself", domain.ErrValidation)
	}

	currentID := newParentID
	for depth := 0; depth < config.MaxFolderDepth; depth++ {
		ancestor, err := s.folderRepo.GetByID(ctx, currentID, ownerID)
		if err != nil {
			return err
		}

		if ancestor.ParentID == nil {
			// Reached a root without meeting folderID: move is safe
			return nil
		}

		if *ancestor.ParentID == folderID {
			return fmt.Errorf("%w: cannot move folder into its own descendant", domain.ErrValidation)
		}

		currentID = *ancestor.ParentID
	}

	err := &domain.StructuralIntegrityError{
		Message:  fmt.Sprintf("ancestor walk exceeded depth ceiling %d without reaching a root", config.MaxFolderDepth),
		FolderID: newParentID,
	}
	s.logger.Error("folder tree corruption detected", "folder_id", newParentID, "error", err)
	return err
}

// ensureNameFree enforces sibling-name uniqueness. excludeID skips the
// folder being renamed/moved so it does not collide with itself.
func (s *folderService) ensureNameFree(ctx context.Context, ownerID, name string, parentID *string, excludeID string) error {
	sibling, err := s.folderRepo.GetByNameAndParent(ctx, ownerID, name, parentID)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate names: %w", err)
	}
	if sibling != nil && sibling.ID != excludeID {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("a folder named %q already exists in this location", name),
			ResourceType: "folder",
			ResourceID:   sibling.ID,
		}
	}
	return nil
}

// validateCreateRequest validates a folder creation request
func (s *folderService) validateCreateRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
			validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
		),
	)
}

// validateUpdateRequest validates a folder update request
func (s *folderService) validateUpdateRequest(req *services.UpdateFolderRequest) error {
	// At least one field must be provided
	if req.Name == nil && !req.ParentID.Present {
		return fmt.Errorf("at least one field must be provided")
	}

	if req.Name != nil {
		return validation.ValidateStruct(req,
			validation.Field(&req.Name,
				validation.Required,
				validation.Length(1, config.MaxFolderNameLength),
				validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
			),
		)
	}

	return nil
}
