package service

import (
	"context"
	"log/slog"

	"inkline/internal/domain/models"
	"inkline/internal/domain/repositories"
	"inkline/internal/domain/services"
)

// treeService implements the TreeService interface
type treeService struct {
	folderRepo repositories.FolderRepository
	docRepo    repositories.DocumentRepository
	logger     *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	folderRepo repositories.FolderRepository,
	docRepo repositories.DocumentRepository,
	logger *slog.Logger,
) services.TreeService {
	return &treeService{
		folderRepo: folderRepo,
		docRepo:    docRepo,
		logger:     logger,
	}
}

// GetTree builds the nested folder/document forest for an owner from two
// flat queries, using a 3-pass fold: create nodes, nest folders, place
// documents.
func (s *treeService) GetTree(ctx context.Context, ownerID string) (*models.TreeNode, error) {
	allFolders, err := s.folderRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// Metadata only - tree payloads skip content and formatting
	allDocuments, err := s.docRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// First pass: create all folder nodes
	folderMap := make(map[string]*models.FolderTreeNode, len(allFolders))
	for _, folder := range allFolders {
		folderMap[folder.ID] = &models.FolderTreeNode{
			ID:        folder.ID,
			Name:      folder.Name,
			ParentID:  folder.ParentID,
			CreatedAt: folder.CreatedAt,
			Folders:   []*models.FolderTreeNode{},
			Documents: []models.DocumentTreeNode{},
		}
	}

	// Second pass: nest folders by connecting children to parents
	rootFolders := []*models.FolderTreeNode{}
	for _, folder := range allFolders {
		node := folderMap[folder.ID]
		if folder.ParentID == nil {
			rootFolders = append(rootFolders, node)
		} else if parent, exists := folderMap[*folder.ParentID]; exists {
			parent.Folders = append(parent.Folders, node)
		}
	}

	// Third pass: place documents in their folders
	rootDocuments := []models.DocumentTreeNode{}
	for _, doc := range allDocuments {
		docNode := models.DocumentTreeNode{
			ID:        doc.ID,
			Title:     doc.Title,
			FolderID:  doc.FolderID,
			WordCount: doc.WordCount,
			Version:   doc.Version,
			UpdatedAt: doc.UpdatedAt,
		}

		if doc.FolderID == nil {
			rootDocuments = append(rootDocuments, docNode)
		} else if parent, exists := folderMap[*doc.FolderID]; exists {
			parent.Documents = append(parent.Documents, docNode)
		} else {
			// Dangling folder reference; surface the document at the
			// root rather than dropping it
			s.logger.Warn("document references missing folder",
				"doc_id", doc.ID,
				"folder_id", *doc.FolderID,
			)
			rootDocuments = append(rootDocuments, docNode)
		}
	}

	return &models.TreeNode{
		Folders:   rootFolders,
		Documents: rootDocuments,
	}, nil
}
