package services

import (
	"context"

	"inkline/internal/domain/models"
)

// TreeService builds the nested folder/document read model
type TreeService interface {
	// GetTree returns the whole forest for an owner
	GetTree(ctx context.Context, ownerID string) (*models.TreeNode, error)
}
