package services

import (
	"context"

	"inkline/internal/domain/models"
	"inkline/internal/httputil"
)

// DocumentService handles document business logic
type DocumentService interface {
	// CreateDocument creates a new document at version 1
	CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*models.Document, error)

	// GetDocument retrieves a document
	GetDocument(ctx context.Context, ownerID, documentID string) (*models.Document, error)

	// ListDocuments lists documents for an owner, optionally narrowed by
	// tenant and/or folder (tri-state: a null folder filter selects
	// documents with no folder)
	ListDocuments(ctx context.Context, req *ListDocumentsRequest) ([]models.Document, error)

	// UpdateDocument applies a version-checked update. A stale version
	// yields a conflict result carrying the current row, not an error:
	// conflicts are an expected branch the caller reconciles.
	UpdateDocument(ctx context.Context, ownerID, documentID string, req *UpdateDocumentRequest) (*UpdateDocumentResult, error)

	// MoveDocument changes folder placement without touching the version
	MoveDocument(ctx context.Context, ownerID, documentID string, folderID *string) (*models.Document, error)

	// DeleteDocument hard-deletes a document; reports whether a row was
	// actually removed
	DeleteDocument(ctx context.Context, ownerID, documentID string) (bool, error)
}

// CreateDocumentRequest represents a document creation request
type CreateDocumentRequest struct {
	OwnerID       string             `json:"-"` // Set by handler from auth context
	TenantID      *string            `json:"-"`
	FolderID      *string            `json:"folder_id,omitempty"`
	Title         string             `json:"title"`
	Content       string             `json:"content"`
	Formatting    *models.Formatting `json:"formatting,omitempty"`
	DocumentType  string             `json:"document_type,omitempty"`
	CitationStyle string             `json:"citation_style,omitempty"`
	AssignmentID  *string            `json:"assignment_id,omitempty"`
	ClassID       *string            `json:"class_id,omitempty"`
}

// ListDocumentsRequest narrows a document listing. FolderID is tri-state
// so "folder filter not supplied" and "documents with no folder" stay
// distinct.
type ListDocumentsRequest struct {
	OwnerID  string
	TenantID *string
	FolderID httputil.OptionalString
}

// UpdateDocumentRequest represents a version-checked document update.
// Version is the version the caller last observed.
type UpdateDocumentRequest struct {
	Version       int                `json:"version"`
	Title         *string            `json:"title,omitempty"`
	Content       *string            `json:"content,omitempty"`
	Formatting    *models.Formatting `json:"formatting,omitempty"`
	DocumentType  *string            `json:"document_type,omitempty"`
	CitationStyle *string            `json:"citation_style,omitempty"`
}

// UpdateDocumentResult is the outcome of a version-checked update. On
// conflict, Document holds the current stored row (including its current
// version) so the caller can reconcile and resubmit.
type UpdateDocumentResult struct {
	Document         *models.Document `json:"document"`
	Conflict         bool             `json:"conflict"`
	AttemptedVersion int              `json:"attempted_version,omitempty"`
	CurrentVersion   int              `json:"current_version,omitempty"`
}
