package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"inkline/internal/config"
	"inkline/internal/domain"
	"inkline/internal/domain/models"
	"inkline/internal/domain/repositories"
	"inkline/internal/domain/services"
	"inkline/internal/styles"

	"github.com/google/uuid"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// documentService implements the DocumentService interface
type documentService struct {
	docRepo   repositories.DocumentRepository
	validator *ResourceValidator
	analyzer  *ContentAnalyzer
	styles    *styles.Registry
	logger    *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	validator *ResourceValidator,
	analyzer *ContentAnalyzer,
	styleRegistry *styles.Registry,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		docRepo:   docRepo,
		validator: validator,
		analyzer:  analyzer,
		styles:    styleRegistry,
		logger:    logger,
	}
}

// CreateDocument creates a new document at version 1
func (s *documentService) CreateDocument(ctx context.Context, req *services.CreateDocumentRequest) (*models.Document, error) {
	// Normalize empty string folder_id to nil for root-level documents
	if req.FolderID != nil && *req.FolderID == "" {
		req.FolderID = nil
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// The referenced folder must belong to the same owner; this is the
	// only thing the document store asks of the folder tree.
	if err := s.validator.ValidateFolder(ctx, req.FolderID, req.OwnerID); err != nil {
		return nil, err
	}

	formatting := models.EmptyFormatting()
	if req.Formatting != nil {
		if err := req.Formatting.ValidateFor(req.Content); err != nil {
			return nil, fmt.Errorf("%w: formatting: %v", domain.ErrValidation, err)
		}
		formatting = *req.Formatting
	}

	docType := req.DocumentType
	if docType == "" {
		docType = s.styles.DefaultDocumentType()
	}
	citationStyle := req.CitationStyle
	if citationStyle == "" {
		citationStyle = s.styles.DefaultCitationStyle()
	}

	now := time.Now()
	doc := &models.Document{
		ID:            uuid.NewString(),
		OwnerID:       req.OwnerID,
		TenantID:      req.TenantID,
		FolderID:      req.FolderID,
		Title:         strings.TrimSpace(req.Title),
		Content:       req.Content,
		Formatting:    formatting,
		DocumentType:  docType,
		CitationStyle: citationStyle,
		WordCount:     s.analyzer.CountWords(req.Content),
		Version:       1,
		AssignmentID:  req.AssignmentID,
		ClassID:       req.ClassID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"id", doc.ID,
		"title", doc.Title,
		"owner_id", doc.OwnerID,
		"folder_id", doc.FolderID,
		"word_count", doc.WordCount,
	)

	return doc, nil
}

// GetDocument retrieves a document
func (s *documentService) GetDocument(ctx context.Context, ownerID, documentID string) (*models.Document, error) {
	return s.docRepo.GetByID(ctx, documentID, ownerID)
}

// ListDocuments lists documents for an owner. The folder filter is
// tri-state: absent means no folder filtering, null means documents with
// no folder, a value means documents in that folder.
func (s *documentService) ListDocuments(ctx context.Context, req *services.ListDocumentsRequest) ([]models.Document, error) {
	if req.OwnerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", domain.ErrValidation)
	}

	filter := repositories.DocumentFilter{
		OwnerID:  req.OwnerID,
		TenantID: req.TenantID,
	}
	if req.FolderID.Present {
		filter.FolderScoped = true
		if req.FolderID.Value != nil && *req.FolderID.Value != "" {
			filter.FolderID = req.FolderID.Value
		}
	}

	return s.docRepo.List(ctx, filter)
}

// UpdateDocument applies a version-checked update. The repository
// performs the compare-and-swap in a single conditional statement; this
// method never retries on conflict - reconciliation belongs to the
// caller, who receives the current row to work from.
func (s *documentService) UpdateDocument(ctx context.Context, ownerID, documentID string, req *services.UpdateDocumentRequest) (*services.UpdateDocumentResult, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Current row, for formatting bounds and the not-found check. The
	// conditional update below still guards against any writer that
	// slips in after this read.
	current, err := s.docRepo.GetByID(ctx, documentID, ownerID)
	if err != nil {
		return nil, err
	}

	// The stored formatting must stay within the stored content at all
	// times: validate the effective pair this update would leave behind.
	effectiveContent := current.Content
	if req.Content != nil {
		effectiveContent = *req.Content
	}
	effectiveFormatting := current.Formatting
	if req.Formatting != nil {
		effectiveFormatting = *req.Formatting
	}
	if err := effectiveFormatting.ValidateFor(effectiveContent); err != nil {
		return nil, fmt.Errorf("%w: formatting: %v", domain.ErrValidation, err)
	}

	changes := repositories.DocumentChanges{
		Title:         req.Title,
		Content:       req.Content,
		Formatting:    req.Formatting,
		DocumentType:  req.DocumentType,
		CitationStyle: req.CitationStyle,
	}
	if req.Content != nil {
		wordCount := s.analyzer.CountWords(*req.Content)
		changes.WordCount = &wordCount
	}

	doc := &models.Document{ID: documentID, OwnerID: ownerID}
	matched, err := s.docRepo.UpdateWithVersion(ctx, doc, req.Version, changes)
	if err != nil {
		return nil, err
	}

	if !matched {
		// Another writer won the race (or the row vanished). Re-fetch
		// so the caller sees what it is conflicting with.
		latest, err := s.docRepo.GetByID(ctx, documentID, ownerID)
		if err != nil {
			return nil, err
		}

		s.logger.Info("document update conflict",
			"id", documentID,
			"attempted_version", req.Version,
			"current_version", latest.Version,
		)

		return &services.UpdateDocumentResult{
			Document:         latest,
			Conflict:         true,
			AttemptedVersion: req.Version,
			CurrentVersion:   latest.Version,
		}, nil
	}

	s.logger.Info("document updated",
		"id", doc.ID,
		"version", doc.Version,
	)

	return &services.UpdateDocumentResult{Document: doc}, nil
}

// MoveDocument changes folder placement. The version counter is not
// incremented: placement is metadata, outside the optimistic-concurrency
// contract.
func (s *documentService) MoveDocument(ctx context.Context, ownerID, documentID string, folderID *string) (*models.Document, error) {
	if folderID != nil && *folderID == "" {
		folderID = nil
	}

	// Same ownership rule as creation: a foreign folder reads as
	// not-found.
	if err := s.validator.ValidateFolder(ctx, folderID, ownerID); err != nil {
		return nil, err
	}

	if err := s.docRepo.MoveToFolder(ctx, documentID, ownerID, folderID); err != nil {
		return nil, err
	}

	doc, err := s.docRepo.GetByID(ctx, documentID, ownerID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("document moved",
		"id", documentID,
		"folder_id", folderID,
	)

	return doc, nil
}

// DeleteDocument hard-deletes a document. Deleting an id that is already
// gone reports false rather than failing, so deletes are idempotent.
func (s *documentService) DeleteDocument(ctx context.Context, ownerID, documentID string) (bool, error) {
	deleted, err := s.docRepo.Delete(ctx, documentID, ownerID)
	if err != nil {
		return false, err
	}

	if deleted {
		s.logger.Info("document deleted", "id", documentID, "owner_id", ownerID)
	}

	return deleted, nil
}

// validateCreateRequest validates a document creation request
func (s *documentService) validateCreateRequest(req *services.CreateDocumentRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
		),
	); err != nil {
		return err
	}

	if req.DocumentType != "" && !s.styles.IsDocumentType(req.DocumentType) {
		return fmt.Errorf("unknown document type %q", req.DocumentType)
	}
	if req.CitationStyle != "" && !s.styles.IsCitationStyle(req.CitationStyle) {
		return fmt.Errorf("unknown citation style %q", req.CitationStyle)
	}

	return nil
}

// validateUpdateRequest validates a version-checked update request
func (s *documentService) validateUpdateRequest(req *services.UpdateDocumentRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Version, validation.Required, validation.Min(1)),
	); err != nil {
		return err
	}

	if req.Title == nil && req.Content == nil && req.Formatting == nil &&
		req.DocumentType == nil && req.CitationStyle == nil {
		return fmt.Errorf("at least one field must be provided")
	}

	if req.Title != nil {
		if err := validation.Validate(strings.TrimSpace(*req.Title),
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
		); err != nil {
			return fmt.Errorf("title: %v", err)
		}
	}
	if req.DocumentType != nil && !s.styles.IsDocumentType(*req.DocumentType) {
		return fmt.Errorf("unknown document type %q", *req.DocumentType)
	}
	if req.CitationStyle != nil && !s.styles.IsCitationStyle(*req.CitationStyle) {
		return fmt.Errorf("unknown citation style %q", *req.CitationStyle)
	}

	return nil
}
