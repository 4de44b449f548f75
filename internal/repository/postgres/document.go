package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"inkline/internal/domain"
	"inkline/internal/domain/models"
	"inkline/internal/domain/repositories"
)

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const documentColumns = `id, owner_id, tenant_id, folder_id, title, content, formatting,
	document_type, citation_style, word_count, version, assignment_id, class_id,
	created_at, updated_at`

// scanDocument reads a full document row. The formatting payload is one
// JSONB column; it is decoded here so callers only ever see the typed
// overlay model.
func scanDocument(row interface{ Scan(...interface{}) error }, doc *models.Document) error {
	var formatting []byte
	err := row.Scan(
		&doc.ID,
		&doc.OwnerID,
		&doc.TenantID,
		&doc.FolderID,
		&doc.Title,
		&doc.Content,
		&formatting,
		&doc.DocumentType,
		&doc.CitationStyle,
		&doc.WordCount,
		&doc.Version,
		&doc.AssignmentID,
		&doc.ClassID,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return err
	}

	doc.Formatting = models.EmptyFormatting()
	if len(formatting) > 0 {
		if err := json.Unmarshal(formatting, &doc.Formatting); err != nil {
			return fmt.Errorf("decode formatting: %w", err)
		}
	}
	return nil
}

// Create inserts a new document
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	formatting, err := json.Marshal(doc.Formatting)
	if err != nil {
		return fmt.Errorf("encode formatting: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, owner_id, tenant_id, folder_id, title, content, formatting,
			document_type, citation_style, word_count, version, assignment_id, class_id,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	err = executor.QueryRow(ctx, query,
		doc.ID,
		doc.OwnerID,
		doc.TenantID,
		doc.FolderID,
		doc.Title,
		doc.Content,
		formatting,
		doc.DocumentType,
		doc.CitationStyle,
		doc.WordCount,
		doc.Version,
		doc.AssignmentID,
		doc.ClassID,
		doc.CreatedAt,
		doc.UpdatedAt,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("document '%s': %w", doc.Title, domain.ErrConflict)
		}
		if IsPgForeignKeyError(err) {
			// Folder vanished between validation and insert
			return fmt.Errorf("folder for document '%s': %w", doc.Title, domain.ErrNotFound)
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a document by ID, scoped to its owner
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND owner_id = $2
	`, documentColumns, r.tables.Documents)

	var doc models.Document
	executor := GetExecutor(ctx, r.pool)
	if err := scanDocument(executor.QueryRow(ctx, query, id, ownerID), &doc); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return &doc, nil
}

// List returns documents matching the filter
func (r *PostgresDocumentRepository) List(ctx context.Context, filter repositories.DocumentFilter) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE owner_id = $1
	`, documentColumns, r.tables.Documents)

	args := []interface{}{filter.OwnerID}
	paramIndex := 2

	if filter.TenantID != nil {
		query += fmt.Sprintf(` AND tenant_id = $%d`, paramIndex)
		args = append(args, *filter.TenantID)
		paramIndex++
	}

	if filter.FolderScoped {
		if filter.FolderID == nil {
			// Explicit "no folder" filter, distinct from unfiltered
			query += ` AND folder_id IS NULL`
		} else {
			query += fmt.Sprintf(` AND folder_id = $%d`, paramIndex)
			args = append(args, *filter.FolderID)
		}
	}

	query += ` ORDER BY updated_at DESC`

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var documents []models.Document
	for rows.Next() {
		var doc models.Document
		if err := scanDocument(rows, &doc); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		documents = append(documents, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	// Return empty slice instead of nil
	if documents == nil {
		documents = []models.Document{}
	}

	return documents, nil
}

// ListByOwner retrieves metadata-only rows for an owner (no content or
// formatting payloads)
func (r *PostgresDocumentRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, tenant_id, folder_id, title, word_count, version, updated_at
		FROM %s
		WHERE owner_id = $1
		ORDER BY updated_at DESC
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list document metadata: %w", err)
	}
	defer rows.Close()

	var documents []models.Document
	for rows.Next() {
		var doc models.Document
		err := rows.Scan(
			&doc.ID,
			&doc.OwnerID,
			&doc.TenantID,
			&doc.FolderID,
			&doc.Title,
			&doc.WordCount,
			&doc.Version,
			&doc.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		documents = append(documents, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	if documents == nil {
		documents = []models.Document{}
	}

	return documents, nil
}

// UpdateWithVersion applies changes through a single conditional UPDATE:
// the row is written only if its stored version still equals
// expectedVersion, and the same statement bumps version by one. The
// compare and the write are one atomic operation at the storage engine,
// so two racing writers with the same observed version cannot both win.
// Returns false with no mutation when the stored version had already
// advanced.
//
// Fields touched: title, content, formatting, document_type,
// citation_style, word_count, version, updated_at. folder_id is never
// written here; see MoveToFolder.
func (r *PostgresDocumentRepository) UpdateWithVersion(ctx context.Context, doc *models.Document, expectedVersion int, changes repositories.DocumentChanges) (bool, error) {
	sets := []string{"version = version + 1"}
	var args []interface{}
	paramIndex := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, paramIndex))
		args = append(args, value)
		paramIndex++
	}

	if changes.Title != nil {
		addSet("title", *changes.Title)
	}
	if changes.Content != nil {
		addSet("content", *changes.Content)
	}
	if changes.Formatting != nil {
		formatting, err := json.Marshal(*changes.Formatting)
		if err != nil {
			return false, fmt.Errorf("encode formatting: %w", err)
		}
		addSet("formatting", formatting)
	}
	if changes.DocumentType != nil {
		addSet("document_type", *changes.DocumentType)
	}
	if changes.CitationStyle != nil {
		addSet("citation_style", *changes.CitationStyle)
	}
	if changes.WordCount != nil {
		addSet("word_count", *changes.WordCount)
	}
	addSet("updated_at", time.Now())

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s
		WHERE id = $%d AND owner_id = $%d AND version = $%d
		RETURNING %s
	`, r.tables.Documents, strings.Join(sets, ", "), paramIndex, paramIndex+1, paramIndex+2, documentColumns)
	args = append(args, doc.ID, doc.OwnerID, expectedVersion)

	executor := GetExecutor(ctx, r.pool)
	if err := scanDocument(executor.QueryRow(ctx, query, args...), doc); err != nil {
		if IsPgNoRowsError(err) {
			// Version mismatch or missing row; the caller decides which
			return false, nil
		}
		return false, fmt.Errorf("update document: %w", err)
	}

	return true, nil
}

// MoveToFolder updates folder placement only. Fields touched: folder_id,
// updated_at. The version counter is left alone: placement is metadata,
// not document content, and does not participate in the optimistic
// concurrency contract.
func (r *PostgresDocumentRepository) MoveToFolder(ctx context.Context, id, ownerID string, folderID *string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET folder_id = $1, updated_at = $2
		WHERE id = $3 AND owner_id = $4
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, folderID, time.Now(), id, ownerID)
	if err != nil {
		if IsPgForeignKeyError(err) {
			// Target folder vanished between validation and write
			return fmt.Errorf("target folder: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("move document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete hard-deletes a document, reporting whether a row was removed
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete document: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// DetachFromFolders nulls folder_id for every document inside the given
// folders. Documents are never deleted by folder removal.
func (r *PostgresDocumentRepository) DetachFromFolders(ctx context.Context, folderIDs []string, ownerID string) error {
	if len(folderIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET folder_id = NULL, updated_at = $1
		WHERE folder_id = ANY($2) AND owner_id = $3
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, time.Now(), folderIDs, ownerID); err != nil {
		return fmt.Errorf("detach documents: %w", err)
	}

	return nil
}

// CountInFolder counts documents directly inside a folder
func (r *PostgresDocumentRepository) CountInFolder(ctx context.Context, folderID, ownerID string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE folder_id = $1 AND owner_id = $2
	`, r.tables.Documents)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, folderID, ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count documents in folder: %w", err)
	}

	return count, nil
}
