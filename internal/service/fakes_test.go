package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"inkline/internal/domain"
	"inkline/internal/domain/models"
	"inkline/internal/domain/repositories"
)

// fakeFolderRepo is an in-memory FolderRepository for service tests.
type fakeFolderRepo struct {
	mu      sync.Mutex
	folders map[string]*models.Folder
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[string]*models.Folder)}
}

func (r *fakeFolderRepo) seed(f models.Folder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := f
	r.folders[f.ID] = &copied
}

func (r *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *folder
	r.folders[folder.ID] = &copied
	return nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[id]
	if !ok || f.OwnerID != ownerID {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	copied := *f
	return &copied, nil
}

func (r *fakeFolderRepo) GetByNameAndParent(ctx context.Context, ownerID, name string, parentID *string) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.folders {
		if f.OwnerID == ownerID && f.Name == name && sameRef(f.ParentID, parentID) {
			copied := *f
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeFolderRepo) Update(ctx context.Context, folder *models.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[folder.ID]
	if !ok || f.OwnerID != folder.OwnerID {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}
	copied := *folder
	r.folders[folder.ID] = &copied
	return nil
}

func (r *fakeFolderRepo) DeleteByIDs(ctx context.Context, ids []string, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		if f, ok := r.folders[id]; ok && f.OwnerID == ownerID {
			delete(r.folders, id)
		}
	}
	return nil
}

func (r *fakeFolderRepo) ListChildren(ctx context.Context, parentID *string, ownerID string) ([]models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []models.Folder{}
	for _, f := range r.folders {
		if f.OwnerID == ownerID && sameRef(f.ParentID, parentID) {
			result = append(result, *f)
		}
	}
	return result, nil
}

func (r *fakeFolderRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []models.Folder{}
	for _, f := range r.folders {
		if f.OwnerID == ownerID {
			result = append(result, *f)
		}
	}
	return result, nil
}

func (r *fakeFolderRepo) CountChildren(ctx context.Context, id, ownerID string) (int, error) {
	children, err := r.ListChildren(ctx, &id, ownerID)
	if err != nil {
		return 0, err
	}
	return len(children), nil
}

func (r *fakeFolderRepo) has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.folders[id]
	return ok
}

// fakeDocumentRepo is an in-memory DocumentRepository for service tests.
type fakeDocumentRepo struct {
	mu   sync.Mutex
	docs map[string]*models.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[string]*models.Document)}
}

func (r *fakeDocumentRepo) seed(d models.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := d
	r.docs[d.ID] = &copied
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *doc
	r.docs[doc.ID] = &copied
	return nil
}

func (r *fakeDocumentRepo) GetByID(ctx context.Context, id, ownerID string) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok || d.OwnerID != ownerID {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	copied := *d
	return &copied, nil
}

func (r *fakeDocumentRepo) List(ctx context.Context, filter repositories.DocumentFilter) ([]models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []models.Document{}
	for _, d := range r.docs {
		if d.OwnerID != filter.OwnerID {
			continue
		}
		if filter.TenantID != nil && !sameRef(d.TenantID, filter.TenantID) {
			continue
		}
		if filter.FolderScoped && !sameRef(d.FolderID, filter.FolderID) {
			continue
		}
		result = append(result, *d)
	}
	return result, nil
}

func (r *fakeDocumentRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []models.Document{}
	for _, d := range r.docs {
		if d.OwnerID == ownerID {
			meta := models.Document{
				ID:        d.ID,
				OwnerID:   d.OwnerID,
				TenantID:  d.TenantID,
				FolderID:  d.FolderID,
				Title:     d.Title,
				WordCount: d.WordCount,
				Version:   d.Version,
				UpdatedAt: d.UpdatedAt,
			}
			result = append(result, meta)
		}
	}
	return result, nil
}

func (r *fakeDocumentRepo) UpdateWithVersion(ctx context.Context, doc *models.Document, expectedVersion int, changes repositories.DocumentChanges) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[doc.ID]
	if !ok || d.OwnerID != doc.OwnerID || d.Version != expectedVersion {
		return false, nil
	}

	if changes.Title != nil {
		d.Title = *changes.Title
	}
	if changes.Content != nil {
		d.Content = *changes.Content
	}
	if changes.Formatting != nil {
		d.Formatting = *changes.Formatting
	}
	if changes.DocumentType != nil {
		d.DocumentType = *changes.DocumentType
	}
	if changes.CitationStyle != nil {
		d.CitationStyle = *changes.CitationStyle
	}
	if changes.WordCount != nil {
		d.WordCount = *changes.WordCount
	}
	d.Version++
	d.UpdatedAt = time.Now()

	*doc = *d
	return true, nil
}

func (r *fakeDocumentRepo) MoveToFolder(ctx context.Context, id, ownerID string, folderID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok || d.OwnerID != ownerID {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	d.FolderID = folderID
	d.UpdatedAt = time.Now()
	return nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok || d.OwnerID != ownerID {
		return false, nil
	}
	delete(r.docs, id)
	return true, nil
}

func (r *fakeDocumentRepo) DetachFromFolders(ctx context.Context, folderIDs []string, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inSet := make(map[string]bool, len(folderIDs))
	for _, id := range folderIDs {
		inSet[id] = true
	}
	for _, d := range r.docs {
		if d.OwnerID == ownerID && d.FolderID != nil && inSet[*d.FolderID] {
			d.FolderID = nil
			d.UpdatedAt = time.Now()
		}
	}
	return nil
}

func (r *fakeDocumentRepo) CountInFolder(ctx context.Context, folderID, ownerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, d := range r.docs {
		if d.OwnerID == ownerID && d.FolderID != nil && *d.FolderID == folderID {
			count++
		}
	}
	return count, nil
}

func (r *fakeDocumentRepo) get(id string) *models.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return nil
	}
	copied := *d
	return &copied
}

// fakeTxManager runs the function directly; the fakes are already
// atomic per call.
type fakeTxManager struct{}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strPtr(s string) *string {
	return &s
}
