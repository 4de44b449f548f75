package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"inkline/internal/domain"
	"inkline/internal/domain/models"
	"inkline/internal/domain/services"
	"inkline/internal/httputil"
)

const testOwner = "owner-1"

func newTestFolderService(folderRepo *fakeFolderRepo, docRepo *fakeDocumentRepo) services.FolderService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewFolderService(folderRepo, docRepo, &fakeTxManager{}, logger)
}

func TestCreateFolder(t *testing.T) {
	ctx := context.Background()

	t.Run("creates root folder", func(t *testing.T) {
		folderRepo := newFakeFolderRepo()
		svc := newTestFolderService(folderRepo, newFakeDocumentRepo())

		folder, err := svc.CreateFolder(ctx, &services.CreateFolderRequest{
			OwnerID: testOwner,
			Name:    "  Essays  ",
		})
		if err != nil {
			t.Fatalf("CreateFolder failed: %v", err)
		}
		if folder.ID == "" {
			t.Error("expected generated id")
		}
		if folder.Name != "Essays" {
			t.Errorf("expected trimmed name 'Essays', got %q", folder.Name)
		}
		if folder.ParentID != nil {
			t.Errorf("expected root folder, got parent %v", *folder.ParentID)
		}
	})

	t.Run("creates nested folder", func(t *testing.T) {
		folderRepo := newFakeFolderRepo()
		folderRepo.seed(models.Folder{ID: "parent", OwnerID: testOwner, Name: "Parent"})
		svc := newTestFolderService(folderRepo, newFakeDocumentRepo())

		folder, err := svc.CreateFolder(ctx, &services.CreateFolderRequest{
			OwnerID:  testOwner,
			Name:     "Child",
			ParentID: strPtr("parent"),
		})
		if err != nil {
			t.Fatalf("CreateFolder failed: %v", err)
		}
		if folder.ParentID == nil || *folder.ParentID != "parent" {
			t.Errorf("expected parent 'parent', got %v", folder.ParentID)
		}
	})

	t.Run("rejects missing parent", func(t *testing.T) {
		svc := newTestFolderService(newFakeFolderRepo(), newFakeDocumentRepo())

		_, err := svc.CreateFolder(ctx, &services.CreateFolderRequest{
			OwnerID:  testOwner,
			Name:     "Orphan",
			ParentID: strPtr("ghost"),
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("parent owned by someone else reads as not found", func(t *testing.T) {
		folderRepo := newFakeFolderRepo()
		folderRepo.seed(models.Folder{ID: "theirs", OwnerID: "other-owner", Name: "Theirs"})
		svc := newTestFolderService(folderRepo, newFakeDocumentRepo())

		_, err := svc.CreateFolder(ctx, &services.CreateFolderRequest{
			OwnerID:  testOwner,
			Name:     "Mine",
			ParentID: strPtr("theirs"),
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("rejects duplicate sibling name", func(t *testing.T) {
		folderRepo := newFakeFolderRepo()
		folderRepo.seed(models.Folder{ID: "existing", OwnerID: testOwner, Name: "Essays"})
		svc := newTestFolderService(folderRepo, newFakeDocumentRepo())

		_, err := svc.CreateFolder(ctx, &services.CreateFolderRequest{
			OwnerID: testOwner,
			Name:    "Essays",
		})
		if !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}

		var conflict *domain.ConflictError
		if !errors.As(err, &conflict) {
			t.Fatal("expected ConflictError")
		}
		if conflict.ResourceID != "existing" {
			t.Errorf("expected conflicting id 'existing', got %q", conflict.ResourceID)
		}
		if conflict.ResourceType != "folder" {
			t.Errorf("expected resource type 'folder', got %q", conflict.ResourceType)
		}
	})

	t.Run("same name allowed under different parents", func(t *testing.T) {
		folderRepo := newFakeFolderRepo()
		folderRepo.seed(models.Folder{ID: "a", OwnerID: testOwner, Name: "A"})
		folderRepo.seed(models.Folder{ID: "drafts", OwnerID: testOwner, Name: "Drafts", ParentID: strPtr("a")})
		svc := newTestFolderService(folderRepo, newFakeDocumentRepo())

		// Root-level "Drafts" does not collide with a/Drafts
		if _, err := svc.CreateFolder(ctx, &services.CreateFolderRequest{
			OwnerID: testOwner,
			Name:    "Drafts",
		}); err != nil {
			t.Errorf("expected success, got %v", err)
		}
	})

	t.Run("rejects invalid names", func(t *testing.T) {
		svc := newTestFolderService(newFakeFolderRepo(), newFakeDocumentRepo())

		for _, name := range []string{"", "a/b"} {
			_, err := svc.CreateFolder(ctx, &services.CreateFolderRequest{
				OwnerID: testOwner,
				Name:    name,
			})
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("name %q: expected ErrValidation, got %v", name, err)
			}
		}
	})
}

func TestGetFolder(t *testing.T) {
	ctx := context.Background()
	folderRepo := newFakeFolderRepo()
	docRepo := newFakeDocumentRepo()
	folderRepo.seed(models.Folder{ID: "f1", OwnerID: testOwner, Name: "F1"})
	folderRepo.seed(models.Folder{ID: "c1", OwnerID: testOwner, Name: "C1", ParentID: strPtr("f1")})
	folderRepo.seed(models.Folder{ID: "c2", OwnerID: testOwner, Name: "C2", ParentID: strPtr("f1")})
	docRepo.seed(models.Document{ID: "d1", OwnerID: testOwner, FolderID: strPtr("f1"), Title: "Doc", Version: 1})
	svc := newTestFolderService(folderRepo, docRepo)

	t.Run("returns query-time counts", func(t *testing.T) {
		got, err := svc.GetFolder(ctx, testOwner, "f1")
		if err != nil {
			t.Fatalf("GetFolder failed: %v", err)
		}
		if got.ChildCount != 2 {
			t.Errorf("expected 2 child folders, got %d", got.ChildCount)
		}
		if got.DocumentCount != 1 {
			t.Errorf("expected 1 document, got %d", got.DocumentCount)
		}
	})

	t.Run("other owner reads as not found", func(t *testing.T) {
		_, err := svc.GetFolder(ctx, "other-owner", "f1")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestUpdateFolder(t *testing.T) {
	ctx := context.Background()

	// a > b > c
	seedChain := func() *fakeFolderRepo {
		folderRepo := newFakeFolderRepo()
		folderRepo.seed(models.Folder{ID: "a", OwnerID: testOwner, Name: "A"})
		folderRepo.seed(models.Folder{ID: "b", OwnerID: testOwner, Name: "B", ParentID: strPtr("a")})
		folderRepo.seed(models.Folder{ID: "c", OwnerID: testOwner, Name: "C", ParentID: strPtr("b")})
		return folderRepo
	}

	t.Run("renames folder", func(t *testing.T) {
		folderRepo := seedChain()
		svc := newTestFolderService(folderRepo, newFakeDocumentRepo())

		folder, err := svc.UpdateFolder(ctx, testOwner, "b", &services.UpdateFolderRequest{
			Name: strPtr("Renamed"),
		})
		if err != nil {
			t.Fatalf("UpdateFolder failed: %v", err)
		}
		if folder.Name != "Renamed" {
			t.Errorf("expected name 'Renamed', got %q", folder.Name)
		}
		if folder.ParentID == nil || *folder.ParentID != "a" {
			t.Error("rename must not change placement")
		}
	})

	t.Run("moves folder up the tree", func(t *testing.T) {
		folderRepo := seedChain()
		svc := newTestFolderService(folderRepo, newFakeDocumentRepo())

		folder, err := svc.UpdateFolder(ctx, testOwner, "c", &services.UpdateFolderRequest{
			ParentID: httputil.OptionalString{Present: true, Value: strPtr("a")},
		})
		if err != nil {
			t.Fatalf("UpdateFolder failed: %v", err)
		}
		if folder.ParentID == nil || *folder.ParentID != "a" {
			t.Errorf("expected parent 'a', got %v", folder.ParentID)
		}
	})

	t.Run("moves folder to root on null", func(t *testing.T) {
		folderRepo := seedChain()
		svc := newTestFolderService(folderRepo, newFakeDocumentRepo())

		folder, err := svc.UpdateFolder(ctx, testOwner, "c", &services.UpdateFolderRequest{
			ParentID: httputil.OptionalString{Present: true, Value: nil},
		})
		if err != nil {
			t.Fatalf("UpdateFolder failed: %v", err)
		}
		if folder.ParentID != nil {
			t.Errorf("expected root placement, got parent %v", *folder.ParentID)
		}
	})

	t.Run("rejects move into itself", func(t *testing.T) {
		folderRepo := seedChain()
		svc := newTestFolderService(folderRepo, newFakeDocumentRepo())

		_, err := svc.UpdateFolder(ctx, testOwner, "b", &services.UpdateFolderRequest{
			ParentID: httputil.OptionalString{Present: true, Value: strPtr("b")},
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("rejects move into own descendant", func(t *testing.T) {
		folderRepo := seedChain()
		svc := newTestFolderService(folderRepo, newFakeDocumentRepo())

		// a under c would create a -> b -> c -> a
		_, err := svc.UpdateFolder(ctx, testOwner, "a", &services.UpdateFolderRequest{
			ParentID: httputil.OptionalString{Present: true, Value: strPtr("c")},
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}

		// The tree is untouched after the rejection
		a, err := svc.GetFolder(ctx, testOwner, "a")
		if err != nil {
			t.Fatalf("GetFolder failed: %v", err)
		}
		if a.ParentID != nil {
			t.Error("rejected move must not change placement")
		}
	})

	t.Run("rejects sibling collision after move", func(t *testing.T) {
		folderRepo := seedChain()
		// Another "C" already sits directly in a
		folderRepo.seed(models.Folder{ID: "c2", OwnerID: testOwner, Name: "C", ParentID: strPtr("a")})
		svc := newTestFolderService(folderRepo, newFakeDocumentRepo())

		_, err := svc.UpdateFolder(ctx, testOwner, "c", &services.UpdateFolderRequest{
			ParentID: httputil.OptionalString{Present: true, Value: strPtr("a")},
		})
		if !errors.Is(err, domain.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("rename to own name succeeds", func(t *testing.T) {
		folderRepo := seedChain()
		svc := newTestFolderService(folderRepo, newFakeDocumentRepo())

		if _, err := svc.UpdateFolder(ctx, testOwner, "b", &services.UpdateFolderRequest{
			Name: strPtr("B"),
		}); err != nil {
			t.Errorf("expected success, got %v", err)
		}
	})

	t.Run("rejects empty request", func(t *testing.T) {
		folderRepo := seedChain()
		svc := newTestFolderService(folderRepo, newFakeDocumentRepo())

		_, err := svc.UpdateFolder(ctx, testOwner, "b", &services.UpdateFolderRequest{})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("corrupt ancestor chain surfaces integrity error", func(t *testing.T) {
		folderRepo := newFakeFolderRepo()
		// x and y form a parent cycle; z is the folder being moved
		folderRepo.seed(models.Folder{ID: "x", OwnerID: testOwner, Name: "X", ParentID: strPtr("y")})
		folderRepo.seed(models.Folder{ID: "y", OwnerID: testOwner, Name: "Y", ParentID: strPtr("x")})
		folderRepo.seed(models.Folder{ID: "z", OwnerID: testOwner, Name: "Z"})
		svc := newTestFolderService(folderRepo, newFakeDocumentRepo())

		_, err := svc.UpdateFolder(ctx, testOwner, "z", &services.UpdateFolderRequest{
			ParentID: httputil.OptionalString{Present: true, Value: strPtr("x")},
		})
		if !errors.Is(err, domain.ErrStructuralIntegrity) {
			t.Errorf("expected ErrStructuralIntegrity, got %v", err)
		}
	})
}

func TestDeleteFolder(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes subtree and detaches documents", func(t *testing.T) {
		folderRepo := newFakeFolderRepo()
		docRepo := newFakeDocumentRepo()
		folderRepo.seed(models.Folder{ID: "root", OwnerID: testOwner, Name: "Root"})
		folderRepo.seed(models.Folder{ID: "mid", OwnerID: testOwner, Name: "Mid", ParentID: strPtr("root")})
		folderRepo.seed(models.Folder{ID: "leaf", OwnerID: testOwner, Name: "Leaf", ParentID: strPtr("mid")})
		folderRepo.seed(models.Folder{ID: "keep", OwnerID: testOwner, Name: "Keep"})
		docRepo.seed(models.Document{ID: "d-root", OwnerID: testOwner, FolderID: strPtr("root"), Title: "In root", Version: 1})
		docRepo.seed(models.Document{ID: "d-leaf", OwnerID: testOwner, FolderID: strPtr("leaf"), Title: "In leaf", Version: 1})
		docRepo.seed(models.Document{ID: "d-keep", OwnerID: testOwner, FolderID: strPtr("keep"), Title: "Elsewhere", Version: 1})
		svc := newTestFolderService(folderRepo, docRepo)

		if err := svc.DeleteFolder(ctx, testOwner, "root"); err != nil {
			t.Fatalf("DeleteFolder failed: %v", err)
		}

		for _, id := range []string{"root", "mid", "leaf"} {
			if folderRepo.has(id) {
				t.Errorf("folder %s should have been deleted", id)
			}
		}
		if !folderRepo.has("keep") {
			t.Error("unrelated folder must survive")
		}

		// Documents survive their folders, detached to root
		for _, id := range []string{"d-root", "d-leaf"} {
			d := docRepo.get(id)
			if d == nil {
				t.Fatalf("document %s should not be deleted", id)
			}
			if d.FolderID != nil {
				t.Errorf("document %s should be detached, still in %q", id, *d.FolderID)
			}
		}
		if d := docRepo.get("d-keep"); d == nil || d.FolderID == nil || *d.FolderID != "keep" {
			t.Error("unrelated document must keep its placement")
		}
	})

	t.Run("other owner reads as not found", func(t *testing.T) {
		folderRepo := newFakeFolderRepo()
		folderRepo.seed(models.Folder{ID: "f1", OwnerID: "other-owner", Name: "Theirs"})
		svc := newTestFolderService(folderRepo, newFakeDocumentRepo())

		err := svc.DeleteFolder(ctx, testOwner, "f1")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if !folderRepo.has("f1") {
			t.Error("foreign folder must not be deleted")
		}
	})

	t.Run("parent cycle surfaces integrity error", func(t *testing.T) {
		folderRepo := newFakeFolderRepo()
		folderRepo.seed(models.Folder{ID: "x", OwnerID: testOwner, Name: "X", ParentID: strPtr("y")})
		folderRepo.seed(models.Folder{ID: "y", OwnerID: testOwner, Name: "Y", ParentID: strPtr("x")})
		svc := newTestFolderService(folderRepo, newFakeDocumentRepo())

		err := svc.DeleteFolder(ctx, testOwner, "x")
		if !errors.Is(err, domain.ErrStructuralIntegrity) {
			t.Errorf("expected ErrStructuralIntegrity, got %v", err)
		}
	})
}

func TestListChildren(t *testing.T) {
	ctx := context.Background()
	folderRepo := newFakeFolderRepo()
	docRepo := newFakeDocumentRepo()
	folderRepo.seed(models.Folder{ID: "f1", OwnerID: testOwner, Name: "F1"})
	folderRepo.seed(models.Folder{ID: "c1", OwnerID: testOwner, Name: "C1", ParentID: strPtr("f1")})
	docRepo.seed(models.Document{ID: "d1", OwnerID: testOwner, FolderID: strPtr("f1"), Title: "Inside", Version: 1})
	docRepo.seed(models.Document{ID: "d2", OwnerID: testOwner, Title: "At root", Version: 1})
	svc := newTestFolderService(folderRepo, docRepo)

	t.Run("lists folder contents", func(t *testing.T) {
		contents, err := svc.ListChildren(ctx, testOwner, strPtr("f1"))
		if err != nil {
			t.Fatalf("ListChildren failed: %v", err)
		}
		if contents.Folder == nil || contents.Folder.ID != "f1" {
			t.Error("expected folder metadata in response")
		}
		if len(contents.Folders) != 1 || contents.Folders[0].ID != "c1" {
			t.Errorf("expected child folder c1, got %v", contents.Folders)
		}
		if len(contents.Documents) != 1 || contents.Documents[0].ID != "d1" {
			t.Errorf("expected document d1, got %v", contents.Documents)
		}
	})

	t.Run("lists root level", func(t *testing.T) {
		contents, err := svc.ListChildren(ctx, testOwner, nil)
		if err != nil {
			t.Fatalf("ListChildren failed: %v", err)
		}
		if contents.Folder != nil {
			t.Error("root listing has no folder metadata")
		}
		if len(contents.Folders) != 1 || contents.Folders[0].ID != "f1" {
			t.Errorf("expected root folder f1, got %v", contents.Folders)
		}
		if len(contents.Documents) != 1 || contents.Documents[0].ID != "d2" {
			t.Errorf("expected root document d2, got %v", contents.Documents)
		}
	})
}
