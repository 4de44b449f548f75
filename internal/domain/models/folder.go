package models

import (
	"time"
)

type Folder struct {
	ID       string  `json:"id" db:"id"`
	OwnerID  string  `json:"owner_id" db:"owner_id"`
	TenantID *string `json:"school_id,omitempty" db:"tenant_id"` // NULL = personal workspace
	ParentID *string `json:"parent_id" db:"parent_id"`           // NULL = root level
	Name     string  `json:"name" db:"name"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// FolderWithCounts is the read model for a folder plus its query-time
// counts. Counts are recomputed per read rather than cached so they can
// never go stale after moves or deletes.
type FolderWithCounts struct {
	Folder
	ChildCount    int `json:"child_count"`
	DocumentCount int `json:"document_count"`
}
