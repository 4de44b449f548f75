package models

import "time"

// TreeNode is the root of an owner's folder/document forest.
type TreeNode struct {
	Folders   []*FolderTreeNode  `json:"folders"`
	Documents []DocumentTreeNode `json:"documents"`
}

// FolderTreeNode is a folder with its nested children.
type FolderTreeNode struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	ParentID  *string            `json:"parent_id"`
	CreatedAt time.Time          `json:"created_at"`
	Folders   []*FolderTreeNode  `json:"folders"`
	Documents []DocumentTreeNode `json:"documents"`
}

// DocumentTreeNode is the metadata-only document entry in a tree
// (content and formatting are omitted to keep the payload small).
type DocumentTreeNode struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	FolderID  *string   `json:"folder_id"`
	WordCount int       `json:"word_count"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}
