package models

import (
	"time"
)

type Document struct {
	ID       string  `json:"id" db:"id"`
	OwnerID  string  `json:"owner_id" db:"owner_id"`
	TenantID *string `json:"school_id,omitempty" db:"tenant_id"` // NULL = personal workspace
	FolderID *string `json:"folder_id" db:"folder_id"`           // NULL = root level

	Title         string     `json:"title" db:"title"`
	Content       string     `json:"content" db:"content"`
	Formatting    Formatting `json:"formatting" db:"formatting"`
	DocumentType  string     `json:"document_type" db:"document_type"`
	CitationStyle string     `json:"citation_style" db:"citation_style"`
	WordCount     int        `json:"word_count" db:"word_count"`

	// Version starts at 1 and increases by exactly 1 on every successful
	// content-affecting update. Moving a document between folders does
	// not touch it: placement is metadata, not content.
	Version int `json:"version" db:"version"`

	// Submission linkage. Set when the document is handed in for an
	// assignment; grants the class read access externally without
	// changing ownership.
	AssignmentID *string `json:"assignment_id,omitempty" db:"assignment_id"`
	ClassID      *string `json:"class_id,omitempty" db:"class_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
