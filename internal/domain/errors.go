package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface lets the handler layer translate domain
// failures without a type switch per error.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found. Ownership
	// mismatches surface as NotFoundError too: the store never reveals
	// whether another owner's resource exists.
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }

func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrStructuralIntegrity marks a stored folder tree that violates its
	// own invariants (an ancestor walk that never reaches a root).
	// Non-recoverable by the caller; it signals pre-existing corruption.
	ErrStructuralIntegrity = errors.New("structural integrity violation")
)

// ConflictError represents a resource conflict with details about the
// existing resource.
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (document, folder)
	ResourceID   string // ID of the existing/conflicting resource
}

func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// StructuralIntegrityError is raised when the ancestor walk of a folder
// exceeds the configured depth ceiling without reaching a root. The tree
// is already corrupt at that point; the error is fatal to the operation
// and must be logged, never swallowed.
type StructuralIntegrityError struct {
	Message  string
	FolderID string // folder whose ancestor chain failed to terminate
}

func (e *StructuralIntegrityError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *StructuralIntegrityError) StatusCode() int {
	return http.StatusInternalServerError
}

// Is allows errors.Is() to match against ErrStructuralIntegrity
func (e *StructuralIntegrityError) Is(target error) bool {
	return target == ErrStructuralIntegrity
}
