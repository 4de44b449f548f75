package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	userIDKey   contextKey = "userID"
	schoolIDKey contextKey = "schoolID"
)

// WithIdentity adds the resolved owner and tenant (school) ids to the
// request context. schoolID may be nil for personal accounts.
func WithIdentity(r *http.Request, userID string, schoolID *string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	if schoolID != nil {
		ctx = context.WithValue(ctx, schoolIDKey, *schoolID)
	}
	return r.WithContext(ctx)
}

// GetUserID retrieves userID from context, returns empty string if not found
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

// GetSchoolID retrieves the tenant id from context, nil if not present
func GetSchoolID(r *http.Request) *string {
	schoolID, ok := r.Context().Value(schoolIDKey).(string)
	if !ok {
		return nil
	}
	return &schoolID
}
