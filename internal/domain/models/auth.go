package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims is the JWT claims structure issued by the identity
// provider. The storage core never parses tokens itself; the HTTP layer
// resolves these claims and passes plain identifiers down.
type AccessClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string `json:"email"`
	Role                 string `json:"role"`      // "authenticated" or "anon"
	SchoolID             string `json:"school_id"` // tenant scope, empty for personal accounts
	SessionID            string `json:"session_id"`
	IsAnonymous          bool   `json:"is_anonymous"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *AccessClaims) GetUserID() string {
	return c.Subject
}

// GetSchoolID returns the tenant identifier, or nil for personal accounts.
func (c *AccessClaims) GetSchoolID() *string {
	if c.SchoolID == "" {
		return nil
	}
	id := c.SchoolID
	return &id
}
