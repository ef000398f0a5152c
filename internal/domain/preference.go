package domain

import "time"

// UserPreference is a generic per-identity key/value pair used as a
// server-side replacement for client local storage. Exactly one of
// UserID/SessionID identifies the owner; rows are unique per
// (identity, key).
type UserPreference struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"userId,omitempty"`
	SessionID *string   `json:"sessionId,omitempty"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PrefIdentity names the owner of a preference row: a numeric user id
// or a session token. When a caller could present both, the session
// token wins; many callers cannot produce a stable numeric id.
type PrefIdentity struct {
	UserID    *int64
	SessionID string
}

// BySession builds a session-token identity.
func BySession(sessionID string) PrefIdentity {
	return PrefIdentity{SessionID: sessionID}
}

// ByUser builds a numeric-user identity.
func ByUser(userID int64) PrefIdentity {
	return PrefIdentity{UserID: &userID}
}
