package domain

import "time"

// IdentityKind tags the one identity decision made per request at the
// access-control boundary. Handlers never inspect raw session fields.
type IdentityKind string

const (
	IdentityAnonymous IdentityKind = "anonymous"
	IdentityTrainer   IdentityKind = "trainer"
	IdentityStudent   IdentityKind = "student"
)

// Identity is the resolved caller of a request. Exactly one of
// TrainerID/StudentID is meaningful depending on Kind.
type Identity struct {
	Kind         IdentityKind
	TrainerID    int64
	StudentID    int64
	Phone        string
	SessionToken string
}

func (i Identity) IsTrainer() bool { return i.Kind == IdentityTrainer }
func (i Identity) IsStudent() bool { return i.Kind == IdentityStudent }

// AuthSession is the server-side session record, addressed by its
// token. Rows with Role "login" only track failed-attempt lockout state
// for a phone and never authorize anything.
type AuthSession struct {
	Token          string       `json:"token"`
	Role           IdentityKind `json:"role"`
	TrainerID      *int64       `json:"trainerId,omitempty"`
	StudentID      *int64       `json:"studentId,omitempty"`
	Phone          string       `json:"phone"`
	RememberMe     bool         `json:"rememberMe"`
	FailedAttempts int          `json:"failedAttempts"`
	LockedUntil    *time.Time   `json:"lockedUntil,omitempty"`
	ExpiresAt      time.Time    `json:"expiresAt"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// Expired reports whether the session is past its expiry.
func (s *AuthSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
