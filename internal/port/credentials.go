package port

import (
	"context"
	"time"
)

// Session is a bearer credential as held by the externally supplied store.
// ExpiresAt may be zero when the store does not track expiry; the
// credential manager then inspects the token itself.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// SessionStore is the externally supplied bearer-session mechanism. The
// pipeline does not own authentication; it only reads and refreshes.
type SessionStore interface {
	Current(ctx context.Context) (*Session, error)
	Refresh(ctx context.Context) (*Session, error)
}

// CredentialSource yields a bearer token guaranteed valid for at least the
// given remaining duration, refreshing if needed.
type CredentialSource interface {
	EnsureValid(ctx context.Context, minRemaining time.Duration) (string, error)
}
