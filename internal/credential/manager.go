package credential

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"mediaup/internal/domain"
	"mediaup/internal/port"
)

// DefaultMinValidity is the floor used when the caller passes no minimum.
const DefaultMinValidity = 60 * time.Second

// Manager guarantees a non-expired bearer token at each network step. The
// session store is externally supplied; the manager only reads it and asks
// it to refresh. Concurrent refreshes collapse into a single in-flight call
// so parallel uploads do not each hit the auth collaborator.
type Manager struct {
	store port.SessionStore
	sf    singleflight.Group
	now   func() time.Time
}

// NewManager creates a Manager over the given session store.
func NewManager(store port.SessionStore) *Manager {
	return &Manager{store: store, now: time.Now}
}

// EnsureValid returns a bearer token valid for at least minRemaining,
// refreshing through the store when the current session is missing or
// about to lapse. Failure is terminal for the upload: retrying an
// authentication failure without user action will not self-resolve.
func (m *Manager) EnsureValid(ctx context.Context, minRemaining time.Duration) (string, error) {
	if minRemaining <= 0 {
		minRemaining = DefaultMinValidity
	}

	sess, err := m.store.Current(ctx)
	if err == nil && sess != nil && m.validFor(sess, minRemaining) {
		return sess.Token, nil
	}

	v, err, _ := m.sf.Do("refresh", func() (interface{}, error) {
		log.Printf("credential.Manager: refreshing bearer session")
		return m.store.Refresh(ctx)
	})
	if err != nil {
		return "", fmt.Errorf("refreshing session: %v: %w", err, domain.ErrUnauthenticated)
	}

	refreshed, ok := v.(*port.Session)
	if !ok || refreshed == nil || refreshed.Token == "" {
		return "", fmt.Errorf("store returned empty session: %w", domain.ErrUnauthenticated)
	}
	if !m.validFor(refreshed, minRemaining) {
		return "", fmt.Errorf("refreshed session expires too soon: %w", domain.ErrUnauthenticated)
	}
	return refreshed.Token, nil
}

// validFor reports whether the session still has at least minRemaining of
// life. Expiry comes from the store when tracked, otherwise from the JWT
// exp claim; a token with no discoverable expiry is trusted as-is.
func (m *Manager) validFor(sess *port.Session, minRemaining time.Duration) bool {
	if sess.Token == "" {
		return false
	}
	expiry := sess.ExpiresAt
	if expiry.IsZero() {
		expiry = tokenExpiry(sess.Token)
	}
	if expiry.IsZero() {
		return true
	}
	return m.now().Add(minRemaining).Before(expiry)
}

// tokenExpiry extracts the exp claim without verifying the signature; the
// manager is a client, verification belongs to the server.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
