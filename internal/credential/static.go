package credential

import (
	"context"
	"fmt"

	"mediaup/internal/port"
)

// StaticStore serves a fixed bearer token, e.g. one supplied through the
// environment. It cannot mint a new one; once the token lapses the upload
// surfaces an authentication failure for the caller to resolve.
type StaticStore struct {
	token string
}

// NewStaticStore creates a StaticStore around the given token.
func NewStaticStore(token string) *StaticStore {
	return &StaticStore{token: token}
}

func (s *StaticStore) Current(ctx context.Context) (*port.Session, error) {
	if s.token == "" {
		return nil, fmt.Errorf("no bearer token configured")
	}
	return &port.Session{Token: s.token}, nil
}

func (s *StaticStore) Refresh(ctx context.Context) (*port.Session, error) {
	return s.Current(ctx)
}
