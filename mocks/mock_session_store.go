package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mediaup/internal/port"
)

// MockSessionStore is a mock implementation of port.SessionStore.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Current(ctx context.Context) (*port.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.Session), args.Error(1)
}

func (m *MockSessionStore) Refresh(ctx context.Context) (*port.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.Session), args.Error(1)
}
