package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockCredentialSource is a mock implementation of port.CredentialSource.
type MockCredentialSource struct {
	mock.Mock
}

func (m *MockCredentialSource) EnsureValid(ctx context.Context, minRemaining time.Duration) (string, error) {
	args := m.Called(ctx, minRemaining)
	return args.String(0), args.Error(1)
}
