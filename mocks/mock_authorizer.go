package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mediaup/internal/domain"
	"mediaup/internal/port"
)

// MockAuthorizer is a mock implementation of port.Authorizer.
type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) Authorize(ctx context.Context, token string, req port.AuthorizeRequest) (*domain.UploadSession, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadSession), args.Error(1)
}
