package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mediaup/internal/domain"
	"mediaup/internal/port"
)

// MockUploadRoute is a mock implementation of port.UploadRoute.
type MockUploadRoute struct {
	mock.Mock
}

func (m *MockUploadRoute) Upload(ctx context.Context, token string, bucket domain.BucketClass, asset *domain.MediaAsset, progress port.ProgressFunc) (*domain.UploadResult, error) {
	args := m.Called(ctx, token, bucket, asset, progress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadResult), args.Error(1)
}
