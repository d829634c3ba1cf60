package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mediaup/internal/domain"
	"mediaup/internal/port"
)

// MockTransport is a mock implementation of uploader.Transport.
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Upload(ctx context.Context, bucket domain.BucketClass, asset *domain.MediaAsset, progress port.ProgressFunc) (*domain.UploadResult, error) {
	args := m.Called(ctx, bucket, asset, progress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadResult), args.Error(1)
}
