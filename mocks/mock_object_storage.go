package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"mediaup/internal/port"
)

// MockObjectStorage is a mock implementation of port.ObjectStorage.
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.UploadOutput), args.Error(1)
}

func (m *MockObjectStorage) Delete(ctx context.Context, bucket, key string) error {
	args := m.Called(ctx, bucket, key)
	return args.Error(0)
}

func (m *MockObjectStorage) PresignPutObject(ctx context.Context, bucket, key, contentType string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucket, key, contentType, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) PublicURL(bucket, key string) string {
	args := m.Called(bucket, key)
	return args.String(0)
}
