package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mediaup/internal/domain"
)

// MockVideoPreprocessor is a mock implementation of port.VideoPreprocessor.
type MockVideoPreprocessor struct {
	mock.Mock
}

func (m *MockVideoPreprocessor) Probe(ctx context.Context, asset *domain.MediaAsset) (*domain.VideoInfo, error) {
	args := m.Called(ctx, asset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VideoInfo), args.Error(1)
}

func (m *MockVideoPreprocessor) Thumbnail(ctx context.Context, asset *domain.MediaAsset, duration float64) (*domain.MediaAsset, error) {
	args := m.Called(ctx, asset, duration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MediaAsset), args.Error(1)
}
